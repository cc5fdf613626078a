// internal/config/normalize.go
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Serial.Port = strings.TrimSpace(cfg.Serial.Port)

	sp := &cfg.Spotify
	sp.ClientID = strings.TrimSpace(sp.ClientID)
	sp.ClientSecret = strings.TrimSpace(sp.ClientSecret)
	sp.APIURL = strings.TrimRight(sp.APIURL, "/")
	sp.TokenFile = ExpandPath(strings.TrimSpace(sp.TokenFile))

	// Example configs ship a placeholder; it is the same as unset.
	if sp.ClientID == PlaceholderClientID {
		sp.ClientID = ""
	}
}

// SpotifyConfigured reports whether enough credentials are present to try
// the playback source at all.
func (c SpotifyConfig) SpotifyConfigured() bool {
	return c.Enabled && c.ClientID != "" && c.ClientSecret != "" && c.TokenFile != ""
}

// ExpandPath expands a leading "~" using the user's home directory.
func ExpandPath(p string) string {
	if p == "" || p[0] != '~' {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	if p[1] == '/' || p[1] == '\\' {
		return filepath.Join(home, p[2:])
	}
	return p
}
