// internal/config/load.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PlaceholderClientID is the value shipped in example configs.
// Normalize treats it as "not configured".
const PlaceholderClientID = "YOUR_CLIENT_ID_HERE"

// Default returns a fully-populated Config.
func Default() Config {
	return Config{
		Serial: SerialConfig{
			Port:           defaultSerialPort(),
			BaudRate:       115200,
			ResetDelayMs:   2000,
			WriteTimeoutMs: 1000,
		},
		Poll: PollConfig{
			IntervalMs: 1000,
		},
		Spotify: SpotifyConfig{
			Enabled:     true,
			RedirectURI: "http://localhost:8888/callback",
			TokenFile:   "~/.config/deck-companion/spotify-token.json",
			APIURL:      "https://api.spotify.com",
			TimeoutMs:   5000,
		},
		Mixer: MixerConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a YAML config file on top of Default().
// Unknown fields are rejected.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: path is empty")
	}

	b, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("config: read: %w", err)
	}

	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	return &cfg, nil
}
