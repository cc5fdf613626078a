// internal/config/config.go
package config

type Config struct {
	Serial  SerialConfig  `yaml:"serial"`
	Poll    PollConfig    `yaml:"poll"`
	Spotify SpotifyConfig `yaml:"spotify"`
	Mixer   MixerConfig   `yaml:"mixer"`
	Logging LoggingConfig `yaml:"logging"`
}

// ---- SERIAL ----

type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`

	// Receiver resets when the port opens; wait this long before first write.
	ResetDelayMs   int `yaml:"reset_delay_ms"`
	WriteTimeoutMs int `yaml:"write_timeout_ms"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// ---- PLAYBACK SOURCE ----

type SpotifyConfig struct {
	Enabled      bool   `yaml:"enabled"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURI  string `yaml:"redirect_uri"`
	TokenFile    string `yaml:"token_file"`
	APIURL       string `yaml:"api_url"`
	TimeoutMs    int    `yaml:"timeout_ms"`
}

// ---- VOLUME SOURCE ----

type MixerConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ---- LOGGING ----

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // console | json
}
