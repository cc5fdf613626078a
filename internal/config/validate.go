// internal/config/validate.go
package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil")
	}

	// ------------------------------------------------------------
	// SERIAL
	// ------------------------------------------------------------

	if cfg.Serial.Port == "" {
		return errors.New("serial.port must not be empty")
	}
	if cfg.Serial.BaudRate <= 0 {
		return fmt.Errorf("serial.baud_rate must be > 0 (got %d)", cfg.Serial.BaudRate)
	}
	if cfg.Serial.ResetDelayMs < 0 {
		return fmt.Errorf("serial.reset_delay_ms must be >= 0 (got %d)", cfg.Serial.ResetDelayMs)
	}
	if cfg.Serial.WriteTimeoutMs < 0 {
		return fmt.Errorf("serial.write_timeout_ms must be >= 0 (got %d)", cfg.Serial.WriteTimeoutMs)
	}

	// ------------------------------------------------------------
	// POLL
	// ------------------------------------------------------------

	if cfg.Poll.IntervalMs <= 0 {
		return fmt.Errorf("poll.interval_ms must be > 0 (got %d)", cfg.Poll.IntervalMs)
	}

	// ------------------------------------------------------------
	// SPOTIFY (credentials are optional: missing ones degrade, not fail)
	// ------------------------------------------------------------

	if cfg.Spotify.Enabled {
		if cfg.Spotify.APIURL == "" {
			return errors.New("spotify.api_url must not be empty when spotify is enabled")
		}
		u, err := url.Parse(cfg.Spotify.APIURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("spotify.api_url %q is not an absolute URL", cfg.Spotify.APIURL)
		}
		if cfg.Spotify.TimeoutMs <= 0 {
			return fmt.Errorf("spotify.timeout_ms must be > 0 (got %d)", cfg.Spotify.TimeoutMs)
		}
	}

	// ------------------------------------------------------------
	// LOGGING
	// ------------------------------------------------------------

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be debug, info, warn, or error", cfg.Logging.Level)
	}

	switch cfg.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be console or json", cfg.Logging.Format)
	}

	return nil
}
