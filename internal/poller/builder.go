// internal/poller/builder.go
package poller

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/deck-companion/internal/config"
	"github.com/tamzrod/deck-companion/internal/poller/mixer"
	"github.com/tamzrod/deck-companion/internal/poller/spotify"
)

// Sources are the adapters one session polls. A nil field is a disabled signal.
type Sources struct {
	Playback PlaybackSource
	Mixer    MixerSource
}

// BuildSources initializes each adapter once.
// A failing adapter is logged and left nil; it never fails the build.
// The returned closer releases whatever was acquired.
func BuildSources(ctx context.Context, c config.Config, logger *zap.Logger) (Sources, func() error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var src Sources
	closeFn := func() error { return nil }

	// ---- playback ----
	switch pb, err := buildPlayback(ctx, c.Spotify, logger); {
	case !c.Spotify.Enabled:
		logger.Info("playback source disabled by config")
	case err != nil:
		logger.Warn("playback source disabled for this session", zap.Error(err))
	default:
		src.Playback = pb
		logger.Info("playback source ready", zap.String("api", c.Spotify.APIURL))
	}

	// ---- mixer ----
	if !c.Mixer.Enabled {
		logger.Info("volume source disabled by config")
	} else {
		m, err := mixer.New()
		switch {
		case errors.Is(err, mixer.ErrUnsupported):
			logger.Warn("volume source unavailable on this platform")
		case err != nil:
			logger.Warn("volume source disabled for this session", zap.Error(err))
		default:
			src.Mixer = m
			closeFn = m.Close
			logger.Info("volume source ready")
		}
	}

	return src, closeFn
}

func buildPlayback(ctx context.Context, sc config.SpotifyConfig, logger *zap.Logger) (*spotify.Client, error) {
	if !sc.Enabled {
		return nil, nil
	}
	if !sc.SpotifyConfigured() {
		return nil, spotify.ErrNotConfigured
	}

	timeout := time.Duration(sc.TimeoutMs) * time.Millisecond

	ts, err := spotify.NewFileTokenSource(ctx, spotify.Credentials{
		ClientID:     sc.ClientID,
		ClientSecret: sc.ClientSecret,
		RedirectURI:  sc.RedirectURI,
		Timeout:      timeout,
	}, sc.TokenFile, logger)
	if err != nil {
		return nil, err
	}

	return spotify.New(spotify.Config{
		BaseURL:    sc.APIURL,
		HTTPClient: spotify.NewHTTPClient(ctx, ts, timeout),
	})
}

// Build constructs a Poller from config and already-built sources.
func Build(c config.Config, src Sources, logger *zap.Logger) (*Poller, error) {
	return New(
		Config{
			Interval: time.Duration(c.Poll.IntervalMs) * time.Millisecond,
		},
		src.Playback,
		src.Mixer,
		logger,
	)
}
