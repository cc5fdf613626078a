// internal/poller/poller.go
package poller

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/tamzrod/deck-companion/internal/status"
)

// PlaybackSource reports the media-player state. One call per tick.
type PlaybackSource interface {
	Playback(ctx context.Context) (status.PlaybackState, error)
}

// MixerSource reports output volume (0-100) and mute. One call per tick.
type MixerSource interface {
	Volume() (level int, muted bool, err error)
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	Interval time.Duration

	// FailureLogInterval bounds how often a failing source is logged.
	FailureLogInterval time.Duration
}

// Poller is a dumb, clock-driven reader.
// A nil source means the signal is disabled for the session.
type Poller struct {
	cfg      Config
	playback PlaybackSource
	mixer    MixerSource
	logger   *zap.Logger

	playbackMiss *rate.Sometimes
	mixerMiss    *rate.Sometimes
}

// New creates a poller with immutable config.
func New(cfg Config, playback PlaybackSource, mixer MixerSource, logger *zap.Logger) (*Poller, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if cfg.FailureLogInterval <= 0 {
		cfg.FailureLogInterval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		cfg:          cfg,
		playback:     playback,
		mixer:        mixer,
		logger:       logger,
		playbackMiss: &rate.Sometimes{First: 1, Interval: cfg.FailureLogInterval},
		mixerMiss:    &rate.Sometimes{First: 1, Interval: cfg.FailureLogInterval},
	}, nil
}

// PollOnce performs exactly one poll cycle.
// Source failures become Unavailable readings; they never abort the cycle.
func (p *Poller) PollOnce(ctx context.Context) PollResult {
	res := PollResult{At: time.Now()}

	if p.playback != nil {
		s, err := p.playback.Playback(ctx)
		if err != nil {
			p.playbackMiss.Do(func() {
				p.logger.Debug("playback read failed", zap.Error(err))
			})
		} else {
			res.Playback = status.Available(s)
		}
	}

	if p.mixer != nil {
		level, muted, err := p.mixer.Volume()
		if err != nil {
			p.mixerMiss.Do(func() {
				p.logger.Debug("mixer read failed", zap.Error(err))
			})
		} else {
			res.Volume = status.Available(level)
			res.Mute = status.Available(muted)
		}
	}

	return res
}
