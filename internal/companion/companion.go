// internal/companion/companion.go
package companion

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tamzrod/deck-companion/internal/poller"
	"github.com/tamzrod/deck-companion/internal/status"
	"github.com/tamzrod/deck-companion/internal/writer"
)

// ErrChannelOpen is the only fatal startup failure.
var ErrChannelOpen = errors.New("companion: serial channel open failed")

// Options wires one session. Factories are called once, in order:
// OpenChannel first, then BuildSources and NewPoller only if the channel opened.
type Options struct {
	OpenChannel  func() (writer.ChannelCloser, error)
	BuildSources func() (poller.Sources, func() error)
	NewPoller    func(poller.Sources) (*poller.Poller, error)

	Logger *zap.Logger
}

// Companion owns the channel and the sources for one session.
type Companion struct {
	ch          writer.ChannelCloser
	poller      *poller.Poller
	closeSource func() error
	logger      *zap.Logger

	last status.Snapshot
}

// Start runs the Starting phase.
// On ErrChannelOpen no source has been initialized.
func Start(opts Options) (*Companion, error) {
	if opts.OpenChannel == nil || opts.BuildSources == nil || opts.NewPoller == nil {
		return nil, errors.New("companion: OpenChannel, BuildSources and NewPoller are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ch, err := opts.OpenChannel()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChannelOpen, err)
	}
	logger.Info("serial channel open")

	src, closeSource := opts.BuildSources()
	if closeSource == nil {
		closeSource = func() error { return nil }
	}

	p, err := opts.NewPoller(src)
	if err != nil {
		_ = closeSource()
		_ = ch.Close()
		return nil, err
	}

	return &Companion{
		ch:          ch,
		poller:      p,
		closeSource: closeSource,
		logger:      logger,
	}, nil
}

// Run is the Running phase. It blocks on the calling goroutine until ctx is
// cancelled. Runtime failures never end it.
func (c *Companion) Run(ctx context.Context) {
	c.logger.Info("running")
	c.poller.Run(ctx, c.Tick)
	c.logger.Info("interrupted, shutting down")
}

// Tick hands one poll result to the writer and keeps what was delivered.
func (c *Companion) Tick(res poller.PollResult) {
	next, sent, err := writer.Apply(c.ch, c.last, res)
	c.last = next

	for _, s := range sent {
		c.logger.Info(statusLine(s, next))
	}
	if err != nil {
		c.logger.Warn("serial write failed", zap.Error(err))
	}
}

// Last returns the last-sent snapshot.
func (c *Companion) Last() status.Snapshot {
	return c.last
}

// Close is the Stopped phase: channel first, then sources.
func (c *Companion) Close() error {
	errCh := c.ch.Close()
	errSrc := c.closeSource()
	return multierr.Combine(errCh, errSrc)
}

func statusLine(s writer.Sent, snap status.Snapshot) string {
	switch s.Field {
	case writer.FieldPlayback:
		v, _ := snap.Playback.Get()
		return "Spotify: " + v.String()
	case writer.FieldVolume:
		v, _ := snap.Volume.Get()
		return fmt.Sprintf("Volume: %d%%", v)
	case writer.FieldMute:
		if v, _ := snap.Mute.Get(); v {
			return "Mute: ON"
		}
		return "Mute: OFF"
	default:
		return fmt.Sprintf("sent 0x%02x", s.Byte)
	}
}
