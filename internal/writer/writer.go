// internal/writer/writer.go
package writer

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/tamzrod/deck-companion/internal/poller"
	"github.com/tamzrod/deck-companion/internal/status"
)

const (
	FieldPlayback = "playback"
	FieldVolume   = "volume"
	FieldMute     = "mute"
)

// Sent describes one byte that reached the channel.
type Sent struct {
	Field string
	Byte  byte
}

// Apply delivers every field of res that differs from last.
// Order is fixed: playback, volume, mute. One byte per changed field.
//
// The returned snapshot is last with every successfully written field
// replaced. A failed write leaves that field untouched so the value is
// offered again next tick; later fields are still attempted.
func Apply(ch Channel, last status.Snapshot, res poller.PollResult) (status.Snapshot, []Sent, error) {
	if ch == nil {
		return last, nil, errors.New("writer: nil channel")
	}

	next := last
	var sent []Sent
	var errs error

	// ------------------------------------------------------------
	// PLAYBACK
	// ------------------------------------------------------------
	if res.Playback.Differs(last.Playback) {
		v, _ := res.Playback.Get()
		b, err := status.EncodePlayback(v)
		if err == nil {
			err = ch.WriteByte(b)
		}
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("writer: playback %s: %w", v, err))
		} else {
			next.Playback = res.Playback
			sent = append(sent, Sent{Field: FieldPlayback, Byte: b})
		}
	}

	// ------------------------------------------------------------
	// VOLUME
	// ------------------------------------------------------------
	if res.Volume.Differs(last.Volume) {
		v, _ := res.Volume.Get()
		b, err := status.EncodeVolume(v)
		if err == nil {
			err = ch.WriteByte(b)
		}
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("writer: volume %d: %w", v, err))
		} else {
			next.Volume = res.Volume
			sent = append(sent, Sent{Field: FieldVolume, Byte: b})
		}
	}

	// ------------------------------------------------------------
	// MUTE
	// ------------------------------------------------------------
	if res.Mute.Differs(last.Mute) {
		v, _ := res.Mute.Get()
		b := status.EncodeMute(v)
		if err := ch.WriteByte(b); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("writer: mute %t: %w", v, err))
		} else {
			next.Mute = res.Mute
			sent = append(sent, Sent{Field: FieldMute, Byte: b})
		}
	}

	return next, sent, errs
}
