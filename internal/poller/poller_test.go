// internal/poller/poller_test.go
package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/tamzrod/deck-companion/internal/status"
)

// ---- fakes ----

type fakePlayback struct {
	states []status.PlaybackState
	errs   []error
	calls  int
}

func (f *fakePlayback) Playback(ctx context.Context) (status.PlaybackState, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return 0, f.errs[i]
	}
	if i < len(f.states) {
		return f.states[i], nil
	}
	return status.PlaybackStopped, nil
}

type fakeMixer struct {
	level int
	muted bool
	err   error
	calls int
}

func (f *fakeMixer) Volume() (int, bool, error) {
	f.calls++
	return f.level, f.muted, f.err
}

// ---- tests ----

func TestNew_RejectsNonPositiveInterval(t *testing.T) {
	if _, err := New(Config{}, nil, nil, nil); err == nil {
		t.Fatalf("expected error for zero interval")
	}
}

func TestPollOnce_AllAvailable(t *testing.T) {
	pb := &fakePlayback{states: []status.PlaybackState{status.PlaybackPlaying}}
	mx := &fakeMixer{level: 37, muted: true}

	p, err := New(Config{Interval: time.Second}, pb, mx, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	res := p.PollOnce(context.Background())

	if v, ok := res.Playback.Get(); !ok || v != status.PlaybackPlaying {
		t.Fatalf("playback: got %v/%v", v, ok)
	}
	if v, ok := res.Volume.Get(); !ok || v != 37 {
		t.Fatalf("volume: got %v/%v", v, ok)
	}
	if v, ok := res.Mute.Get(); !ok || !v {
		t.Fatalf("mute: got %v/%v", v, ok)
	}
	if res.At.IsZero() {
		t.Fatalf("timestamp not set")
	}
}

func TestPollOnce_FailuresBecomeUnavailable(t *testing.T) {
	pb := &fakePlayback{errs: []error{errors.New("api down")}}
	mx := &fakeMixer{err: errors.New("com gone")}

	p, err := New(Config{Interval: time.Second}, pb, mx, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	res := p.PollOnce(context.Background())

	if res.Playback.Defined() || res.Volume.Defined() || res.Mute.Defined() {
		t.Fatalf("expected all unavailable, got %+v", res)
	}
	if pb.calls != 1 || mx.calls != 1 {
		t.Fatalf("expected one call per source, got playback=%d mixer=%d", pb.calls, mx.calls)
	}
}

func TestPollOnce_OneSourceFailing(t *testing.T) {
	pb := &fakePlayback{errs: []error{errors.New("timeout")}}
	mx := &fakeMixer{level: 50}

	p, _ := New(Config{Interval: time.Second}, pb, mx, nil)
	res := p.PollOnce(context.Background())

	if res.Playback.Defined() {
		t.Fatalf("playback should be unavailable")
	}
	if v, ok := res.Volume.Get(); !ok || v != 50 {
		t.Fatalf("volume: got %v/%v", v, ok)
	}
}

func TestPollOnce_NilSourcesAreSkipped(t *testing.T) {
	p, err := New(Config{Interval: time.Second}, nil, nil, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	res := p.PollOnce(context.Background())

	if res.Playback.Defined() || res.Volume.Defined() || res.Mute.Defined() {
		t.Fatalf("disabled sources must yield unavailable readings")
	}
}
