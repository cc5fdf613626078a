// internal/status/snapshot.go
package status

// PlaybackState is the media-player state as seen by the receiver.
type PlaybackState uint8

const (
	PlaybackStopped PlaybackState = iota + 1
	PlaybackPaused
	PlaybackPlaying
)

func (s PlaybackState) String() string {
	switch s {
	case PlaybackPlaying:
		return "Playing"
	case PlaybackPaused:
		return "Paused"
	case PlaybackStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Reading is one signal value obtained during a tick.
// The zero Reading is Unavailable: no new data this tick.
type Reading[T comparable] struct {
	value T
	ok    bool
}

// Available wraps a successfully read value.
func Available[T comparable](v T) Reading[T] {
	return Reading[T]{value: v, ok: true}
}

// Unavailable is the "no reading" result.
func Unavailable[T comparable]() Reading[T] {
	return Reading[T]{}
}

// Get returns the value and whether it is defined.
func (r Reading[T]) Get() (T, bool) {
	return r.value, r.ok
}

// Defined reports whether the reading carries a value.
func (r Reading[T]) Defined() bool {
	return r.ok
}

// Differs reports whether r is defined and not equal to last.
// An undefined last always differs from a defined r.
func (r Reading[T]) Differs(last Reading[T]) bool {
	if !r.ok {
		return false
	}
	return !last.ok || last.value != r.value
}

// Snapshot holds the last successfully sent value of each signal.
// It contains no logic and no memory of the past beyond what was delivered.
// The zero Snapshot means nothing has been sent yet.
type Snapshot struct {
	Playback Reading[PlaybackState]
	Volume   Reading[int]
	Mute     Reading[bool]
}
