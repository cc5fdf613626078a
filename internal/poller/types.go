// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/deck-companion/internal/status"
)

// PollResult is a snapshot produced by one poll cycle.
// Each signal is independent: a failed source only blanks its own readings.
type PollResult struct {
	At time.Time

	Playback status.Reading[status.PlaybackState]
	Volume   status.Reading[int]
	Mute     status.Reading[bool]
}
