// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// Run polls, hands the result to handle, then sleeps the interval.
// Everything happens on the calling goroutine. No overlap. No retries.
// Cancellation is observed before each tick and during the sleep; a source
// call already in flight is allowed to finish.
func (p *Poller) Run(ctx context.Context, handle func(PollResult)) {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if ctx.Err() != nil {
			return
		}

		handle(p.PollOnce(context.WithoutCancel(ctx)))

		timer.Reset(p.cfg.Interval)
	}
}
