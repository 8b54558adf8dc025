package timer

import (
	"context"
	"time"
)

// Run calls step once per interval until ctx is done. Steps run on the
// calling goroutine, so a slow step delays the next one instead of
// overlapping it; ticks missed meanwhile are dropped by time.Ticker.
func Run(ctx context.Context, interval time.Duration, step func()) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			step()
		}
	}
}
