package windows

import (
	"context"
	"fmt"
	"time"
)

// RefreshInterval is how long the auto-refresh countdown runs before
// triggering a reload.
const RefreshInterval = 5 * time.Minute

// RefreshTimer counts down to a refresh and can be aborted at any time.
// It replaces a blocking sleep loop: the countdown runs in its own
// goroutine and Stop cancels it without waiting out the interval.
type RefreshTimer struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// StartRefreshTimer counts down total in steps of interval, invoking
// tick with the remaining duration after every step and fire once the
// countdown reaches zero. Neither callback runs after Stop.
//
// Callbacks are invoked on the countdown goroutine. Callers touching
// widgets from them must go through fyne.Do.
func StartRefreshTimer(total, interval time.Duration, tick func(remaining time.Duration), fire func()) *RefreshTimer {
	ctx, cancel := context.WithCancel(context.Background())
	rt := &RefreshTimer{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(rt.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		remaining := total
		for remaining > 0 {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				remaining -= interval
				tick(remaining)
			}
		}

		select {
		case <-ctx.Done():
		default:
			fire()
		}
	}()
	return rt
}

// Stop aborts the countdown. Safe to call more than once.
func (rt *RefreshTimer) Stop() {
	rt.cancel()
}

// Done is closed when the countdown goroutine has exited.
func (rt *RefreshTimer) Done() <-chan struct{} {
	return rt.done
}

// formatCountdown renders a remaining duration as MM:SS.
func formatCountdown(remaining time.Duration) string {
	secs := int(remaining.Round(time.Second).Seconds())
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
