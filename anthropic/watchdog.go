package anthropic

import (
	"context"
	"sync/atomic"
	"time"
)

// watchdog cancels a request when no progress was made within timeout.
// kick re-arms it after each received event, so long streams are bounded
// by the gap between events rather than by their total length.
type watchdog struct {
	timer   *time.Timer
	timeout time.Duration
	fired   atomic.Bool
}

func startWatchdog(timeout time.Duration, cancel context.CancelFunc) *watchdog {
	w := &watchdog{timeout: timeout}
	w.timer = time.AfterFunc(timeout, func() {
		w.fired.Store(true)
		cancel()
	})
	return w
}

func (w *watchdog) kick() {
	if !w.fired.Load() {
		w.timer.Reset(w.timeout)
	}
}

func (w *watchdog) stop() {
	w.timer.Stop()
}

func (w *watchdog) expired() bool {
	return w.fired.Load()
}
