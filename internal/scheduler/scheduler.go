// Package scheduler runs cancellable periodic tasks.
package scheduler

import (
	"context"
	"sync"
	"time"

	"project-timer/internal/logging"
)

// Handle controls a task started with Every.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Every calls fn once per interval until ctx is cancelled or the handle is
// stopped. Calls never overlap; a slow fn delays the next tick rather than
// queueing extra ones. A non-positive interval falls back to one second.
func Every(ctx context.Context, interval time.Duration, fn func(now time.Time)) *Handle {
	if interval <= 0 {
		interval = time.Second
	}
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(h.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		logging.Debugf("scheduler started with interval %s", interval)
		for {
			select {
			case <-ctx.Done():
				logging.Debugln("scheduler stopped")
				return
			case now := <-ticker.C:
				fn(now)
			}
		}
	}()

	return h
}

// Stop cancels the task and waits for its goroutine to exit. It is safe to
// call more than once.
func (h *Handle) Stop() {
	h.once.Do(h.cancel)
	<-h.done
}

// Done is closed once the task has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}
