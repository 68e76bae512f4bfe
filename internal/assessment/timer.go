package assessment

import (
	"context"
	"sync"
	"time"
)

// Timer drives an attempt's countdown from a single goroutine. All access
// to the attempt while the timer runs must go through Do.
type Timer struct {
	mu     sync.Mutex
	a      *Attempt
	cancel context.CancelFunc
	done   chan struct{}
}

// StartTimer ticks a every interval until it leaves InProgress, ctx ends or
// Stop is called. onExpire runs, with the lock released, when a tick ends
// the attempt.
func StartTimer(ctx context.Context, a *Attempt, interval time.Duration, onExpire func()) *Timer {
	ctx, cancel := context.WithCancel(ctx)
	t := &Timer{a: a, cancel: cancel, done: make(chan struct{})}
	go t.run(ctx, interval, onExpire)
	return t
}

func (t *Timer) run(ctx context.Context, interval time.Duration, onExpire func()) {
	defer close(t.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.mu.Lock()
			expired := t.a.Tick()
			running := t.a.Phase == PhaseInProgress
			t.mu.Unlock()
			if expired && onExpire != nil {
				onExpire()
			}
			if !running {
				return
			}
		}
	}
}

// Do runs fn with exclusive access to the attempt.
func (t *Timer) Do(fn func(a *Attempt)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.a)
}

// Stop halts the countdown and waits for the ticking goroutine to exit.
func (t *Timer) Stop() {
	t.cancel()
	<-t.done
}
