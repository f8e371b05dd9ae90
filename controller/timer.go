package controller

import "time"

// Clock is the time source for the control loop. It is satisfied by
// github.com/benbjohnson/clock so tests can drive the loop with a mock.
type Clock interface {
	Now() time.Time
}

// Timer reports when a fixed period has passed since it last fired.
// It is polled from the loop and never sleeps.
type Timer struct {
	clock Clock
	last  time.Time
}

// NewTimer creates a Timer that starts counting now
func NewTimer(clock Clock) *Timer {
	return &Timer{clock: clock, last: clock.Now()}
}

// Reset restarts the period from the current time
func (t *Timer) Reset() {
	t.last = t.clock.Now()
}

// HasElapsed returns true and restarts the timer if at least d has passed since
// the last time it fired. A delayed loop fires late; missed periods are not made up.
func (t *Timer) HasElapsed(d time.Duration) bool {
	now := t.clock.Now()
	if now.Sub(t.last) < d {
		return false
	}
	t.last = now
	return true
}
