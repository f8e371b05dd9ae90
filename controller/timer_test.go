package controller

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

func TestTimer(t *testing.T) {
	mock := clock.NewMock()
	timer := NewTimer(mock)

	if timer.HasElapsed(5 * time.Millisecond) {
		t.Error("timer fired before period")
	}

	mock.Add(4 * time.Millisecond)
	if timer.HasElapsed(5 * time.Millisecond) {
		t.Error("timer fired before period")
	}

	mock.Add(time.Millisecond)
	if !timer.HasElapsed(5 * time.Millisecond) {
		t.Error("timer did not fire after period")
	}
	if timer.HasElapsed(5 * time.Millisecond) {
		t.Error("timer fired twice for one period")
	}

	// a stalled loop fires once and does not catch up on missed periods
	mock.Add(23 * time.Millisecond)
	if !timer.HasElapsed(5 * time.Millisecond) {
		t.Error("timer did not fire after stall")
	}
	mock.Add(4 * time.Millisecond)
	if timer.HasElapsed(5 * time.Millisecond) {
		t.Error("timer fired for missed period")
	}

	mock.Add(3 * time.Millisecond)
	timer.Reset()
	mock.Add(4 * time.Millisecond)
	if timer.HasElapsed(5 * time.Millisecond) {
		t.Error("timer ignored reset")
	}
}
