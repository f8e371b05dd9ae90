package ui

import (
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// timer shows the time elapsed since the last command was sent to the servo
type timer struct {
	startTime time.Time
	mtx       *sync.Mutex
	text      *canvas.Text
	start     chan struct{}
	startOnce sync.Once
	stop      chan struct{}
	stopOnce  sync.Once
}

func newTimer() *timer {
	return &timer{
		mtx:   &sync.Mutex{},
		text:  canvas.NewText("00:00.0", nil),
		start: make(chan struct{}),
		stop:  make(chan struct{}),
	}
}

// Set restarts the count from start. The first call starts the display loop.
func (t *timer) Set(start time.Time) {
	t.mtx.Lock()
	t.startTime = start
	t.mtx.Unlock()

	t.startOnce.Do(func() {
		close(t.start)
	})
}

func (t *timer) Stop() {
	t.stopOnce.Do(func() {
		close(t.stop)
	})
}

func (t *timer) elapsed(now time.Time) string {
	t.mtx.Lock()
	elapsed := now.Sub(t.startTime)
	t.mtx.Unlock()

	minutes := int(elapsed.Minutes())
	seconds := int(elapsed.Seconds()) % 60
	tenths := int(elapsed.Milliseconds()) % 1000 / 100
	return fmt.Sprintf("%02d:%02d.%d", minutes, seconds, tenths)
}

func (t *timer) Go() {
	go func() {
		select {
		case <-t.start:
		case <-t.stop:
			return
		}

		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case now := <-ticker.C:
				text := t.elapsed(now)
				fyne.Do(func() {
					t.text.Text = text
					t.text.Refresh()
				})
			}
		}
	}()
}
