package ui

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/calvinmclean/camservo/client"
)

func TestServoUIWrite(t *testing.T) {
	ui := NewServoUI()

	if _, ok := ui.Position(); ok {
		t.Fatal("expected no position before telemetry")
	}
	if ui.positionText() != "--.---°" {
		t.Errorf("unexpected position text %q", ui.positionText())
	}

	updates := 0
	ui.onUpdate = func() { updates++ }

	_, err := io.WriteString(ui, "camServ_tpos:45000;\ncamServ_pos:12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := ui.Position(); ok {
		t.Error("partial line should not update the position")
	}

	_, err = io.WriteString(ui, "500;\n\ngarbage\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	position, ok := ui.Position()
	if !ok || position != 12.5 {
		t.Errorf("expected position 12.5, got=%v ok=%v", position, ok)
	}
	if ui.positionText() != "12.500°" {
		t.Errorf("unexpected position text %q", ui.positionText())
	}

	expectedLog := []string{"camServ_tpos:45000;", "garbage"}
	log := ui.Log()
	if strings.Join(log, "|") != strings.Join(expectedLog, "|") {
		t.Errorf("expected log=%v, got=%v", expectedLog, log)
	}
	if updates != 2 {
		t.Errorf("expected 2 updates, got %d", updates)
	}
}

func TestServoUILogLimit(t *testing.T) {
	ui := NewServoUI()
	for i := 0; i < maxLogLines+10; i++ {
		_, _ = io.WriteString(ui, "camServ_inv:1;\n")
	}
	if len(ui.Log()) != maxLogLines {
		t.Errorf("expected %d log lines, got %d", maxLogLines, len(ui.Log()))
	}
}

func TestControllerWrapper(t *testing.T) {
	tests := []struct {
		name     string
		run      func(*controllerWrapper)
		expected string
	}{
		{"SetTarget", func(c *controllerWrapper) { c.SetTarget(-22.5) }, "camServ_tpos(-22500);"},
		{"SetSpeed", func(c *controllerWrapper) { c.SetSpeed(50) }, "camServ_spd(50000);"},
		{"SetInverted", func(c *controllerWrapper) { c.SetInverted(true) }, "camServ_inv(1);"},
		{"SetNotInverted", func(c *controllerWrapper) { c.SetInverted(false) }, "camServ_inv(0);"},
		{"Debug", func(c *controllerWrapper) { c.Debug() }, "camServ_dbg();"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.run(&controllerWrapper{writer: &buf})

			cmd, err := client.ParseInput(buf.String())
			if err != nil {
				t.Fatalf("unexpected error parsing %q: %v", buf.String(), err)
			}
			if cmd.String() != tt.expected {
				t.Errorf("expected=%q, got=%q", tt.expected, cmd.String())
			}
		})
	}
}

func TestTimerElapsed(t *testing.T) {
	tm := newTimer()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tm.Set(start)

	got := tm.elapsed(start.Add(2*time.Minute + 5*time.Second + 340*time.Millisecond))
	if got != "02:05.3" {
		t.Errorf("expected=%q, got=%q", "02:05.3", got)
	}

	select {
	case <-tm.start:
	default:
		t.Error("expected Set to start the timer")
	}
	tm.Stop()
	tm.Stop()
}
