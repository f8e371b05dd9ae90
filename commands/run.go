package commands

import (
	"context"
	"errors"
	"io"

	"github.com/calvinmclean/camservo/protocol"
)

// ByteSource is serial input that can be polled without blocking
type ByteSource interface {
	// Buffered returns the number of bytes ready to read
	Buffered() int
	ReadByte() (byte, error)
}

// Loop is one cooperative control loop: each Step handles at most one inbound
// command and then updates the controller.
type Loop struct {
	handler *Handler
	c       Controller
	src     ByteSource
	lines   protocol.LineBuffer
}

// NewLoop creates a Loop reading commands from src and writing replies to out
func NewLoop(c Controller, src ByteSource, out io.Writer) *Loop {
	return &Loop{
		handler: NewHandler(c, out),
		c:       c,
		src:     src,
	}
}

// Step runs a single loop iteration
func (l *Loop) Step() error {
	var handleErr error
	for l.src.Buffered() > 0 {
		b, err := l.src.ReadByte()
		if err != nil {
			break
		}

		line, ok := l.lines.Feed(b)
		if !ok {
			continue
		}

		// Lines that fail to tokenize are dropped like unknown commands
		cmd, err := protocol.ParseCommand(line)
		if err == nil {
			handleErr = l.handler.Handle(cmd)
		}
		break
	}

	updateErr := l.c.Update()
	if handleErr != nil {
		return errors.New("error handling command: " + handleErr.Error())
	}
	return updateErr
}

// Run steps the loop until ctx is done. Errors are printed and the loop keeps going.
func Run(ctx context.Context, c Controller, src ByteSource, out io.Writer) {
	l := NewLoop(c, src, out)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		err := l.Step()
		if err != nil {
			println("error:", err.Error())
		}
	}
}
