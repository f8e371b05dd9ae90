package ui

import (
	"fmt"
	"io"
	"time"
)

// controllerWrapper turns UI events into the same commands a person would type
type controllerWrapper struct {
	writer           io.Writer
	lastCommandTimer *timer
}

func (c *controllerWrapper) sent() {
	if c.lastCommandTimer != nil {
		c.lastCommandTimer.Set(time.Now())
	}
}

func (c *controllerWrapper) SetTarget(degrees float64) {
	c.sent()
	fmt.Fprintf(c.writer, "target %.3f\n", degrees)
}

func (c *controllerWrapper) SetSpeed(degreesPerSecond float64) {
	c.sent()
	fmt.Fprintf(c.writer, "speed %.3f\n", degreesPerSecond)
}

func (c *controllerWrapper) SetInverted(inverted bool) {
	c.sent()
	value := "off"
	if inverted {
		value = "on"
	}
	fmt.Fprintf(c.writer, "invert %s\n", value)
}

func (c *controllerWrapper) Debug() {
	fmt.Fprintln(c.writer, "debug")
}
