package controller

import (
	"errors"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/calvinmclean/camservo"
	"github.com/calvinmclean/camservo/protocol"
)

// Controller moves the camera servo toward its target at a limited speed and reports its
// position. It is driven by calling Update from a single cooperative loop.
type Controller struct {
	calibration Calibration
	clock       Clock
	output      PulseOutput
	out         io.Writer

	controlTimer    *Timer
	telemetryTimer  *Timer
	controlPeriod   time.Duration
	telemetryPeriod time.Duration

	startTime time.Time
	// lastUpdate is the time of the previous control tick. The real delta is used for
	// rate limiting since a stalled loop runs ticks later than the period.
	lastUpdate time.Time

	targetDegrees  float64
	targetMicros   uint32
	currentDegrees float64
	currentMicros  uint32

	// currentMicrosF accumulates fractional steps that truncating to currentMicros would lose.
	// currentMicros is always the truncation of this value.
	currentMicrosF float64

	speed               float64
	speedMicrosPerMilli float64
	inverted            bool
}

// New creates a Controller at the neutral position. Protocol output is written to out.
func New(cfg Config, clock Clock, output PulseOutput, out io.Writer) (*Controller, error) {
	if clock == nil {
		return nil, errors.New("clock is required")
	}
	if output == nil {
		return nil, errors.New("pulse output is required")
	}
	if out == nil {
		out = io.Discard
	}

	cfg = cfg.withDefaults()
	neutral := cfg.Calibration.DegreesToMicroseconds(0, false)

	c := &Controller{
		calibration:     cfg.Calibration,
		clock:           clock,
		output:          output,
		out:             out,
		controlTimer:    NewTimer(clock),
		telemetryTimer:  NewTimer(clock),
		controlPeriod:   cfg.ControlPeriod,
		telemetryPeriod: cfg.TelemetryPeriod,
		startTime:       clock.Now(),
		lastUpdate:      clock.Now(),
		targetMicros:    neutral,
		currentMicros:   neutral,
		currentMicrosF:  cfg.Calibration.ZeroOffsetMicros,
		inverted:        cfg.Inverted,
	}
	c.SetSpeed(cfg.Speed)

	return c, nil
}

// Initialize drives the output to the neutral position and restarts both timers
func (c *Controller) Initialize() error {
	err := c.output.SetPulseWidth(c.currentMicros)
	if err != nil {
		return errors.New("error setting initial pulse width: " + err.Error())
	}

	c.startTime = c.clock.Now()
	c.lastUpdate = c.startTime
	c.controlTimer.Reset()
	c.telemetryTimer.Reset()

	return nil
}

// Update runs the control tick and the telemetry tick if their periods have elapsed
func (c *Controller) Update() error {
	if c.controlTimer.HasElapsed(c.controlPeriod) {
		err := c.controlTick()
		if err != nil {
			return err
		}
	}

	if c.telemetryTimer.HasElapsed(c.telemetryPeriod) {
		err := protocol.WriteMessage(c.out, camservo.TelemetryPosition, protocol.Encode(c.currentDegrees))
		if err != nil {
			return errors.New("error writing telemetry: " + err.Error())
		}
	}

	return nil
}

// controlTick moves the current position one step toward the target
func (c *Controller) controlTick() error {
	now := c.clock.Now()
	deltaMillis := float64(now.Sub(c.lastUpdate)) / float64(time.Millisecond)
	c.lastUpdate = now

	if c.currentMicros == c.targetMicros {
		return nil
	}

	// Use the accumulator and not currentMicros: truncation could keep the integer
	// position one below an odd target forever.
	errMicros := float64(c.targetMicros) - c.currentMicrosF

	if math.Abs(errMicros)/deltaMillis < c.speedMicrosPerMilli {
		// Close enough to arrive this tick. Converting the float back could give
		// 31.99999 -> 31, so copy the integer target directly.
		c.arrive()
	} else {
		// Step proportional to the remaining error, scaled by the speed limit
		c.currentMicrosF += c.speedMicrosPerMilli * errMicros
		c.currentMicros = uint32(c.currentMicrosF)

		if c.currentMicros == c.targetMicros {
			c.arrive()
		} else {
			c.currentDegrees = c.calibration.MicrosecondsToDegrees(c.currentMicros, c.inverted)
		}
	}

	err := c.output.SetPulseWidth(c.currentMicros)
	if err != nil {
		return errors.New("error setting pulse width: " + err.Error())
	}
	return nil
}

// arrive snaps every representation of the current position to the target
func (c *Controller) arrive() {
	c.currentMicros = c.targetMicros
	c.currentMicrosF = float64(c.targetMicros)
	c.currentDegrees = c.targetDegrees
}

// SetTarget sets the angle the servo moves toward. The pulse width target uses the
// inversion setting at the time of the call.
func (c *Controller) SetTarget(degrees float64) {
	c.targetDegrees = degrees
	c.targetMicros = c.calibration.DegreesToMicroseconds(degrees, c.inverted)
}

// SetSpeed sets the motion speed in degrees per second
func (c *Controller) SetSpeed(degreesPerSecond float64) {
	c.speed = degreesPerSecond
	c.speedMicrosPerMilli = c.calibration.MicrosPerMilli(degreesPerSecond)
}

// SetInverted sets whether the axis is mounted mirrored
func (c *Controller) SetInverted(inverted bool) {
	c.inverted = inverted
}

// Position returns the current angle in degrees
func (c *Controller) Position() float64 {
	return c.currentDegrees
}

// PulseWidth returns the pulse width currently written to the output
func (c *Controller) PulseWidth() uint32 {
	return c.currentMicros
}

// Target returns the target angle in degrees
func (c *Controller) Target() float64 {
	return c.targetDegrees
}

// TargetPulseWidth returns the pulse width of the target
func (c *Controller) TargetPulseWidth() uint32 {
	return c.targetMicros
}

// Speed returns the motion speed in degrees per second
func (c *Controller) Speed() float64 {
	return c.speed
}

// Inverted returns the inversion setting
func (c *Controller) Inverted() bool {
	return c.inverted
}

// AtTarget is true when the output is holding the target pulse width
func (c *Controller) AtTarget() bool {
	return c.currentMicros == c.targetMicros
}

// Calibration returns the calibration used for conversions
func (c *Controller) Calibration() Calibration {
	return c.calibration
}

// Debug writes a human readable summary of the controller state
func (c *Controller) Debug() error {
	b := make([]byte, 0, 128)
	b = append(b, c.ts()...)
	b = append(b, " pos="...)
	b = strconv.AppendFloat(b, c.currentDegrees, 'f', 3, 64)
	b = append(b, "deg/"...)
	b = strconv.AppendUint(b, uint64(c.currentMicros), 10)
	b = append(b, "us target="...)
	b = strconv.AppendFloat(b, c.targetDegrees, 'f', 3, 64)
	b = append(b, "deg/"...)
	b = strconv.AppendUint(b, uint64(c.targetMicros), 10)
	b = append(b, "us speed="...)
	b = strconv.AppendFloat(b, c.speed, 'f', 3, 64)
	b = append(b, " inv="...)
	b = strconv.AppendBool(b, c.inverted)
	b = append(b, '\n')

	_, err := c.out.Write(b)
	return err
}

// ts returns the uptime timestamp for debug output
func (c *Controller) ts() string {
	return "[" + c.clock.Now().Sub(c.startTime).String() + "]"
}
