package controller

import "time"

const (
	// DefaultZeroOffsetMicros is the pulse width of the neutral position of the HITEC camera servo
	DefaultZeroOffsetMicros = 1487.0
	// DefaultMicrosPerDegree is the pulse width change for one degree of the HITEC camera servo
	DefaultMicrosPerDegree = 9.523809
	// DefaultSpeed is the motion speed in degrees per second used until a speed command arrives
	DefaultSpeed = 50.0

	// DefaultControlPeriod runs the position update at 200Hz
	DefaultControlPeriod = 5 * time.Millisecond
	// DefaultTelemetryPeriod reports the position at 10Hz
	DefaultTelemetryPeriod = 100 * time.Millisecond
)

// Calibration maps angles to pulse widths for a specific physical servo
type Calibration struct {
	// ZeroOffsetMicros is the pulse width at 0 degrees
	ZeroOffsetMicros float64 `yaml:"zero_offset_us"`
	// MicrosPerDegree is the scale between degrees and pulse width
	MicrosPerDegree float64 `yaml:"us_per_degree"`
}

// DefaultCalibration returns the calibration of the stock camera mount servo
func DefaultCalibration() Calibration {
	return Calibration{
		ZeroOffsetMicros: DefaultZeroOffsetMicros,
		MicrosPerDegree:  DefaultMicrosPerDegree,
	}
}

// Config has the values used to set up a Controller. Zero values are replaced by defaults.
type Config struct {
	Calibration     Calibration
	Speed           float64
	Inverted        bool
	ControlPeriod   time.Duration
	TelemetryPeriod time.Duration
}

func (c Config) withDefaults() Config {
	if c.Calibration.MicrosPerDegree == 0 {
		c.Calibration.MicrosPerDegree = DefaultMicrosPerDegree
	}
	if c.Calibration.ZeroOffsetMicros == 0 {
		c.Calibration.ZeroOffsetMicros = DefaultZeroOffsetMicros
	}
	if c.Speed == 0 {
		c.Speed = DefaultSpeed
	}
	if c.ControlPeriod == 0 {
		c.ControlPeriod = DefaultControlPeriod
	}
	if c.TelemetryPeriod == 0 {
		c.TelemetryPeriod = DefaultTelemetryPeriod
	}
	return c
}
