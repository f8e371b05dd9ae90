//go:build tinygo

package device

import (
	"machine"

	"tinygo.org/x/drivers/servo"
)

// ServoConfig has device-level values for setting up the camera servo. The servo
// driver runs the PWM with a 20ms period.
type ServoConfig struct {
	Pin machine.Pin
	PWM servo.PWM
}
