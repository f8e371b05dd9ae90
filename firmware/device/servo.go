//go:build tinygo

package device

import (
	"errors"

	"tinygo.org/x/drivers/servo"
)

// Servo is the hardware pulse output for the camera mount
type Servo struct {
	servo servo.Servo
}

// NewServo configures the PWM peripheral for the servo pin
func NewServo(cfg ServoConfig) (*Servo, error) {
	s, err := servo.New(cfg.PWM, cfg.Pin)
	if err != nil {
		return nil, errors.New("error creating servo: " + err.Error())
	}
	return &Servo{servo: s}, nil
}

// SetPulseWidth holds the output at the pulse width until it is changed again
func (s *Servo) SetPulseWidth(micros uint32) error {
	if micros > 0x7fff {
		return errors.New("pulse width out of range")
	}
	s.servo.SetMicroseconds(int16(micros))
	return nil
}
