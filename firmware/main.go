//go:build tinygo

package main

import (
	"context"
	"machine"

	"github.com/benbjohnson/clock"

	"github.com/calvinmclean/camservo/commands"
	"github.com/calvinmclean/camservo/controller"
	"github.com/calvinmclean/camservo/firmware/device"
)

func main() {
	servoCfg := device.ServoConfig{
		PWM: machine.PWM3,
		Pin: machine.GP22,
	}

	cfg := controller.Config{
		// HITEC servo on the stock camera mount
		Calibration: controller.Calibration{
			ZeroOffsetMicros: 1487,
			MicrosPerDegree:  9.523809,
		},
		Speed: 50,
	}

	output, err := device.NewServo(servoCfg)
	if err != nil {
		panic(err)
	}

	serial := device.NewSerial()

	c, err := controller.New(cfg, clock.New(), output, serial)
	if err != nil {
		panic(err)
	}

	err = c.Initialize()
	if err != nil {
		panic(err)
	}

	commands.Run(context.Background(), c, serial, serial)
}
