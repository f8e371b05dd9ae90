// Package sim runs the servo firmware loop in-process so the host tool can be used
// without a board attached.
package sim

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/calvinmclean/camservo/commands"
	"github.com/calvinmclean/camservo/controller"
)

// loopInterval keeps the simulated loop from spinning a whole CPU core while still
// polling faster than the control tick
const loopInterval = time.Millisecond

// Device is a simulated servo board. Commands written to it are handled by the same
// loop the firmware runs, and its replies and telemetry are read back with Read.
type Device struct {
	controller *controller.Controller
	output     *recordingOutput

	in  *buffer
	out *buffer

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// recordingOutput stands in for the PWM channel and remembers the last pulse width
type recordingOutput struct {
	mtx    sync.Mutex
	micros uint32
	writes int
	logger *zap.SugaredLogger
}

func (o *recordingOutput) SetPulseWidth(micros uint32) error {
	o.mtx.Lock()
	o.micros = micros
	o.writes++
	o.mtx.Unlock()

	o.logger.Debugw("pulse width", "us", micros)
	return nil
}

// New starts a simulated device running on the wall clock
func New(cfg controller.Config, logger *zap.SugaredLogger) (*Device, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	d := &Device{
		output: &recordingOutput{logger: logger},
		in:     newBuffer(),
		out:    newBuffer(),
		done:   make(chan struct{}),
	}

	clk := clock.New()
	c, err := controller.New(cfg, clk, d.output, d.out)
	if err != nil {
		return nil, err
	}
	err = c.Initialize()
	if err != nil {
		return nil, err
	}
	d.controller = c

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel

	loop := commands.NewLoop(c, d.in, d.out)
	go func() {
		defer close(d.done)
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			err := loop.Step()
			if err != nil {
				logger.Errorw("error running loop", "error", err)
			}
			clk.Sleep(loopInterval)
		}
	}()

	return d, nil
}

// Write sends bytes to the simulated serial input
func (d *Device) Write(p []byte) (int, error) {
	return d.in.Write(p)
}

// Read returns bytes written by the simulated firmware
func (d *Device) Read(p []byte) (int, error) {
	return d.out.Read(p)
}

// Close stops the loop and ends pending reads
func (d *Device) Close() error {
	d.once.Do(func() {
		d.cancel()
		<-d.done
		_ = d.in.Close()
		_ = d.out.Close()
	})
	return nil
}

// PulseWidth returns the last pulse width written to the simulated output
func (d *Device) PulseWidth() uint32 {
	d.output.mtx.Lock()
	defer d.output.mtx.Unlock()
	return d.output.micros
}

// Calibration returns the calibration the simulated firmware uses
func (d *Device) Calibration() controller.Calibration {
	return d.controller.Calibration()
}
