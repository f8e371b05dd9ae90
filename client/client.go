package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/calvinmclean/camservo"
	"github.com/calvinmclean/camservo/controller"
	"github.com/calvinmclean/camservo/protocol"
	"github.com/calvinmclean/camservo/sim"
)

// Client sends commands to the camera servo board and relays what it reports
type Client struct {
	port   io.ReadWriteCloser
	logger *zap.SugaredLogger

	writeMtx sync.Mutex
}

// New connects to the board on the configured serial port, or starts a simulated
// board when the port is SerialPortNone
func New(cfg Config, logger *zap.SugaredLogger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	if cfg.SerialPort == "" || cfg.SerialPort == SerialPortNone {
		deviceCfg := controller.Config{}
		if cfg.ConfigFile != "" {
			var err error
			deviceCfg, err = sim.LoadConfig(cfg.ConfigFile)
			if err != nil {
				return nil, err
			}
		}

		device, err := sim.New(deviceCfg, logger.Named("sim"))
		if err != nil {
			return nil, fmt.Errorf("error starting simulator: %w", err)
		}
		logger.Infow("using simulated servo", "calibration", device.Calibration())
		return NewWithPort(device, logger), nil
	}

	baud, err := cfg.Baud()
	if err != nil {
		return nil, err
	}

	port, err := openSerial(cfg.SerialPort, baud)
	if err != nil {
		return nil, err
	}
	logger.Infow("connected to servo", "port", cfg.SerialPort, "baud", baud)

	return NewWithPort(port, logger), nil
}

// NewWithPort creates a Client using an already open connection
func NewWithPort(port io.ReadWriteCloser, logger *zap.SugaredLogger) *Client {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Client{port: port, logger: logger}
}

// Close closes the connection
func (c *Client) Close() error {
	return c.port.Close()
}

// Send writes a command to the board
func (c *Client) Send(cmd protocol.Command) error {
	c.writeMtx.Lock()
	defer c.writeMtx.Unlock()

	c.logger.Debugw("sending command", "command", cmd.String())

	_, err := io.WriteString(c.port, cmd.String()+"\n")
	if err != nil {
		return fmt.Errorf("error sending %s: %w", cmd.Name, err)
	}
	return nil
}

// SetTarget moves the servo to an angle in degrees
func (c *Client) SetTarget(degrees float64) error {
	return c.Send(protocol.NewCommand(camservo.CommandTargetPosition, protocol.Encode(degrees)))
}

// SetSpeed sets the motion speed in degrees per second
func (c *Client) SetSpeed(degreesPerSecond float64) error {
	return c.Send(protocol.NewCommand(camservo.CommandSpeed, protocol.Encode(degreesPerSecond)))
}

// SetInverted sets the axis inversion
func (c *Client) SetInverted(inverted bool) error {
	inv := camservo.InversionNormal
	if inverted {
		inv = camservo.InversionInverted
	}
	return c.Send(protocol.NewCommand(camservo.CommandInvert, int32(inv)))
}

// Run sends each line read from in to the board and copies everything the board
// writes to out. It returns when in is exhausted, the board connection fails or ctx
// is done.
func (c *Client) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make(chan error, 2)
	go func() {
		errs <- c.readDevice(out)
	}()
	go func() {
		errs <- c.readInput(ctx, in)
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errs:
		return err
	}
}

func (c *Client) readInput(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}

		cmd, err := ParseInput(scanner.Text())
		if errors.Is(err, errEmptyInput) {
			continue
		}
		if err != nil {
			c.logger.Warnw("ignoring input", "error", err)
			continue
		}

		err = c.Send(cmd)
		if err != nil {
			return err
		}
	}

	err := scanner.Err()
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	return nil
}

func (c *Client) readDevice(out io.Writer) error {
	scanner := bufio.NewScanner(c.port)
	for scanner.Scan() {
		line := scanner.Text()

		msg, err := protocol.ParseMessage(line)
		if err == nil && msg.Name != camservo.TelemetryPosition {
			c.logger.Debugw("acknowledged", "command", msg.Name, "value", msg.Value)
		}

		_, err = io.WriteString(out, line+"\n")
		if err != nil {
			return fmt.Errorf("error writing output: %w", err)
		}
	}

	err := scanner.Err()
	if err != nil {
		return fmt.Errorf("error reading from servo: %w", err)
	}
	return io.ErrUnexpectedEOF
}
