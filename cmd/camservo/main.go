package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/calvinmclean/camservo/client"
	"github.com/calvinmclean/camservo/ui"
)

func main() {
	cfg, err := client.ConfigFromEnv()
	if err != nil {
		panic(err)
	}

	var debug bool
	flag.StringVar(&cfg.SerialPort, "port", cfg.SerialPort, "Serial port of the servo board. \"None\" runs a simulated board")
	flag.StringVar(&cfg.BaudRate, "baud", cfg.BaudRate, "Serial baud rate")
	flag.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "YAML calibration file for the simulated board")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.Parse()

	logger := newLogger(debug)
	defer func() {
		_ = logger.Sync()
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if os.Getenv("ENABLE_UI") == "true" {
		runUI(ctx, cfg, logger)
		return
	}

	err = runCLI(ctx, cfg, logger)
	if err != nil {
		logger.Fatalw("error running client", "error", err)
	}
}

func newLogger(debug bool) *zap.SugaredLogger {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger.Sugar()
}

func runUI(ctx context.Context, cfg client.Config, logger *zap.SugaredLogger) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	servoUI := ui.NewServoUI()
	servoUI.Run(ctx, cfg, func(ctx context.Context, cfg client.Config) (io.Writer, error) {
		c, err := client.New(cfg, logger)
		if err != nil {
			return nil, err
		}

		r, w := io.Pipe()

		// read from Stdin also
		go func() {
			_, _ = io.Copy(w, os.Stdin)
		}()

		go func() {
			defer c.Close()
			err := c.Run(ctx, r, io.MultiWriter(os.Stdout, servoUI))
			if err != nil {
				logger.Errorw("error running client", "error", err)
			}
		}()

		return w, nil
	})
}

func runCLI(ctx context.Context, cfg client.Config, logger *zap.SugaredLogger) error {
	c, err := client.New(cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	return c.Run(ctx, os.Stdin, os.Stdout)
}
