package client

import (
	"fmt"
	"strconv"

	"github.com/caarlos0/env/v6"
)

// Config has the host-side settings for reaching the servo board
type Config struct {
	// SerialPort is the device path of the board. SerialPortNone runs the simulator instead.
	SerialPort string `env:"CAMSERVO_SERIAL_PORT" envDefault:"None"`
	BaudRate   string `env:"CAMSERVO_BAUD_RATE" envDefault:"115200"`
	// ConfigFile is a YAML file with calibration and motion defaults for the simulator
	ConfigFile string `env:"CAMSERVO_CONFIG_FILE"`
}

// ConfigFromEnv reads the Config from CAMSERVO_* environment variables
func ConfigFromEnv() (Config, error) {
	var cfg Config
	err := env.Parse(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("error parsing environment: %w", err)
	}
	return cfg, nil
}

// Baud returns the parsed baud rate
func (c Config) Baud() (int, error) {
	baud, err := strconv.Atoi(c.BaudRate)
	if err != nil {
		return 0, fmt.Errorf("invalid baud rate %q: %w", c.BaudRate, err)
	}
	if baud <= 0 {
		return 0, fmt.Errorf("invalid baud rate %q", c.BaudRate)
	}
	return baud, nil
}
