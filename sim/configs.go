package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/calvinmclean/camservo/controller"
)

// DeviceConfig is the YAML form of a servo deployment
type DeviceConfig struct {
	Calibration controller.Calibration `yaml:",inline"`
	// Speed is the initial motion speed in degrees per second
	Speed    float64 `yaml:"speed"`
	Inverted bool    `yaml:"inverted"`
}

// ParseConfig parses a YAML deployment config
func ParseConfig(data []byte) (controller.Config, error) {
	var dc DeviceConfig
	err := yaml.UnmarshalStrict(data, &dc)
	if err != nil {
		return controller.Config{}, fmt.Errorf("error parsing config: %w", err)
	}

	if dc.Calibration.MicrosPerDegree < 0 {
		return controller.Config{}, fmt.Errorf("us_per_degree must be positive, have %v", dc.Calibration.MicrosPerDegree)
	}
	if dc.Speed < 0 {
		return controller.Config{}, fmt.Errorf("speed must be positive, have %v", dc.Speed)
	}

	return controller.Config{
		Calibration: dc.Calibration,
		Speed:       dc.Speed,
		Inverted:    dc.Inverted,
	}, nil
}

// LoadConfig reads a YAML deployment config from a file
func LoadConfig(path string) (controller.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return controller.Config{}, fmt.Errorf("error reading config: %w", err)
	}
	return ParseConfig(data)
}
