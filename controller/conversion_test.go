package controller

import (
	"math"
	"testing"
)

func TestDegreesToMicroseconds(t *testing.T) {
	cal := DefaultCalibration()

	tests := []struct {
		name     string
		degrees  float64
		inverted bool
		expected uint32
	}{
		{"Neutral", 0, false, 1487},
		{"NeutralInverted", 0, true, 1487},
		{"Positive", 45, false, 1915},
		{"PositiveInverted", 45, true, 1058},
		{"Negative", -45, false, 1058},
		{"NegativeInverted", -45, true, 1915},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cal.DegreesToMicroseconds(tt.degrees, tt.inverted)
			if got != tt.expected {
				t.Errorf("expected=%d, got=%d", tt.expected, got)
			}
		})
	}
}

func TestConversionRoundTrip(t *testing.T) {
	calibrations := map[string]Calibration{
		"Default": DefaultCalibration(),
		"Custom":  {ZeroOffsetMicros: 1500, MicrosPerDegree: 11.1},
	}

	for name, cal := range calibrations {
		step := 1 / cal.MicrosPerDegree
		for _, inverted := range []bool{false, true} {
			for a := -90.0; a <= 90.0; a += 0.125 {
				got := cal.MicrosecondsToDegrees(cal.DegreesToMicroseconds(a, inverted), inverted)
				if math.Abs(got-a) > step {
					t.Errorf("%s inverted=%v: %v round trip to %v", name, inverted, a, got)
				}
			}
		}
	}
}

func TestInversionSignFlip(t *testing.T) {
	cal := DefaultCalibration()
	for a := -90.0; a <= 90.0; a += 0.5 {
		if cal.DegreesToMicroseconds(a, true) != cal.DegreesToMicroseconds(-a, false) {
			t.Errorf("inverted %v does not match %v", a, -a)
		}
	}
}

func TestMicrosPerMilli(t *testing.T) {
	cal := DefaultCalibration()
	got := cal.MicrosPerMilli(50)
	if math.Abs(got-0.47619045) > 1e-9 {
		t.Errorf("unexpected rate: %v", got)
	}
}
