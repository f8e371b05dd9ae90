package controller

import "math"

// DegreesToMicroseconds converts an angle to the pulse width that holds the servo there.
// Inversion mirrors the angle around the neutral position.
func (c Calibration) DegreesToMicroseconds(degrees float64, inverted bool) uint32 {
	if inverted {
		degrees = -degrees
	}
	return uint32(math.Trunc(c.MicrosPerDegree*degrees + c.ZeroOffsetMicros))
}

// MicrosecondsToDegrees is the inverse of DegreesToMicroseconds
func (c Calibration) MicrosecondsToDegrees(micros uint32, inverted bool) float64 {
	degrees := (float64(micros) - c.ZeroOffsetMicros) / c.MicrosPerDegree
	if inverted {
		return -degrees
	}
	return degrees
}

// MicrosPerMilli converts a speed in degrees per second to pulse width change per millisecond
func (c Calibration) MicrosPerMilli(degreesPerSecond float64) float64 {
	return degreesPerSecond * 0.001 * c.MicrosPerDegree
}
