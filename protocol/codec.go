package protocol

import "math"

// FixedPointScale is the number of wire units per degree. Values cross the wire as
// integers with three decimal digits so the firmware never parses floats.
const FixedPointScale = 1000

// Encode converts a value to its fixed-point wire form, rounding toward zero
func Encode(value float64) int32 {
	// Rounding to micro-units first removes binary representation error, so
	// 0.29 encodes as 290 and not 289.
	scaled := math.Round(value*FixedPointScale*FixedPointScale) / FixedPointScale
	return int32(math.Trunc(scaled))
}

// Decode converts a fixed-point wire value back to a float
func Decode(value int32) float64 {
	return float64(value) / FixedPointScale
}
