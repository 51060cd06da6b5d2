package radar

import "math"

// DefaultHeadingStep is the compass advance per rotation tick, in degrees.
const DefaultHeadingStep = 15.0

// RotateHeading advances a compass heading and wraps it into [0, 360).
func RotateHeading(heading, step float64) float64 {
	h := math.Mod(heading+step, 360)
	if math.IsNaN(h) {
		return 0
	}
	if h < 0 {
		h += 360
	}
	// -0 and values rounding up to 360
	if h >= 360 || h == 0 {
		return 0
	}
	return h
}
