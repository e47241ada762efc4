package detector

import (
	"errors"
	"image"
	"math"
)

// ErrAmbiguousTilt is returned when the moment signs match no quadrant.
// This only happens for non-finite moments.
var ErrAmbiguousTilt = errors.New("moments match no tilt quadrant")

// round rounds half up, so -2.5 becomes -2.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Centroid returns the center of gravity in original-frame coordinates.
// It returns false when the contour has no area.
func Centroid(m Moments, scale int) (image.Point, bool) {
	if m.M00 == 0 {
		return image.Point{}, false
	}
	return image.Point{
		X: round(m.M10/m.M00) * scale,
		Y: round(m.M01/m.M00) * scale,
	}, true
}

// CalculateTilt returns the angle in degrees of the contour's major axis
// relative to the horizontal, with the positive y-axis pointing down the screen.
// Negative tilts from the half-angle formula are converted to a
// counter-clockwise measure.
//
// See "Simple Image Analysis By Moments", J. Kilian, 2001, table 1.
func CalculateTilt(m11, m20, m02 float64) (int, error) {
	diff := m20 - m02
	if diff == 0 {
		switch {
		case m11 == 0:
			return 0, nil
		case m11 > 0:
			return 45, nil
		case m11 < 0:
			return -45, nil
		}
		return 0, ErrAmbiguousTilt
	}

	theta := 0.5 * math.Atan2(2*m11, diff)
	tilt := round(degrees(theta))

	switch {
	case diff > 0 && m11 == 0:
		return 0, nil
	case diff < 0 && m11 == 0:
		return -90, nil
	case diff > 0 && m11 > 0: // 0 to 45
		return tilt, nil
	case diff > 0 && m11 < 0: // -45 to 0
		return 180 + tilt, nil
	case diff < 0 && m11 > 0: // 45 to 90
		return tilt, nil
	case diff < 0 && m11 < 0: // -90 to -45
		return 180 + tilt, nil
	}
	return 0, ErrAmbiguousTilt
}
