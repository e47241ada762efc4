package detector

import (
	"image"
	"math"
)

// ExtractDefects copies at most maxDefects defects into a new slice, scaling
// their points and depth from working space into original-frame space.
// It returns the number of defects dropped by the cap.
func ExtractDefects(raw []ConvexityDefect, scale, maxDefects int) ([]ConvexityDefect, int) {
	n := len(raw)
	dropped := 0
	if maxDefects >= 0 && n > maxDefects {
		dropped = n - maxDefects
		n = maxDefects
	}

	defects := make([]ConvexityDefect, n)
	for i := 0; i < n; i++ {
		d := raw[i]
		defects[i] = ConvexityDefect{
			Tip:   d.Tip.Mul(scale),
			End:   d.End.Mul(scale),
			Fold:  d.Fold.Mul(scale),
			Depth: d.Depth * float64(scale),
		}
	}
	return defects, dropped
}

// FilterTips keeps the tips of defects that are deep enough and whose
// neighbouring folds form a narrow enough angle. Defects are treated as a
// circular list; the result preserves their order.
func FilterTips(defects []ConvexityDefect, minDepth float64, maxAngle int) []image.Point {
	n := len(defects)
	tips := make([]image.Point, 0, n)

	for i := 0; i < n; i++ {
		if defects[i].Depth < minDepth {
			continue
		}

		prev := (i - 1 + n) % n
		next := (i + 1) % n
		if angleBetween(defects[i].Tip, defects[next].Fold, defects[prev].Fold) >= maxAngle {
			continue
		}

		tips = append(tips, defects[i].Tip)
	}
	return tips
}

// angleBetween returns the unsigned angle, in whole degrees, between the
// directions from tip to each of the two folds.
func angleBetween(tip, next, prev image.Point) int {
	a := math.Atan2(float64(next.X-tip.X), float64(next.Y-tip.Y))
	b := math.Atan2(float64(prev.X-tip.X), float64(prev.Y-tip.Y))
	angle := round(degrees(a - b))
	if angle < 0 {
		return -angle
	}
	return angle
}
