package detector

import (
	"image"
	"math"
)

// NameFingers labels each tip using its angle around the COG, assuming a
// left hand with the thumb on the left. The result has the same length and
// order as tips.
//
// Thumb and index are found from their angle ranges; the remaining tips are
// named by walking the finger cycle outwards from the first named tip. Tips
// that cannot be named consistently stay Unknown.
func NameFingers(cog image.Point, axisAngle int, tips []image.Point, cfg Config) []FingerName {
	names := make([]FingerName, len(tips))
	labelThumbIndex(cog, axisAngle, tips, names, cfg)
	labelUnknowns(names)
	return names
}

// labelThumbIndex scans the tips backwards. The hull is traversed
// counter-clockwise, so the thumb and index of a left hand tend to be at the
// end of the list.
func labelThumbIndex(cog image.Point, axisAngle int, tips []image.Point, names []FingerName, cfg Config) {
	foundThumb := false
	foundIndex := false

	for i := len(tips) - 1; i >= 0; i-- {
		angle := angleToCOG(tips[i], cog, axisAngle)

		if !foundThumb && angle > cfg.MinThumb && angle <= cfg.MaxThumb {
			names[i] = Thumb
			foundThumb = true
		}

		if !foundIndex && angle > cfg.MinIndex && angle <= cfg.MaxIndex {
			names[i] = Index
			foundIndex = true
		}
	}
}

// angleToCOG returns the angle of the tip around the COG in degrees, rotated
// by the hand's axis so that straight up is 90.
func angleToCOG(tip, cog image.Point, axisAngle int) int {
	yOffset := cog.Y - tip.Y // positive up the screen
	xOffset := tip.X - cog.X
	angle := round(degrees(math.Atan2(float64(yOffset), float64(xOffset))))
	return angle + (90 - axisAngle)
}

// labelUnknowns propagates names from the first named tip backwards and then
// forwards through the finger cycle.
func labelUnknowns(names []FingerName) {
	i := 0
	for i < len(names) && names[i] == Unknown {
		i++
	}
	if i == len(names) {
		return
	}

	name := names[i]
	labelPrev(names, i, name)
	labelFwd(names, i, name)
}

func labelPrev(names []FingerName, i int, name FingerName) {
	for i--; i >= 0 && name != Unknown; i-- {
		if names[i] != Unknown {
			name = names[i]
			continue
		}
		name = name.Prev()
		if !usedName(names, name) {
			names[i] = name
		}
	}
}

func labelFwd(names []FingerName, i int, name FingerName) {
	for i++; i < len(names) && name != Unknown; i++ {
		if names[i] != Unknown {
			name = names[i]
			continue
		}
		name = name.Next()
		if !usedName(names, name) {
			names[i] = name
		}
	}
}

func usedName(names []FingerName, name FingerName) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
