package vision

import (
	"image"
	"image/color"
	"strconv"

	"github.com/ayusman/glovetrack/internal/detector"
	"gocv.io/x/gocv"
)

// Overlay colours.
var (
	ColorUnknown = color.RGBA{R: 255, A: 255}
	ColorNamed   = color.RGBA{G: 255, A: 255}
	ColorCOGLine = color.RGBA{R: 255, G: 255, A: 255}
)

const (
	tipRadius  = 8
	cogRadius  = 8
	labelShift = 10
)

// DrawOverlay draws the finger tips and COG of the hand state onto img.
// Unnamed tips are circled in red and labelled with their index; named tips
// are circled in green, labelled with their name, and joined to the COG.
// Nothing is drawn when the state has no tips.
func DrawOverlay(img *gocv.Mat, state detector.HandState) {
	if img == nil || img.Empty() || len(state.FingerTips) == 0 {
		return
	}

	for i, tip := range state.FingerTips {
		name := detector.Unknown
		if i < len(state.NamedFingers) {
			name = state.NamedFingers[i]
		}
		label := image.Pt(tip.X, tip.Y-labelShift)

		if name == detector.Unknown {
			gocv.Circle(img, tip, tipRadius, ColorUnknown, 2)
			gocv.PutText(img, strconv.Itoa(i), label, gocv.FontHersheyPlain, 1.2, ColorUnknown, 1)
			continue
		}

		gocv.Line(img, state.COG, tip, ColorCOGLine, 2)
		gocv.Circle(img, tip, tipRadius, ColorNamed, 2)
		gocv.PutText(img, name.String(), label, gocv.FontHersheyPlain, 1.2, ColorNamed, 1)
	}

	gocv.Circle(img, state.COG, cogRadius, ColorNamed, -1)
}
