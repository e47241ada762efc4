package detector

import (
	"image"
	"log"
)

// HandState is the result of analyzing one frame. All points are in
// original-frame coordinates.
type HandState struct {
	COG image.Point `json:"cog"`

	// AxisAngle is the angle of the hand's main axis in degrees, measured with
	// the positive y-axis pointing up the screen.
	AxisAngle int `json:"axis_angle"`

	FingerTips   []image.Point `json:"finger_tips"`
	NamedFingers []FingerName  `json:"named_fingers"`
}

// Clone returns a deep copy of the state.
func (s HandState) Clone() HandState {
	c := s
	if s.FingerTips != nil {
		c.FingerTips = append([]image.Point(nil), s.FingerTips...)
	}
	if s.NamedFingers != nil {
		c.NamedFingers = append([]FingerName(nil), s.NamedFingers...)
	}
	return c
}

// Report describes how a single Update call went.
type Report struct {
	// Skipped is true when no contour was supplied and the state was left untouched.
	Skipped bool

	// Degenerate is true when the contour had zero area and the COG was kept.
	Degenerate bool

	// Defects is the number of defects supplied by the geometry backend.
	Defects int

	// DroppedDefects is the number of defects ignored because of the cap.
	DroppedDefects int

	// TiltErr is set when the axis angle could not be computed; the previous
	// angle is kept.
	TiltErr error
}

// Analyzer tracks a single hand across frames. It is not safe for concurrent
// use: Update calls must be serialized by the caller.
type Analyzer struct {
	config   Config
	geometry Geometry
	logger   *log.Logger
	state    HandState
	tracking bool
}

// NewAnalyzer creates an Analyzer using the given vision primitives.
func NewAnalyzer(config Config, geometry Geometry) *Analyzer {
	return &Analyzer{
		config:   config,
		geometry: geometry,
		logger:   log.Default(),
	}
}

// SetLogger sets the logger used for diagnostics. A nil logger restores the default.
func (a *Analyzer) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.Default()
	}
	a.logger = l
}

// Update analyzes the hand contour of a new frame. The contour is in working
// space; scale converts it to original-frame coordinates.
//
// An empty contour means no hand was found: the previous state is kept as is.
func (a *Analyzer) Update(contour Contour, scale int) Report {
	if len(contour) == 0 {
		return Report{Skipped: true}
	}

	var report Report

	// Read before the state is replaced; the axis direction is resolved with
	// the previous frame's tips.
	prevTips := a.state.FingerTips
	prevCOG := a.state.COG

	m := a.geometry.Moments(contour)
	if cog, ok := Centroid(m, scale); ok {
		a.state.COG = cog
	} else {
		report.Degenerate = true
	}

	tilt, err := CalculateTilt(m.Mu11, m.Mu20, m.Mu02)
	if err != nil {
		a.logger.Printf("Error in moments for tilt angle: %v (mu11=%v mu20=%v mu02=%v)", err, m.Mu11, m.Mu20, m.Mu02)
		report.TiltErr = err
	} else {
		if pointsDown(prevTips, prevCOG) {
			tilt += 180
		}
		a.state.AxisAngle = 180 - tilt
	}

	approx := a.geometry.Simplify(contour, a.config.ApproxEpsilon)
	hull := a.geometry.ConvexHull(approx)
	raw := a.geometry.ConvexityDefects(approx, hull)
	report.Defects = len(raw)

	defects, dropped := ExtractDefects(raw, scale, a.config.MaxDefects)
	if dropped > 0 {
		a.logger.Printf("Only processing %d of %d defect points", a.config.MaxDefects, len(raw))
		report.DroppedDefects = dropped
	}

	tips := FilterTips(defects, a.config.MinFingerDepth, a.config.MaxFingerAngle)
	a.state.FingerTips = tips
	a.state.NamedFingers = NameFingers(a.state.COG, a.state.AxisAngle, tips, a.config)
	a.tracking = true

	return report
}

// pointsDown reports whether the average height of the tips is below the COG.
// With no tips there is no evidence and the hand is assumed to point up.
func pointsDown(tips []image.Point, cog image.Point) bool {
	if len(tips) == 0 {
		return false
	}
	yTotal := 0
	for _, pt := range tips {
		yTotal += pt.Y
	}
	return yTotal/len(tips) > cog.Y
}

// State returns a copy of the current hand state.
func (a *Analyzer) State() HandState {
	return a.state.Clone()
}

// Tracking returns true once a frame with a hand contour has been analyzed.
func (a *Analyzer) Tracking() bool {
	return a.tracking
}

// Reset discards all state, as if no frame had been analyzed.
func (a *Analyzer) Reset() {
	a.state = HandState{}
	a.tracking = false
}
