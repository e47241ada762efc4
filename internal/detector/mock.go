package detector

// MockGeometry is a test implementation of the Geometry interface.
// It returns pre-configured moments and defects for any contour.
type MockGeometry struct {
	moments Moments
	defects []ConvexityDefect

	// Calls counts the ConvexityDefects invocations.
	Calls int
}

// NewMockGeometry creates a new MockGeometry instance.
func NewMockGeometry() *MockGeometry {
	return &MockGeometry{}
}

// SetMoments sets the moments returned by Moments.
func (m *MockGeometry) SetMoments(moments Moments) {
	m.moments = moments
}

// SetDefects sets the defects returned by ConvexityDefects.
func (m *MockGeometry) SetDefects(defects []ConvexityDefect) {
	m.defects = defects
}

// Moments returns the pre-configured moments.
func (m *MockGeometry) Moments(c Contour) Moments {
	return m.moments
}

// Simplify returns the contour unchanged.
func (m *MockGeometry) Simplify(c Contour, epsilon float64) Contour {
	return c
}

// ConvexHull returns the contour unchanged.
func (m *MockGeometry) ConvexHull(c Contour) Contour {
	return c
}

// ConvexityDefects returns a copy of the pre-configured defects.
func (m *MockGeometry) ConvexityDefects(c Contour, hull Contour) []ConvexityDefect {
	m.Calls++
	return append([]ConvexityDefect(nil), m.defects...)
}

// CentroidMoments returns moments of a region with unit mass centred on
// (x, y) in working space and no preferred axis.
func CentroidMoments(x, y float64) Moments {
	return Moments{M00: 1, M10: x, M01: y}
}
