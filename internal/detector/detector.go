// Package detector analyzes the silhouette of a gloved hand and names its fingers.
//
// The package is pure Go. Image processing primitives (moments, contour
// simplification, convex hull, convexity defects) are supplied through the
// Geometry interface so the analysis can run against synthetic inputs.
package detector

import "image"

// Contour is an ordered, closed sequence of boundary points in the scaled-down
// working space.
type Contour []image.Point

// Moments holds the raw spatial moments and the second-order central moments
// of a contour.
type Moments struct {
	M00, M10, M01 float64
	Mu11          float64
	Mu20, Mu02    float64
}

// ConvexityDefect is one concavity between a contour and its convex hull.
type ConvexityDefect struct {
	Tip   image.Point // start point of the defect, on the hull
	End   image.Point
	Fold  image.Point // deepest point of the concavity
	Depth float64
}

// Geometry defines the vision primitives the analyzer consumes.
type Geometry interface {
	// Moments computes the image moments of the contour.
	Moments(c Contour) Moments

	// Simplify reduces the number of points in a closed contour.
	Simplify(c Contour, epsilon float64) Contour

	// ConvexHull returns the hull points of the contour in counter-clockwise order.
	ConvexHull(c Contour) Contour

	// ConvexityDefects returns the defects between the contour and its hull,
	// in hull traversal order.
	ConvexityDefects(c Contour, hull Contour) []ConvexityDefect
}

// Config holds the thresholds used by the analysis.
type Config struct {
	// MinFingerDepth is the minimum defect depth (original-frame pixels) for a finger gap.
	MinFingerDepth float64

	// MaxFingerAngle is the exclusive upper bound, in degrees, of the angle
	// between a tip and its neighbouring folds.
	MaxFingerAngle int

	// MaxDefects caps the number of defects processed per frame.
	MaxDefects int

	// Thumb and index angle ranges relative to the COG, as (min, max].
	MinThumb, MaxThumb int
	MinIndex, MaxIndex int

	// SmallestArea is the minimum rotated bounding box area of a hand contour.
	SmallestArea float64

	// ApproxEpsilon is the Douglas-Peucker tolerance for contour simplification.
	ApproxEpsilon float64
}

// DefaultConfig returns a Config with the thresholds tuned for a 640x480
// camera frame analyzed at half scale.
func DefaultConfig() Config {
	return Config{
		MinFingerDepth: 20,
		MaxFingerAngle: 60,
		MaxDefects:     20,
		MinThumb:       120,
		MaxThumb:       200,
		MinIndex:       60,
		MaxIndex:       120,
		SmallestArea:   600,
		ApproxEpsilon:  3,
	}
}
