// Package vision implements the detector's vision primitives with GoCV (OpenCV)
// and draws the analysis results onto camera frames.
package vision

import (
	"image"
	"image/color"

	"github.com/ayusman/glovetrack/internal/detector"
	"gocv.io/x/gocv"
)

// OpenCV implements detector.Geometry on top of GoCV.
type OpenCV struct{}

var _ detector.Geometry = (*OpenCV)(nil)

// NewOpenCV creates a new OpenCV geometry backend.
func NewOpenCV() *OpenCV {
	return &OpenCV{}
}

// FindLargestContour returns the contour in a binary mask with the biggest
// rotated bounding box. It reports false when no contour has a box area
// strictly greater than minArea.
func FindLargestContour(mask gocv.Mat, minArea float64) (detector.Contour, bool) {
	if mask.Empty() {
		return nil, false
	}

	contours := gocv.FindContours(mask, gocv.RetrievalList, gocv.ChainApproxSimple)
	defer contours.Close()

	maxIdx := -1
	maxArea := 0.0
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		if c.Size() < 3 {
			continue
		}
		box := gocv.MinAreaRect(c)
		area := float64(box.Width) * float64(box.Height)
		if area > maxArea {
			maxArea = area
			maxIdx = i
		}
	}

	if maxIdx < 0 || maxArea <= minArea {
		return nil, false
	}
	return detector.Contour(contours.At(maxIdx).ToPoints()), true
}

// Moments computes the moments of the region enclosed by the contour.
func (o *OpenCV) Moments(c detector.Contour) detector.Moments {
	if len(c) == 0 {
		return detector.Moments{}
	}

	// Rasterize into a mask just big enough for the contour, then shift the
	// raw first-order moments back. Central moments do not depend on the offset.
	box := contourBounds(c)
	shifted := make([]image.Point, len(c))
	for i, pt := range c {
		shifted[i] = pt.Sub(box.Min)
	}

	mask := gocv.NewMatWithSize(box.Dy()+1, box.Dx()+1, gocv.MatTypeCV8U)
	defer mask.Close()

	pts := gocv.NewPointsVectorFromPoints([][]image.Point{shifted})
	defer pts.Close()
	gocv.FillPoly(&mask, pts, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	m := gocv.Moments(mask, true)
	m00 := m["m00"]
	return detector.Moments{
		M00:  m00,
		M10:  m["m10"] + m00*float64(box.Min.X),
		M01:  m["m01"] + m00*float64(box.Min.Y),
		Mu11: m["mu11"],
		Mu20: m["mu20"],
		Mu02: m["mu02"],
	}
}

// Simplify approximates the closed contour with fewer points.
func (o *OpenCV) Simplify(c detector.Contour, epsilon float64) detector.Contour {
	if len(c) < 3 {
		return c
	}

	pv := gocv.NewPointVectorFromPoints(c)
	defer pv.Close()

	approx := gocv.ApproxPolyDP(pv, epsilon, true)
	defer approx.Close()

	return detector.Contour(approx.ToPoints())
}

// ConvexHull returns the contour's hull points in counter-clockwise order.
func (o *OpenCV) ConvexHull(c detector.Contour) detector.Contour {
	if len(c) < 3 {
		return nil
	}

	idx := hullIndices(c)
	hull := make(detector.Contour, len(idx))
	for i, j := range idx {
		hull[i] = c[j]
	}
	return hull
}

// ConvexityDefects returns the defects between the contour and its hull.
// Depths are converted from OpenCV's fixed-point representation to pixels.
func (o *OpenCV) ConvexityDefects(c detector.Contour, hull detector.Contour) []detector.ConvexityDefect {
	if len(c) < 4 || len(hull) < 3 {
		return nil
	}

	index := contourIndex(c)
	hullMat := gocv.NewMatWithSize(len(hull), 1, gocv.MatTypeCV32S)
	defer hullMat.Close()
	for i, pt := range hull {
		j, ok := index[pt]
		if !ok {
			return nil
		}
		hullMat.SetIntAt(i, 0, int32(j))
	}

	pv := gocv.NewPointVectorFromPoints(c)
	defer pv.Close()

	defects := gocv.NewMat()
	defer defects.Close()
	gocv.ConvexityDefects(pv, hullMat, &defects)
	if defects.Empty() {
		return nil
	}

	result := make([]detector.ConvexityDefect, 0, defects.Rows())
	for i := 0; i < defects.Rows(); i++ {
		result = append(result, detector.ConvexityDefect{
			Tip:   c[defects.GetIntAt(i, 0)],
			End:   c[defects.GetIntAt(i, 1)],
			Fold:  c[defects.GetIntAt(i, 2)],
			Depth: float64(defects.GetIntAt(i, 3)) / 256,
		})
	}
	return result
}

// hullIndices runs OpenCV's convex hull and returns contour indices.
func hullIndices(c detector.Contour) []int {
	pv := gocv.NewPointVectorFromPoints(c)
	defer pv.Close()

	hull := gocv.NewMat()
	defer hull.Close()
	gocv.ConvexHull(pv, &hull, false, false)

	idx := make([]int, 0, hull.Rows())
	for i := 0; i < hull.Rows(); i++ {
		idx = append(idx, int(hull.GetIntAt(i, 0)))
	}
	return idx
}

// contourIndex maps each point to its first position in the contour.
func contourIndex(c detector.Contour) map[image.Point]int {
	index := make(map[image.Point]int, len(c))
	for i, pt := range c {
		if _, ok := index[pt]; !ok {
			index[pt] = i
		}
	}
	return index
}

func contourBounds(c detector.Contour) image.Rectangle {
	r := image.Rectangle{Min: c[0], Max: c[0]}
	for _, pt := range c[1:] {
		r.Min.X = min(r.Min.X, pt.X)
		r.Min.Y = min(r.Min.Y, pt.Y)
		r.Max.X = max(r.Max.X, pt.X)
		r.Max.Y = max(r.Max.Y, pt.Y)
	}
	return r
}
