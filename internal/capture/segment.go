package capture

import (
	"errors"
	"image"
	"sync"

	"github.com/ayusman/glovetrack/internal/calib"
	"gocv.io/x/gocv"
)

// ErrEmptyInput is returned when Segment is given no image.
var ErrEmptyInput = errors.New("empty frame")

// Segmentation constants
const (
	// DefaultScale is the factor by which frames are shrunk before analysis.
	DefaultScale = 2
	// OpenKernelSize is the kernel size for the morphological open (3x3).
	OpenKernelSize = 3
)

// Segmenter separates the glove from the background by colour.
type Segmenter struct {
	thresholds calib.Thresholds
	scale      int
	kernel     gocv.Mat
	mu         sync.Mutex
}

// NewSegmenter creates a Segmenter for the given glove colour. Frames are
// shrunk by scale before thresholding; values below 1 are treated as 1.
func NewSegmenter(thresholds calib.Thresholds, scale int) *Segmenter {
	if scale < 1 {
		scale = 1
	}
	return &Segmenter{
		thresholds: thresholds,
		scale:      scale,
		kernel:     gocv.GetStructuringElement(gocv.MorphRect, image.Pt(OpenKernelSize, OpenKernelSize)),
	}
}

// Segment returns a binary mask of the glove in working space (the frame
// shrunk by the scale factor). The caller is responsible for closing the mask.
//
// Algorithm:
// 1. Resize the frame by 1/scale
// 2. Convert BGR to HSV
// 3. Keep pixels inside the calibrated HSV ranges
// 4. Morphological open to remove specks while keeping the glove's size
func (s *Segmenter) Segment(frame *gocv.Mat) (gocv.Mat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if frame == nil || frame.Empty() {
		return gocv.NewMat(), ErrEmptyInput
	}

	small := gocv.NewMat()
	defer small.Close()
	size := image.Pt(frame.Cols()/s.scale, frame.Rows()/s.scale)
	gocv.Resize(*frame, &small, size, 0, 0, gocv.InterpolationLinear)

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(small, &hsv, gocv.ColorBGRToHSV)

	lower, upper := s.thresholds.Lower(), s.thresholds.Upper()
	mask := gocv.NewMat()
	gocv.InRangeWithScalar(hsv,
		gocv.NewScalar(float64(lower[0]), float64(lower[1]), float64(lower[2]), 0),
		gocv.NewScalar(float64(upper[0]), float64(upper[1]), float64(upper[2]), 0),
		&mask)

	gocv.MorphologyEx(mask, &mask, gocv.MorphOpen, s.kernel)

	return mask, nil
}

// Scale returns the factor between original-frame and working-space coordinates.
func (s *Segmenter) Scale() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scale
}

// Thresholds returns the current glove colour ranges.
func (s *Segmenter) Thresholds() calib.Thresholds {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.thresholds
}

// SetThresholds replaces the glove colour ranges.
func (s *Segmenter) SetThresholds(thresholds calib.Thresholds) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thresholds = thresholds
}

// Close releases resources used by the segmenter.
func (s *Segmenter) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.kernel.Empty() {
		s.kernel.Close()
		s.kernel = gocv.NewMat()
	}
}
