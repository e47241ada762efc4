package capture

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ayusman/glovetrack/internal/calib"
	"gocv.io/x/gocv"
)

// blueGlove matches pure blue: OpenCV hue 120 on a 0-180 scale.
var blueGlove = calib.Thresholds{
	Hue:        calib.Bounds{Lower: 110, Upper: 130},
	Saturation: calib.Bounds{Lower: 100, Upper: 255},
	Brightness: calib.Bounds{Lower: 100, Upper: 255},
}

func TestNewSegmenter(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	tests := []struct {
		name      string
		scale     int
		wantScale int
	}{
		{name: "default scale", scale: DefaultScale, wantScale: 2},
		{name: "full size", scale: 1, wantScale: 1},
		{name: "zero treated as one", scale: 0, wantScale: 1},
		{name: "negative treated as one", scale: -3, wantScale: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSegmenter(blueGlove, tt.scale)
			defer s.Close()

			if s.Scale() != tt.wantScale {
				t.Errorf("Scale() = %d, want %d", s.Scale(), tt.wantScale)
			}
			if s.Thresholds() != blueGlove {
				t.Errorf("Thresholds() = %+v, want %+v", s.Thresholds(), blueGlove)
			}
		})
	}
}

func TestSegmenter_FindsGlove(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	s := NewSegmenter(blueGlove, 2)
	defer s.Close()

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()
	// 200x200 blue square, BGR order.
	gocv.Rectangle(&frame, image.Rect(200, 100, 400, 300), color.RGBA{B: 255, A: 255}, -1)
	// Red distractor.
	gocv.Rectangle(&frame, image.Rect(20, 20, 100, 100), color.RGBA{R: 255, A: 255}, -1)

	mask, err := s.Segment(&frame)
	if err != nil {
		t.Fatalf("Segment() error = %v", err)
	}
	defer mask.Close()

	if mask.Cols() != 320 || mask.Rows() != 240 {
		t.Fatalf("mask size = %dx%d, want 320x240", mask.Cols(), mask.Rows())
	}

	// The square is 100x100 in working space.
	lit := gocv.CountNonZero(mask)
	if lit < 9000 || lit > 11000 {
		t.Errorf("lit pixels = %d, want about 10000", lit)
	}
	if mask.GetUCharAt(20, 20) != 0 {
		t.Error("red distractor should not be in the mask")
	}
	if mask.GetUCharAt(100, 150) == 0 {
		t.Error("centre of the glove should be in the mask")
	}
}

func TestSegmenter_SetThresholds(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	s := NewSegmenter(blueGlove, 2)
	defer s.Close()

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()
	gocv.Rectangle(&frame, image.Rect(200, 100, 400, 300), color.RGBA{B: 255, A: 255}, -1)

	// A green glove range no longer matches the blue square.
	s.SetThresholds(calib.Thresholds{
		Hue:        calib.Bounds{Lower: 50, Upper: 70},
		Saturation: calib.Bounds{Lower: 100, Upper: 255},
		Brightness: calib.Bounds{Lower: 100, Upper: 255},
	})

	mask, err := s.Segment(&frame)
	if err != nil {
		t.Fatalf("Segment() error = %v", err)
	}
	defer mask.Close()

	if n := gocv.CountNonZero(mask); n != 0 {
		t.Errorf("lit pixels = %d, want 0", n)
	}
}

func TestSegmenter_EmptyFrame(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	s := NewSegmenter(blueGlove, 2)
	defer s.Close()

	mask, err := s.Segment(nil)
	defer mask.Close()
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Segment(nil) error = %v, want ErrEmptyInput", err)
	}
}

func TestSegmenter_Close_Multiple(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	s := NewSegmenter(blueGlove, 2)

	// Close multiple times should not panic
	s.Close()
	s.Close()
}
