package capture

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

func TestNewCamera(t *testing.T) {
	tests := []struct {
		name       string
		config     Config
		wantWidth  int
		wantHeight int
	}{
		{
			name:       "default config",
			config:     DefaultConfig(),
			wantWidth:  640,
			wantHeight: 480,
		},
		{
			name:       "custom size",
			config:     Config{DeviceID: 1, Width: 1280, Height: 720},
			wantWidth:  1280,
			wantHeight: 720,
		},
		{
			name:       "zero size falls back to defaults",
			config:     Config{DeviceID: 2},
			wantWidth:  640,
			wantHeight: 480,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera(tt.config)

			if cam == nil {
				t.Fatal("NewCamera returned nil")
			}

			if got := cam.FPS(); got != DefaultFPS {
				t.Errorf("FPS() = %d, want %d (default)", got, DefaultFPS)
			}

			if cam.IsOpen() {
				t.Error("camera should not be running initially")
			}

			impl := cam.(*cameraImpl)
			if impl.config.Width != tt.wantWidth || impl.config.Height != tt.wantHeight {
				t.Errorf("size = %dx%d, want %dx%d", impl.config.Width, impl.config.Height, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Mirror {
		t.Error("default camera should mirror frames")
	}
	if cfg.DeviceID != 0 {
		t.Errorf("DeviceID = %d, want 0", cfg.DeviceID)
	}
}

func TestCamera_SetFPS(t *testing.T) {
	cam := NewCamera(DefaultConfig())

	tests := []struct {
		name    string
		fps     int
		wantFPS int
	}{
		{
			name:    "set to 15",
			fps:     15,
			wantFPS: 15,
		},
		{
			name:    "set to 5",
			fps:     5,
			wantFPS: 5,
		},
		{
			name:    "set to 0 should keep previous",
			fps:     0,
			wantFPS: 5,
		},
		{
			name:    "set to negative should keep previous",
			fps:     -5,
			wantFPS: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam.SetFPS(tt.fps)

			if got := cam.FPS(); got != tt.wantFPS {
				t.Errorf("FPS() = %d, want %d", got, tt.wantFPS)
			}
		})
	}
}

func TestCamera_ReadFrame_NotOpened(t *testing.T) {
	cam := NewCamera(DefaultConfig())

	_, err := cam.ReadFrame()
	if !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("ReadFrame() error = %v, want ErrCameraNotOpen", err)
	}
}

func TestCamera_Close_NotOpened(t *testing.T) {
	cam := NewCamera(DefaultConfig())

	if err := cam.Close(); err != nil {
		t.Errorf("Close() on not opened camera should return nil, got: %v", err)
	}
}

func TestCamera_OpenClose_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	cam := NewCamera(DefaultConfig())

	err := cam.Open()
	if err != nil {
		t.Skipf("skipping test - camera not available: %v", err)
	}

	if !cam.IsOpen() {
		t.Error("IsOpen() should return true after Open()")
	}

	mat, err := cam.ReadFrame()
	if err != nil {
		t.Errorf("ReadFrame() failed: %v", err)
	} else {
		if mat.Empty() {
			t.Error("ReadFrame() returned empty mat")
		} else if mat.Cols() != 640 || mat.Rows() != 480 {
			t.Logf("Frame dimensions: %dx%d (expected 640x480, but camera may not support)", mat.Cols(), mat.Rows())
		}
		mat.Close()
	}

	if err := cam.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}

	if cam.IsOpen() {
		t.Error("IsOpen() should return false after Close()")
	}
}

func TestMirror(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	frame := gocv.NewMatWithSize(10, 20, gocv.MatTypeCV8U)
	defer frame.Close()
	gocv.Rectangle(&frame, image.Rect(0, 0, 5, 10), color.RGBA{R: 255, G: 255, B: 255, A: 255}, -1)

	Mirror(&frame)

	if frame.GetUCharAt(5, 2) != 0 {
		t.Error("left edge should be dark after mirroring")
	}
	if frame.GetUCharAt(5, 17) != 255 {
		t.Error("right edge should be lit after mirroring")
	}
}
