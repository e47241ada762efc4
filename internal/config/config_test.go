package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ayusman/glovetrack/internal/config"
	"github.com/ayusman/glovetrack/internal/detector"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"GLOVETRACK_CONFIG",
	"GLOVETRACK_ADDR",
	"GLOVETRACK_CAMERA_ID",
	"GLOVETRACK_MIRROR",
	"GLOVETRACK_SCALE",
	"GLOVETRACK_CALIBRATION",
	"GLOVETRACK_MIN_FINGER_DEPTH",
	"GLOVETRACK_MAX_DEFECTS",
	"GLOVETRACK_IDLE_TIMEOUT_MS",
}

func clearConfigEnvVars() {
	for _, k := range configEnvVars {
		_ = os.Unsetenv(k)
	}
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load()

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.CameraID, convey.ShouldEqual, 0)
				convey.So(cfg.Width, convey.ShouldEqual, 640)
				convey.So(cfg.Height, convey.ShouldEqual, 480)
				convey.So(cfg.Mirror, convey.ShouldBeTrue)
				convey.So(cfg.Scale, convey.ShouldEqual, 2)
				convey.So(cfg.Calibration, convey.ShouldEqual, "hsv.txt")
				convey.So(cfg.MinArea, convey.ShouldEqual, 600)
				convey.So(cfg.MinFingerDepth, convey.ShouldEqual, 20)
				convey.So(cfg.MaxFingerAngle, convey.ShouldEqual, 60)
				convey.So(cfg.MaxDefects, convey.ShouldEqual, 20)
				convey.So(cfg.IdleTimeoutMS, convey.ShouldEqual, 2000)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("GLOVETRACK_ADDR", ":9090")
			_ = os.Setenv("GLOVETRACK_CAMERA_ID", "1")
			_ = os.Setenv("GLOVETRACK_MIRROR", "false")
			_ = os.Setenv("GLOVETRACK_MIN_FINGER_DEPTH", "12.5")
			_ = os.Setenv("GLOVETRACK_IDLE_TIMEOUT_MS", "500")

			cfg, err := config.Load()

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.CameraID, convey.ShouldEqual, 1)
				convey.So(cfg.Mirror, convey.ShouldBeFalse)
				convey.So(cfg.MinFingerDepth, convey.ShouldEqual, 12.5)
				convey.So(cfg.IdleTimeoutMS, convey.ShouldEqual, 500)
				convey.So(cfg.Scale, convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			path := filepath.Join(t.TempDir(), "glovetrack.yaml")
			yamlContent := `
addr: "127.0.0.1:7000"
width: 1280
height: 720
scale: 4
calibration: /etc/glovetrack/blue.txt
max_defects: 30
`
			_ = os.WriteFile(path, []byte(yamlContent), 0644)
			_ = os.Setenv("GLOVETRACK_CONFIG", path)

			cfg, err := config.Load()

			convey.Convey("Then it should load from the file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, "127.0.0.1:7000")
				convey.So(cfg.Width, convey.ShouldEqual, 1280)
				convey.So(cfg.Height, convey.ShouldEqual, 720)
				convey.So(cfg.Scale, convey.ShouldEqual, 4)
				convey.So(cfg.Calibration, convey.ShouldEqual, "/etc/glovetrack/blue.txt")
				convey.So(cfg.MaxDefects, convey.ShouldEqual, 30)
				convey.So(cfg.MaxFingerAngle, convey.ShouldEqual, 60)
			})

			convey.Convey("And env vars take precedence over the file", func() {
				_ = os.Setenv("GLOVETRACK_SCALE", "1")

				cfg, err := config.Load()

				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Scale, convey.ShouldEqual, 1)
				convey.So(cfg.Width, convey.ShouldEqual, 1280)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("GLOVETRACK_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load()

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a setting is invalid", func() {
			_ = os.Setenv("GLOVETRACK_SCALE", "0")

			_, err := config.Load()

			convey.Convey("Then it should return ErrInvalidConfig", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func TestValidate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New()

		convey.Convey("It should be valid", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("An empty address is rejected", func() {
			cfg.Addr = ""
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("A zero defect cap is rejected", func() {
			cfg.MaxDefects = 0
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("An empty calibration path is rejected", func() {
			cfg.Calibration = ""
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}

func TestDetectorConfig(t *testing.T) {
	convey.Convey("Given a config with custom thresholds", t, func() {
		cfg := config.New()
		cfg.MinArea = 900
		cfg.MinFingerDepth = 15
		cfg.MaxFingerAngle = 45
		cfg.MaxDefects = 10

		d := cfg.Detector()

		convey.Convey("The detector config carries them over", func() {
			convey.So(d.SmallestArea, convey.ShouldEqual, 900)
			convey.So(d.MinFingerDepth, convey.ShouldEqual, 15)
			convey.So(d.MaxFingerAngle, convey.ShouldEqual, 45)
			convey.So(d.MaxDefects, convey.ShouldEqual, 10)
		})

		convey.Convey("And keeps the finger angle ranges", func() {
			def := detector.DefaultConfig()
			convey.So(d.MinThumb, convey.ShouldEqual, def.MinThumb)
			convey.So(d.MaxIndex, convey.ShouldEqual, def.MaxIndex)
			convey.So(d.ApproxEpsilon, convey.ShouldEqual, def.ApproxEpsilon)
		})
	})
}
