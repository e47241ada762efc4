// Package config defines the application configuration and how it is loaded.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ayusman/glovetrack/internal/detector"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables read by Load.
const (
	EnvPrefix = "GLOVETRACK_"
	EnvFile   = "GLOVETRACK_CONFIG"
)

// Sentinel errors for this package.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// Config contains process configuration.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Camera settings.
	CameraID int  `koanf:"camera_id"`
	Width    int  `koanf:"width"`
	Height   int  `koanf:"height"`
	Mirror   bool `koanf:"mirror"`

	// Scale is the factor by which frames are shrunk before analysis.
	Scale int `koanf:"scale"`

	// Calibration is the path of the three-line HSV calibration file.
	Calibration string `koanf:"calibration"`

	// Analysis thresholds.
	MinArea        float64 `koanf:"min_area"`
	MinFingerDepth float64 `koanf:"min_finger_depth"`
	MaxFingerAngle int     `koanf:"max_finger_angle"`
	MaxDefects     int     `koanf:"max_defects"`

	// IdleTimeoutMS is how long without a hand before the loop drops to idle FPS.
	IdleTimeoutMS int `koanf:"idle_timeout_ms"`
}

// New returns a Config with defaults.
func New() *Config {
	d := detector.DefaultConfig()
	return &Config{
		Addr:           ":8080",
		CameraID:       0,
		Width:          640,
		Height:         480,
		Mirror:         true,
		Scale:          2,
		Calibration:    "hsv.txt",
		MinArea:        d.SmallestArea,
		MinFingerDepth: d.MinFingerDepth,
		MaxFingerAngle: d.MaxFingerAngle,
		MaxDefects:     d.MaxDefects,
		IdleTimeoutMS:  2000,
	}
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if GLOVETRACK_CONFIG is set
//  3. env (prefix GLOVETRACK_)
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(EnvFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	// GLOVETRACK_CAMERA_ID -> camera_id. Underscores are kept to match the
	// flat koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that would break the pipeline.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.Scale < 1:
		return fmt.Errorf("%w: scale must be at least 1, got %d", ErrInvalidConfig, c.Scale)
	case c.MaxDefects < 1:
		return fmt.Errorf("%w: max_defects must be at least 1, got %d", ErrInvalidConfig, c.MaxDefects)
	case c.Calibration == "":
		return fmt.Errorf("%w: calibration must not be empty", ErrInvalidConfig)
	}
	return nil
}

// Detector returns the analysis thresholds, starting from the detector defaults.
func (c *Config) Detector() detector.Config {
	d := detector.DefaultConfig()
	d.SmallestArea = c.MinArea
	d.MinFingerDepth = c.MinFingerDepth
	d.MaxFingerAngle = c.MaxFingerAngle
	d.MaxDefects = c.MaxDefects
	return d
}
