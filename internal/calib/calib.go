// Package calib reads the HSV colour ranges of the user's glove.
//
// The calibration file has three lines, one per channel, in the order hue,
// saturation, brightness. Each line is a label followed by the lower and
// upper bound, separated by whitespace:
//
//	hue 90 130
//	sat 60 255
//	bri 40 255
package calib

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Calibration errors.
var (
	ErrMissingLine = errors.New("missing calibration line")
	ErrMalformed   = errors.New("malformed calibration line")
	ErrRange       = errors.New("lower bound above upper bound")
)

// ConfigurationError reports a calibration file that could not be read.
type ConfigurationError struct {
	Path string
	Line int // 1-based; 0 when the file itself could not be opened
	Err  error
}

func (e *ConfigurationError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("could not read HSV ranges from %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("could not read HSV ranges from %s line %d: %v", e.Path, e.Line, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Bounds is an inclusive range for one channel.
type Bounds struct {
	Lower int
	Upper int
}

// Thresholds holds the HSV ranges of the glove colour.
type Thresholds struct {
	Hue        Bounds
	Saturation Bounds
	Brightness Bounds
}

// Lower returns the lower bounds as (hue, saturation, brightness).
func (t Thresholds) Lower() [3]int {
	return [3]int{t.Hue.Lower, t.Saturation.Lower, t.Brightness.Lower}
}

// Upper returns the upper bounds as (hue, saturation, brightness).
func (t Thresholds) Upper() [3]int {
	return [3]int{t.Hue.Upper, t.Saturation.Upper, t.Brightness.Upper}
}

// Load reads the calibration file at path.
func Load(path string) (Thresholds, error) {
	f, err := os.Open(path)
	if err != nil {
		return Thresholds{}, &ConfigurationError{Path: path, Err: err}
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		var cerr *ConfigurationError
		if errors.As(err, &cerr) {
			cerr.Path = path
		}
		return Thresholds{}, err
	}
	return t, nil
}

// Parse reads the three calibration lines from r. Anything after the third
// line is ignored.
func Parse(r io.Reader) (Thresholds, error) {
	var t Thresholds
	channels := []*Bounds{&t.Hue, &t.Saturation, &t.Brightness}

	scanner := bufio.NewScanner(r)
	for i, b := range channels {
		line := i + 1
		if !scanner.Scan() {
			err := scanner.Err()
			if err == nil {
				err = ErrMissingLine
			}
			return Thresholds{}, &ConfigurationError{Line: line, Err: err}
		}

		bounds, err := parseLine(scanner.Text())
		if err != nil {
			return Thresholds{}, &ConfigurationError{Line: line, Err: err}
		}
		*b = bounds
	}

	return t, nil
}

func parseLine(text string) (Bounds, error) {
	toks := strings.Fields(text)
	if len(toks) < 3 {
		return Bounds{}, fmt.Errorf("%w: want label and two bounds, got %q", ErrMalformed, text)
	}

	lower, err := strconv.Atoi(toks[1])
	if err != nil {
		return Bounds{}, fmt.Errorf("%w: lower bound: %v", ErrMalformed, err)
	}
	upper, err := strconv.Atoi(toks[2])
	if err != nil {
		return Bounds{}, fmt.Errorf("%w: upper bound: %v", ErrMalformed, err)
	}
	if lower > upper {
		return Bounds{}, fmt.Errorf("%w: %d > %d", ErrRange, lower, upper)
	}

	return Bounds{Lower: lower, Upper: upper}, nil
}
