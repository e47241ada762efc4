// Package metrics provides Prometheus metrics for the glove tracking pipeline.
package metrics

import (
	"time"

	"github.com/ayusman/glovetrack/internal/detector"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "glovetrack"

// Frame outcomes.
const (
	OutcomeAnalyzed   = "analyzed"
	OutcomeNoHand     = "no_hand"
	OutcomeDegenerate = "degenerate"
	OutcomeReadError  = "read_error"
)

// Recorder records per-frame analysis results.
type Recorder struct {
	registry *prometheus.Registry

	frames         *prometheus.CounterVec
	droppedDefects prometheus.Counter
	tiltErrors     prometheus.Counter
	fingerTips     prometheus.Histogram
	namedFingers   *prometheus.CounterVec
	frameDuration  prometheus.Histogram
	tracking       prometheus.Gauge
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	return NewRecorderWithRegistry(prometheus.NewRegistry())
}

// NewRecorderWithRegistry creates a Recorder registering its collectors on reg.
func NewRecorderWithRegistry(reg *prometheus.Registry) *Recorder {
	auto := promauto.With(reg)
	return &Recorder{
		registry: reg,
		frames: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames processed, by outcome.",
		}, []string{"outcome"}),
		droppedDefects: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "defects_dropped_total",
			Help:      "Convexity defects ignored because of the per-frame cap.",
		}),
		tiltErrors: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tilt_errors_total",
			Help:      "Frames whose axis angle could not be computed.",
		}),
		fingerTips: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "finger_tips",
			Help:      "Finger tips found per analyzed frame.",
			Buckets:   prometheus.LinearBuckets(0, 1, 7),
		}),
		namedFingers: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "named_fingers_total",
			Help:      "Finger tips labelled, by name.",
		}, []string{"finger"}),
		frameDuration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_duration_seconds",
			Help:      "Time spent segmenting and analyzing a frame.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10),
		}),
		tracking: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tracking",
			Help:      "1 while the analyzer is tracking a hand.",
		}),
	}
}

// Registry returns the registry holding the recorder's collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// RecordFrame records the outcome of one Analyzer.Update call.
func (r *Recorder) RecordFrame(report detector.Report, state detector.HandState, elapsed time.Duration) {
	r.frameDuration.Observe(elapsed.Seconds())

	if report.Skipped {
		r.frames.WithLabelValues(OutcomeNoHand).Inc()
		return
	}

	if report.Degenerate {
		r.frames.WithLabelValues(OutcomeDegenerate).Inc()
	} else {
		r.frames.WithLabelValues(OutcomeAnalyzed).Inc()
	}
	if report.DroppedDefects > 0 {
		r.droppedDefects.Add(float64(report.DroppedDefects))
	}
	if report.TiltErr != nil {
		r.tiltErrors.Inc()
	}

	r.fingerTips.Observe(float64(len(state.FingerTips)))
	for _, name := range state.NamedFingers {
		r.namedFingers.WithLabelValues(name.String()).Inc()
	}
}

// RecordReadError counts a frame that could not be read from the camera.
func (r *Recorder) RecordReadError() {
	r.frames.WithLabelValues(OutcomeReadError).Inc()
}

// SetTracking sets the tracking gauge.
func (r *Recorder) SetTracking(tracking bool) {
	if tracking {
		r.tracking.Set(1)
	} else {
		r.tracking.Set(0)
	}
}
