// Package app runs the glove tracking pipeline: capture, segmentation,
// hand analysis and publication of the results.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/glovetrack/internal/calib"
	"github.com/ayusman/glovetrack/internal/capture"
	"github.com/ayusman/glovetrack/internal/detector"
	"github.com/ayusman/glovetrack/internal/metrics"
	"github.com/ayusman/glovetrack/internal/vision"
	"github.com/google/uuid"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no hand is in view.
	IdleFPS = 5
	// ActiveFPS is the frame rate while a hand is tracked.
	ActiveFPS = 15
	// DefaultIdleTimeout is how long without a hand before switching back to idle mode.
	DefaultIdleTimeout = 2 * time.Second
)

// Config holds configuration options for the application.
type Config struct {
	Camera      capture.Config
	Thresholds  calib.Thresholds
	Scale       int
	Detector    detector.Config
	IdleTimeout time.Duration
}

// Snapshot is the hand state published after each analyzed frame.
type Snapshot struct {
	Session   string             `json:"session"`
	Frame     uint64             `json:"frame"`
	Timestamp int64              `json:"timestamp"`
	Tracking  bool               `json:"tracking"`
	State     detector.HandState `json:"state"`
}

// App owns the camera and the analyzer and runs the frame loop.
type App struct {
	config    Config
	camera    capture.Camera
	segmenter *capture.Segmenter
	analyzer  *detector.Analyzer
	metrics   *metrics.Recorder

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}
	doneCh  chan struct{}
	session string
	frame   uint64

	// Latest results, readable from any goroutine.
	lastMu       sync.RWMutex
	lastSnapshot Snapshot
	lastJPEG     []byte
	subscribers  []func(Snapshot)
}

// New creates a new App instance with the given configuration.
func New(config Config, rec *metrics.Recorder) *App {
	if config.Scale < 1 {
		config.Scale = capture.DefaultScale
	}
	if config.IdleTimeout <= 0 {
		config.IdleTimeout = DefaultIdleTimeout
	}
	if rec == nil {
		rec = metrics.NewRecorder()
	}

	return &App{
		config:    config,
		camera:    capture.NewCamera(config.Camera),
		segmenter: capture.NewSegmenter(config.Thresholds, config.Scale),
		analyzer:  detector.NewAnalyzer(config.Detector, vision.NewOpenCV()),
		metrics:   rec,
		enabled:   true,
	}
}

// SetEnabled enables or disables hand tracking.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether hand tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetCamera replaces the camera. It must be called before Start.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// Subscribe registers fn to be called with every published snapshot.
// Callbacks run on the pipeline goroutine and must not block.
func (a *App) Subscribe(fn func(Snapshot)) {
	a.lastMu.Lock()
	defer a.lastMu.Unlock()
	a.subscribers = append(a.subscribers, fn)
}

// Start opens the camera and begins a new tracking session.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(IdleFPS)

	a.session = uuid.New().String()
	a.frame = 0
	a.analyzer.Reset()
	a.metrics.SetTracking(false)

	a.stopCh = make(chan struct{})
	a.doneCh = make(chan struct{})
	go a.runPipeline(a.stopCh, a.doneCh)

	log.Printf("Tracking session %s started", a.session)
	return nil
}

// Stop halts the pipeline and closes the camera. It is safe to call more than once.
func (a *App) Stop() {
	a.mu.Lock()
	stopCh, doneCh := a.stopCh, a.doneCh
	a.stopCh, a.doneCh = nil, nil
	a.mu.Unlock()

	if stopCh == nil {
		return
	}

	close(stopCh)
	<-doneCh

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	a.metrics.SetTracking(false)

	log.Println("Tracking pipeline stopped")
}

// Close stops the pipeline and releases the segmenter.
func (a *App) Close() {
	a.Stop()
	a.segmenter.Close()
}

// Running reports whether the pipeline goroutine is active.
func (a *App) Running() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.stopCh != nil
}

// Session returns the id of the current or last tracking session.
func (a *App) Session() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Metrics returns the metrics recorder.
func (a *App) Metrics() *metrics.Recorder {
	return a.metrics
}

// LastSnapshot returns the most recently published snapshot.
func (a *App) LastSnapshot() Snapshot {
	a.lastMu.RLock()
	defer a.lastMu.RUnlock()
	s := a.lastSnapshot
	s.State = s.State.Clone()
	return s
}

// LastFrame returns the most recent annotated frame as JPEG, or nil.
func (a *App) LastFrame() []byte {
	a.lastMu.RLock()
	defer a.lastMu.RUnlock()
	return a.lastJPEG
}

func (a *App) publish(s Snapshot, jpeg []byte) {
	a.lastMu.Lock()
	a.lastSnapshot = s
	if jpeg != nil {
		a.lastJPEG = jpeg
	}
	subs := append([]func(Snapshot){}, a.subscribers...)
	a.lastMu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}
