package app

import (
	"log"
	"time"

	"github.com/ayusman/glovetrack/internal/vision"
	"gocv.io/x/gocv"
)

// runPipeline is the main loop that processes frames from the camera.
// It manages the state transitions between idle and active modes based on
// whether a hand is in view.
//
// Pipeline logic:
// 1. Start in idle mode (IdleFPS=5)
// 2. Segment the glove and look for the hand contour
// 3. Analyze the contour and publish a snapshot
// 4. When a hand is found, switch to active mode (ActiveFPS=15)
// 5. After IdleTimeout without a hand, switch back to idle mode
func (a *App) runPipeline(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	activeMode := false
	lastHandTime := time.Now()

	ticker := time.NewTicker(time.Second / time.Duration(IdleFPS))
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				a.metrics.RecordReadError()
				continue
			}

			found := a.processFrame(frame)
			frame.Close()

			if found {
				lastHandTime = time.Now()
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					ticker.Reset(time.Second / time.Duration(ActiveFPS))
					log.Println("Switched to active mode")
				}
			} else if activeMode && time.Since(lastHandTime) > a.config.IdleTimeout {
				activeMode = false
				a.camera.SetFPS(IdleFPS)
				ticker.Reset(time.Second / time.Duration(IdleFPS))
				log.Println("Switched to idle mode")
			}
		}
	}
}

// processFrame analyzes one camera frame, draws the overlay on it and
// publishes the result. It reports whether a hand contour was found.
// Only the pipeline goroutine may call it.
func (a *App) processFrame(frame *gocv.Mat) bool {
	start := time.Now()

	mask, err := a.segmenter.Segment(frame)
	if err != nil {
		mask.Close()
		log.Printf("Error segmenting frame: %v", err)
		return false
	}
	contour, found := vision.FindLargestContour(mask, a.config.Detector.SmallestArea)
	mask.Close()

	report := a.analyzer.Update(contour, a.segmenter.Scale())
	state := a.analyzer.State()
	a.metrics.RecordFrame(report, state, time.Since(start))
	a.metrics.SetTracking(a.analyzer.Tracking())

	vision.DrawOverlay(frame, state)
	var jpeg []byte
	if buf, err := gocv.IMEncode(".jpg", *frame); err == nil {
		jpeg = append([]byte(nil), buf.GetBytes()...)
		buf.Close()
	}

	a.mu.Lock()
	a.frame++
	snap := Snapshot{
		Session:   a.session,
		Frame:     a.frame,
		Timestamp: time.Now().UnixMilli(),
		Tracking:  a.analyzer.Tracking(),
		State:     state,
	}
	a.mu.Unlock()

	a.publish(snap, jpeg)
	return found
}
