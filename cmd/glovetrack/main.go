package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/ayusman/glovetrack/internal/app"
	"github.com/ayusman/glovetrack/internal/calib"
	"github.com/ayusman/glovetrack/internal/capture"
	"github.com/ayusman/glovetrack/internal/config"
	"github.com/ayusman/glovetrack/internal/metrics"
	"github.com/ayusman/glovetrack/internal/server"
	"github.com/ayusman/glovetrack/internal/tray"
)

func main() {
	fmt.Println("Glovetrack - Gloved Hand Tracking")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	thresholds, err := calib.Load(cfg.Calibration)
	if err != nil {
		log.Fatalf("Failed to load calibration: %v", err)
	}

	a := app.New(app.Config{
		Camera: capture.Config{
			DeviceID: cfg.CameraID,
			Width:    cfg.Width,
			Height:   cfg.Height,
			Mirror:   cfg.Mirror,
		},
		Thresholds:  thresholds,
		Scale:       cfg.Scale,
		Detector:    cfg.Detector(),
		IdleTimeout: time.Duration(cfg.IdleTimeoutMS) * time.Millisecond,
	}, metrics.NewRecorder())

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Frames:    a,
		Metrics:   a.Metrics(),
		Status: func() (string, bool) {
			return a.Session(), a.IsEnabled()
		},
	})

	t := tray.New()
	a.Subscribe(srv.Hands().Publish)
	a.Subscribe(func(s app.Snapshot) {
		t.SetFingers(s.State.NamedFingers)
	})

	go func() {
		fmt.Printf("Starting server on %s\n", cfg.Addr)
		if err := srv.ListenAndServe(cfg.Addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start tracking: %v", err)
	}

	t.OnToggle(a.SetEnabled)
	t.OnStream(func() {
		openBrowser(streamURL(cfg.Addr))
	})
	t.OnQuit(a.Close)

	t.Run()
}

// streamURL returns the local URL of the MJPEG stream for a listen address.
func streamURL(addr string) string {
	host := addr
	if len(host) > 0 && host[0] == ':' {
		host = "localhost" + host
	}
	return "http://" + host + "/api/stream"
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.glovetrack/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".glovetrack", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
