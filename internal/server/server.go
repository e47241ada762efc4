// Package server provides the HTTP server for the glove tracker.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/glovetrack/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// FrameSource provides the latest annotated camera frame as JPEG.
type FrameSource interface {
	LastFrame() []byte
}

// StatusFunc reports the tracker state for the health endpoint.
type StatusFunc func() (session string, tracking bool)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Frames    FrameSource
	Metrics   *metrics.Recorder
	Status    StatusFunc
}

// Server represents the HTTP server for the glove tracker.
type Server struct {
	config Config
	mux    *http.ServeMux
	hands  *HandHandler
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		hands:  NewHandHandler(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.Handle("/api/hand", s.hands)

	if s.config.Frames != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Frames))
	}

	if s.config.Metrics != nil {
		s.mux.Handle("/metrics", promhttp.HandlerFor(s.config.Metrics.Registry(), promhttp.HandlerOpts{}))
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// Hands returns the websocket handler that broadcasts hand snapshots.
func (s *Server) Hands() *HandHandler {
	return s.hands
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status":  "ok",
		"uptime":  time.Since(s.start).String(),
		"clients": s.hands.Clients(),
	}
	if s.config.Status != nil {
		session, tracking := s.config.Status()
		response["session"] = session
		response["tracking"] = tracking
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
