// Package web serves the dashboard, the JSON API and Prometheus metrics.
package web

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"netpulse/internal/models"
	"netpulse/internal/monitor"
)

// LiveSource exposes the in-memory state of the probe engine.
type LiveSource interface {
	Snapshot() []monitor.TargetState
}

// Server handles web requests.
type Server struct {
	store       models.Store
	live        LiveSource
	log         *zap.Logger
	staticFiles fs.FS
	srv         *http.Server
}

// New creates a web server listening on port.
func New(store models.Store, live LiveSource, log *zap.Logger, port int, staticFS fs.FS) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		store:       store,
		live:        live,
		log:         log,
		staticFiles: staticFS,
	}
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// API endpoints
	mux.HandleFunc("/api/live", s.handleLive)
	mux.HandleFunc("/api/recent", s.handleRecent)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/chart.png", s.handleChart)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", promhttp.Handler())

	// Static files - serve embedded static/ directory as webroot
	staticFS, _ := fs.Sub(s.staticFiles, "static")
	mux.Handle("/", http.FileServer(http.FS(staticFS)))

	return mux
}

// Start serves requests until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("web server starting", zap.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the listener and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
