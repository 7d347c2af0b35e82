package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"mercator-hq/saturn/pkg/telemetry/health"
	"mercator-hq/saturn/pkg/telemetry/metrics"
)

const shutdownTimeout = 5 * time.Second

// ServerConfig contains configuration for the telemetry server.
type ServerConfig struct {
	// ListenAddress is the host:port to serve on (e.g., "127.0.0.1:9464")
	ListenAddress string

	// MetricsPath is the path for the Prometheus endpoint. Default: "/metrics".
	MetricsPath string

	// Version is the saturn version reported by /version
	Version string

	// Commit is the git commit reported by /version
	Commit string

	// BuildTime is the build timestamp reported by /version
	BuildTime string
}

// Server exposes metrics and health endpoints while watch mode runs.
type Server struct {
	config       *ServerConfig
	collector    *metrics.Collector
	checker      *health.Checker
	httpServer   *http.Server
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a new telemetry server serving the collector's
// metrics and the checker's health probes.
func NewServer(cfg *ServerConfig, collector *metrics.Collector, checker *health.Checker) *Server {
	return &Server{
		config:    cfg,
		collector: collector,
		checker:   checker,
	}
}

// Start starts the HTTP server and blocks until the context ends or the
// server fails. Watch mode runs it in its own goroutine with the
// signal-aware context, so interrupting the process shuts it down.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("telemetry server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	s.httpServer = &http.Server{
		Addr:         s.config.ListenAddress,
		Handler:      s.setupRoutes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting telemetry server",
			"address", s.config.ListenAddress,
			"metrics_path", s.metricsPath(),
		)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("telemetry server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errChan:
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
		return err
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error during telemetry server shutdown", "error", err)
				shutdownErr = fmt.Errorf("telemetry server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("telemetry server stopped")
	})

	return shutdownErr
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the configured HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

// setupRoutes configures the HTTP routes.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle(s.metricsPath(), s.collector.Handler())
	health.RegisterEndpoints(mux, s.checker, s.config.Version, s.config.Commit, s.config.BuildTime)

	return mux
}

func (s *Server) metricsPath() string {
	if s.config.MetricsPath == "" {
		return "/metrics"
	}
	return s.config.MetricsPath
}
