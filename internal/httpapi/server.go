// Package httpapi serves allocator stats and Prometheus metrics over HTTP
// for the membuf serve command.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/marmos91/membuf/internal/logger"
	"github.com/marmos91/membuf/pkg/bufalloc"
)

// defaultShutdownTimeout bounds graceful shutdown when the caller does not
// configure one.
const defaultShutdownTimeout = 5 * time.Second

// Server is the stats/metrics HTTP server.
//
// Endpoints:
//   - GET /health: Liveness probe
//   - GET /stats: Allocator stats as JSON
//   - GET /metrics: Prometheus exposition (when metrics are enabled)
//
// The server supports graceful shutdown with a configurable timeout.
type Server struct {
	server          *http.Server
	port            int
	shutdownTimeout time.Duration
	shutdownOnce    sync.Once
}

// NewServer creates the HTTP server over the given allocators.
// A non-positive shutdownTimeout falls back to the default. The server is
// created stopped; call Start to begin serving.
func NewServer(port int, shutdownTimeout time.Duration, allocators []bufalloc.Allocator) *Server {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      NewRouter(allocators),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		port:            port,
		shutdownTimeout: shutdownTimeout,
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully within
// the configured shutdown timeout.
//
// Returns nil on graceful shutdown, or the listen/shutdown error.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		logger.Info("stats server listening", "port", s.port)

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			select {
			case errChan <- err:
			default:
			}
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("stats server shutdown signal received")
		// The cancelled ctx would abort shutdown immediately; use a fresh
		// context bounded by the configured timeout instead.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		return s.Stop(shutdownCtx)
	case err := <-errChan:
		return fmt.Errorf("stats server failed: %w", err)
	}
}

// Stop initiates graceful shutdown. Safe to call multiple times.
func (s *Server) Stop(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		err = s.server.Shutdown(ctx)
		if err == nil {
			logger.Info("stats server stopped")
		}
	})
	return err
}
