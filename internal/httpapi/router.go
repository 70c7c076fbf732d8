package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/marmos91/membuf/internal/logger"
	"github.com/marmos91/membuf/pkg/bufalloc"
	"github.com/marmos91/membuf/pkg/metrics"
)

// NewRouter configures the chi router with middleware and routes.
//
// The middleware stack mirrors what every endpoint needs: request IDs for
// log correlation, panic recovery, and a request timeout. /metrics is only
// mounted when the Prometheus registry has been initialized.
func NewRouter(allocators []bufalloc.Allocator) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	h := newStatsHandler(allocators)

	r.Get("/health", h.Health)
	r.Get("/stats", h.Stats)

	if mh := metrics.Handler(); mh != nil {
		r.Method(http.MethodGet, "/metrics", mh)
	}

	return r
}

// requestLogger logs request start (DEBUG) and completion (INFO) through
// the internal logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		logger.Debug("request started",
			logger.KeyRequestID, requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		logger.Info("request completed",
			logger.KeyRequestID, requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			logger.KeyDurationMs, logger.Duration(start),
		)
	})
}
