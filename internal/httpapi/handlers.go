package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/marmos91/membuf/internal/logger"
	"github.com/marmos91/membuf/pkg/bufalloc"
)

// statsHandler serves the health and stats endpoints.
type statsHandler struct {
	allocators []bufalloc.Allocator
}

func newStatsHandler(allocators []bufalloc.Allocator) *statsHandler {
	return &statsHandler{allocators: allocators}
}

// healthResponse is the /health payload.
type healthResponse struct {
	Status string `json:"status"`
}

// allocatorStats is one element of the /stats payload.
type allocatorStats struct {
	Kind       string `json:"kind"`
	Allocs     uint64 `json:"allocs"`
	Frees      uint64 `json:"frees"`
	Failures   uint64 `json:"failures"`
	BytesInUse int64  `json:"bytes_in_use"`
}

// Health handles GET /health.
func (h *statsHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// Stats handles GET /stats, returning a snapshot per allocator.
func (h *statsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	out := make([]allocatorStats, 0, len(h.allocators))
	for _, a := range h.allocators {
		s := a.Stats()
		out = append(out, allocatorStats{
			Kind:       a.Kind(),
			Allocs:     s.Allocs,
			Frees:      s.Frees,
			Failures:   s.Failures,
			BytesInUse: s.BytesInUse,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", logger.KeyError, err.Error())
	}
}
