package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/membuf/internal/logger"
	"github.com/marmos91/membuf/pkg/bufalloc"
	"github.com/marmos91/membuf/pkg/buffer"
)

func TestMain(m *testing.M) {
	logger.InitWithWriter(io.Discard, "ERROR", "text")
	m.Run()
}

func newTestServer(t *testing.T, allocators ...bufalloc.Allocator) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewRouter(allocators))
	t.Cleanup(srv.Close)
	return srv
}

// ============================================================================
// Endpoint Tests
// ============================================================================

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
}

func TestStatsEndpoint(t *testing.T) {
	t.Run("EmptyAllocatorList", func(t *testing.T) {
		srv := newTestServer(t)

		resp, err := http.Get(srv.URL + "/stats")
		require.NoError(t, err)
		defer resp.Body.Close()

		var body []allocatorStats
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Empty(t, body)
	})

	t.Run("ReportsLiveAllocatorActivity", func(t *testing.T) {
		heap := bufalloc.NewHeap(nil)
		arena := bufalloc.NewArena(16, nil)
		srv := newTestServer(t, heap, arena)

		held, err := buffer.NewFromString(heap, "hello")
		require.NoError(t, err)

		released, err := buffer.NewFromString(heap, "gone")
		require.NoError(t, err)
		released.Release()

		_, err = arena.Alloc(64)
		require.ErrorIs(t, err, bufalloc.ErrAllocFailed)

		resp, err := http.Get(srv.URL + "/stats")
		require.NoError(t, err)
		defer resp.Body.Close()

		var body []allocatorStats
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body, 2)

		assert.Equal(t, "heap", body[0].Kind)
		assert.Equal(t, uint64(2), body[0].Allocs)
		assert.Equal(t, uint64(1), body[0].Frees)
		assert.Equal(t, int64(held.Len()), body[0].BytesInUse)

		assert.Equal(t, "arena", body[1].Kind)
		assert.Equal(t, uint64(1), body[1].Failures)
	})
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMetricsRouteAbsentWhenDisabled(t *testing.T) {
	// The registry is never initialized in this test binary, so /metrics
	// must not be mounted.
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
