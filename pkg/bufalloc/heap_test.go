package bufalloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMetrics struct {
	allocs   int
	frees    int
	failures int
	lastKind string
}

func (m *recordingMetrics) ObserveAlloc(kind string, size int) {
	m.allocs++
	m.lastKind = kind
}

func (m *recordingMetrics) ObserveFree(kind string, size int) {
	m.frees++
	m.lastKind = kind
}

func (m *recordingMetrics) ObserveFailure(kind string) {
	m.failures++
	m.lastKind = kind
}

// ============================================================================
// Heap Tests
// ============================================================================

func TestHeap(t *testing.T) {
	t.Run("AllocReturnsZeroedSlice", func(t *testing.T) {
		h := NewHeap(nil)

		buf, err := h.Alloc(16)
		require.NoError(t, err)
		assert.Equal(t, 16, len(buf))
		assert.Equal(t, make([]byte, 16), buf)
	})

	t.Run("ZeroSizeAlloc", func(t *testing.T) {
		h := NewHeap(nil)

		buf, err := h.Alloc(0)
		require.NoError(t, err)
		assert.Equal(t, 0, len(buf))
	})

	t.Run("NegativeSizeFails", func(t *testing.T) {
		h := NewHeap(nil)

		_, err := h.Alloc(-1)
		assert.ErrorIs(t, err, ErrAllocFailed)
	})

	t.Run("Kind", func(t *testing.T) {
		assert.Equal(t, "heap", NewHeap(nil).Kind())
	})

	t.Run("StatsTrackAllocAndFree", func(t *testing.T) {
		h := NewHeap(nil)

		buf, err := h.Alloc(128)
		require.NoError(t, err)

		s := h.Stats()
		assert.Equal(t, uint64(1), s.Allocs)
		assert.Equal(t, int64(128), s.BytesInUse)

		h.Free(buf)
		s = h.Stats()
		assert.Equal(t, uint64(1), s.Frees)
		assert.Equal(t, int64(0), s.BytesInUse)
	})

	t.Run("FreeNilIsNoOp", func(t *testing.T) {
		h := NewHeap(nil)
		h.Free(nil)

		assert.Equal(t, uint64(0), h.Stats().Frees)
	})
}

// ============================================================================
// Metrics Forwarding Tests
// ============================================================================

func TestMetricsForwarding(t *testing.T) {
	t.Run("HeapForwardsEvents", func(t *testing.T) {
		rec := &recordingMetrics{}
		h := NewHeap(rec)

		buf, err := h.Alloc(8)
		require.NoError(t, err)
		h.Free(buf)
		_, _ = h.Alloc(-1)

		assert.Equal(t, 1, rec.allocs)
		assert.Equal(t, 1, rec.frees)
		assert.Equal(t, 1, rec.failures)
		assert.Equal(t, "heap", rec.lastKind)
	})

	t.Run("ArenaForwardsFailureKind", func(t *testing.T) {
		rec := &recordingMetrics{}
		a := NewArena(4, rec)

		_, err := a.Alloc(8)
		require.ErrorIs(t, err, ErrAllocFailed)

		assert.Equal(t, 1, rec.failures)
		assert.Equal(t, "arena", rec.lastKind)
	})
}
