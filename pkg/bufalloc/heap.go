package bufalloc

// Heap is the simplest Allocator: every Alloc is a fresh make and Free
// just drops the reference for the garbage collector. It is the default
// allocator used by pkg/buffer when none is given.
//
// Heap never returns ErrAllocFailed. If the runtime cannot satisfy the
// allocation the process aborts, which matches the usual Go position
// that heap exhaustion is not a recoverable condition.
type Heap struct {
	counters
	metrics Metrics
}

// NewHeap creates a heap allocator. metrics may be nil.
func NewHeap(metrics Metrics) *Heap {
	return &Heap{metrics: metrics}
}

// Alloc returns a zeroed slice of exactly size bytes.
func (h *Heap) Alloc(size int) ([]byte, error) {
	if size < 0 {
		h.recordFailure(h.metrics, h.Kind())
		return nil, ErrAllocFailed
	}
	buf := make([]byte, size)
	h.recordAlloc(h.metrics, h.Kind(), size)
	return buf, nil
}

// Free releases a slice back to the garbage collector.
func (h *Heap) Free(buf []byte) {
	if buf == nil {
		return
	}
	h.recordFree(h.metrics, h.Kind(), len(buf))
}

// Kind returns "heap".
func (h *Heap) Kind() string {
	return "heap"
}

// Stats returns a snapshot of the allocator's counters.
func (h *Heap) Stats() Stats {
	return h.snapshot()
}
