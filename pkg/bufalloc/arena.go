package bufalloc

import (
	"fmt"
	"sync"
)

// Arena is an Allocator with a fixed byte budget.
//
// Alloc draws the requested size from the budget and fails with
// ErrAllocFailed once the budget is exhausted; Free returns bytes to it.
// The arena does not own a contiguous region - individual allocations are
// still ordinary slices - it only enforces the aggregate limit. That makes
// allocation failure a deterministic, recoverable condition instead of a
// process abort, which is what callers who want to handle out-of-memory
// explicitly should use.
type Arena struct {
	counters
	mu       sync.Mutex
	capacity int64
	used     int64
	metrics  Metrics
}

// NewArena creates an arena with the given budget in bytes.
// A non-positive capacity yields an arena that rejects every
// non-empty allocation. metrics may be nil.
func NewArena(capacity int64, metrics Metrics) *Arena {
	if capacity < 0 {
		capacity = 0
	}
	return &Arena{capacity: capacity, metrics: metrics}
}

// Alloc returns a zeroed slice of exactly size bytes, or ErrAllocFailed
// if the remaining budget cannot cover it.
func (a *Arena) Alloc(size int) ([]byte, error) {
	if size < 0 {
		a.recordFailure(a.metrics, a.Kind())
		return nil, ErrAllocFailed
	}

	a.mu.Lock()
	if a.used+int64(size) > a.capacity {
		remaining := a.capacity - a.used
		a.mu.Unlock()
		a.recordFailure(a.metrics, a.Kind())
		return nil, fmt.Errorf("%w: arena budget exceeded (requested %d, remaining %d)",
			ErrAllocFailed, size, remaining)
	}
	a.used += int64(size)
	a.mu.Unlock()

	buf := make([]byte, size)
	a.recordAlloc(a.metrics, a.Kind(), size)
	return buf, nil
}

// Free returns a slice's bytes to the budget.
func (a *Arena) Free(buf []byte) {
	if buf == nil {
		return
	}

	a.mu.Lock()
	a.used -= int64(len(buf))
	if a.used < 0 {
		// A foreign or double-freed slice would drive the budget negative;
		// clamp so the arena stays usable.
		a.used = 0
	}
	a.mu.Unlock()

	a.recordFree(a.metrics, a.Kind(), len(buf))
}

// Kind returns "arena".
func (a *Arena) Kind() string {
	return "arena"
}

// Stats returns a snapshot of the allocator's counters.
func (a *Arena) Stats() Stats {
	return a.snapshot()
}

// Capacity returns the configured budget in bytes.
func (a *Arena) Capacity() int64 {
	return a.capacity
}

// Remaining returns the unallocated portion of the budget in bytes.
func (a *Arena) Remaining() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.capacity - a.used
}
