// Package bufalloc provides the allocators that back pkg/buffer.
//
// An Allocator hands out byte slices and takes them back when the owning
// buffer releases them. Three implementations are provided:
//
//   - Heap: plain make-based allocation, no reuse. Allocation only fails
//     when the Go runtime itself runs out of memory, which is fatal and
//     not surfaced as an error.
//   - Pool: tiered sync.Pool reuse with small/medium/large size classes,
//     for workloads that churn through many short-lived buffers.
//   - Arena: a fixed byte budget. Allocation beyond the budget fails with
//     ErrAllocFailed, giving callers a recoverable out-of-memory condition
//     they can actually test against.
//
// All allocators are safe for concurrent use and keep running counters
// exposed via Stats. An optional Metrics sink mirrors those counters into
// an external metrics system; a nil sink costs nothing.
package bufalloc

import (
	"errors"
	"sync/atomic"
)

// ErrAllocFailed is returned when an allocator cannot satisfy a request.
// Only allocators with a bounded budget (Arena) return it; Heap and Pool
// treat out-of-memory as fatal.
var ErrAllocFailed = errors.New("buffer allocation failed")

// Allocator hands out byte slices of a requested size and reclaims them.
//
// The returned slice has length equal to the requested size; its capacity
// may be larger when the allocator rounds up to an internal size class.
// Every slice obtained from Alloc must eventually be passed to Free exactly
// once, on the same allocator that produced it.
type Allocator interface {
	// Alloc returns a slice of exactly size bytes.
	Alloc(size int) ([]byte, error)

	// Free reclaims a slice previously returned by Alloc.
	// Freeing nil is a no-op.
	Free(buf []byte)

	// Kind returns a short identifier for the allocator type
	// (heap, pool, arena). Used for stats and metrics labelling.
	Kind() string

	// Stats returns a snapshot of the allocator's counters.
	Stats() Stats
}

// Stats is a point-in-time snapshot of allocator activity.
type Stats struct {
	// Allocs is the total number of successful allocations.
	Allocs uint64

	// Frees is the total number of frees.
	Frees uint64

	// Failures is the total number of failed allocations.
	Failures uint64

	// BytesInUse is the number of bytes currently handed out.
	BytesInUse int64
}

// Metrics receives allocator events for export to an external metrics
// system. Implementations must be safe for concurrent use. All call sites
// tolerate a nil Metrics, so allocators created without one carry no
// observability overhead.
type Metrics interface {
	// ObserveAlloc records a successful allocation of size bytes.
	ObserveAlloc(kind string, size int)

	// ObserveFree records a free of size bytes.
	ObserveFree(kind string, size int)

	// ObserveFailure records a failed allocation.
	ObserveFailure(kind string)
}

// counters is the shared atomic counter block embedded by each allocator.
type counters struct {
	allocs     atomic.Uint64
	frees      atomic.Uint64
	failures   atomic.Uint64
	bytesInUse atomic.Int64
}

func (c *counters) recordAlloc(m Metrics, kind string, size int) {
	c.allocs.Add(1)
	c.bytesInUse.Add(int64(size))
	if m != nil {
		m.ObserveAlloc(kind, size)
	}
}

func (c *counters) recordFree(m Metrics, kind string, size int) {
	c.frees.Add(1)
	c.bytesInUse.Add(-int64(size))
	if m != nil {
		m.ObserveFree(kind, size)
	}
}

func (c *counters) recordFailure(m Metrics, kind string) {
	c.failures.Add(1)
	if m != nil {
		m.ObserveFailure(kind)
	}
}

func (c *counters) snapshot() Stats {
	return Stats{
		Allocs:     c.allocs.Load(),
		Frees:      c.frees.Load(),
		Failures:   c.failures.Load(),
		BytesInUse: c.bytesInUse.Load(),
	}
}
