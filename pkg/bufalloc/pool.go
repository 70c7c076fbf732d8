package bufalloc

import (
	"sync"
)

// Default pool size classes. These can be overridden via PoolConfig.
const (
	// DefaultSmallSize covers short strings and control payloads (4KB).
	DefaultSmallSize = 4 << 10

	// DefaultMediumSize covers typical message bodies (64KB).
	DefaultMediumSize = 64 << 10

	// DefaultLargeSize covers bulk payloads (1MB).
	DefaultLargeSize = 1 << 20
)

// PoolConfig holds the size classes for a Pool.
// Zero or negative values fall back to the defaults.
type PoolConfig struct {
	// SmallSize is the capacity of small-class buffers (default: 4KB).
	SmallSize int

	// MediumSize is the capacity of medium-class buffers (default: 64KB).
	MediumSize int

	// LargeSize is the capacity of large-class buffers (default: 1MB).
	LargeSize int
}

// DefaultPoolConfig returns the default pool size classes.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		SmallSize:  DefaultSmallSize,
		MediumSize: DefaultMediumSize,
		LargeSize:  DefaultLargeSize,
	}
}

// Pool is an Allocator that reuses buffers through three sync.Pool tiers.
//
// A request is served from the smallest class that fits, so the returned
// slice's capacity is the class size while its length is the requested
// size. Requests above the large class are allocated directly and never
// pooled, to avoid pinning oversized buffers in memory.
//
// Freed buffers are routed back to their class by capacity. Buffers whose
// capacity matches no class (direct allocations, or slices that were
// resliced past their class boundary) are dropped for the GC to collect.
type Pool struct {
	counters
	small      sync.Pool
	medium     sync.Pool
	large      sync.Pool
	smallSize  int
	mediumSize int
	largeSize  int
	metrics    Metrics
}

// NewPool creates a pool allocator with the given size classes.
// If cfg is nil, DefaultPoolConfig is used. metrics may be nil.
func NewPool(cfg *PoolConfig, metrics Metrics) *Pool {
	resolved := DefaultPoolConfig()
	if cfg != nil {
		if cfg.SmallSize > 0 {
			resolved.SmallSize = cfg.SmallSize
		}
		if cfg.MediumSize > 0 {
			resolved.MediumSize = cfg.MediumSize
		}
		if cfg.LargeSize > 0 {
			resolved.LargeSize = cfg.LargeSize
		}
	}

	p := &Pool{
		smallSize:  resolved.SmallSize,
		mediumSize: resolved.MediumSize,
		largeSize:  resolved.LargeSize,
		metrics:    metrics,
	}

	p.small.New = func() any {
		buf := make([]byte, p.smallSize)
		return &buf
	}
	p.medium.New = func() any {
		buf := make([]byte, p.mediumSize)
		return &buf
	}
	p.large.New = func() any {
		buf := make([]byte, p.largeSize)
		return &buf
	}

	return p
}

// Alloc returns a slice of exactly size bytes, backed by a pooled buffer
// when the size fits a class. The slice contents are not zeroed when
// served from the pool; pkg/buffer always overwrites the full length
// before exposing it.
func (p *Pool) Alloc(size int) ([]byte, error) {
	if size < 0 {
		p.recordFailure(p.metrics, p.Kind())
		return nil, ErrAllocFailed
	}

	var buf []byte
	switch {
	case size <= p.smallSize:
		buf = *p.small.Get().(*[]byte)
	case size <= p.mediumSize:
		buf = *p.medium.Get().(*[]byte)
	case size <= p.largeSize:
		buf = *p.large.Get().(*[]byte)
	default:
		// Oversized requests bypass the pool entirely.
		buf = make([]byte, size)
	}

	p.recordAlloc(p.metrics, p.Kind(), size)
	return buf[:size], nil
}

// Free routes a buffer back to its size class, or drops it if the
// capacity matches no class.
func (p *Pool) Free(buf []byte) {
	if buf == nil {
		return
	}
	p.recordFree(p.metrics, p.Kind(), len(buf))

	full := buf[:cap(buf)]
	switch cap(buf) {
	case p.smallSize:
		p.small.Put(&full)
	case p.mediumSize:
		p.medium.Put(&full)
	case p.largeSize:
		p.large.Put(&full)
	}
}

// Kind returns "pool".
func (p *Pool) Kind() string {
	return "pool"
}

// Stats returns a snapshot of the allocator's counters.
func (p *Pool) Stats() Stats {
	return p.snapshot()
}

// SizeClasses returns the configured small, medium, and large capacities.
func (p *Pool) SizeClasses() (small, medium, large int) {
	return p.smallSize, p.mediumSize, p.largeSize
}
