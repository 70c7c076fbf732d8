// Package prometheus contains the Prometheus implementations of the
// metrics interfaces consumed elsewhere in membuf. Importing it (for side
// effects) registers the constructors with pkg/metrics.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/marmos91/membuf/pkg/bufalloc"
	"github.com/marmos91/membuf/pkg/metrics"
)

func init() {
	metrics.RegisterAllocatorMetricsConstructor(newAllocatorMetrics)
}

// allocatorMetrics is the Prometheus implementation of bufalloc.Metrics.
type allocatorMetrics struct {
	allocs     *prometheus.CounterVec
	allocBytes *prometheus.CounterVec
	frees      *prometheus.CounterVec
	failures   *prometheus.CounterVec
	bytesInUse *prometheus.GaugeVec
}

// newAllocatorMetrics creates the allocator collectors against the
// process-wide registry. Returns nil if metrics are disabled.
func newAllocatorMetrics() bufalloc.Metrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	return &allocatorMetrics{
		allocs: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "membuf_allocs_total",
				Help: "Total number of successful buffer allocations by allocator kind",
			},
			[]string{"kind"}, // "heap", "pool", "arena"
		),
		allocBytes: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "membuf_alloc_bytes_total",
				Help: "Total bytes handed out by allocator kind",
			},
			[]string{"kind"},
		),
		frees: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "membuf_frees_total",
				Help: "Total number of buffer frees by allocator kind",
			},
			[]string{"kind"},
		),
		failures: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "membuf_alloc_failures_total",
				Help: "Total number of failed buffer allocations by allocator kind",
			},
			[]string{"kind"},
		),
		bytesInUse: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "membuf_bytes_in_use",
				Help: "Bytes currently owned by live buffers by allocator kind",
			},
			[]string{"kind"},
		),
	}
}

// ObserveAlloc records a successful allocation.
func (m *allocatorMetrics) ObserveAlloc(kind string, size int) {
	if m == nil {
		return
	}
	m.allocs.WithLabelValues(kind).Inc()
	m.allocBytes.WithLabelValues(kind).Add(float64(size))
	m.bytesInUse.WithLabelValues(kind).Add(float64(size))
}

// ObserveFree records a free.
func (m *allocatorMetrics) ObserveFree(kind string, size int) {
	if m == nil {
		return
	}
	m.frees.WithLabelValues(kind).Inc()
	m.bytesInUse.WithLabelValues(kind).Sub(float64(size))
}

// ObserveFailure records a failed allocation.
func (m *allocatorMetrics) ObserveFailure(kind string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(kind).Inc()
}
