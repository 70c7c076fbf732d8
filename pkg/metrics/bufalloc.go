package metrics

import (
	"github.com/marmos91/membuf/pkg/bufalloc"
)

// NewAllocatorMetrics creates a Prometheus-backed bufalloc.Metrics.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
// Allocators accept a nil Metrics and skip all instrumentation, so the
// result can be passed through unconditionally:
//
//	metrics.InitRegistry()
//	pool := bufalloc.NewPool(nil, metrics.NewAllocatorMetrics())
func NewAllocatorMetrics() bufalloc.Metrics {
	if !IsEnabled() {
		return nil
	}
	return newPrometheusAllocatorMetrics()
}

// newPrometheusAllocatorMetrics is implemented in pkg/metrics/prometheus.
// The indirection keeps this package free of a dependency on the
// implementation package, which imports this one for the registry.
var newPrometheusAllocatorMetrics func() bufalloc.Metrics

// RegisterAllocatorMetricsConstructor registers the Prometheus allocator
// metrics constructor. Called by pkg/metrics/prometheus during package
// initialization.
func RegisterAllocatorMetricsConstructor(constructor func() bufalloc.Metrics) {
	newPrometheusAllocatorMetrics = constructor
}
