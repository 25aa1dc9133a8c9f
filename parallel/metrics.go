package parallel

import "github.com/prometheus/client_golang/prometheus"

var (
	dispatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forgorange_dispatches_total",
			Help: "Total number of range dispatches, by dispatcher and execution policy.",
		},
		[]string{"dispatcher", "policy"},
	)

	dispatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "forgorange_dispatch_duration_seconds",
			Help:    "Duration of range dispatches from start until all slices have joined, in seconds.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		},
		[]string{"dispatcher", "policy"},
	)

	slicesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forgorange_slices_total",
			Help: "Total number of slices executed by parallel dispatches.",
		},
		[]string{"dispatcher"},
	)

	inlineFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forgorange_inline_fallbacks_total",
			Help: "Total number of slices run on the calling goroutine because the executor rejected them.",
		},
		[]string{"dispatcher"},
	)

	sliceFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forgorange_slice_failures_total",
			Help: "Total number of slices that panicked or returned an error.",
		},
		[]string{"dispatcher"},
	)
)

func init() {
	prometheus.MustRegister(dispatchesTotal)
	prometheus.MustRegister(dispatchDuration)
	prometheus.MustRegister(slicesTotal)
	prometheus.MustRegister(inlineFallbacks)
	prometheus.MustRegister(sliceFailures)
}
