package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// simMetrics counts the simulation work behind the HTTP surface, next to the
// request-level metrics the middleware records
type simMetrics struct {
	traces        prometheus.Counter
	sweeps        prometheus.Counter
	sweepDuration prometheus.Histogram
}

// newSimMetrics creates the counters and registers them in the default
// registry under the service namespace
func newSimMetrics(namespace string) *simMetrics {
	m := &simMetrics{
		traces: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "traces_total",
			Help:      "Completed beam trace resolutions.",
		}),
		sweeps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweeps_total",
			Help:      "Completed frequency sweeps.",
		}),
		sweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sweep_duration_seconds",
			Help:      "Wall time spent evaluating frequency sweeps.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
	}
	prometheus.MustRegister(m.traces, m.sweeps, m.sweepDuration)
	return m
}
