// Package metrics defines the prometheus collectors exported by the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Metrics groups the collectors used by the HTTP server.
type Metrics struct {
	Calculations    *prometheus.CounterVec
	FieldFallbacks  *prometheus.CounterVec
	CacheLookups    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg. A nil reg skips
// registration.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "finance_calculators",
			Name:      "calculations_total",
			Help:      "Compound interest calculations served, by source of the inputs.",
		}, []string{"source"}),
		FieldFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "finance_calculators",
			Name:      "share_token_fallbacks_total",
			Help:      "Share token fields replaced by their default, by field and reason.",
		}, []string{"field", "reason"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "finance_calculators",
			Name:      "cache_lookups_total",
			Help:      "Result cache lookups, by outcome.",
		}, []string{"outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "finance_calculators",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   DefaultBuckets,
		}, []string{"path", "method", "status"}),
	}

	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Calculations, m.FieldFallbacks, m.CacheLookups, m.RequestDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
