package dummyjson

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the client-side request instrumentation.
// Pass to the Client via WithMetrics.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewMetrics creates all client metrics on a private registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	return &Metrics{
		RequestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "unideck",
				Name:      "requests_total",
				Help:      "Total number of catalog backend requests",
			},
			[]string{"operation", "outcome"}, // outcome=ok/http_error/unreachable
		),
		RequestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "unideck",
				Name:      "request_duration_seconds",
				Help:      "Catalog backend request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		registry: reg,
	}
}

// Gatherer exposes the private registry for reporting.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// observe records one completed request.
func (m *Metrics) observe(operation, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(operation, outcome).Inc()
	m.RequestDuration.WithLabelValues(operation).Observe(seconds)
}
