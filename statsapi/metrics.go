package statsapi

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the API client.
type Metrics struct {
	Registry           *prometheus.Registry
	RequestsTotal      *prometheus.CounterVec
	RequestDuration    prometheus.Histogram
	GamesExportedTotal prometheus.Counter
	GamesSkippedTotal  prometheus.Counter
	ErrorsTotal        *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statsapi_requests_total",
			Help: "Total HTTP requests issued to the Stats API.",
		},
		[]string{"endpoint"},
	)
	requestDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "statsapi_request_duration_seconds",
			Help:    "HTTP request latency for Stats API requests.",
			Buckets: prometheus.DefBuckets,
		},
	)
	gamesExported := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "statsapi_games_exported_total",
			Help: "Total number of games written to an export file.",
		},
	)
	gamesSkipped := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "statsapi_games_skipped_total",
			Help: "Total number of games skipped after a fetch failure.",
		},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statsapi_errors_total",
			Help: "Total number of Stats API errors by type.",
		},
		[]string{"error_type"},
	)

	registry.MustRegister(requests, requestDuration, gamesExported, gamesSkipped, errorsTotal)

	return &Metrics{
		Registry:           registry,
		RequestsTotal:      requests,
		RequestDuration:    requestDuration,
		GamesExportedTotal: gamesExported,
		GamesSkippedTotal:  gamesSkipped,
		ErrorsTotal:        errorsTotal,
	}
}

// IncRequest increments the requests total counter for an endpoint.
func (m *Metrics) IncRequest(endpoint string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(endpoint).Inc()
}

// ObserveDuration records an HTTP request duration.
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.Observe(d.Seconds())
}

// AddExported adds to the exported games counter.
func (m *Metrics) AddExported(n int) {
	if m == nil {
		return
	}
	m.GamesExportedTotal.Add(float64(n))
}

// IncSkipped increments the skipped games counter.
func (m *Metrics) IncSkipped() {
	if m == nil {
		return
	}
	m.GamesSkippedTotal.Inc()
}

// IncError increments the errors counter for a type label.
func (m *Metrics) IncError(errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}
