package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the ingestion path.
type Metrics struct {
	SessionsIngested prometheus.Counter
	IngestFailures   *prometheus.CounterVec // label: reason={validation,unknown_location,unknown_user,storage}
	IngestDuration   prometheus.Histogram

	// Enrichment metrics.
	EnrichmentRequests *prometheus.CounterVec // labels: source={ndbc,coops}, outcome={success,error}
}

// NewMetrics creates and registers all metrics with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SessionsIngested,
		m.IngestFailures,
		m.IngestDuration,
		m.EnrichmentRequests,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SessionsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "session_logger",
			Name:      "sessions_ingested_total",
			Help:      "Total sessions successfully committed.",
		}),
		IngestFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "session_logger",
			Name:      "ingest_failures_total",
			Help:      "Total ingestion failures by reason.",
		}, []string{"reason"}),
		IngestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "session_logger",
			Name:      "ingest_duration_seconds",
			Help:      "Duration of a complete ingest transaction.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		EnrichmentRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "session_logger",
			Name:      "enrichment_requests_total",
			Help:      "Upstream NDBC/CO-OPS requests by source and outcome.",
		}, []string{"source", "outcome"}),
	}
}
