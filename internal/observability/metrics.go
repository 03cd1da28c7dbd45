package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// catalog service.
type Metrics struct {
	FeedPulls    *prometheus.CounterVec // labels: type, outcome={success,upstream_error,parse_error}
	ItemsScanned *prometheus.CounterVec // labels: type

	BuildDuration prometheus.Histogram
	CatalogSize   *prometheus.GaugeVec // labels: list={counties,highways}

	ItemsPublished   prometheus.Counter
	PublishErrors    prometheus.Counter
	PublisherEnabled prometheus.Gauge
}

// NewMetrics creates and registers all catalog metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FeedPulls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cwwp_catalog",
			Name:      "feed_pulls_total",
			Help:      "Feed pulls by data type and outcome.",
		}, []string{"type", "outcome"}),
		ItemsScanned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cwwp_catalog",
			Name:      "items_scanned_total",
			Help:      "Feed records scanned during catalog builds, by data type.",
		}, []string{"type"}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cwwp_catalog",
			Name:      "build_duration_seconds",
			Help:      "Duration of a complete catalog build across all feeds.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),
		CatalogSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "cwwp_catalog",
			Name:      "catalog_entries",
			Help:      "Entries in the most recent catalog, by list.",
		}, []string{"list"}),
		ItemsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cwwp_catalog",
			Name:      "items_published_total",
			Help:      "Normalized items written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cwwp_catalog",
			Name:      "publish_errors_total",
			Help:      "Failed sink topic writes.",
		}),
		PublisherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cwwp_catalog",
			Name:      "publisher_enabled",
			Help:      "1 when the Kafka publisher is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.FeedPulls,
		m.ItemsScanned,
		m.BuildDuration,
		m.CatalogSize,
		m.ItemsPublished,
		m.PublishErrors,
		m.PublisherEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FeedPulls:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "cwwp_catalog", Name: "feed_pulls_total"}, []string{"type", "outcome"}),
		ItemsScanned:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "cwwp_catalog", Name: "items_scanned_total"}, []string{"type"}),
		BuildDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "cwwp_catalog", Name: "build_duration_seconds"}),
		CatalogSize:      prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: "cwwp_catalog", Name: "catalog_entries"}, []string{"list"}),
		ItemsPublished:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "cwwp_catalog", Name: "items_published_total"}),
		PublishErrors:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "cwwp_catalog", Name: "publish_errors_total"}),
		PublisherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "cwwp_catalog", Name: "publisher_enabled"}),
	}
}
