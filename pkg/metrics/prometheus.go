// Package metrics provides Prometheus metrics for the holiday markets service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ingestion metrics
	fetchAttempts     prometheus.Counter
	fetchFailures     prometheus.Counter
	rowsAccepted      prometheus.Counter
	rowsSkipped       *prometheus.CounterVec
	fragmentsParsed   prometheus.Counter
	fragmentsRejected prometheus.Counter

	// Catalog metrics
	catalogSize       prometheus.Gauge
	cityCount         prometheus.Gauge
	viewSize          prometheus.Gauge
	viewRecomputes    prometheus.Counter
	recomputeDuration prometheus.Histogram

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "markets",
		subsystem:        "catalog",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.fetchAttempts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sheet_fetch_attempts_total",
		Help:      "Total number of sheet fetch attempts",
	})

	m.fetchFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sheet_fetch_failures_total",
		Help:      "Total number of failed sheet fetches",
	})

	m.rowsAccepted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_accepted_total",
		Help:      "Total number of CSV rows accepted as market records",
	})

	m.rowsSkipped = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "rows_skipped_total",
			Help:      "Total number of CSV rows skipped, by reason",
		},
		[]string{"reason"},
	)

	m.fragmentsParsed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "date_fragments_parsed_total",
		Help:      "Total number of date fragments parsed into dates",
	})

	m.fragmentsRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "date_fragments_rejected_total",
		Help:      "Total number of date fragments that matched no grammar",
	})

	m.catalogSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_total",
		Help:      "Number of market records held in the catalog",
	})

	m.cityCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cities_total",
		Help:      "Number of distinct cities across all records",
	})

	m.viewSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "view_size",
		Help:      "Number of records in the current filtered view",
	})

	m.viewRecomputes = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "view_recomputes_total",
		Help:      "Total number of view recomputations",
	})

	m.recomputeDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "view_recompute_duration_milliseconds",
		Help:      "Duration of view recomputation in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// RecordFetchAttempt increments the fetch attempts counter.
func RecordFetchAttempt() {
	globalManager.fetchAttempts.Inc()
}

// RecordFetchFailure increments the fetch failures counter.
func RecordFetchFailure() {
	globalManager.fetchFailures.Inc()
}

// RecordRowAccepted increments the accepted rows counter.
func RecordRowAccepted() {
	globalManager.rowsAccepted.Inc()
}

// RecordRowSkipped increments the skipped rows counter for a reason.
func RecordRowSkipped(reason string) {
	globalManager.rowsSkipped.WithLabelValues(reason).Inc()
}

// RecordFragmentParsed increments the parsed date fragments counter.
func RecordFragmentParsed() {
	globalManager.fragmentsParsed.Inc()
}

// RecordFragmentRejected increments the rejected date fragments counter.
func RecordFragmentRejected() {
	globalManager.fragmentsRejected.Inc()
}

// UpdateCatalogSize sets the catalog record count gauge.
func UpdateCatalogSize(count int) {
	globalManager.catalogSize.Set(float64(count))
}

// UpdateCityCount sets the distinct city count gauge.
func UpdateCityCount(count int) {
	globalManager.cityCount.Set(float64(count))
}

// UpdateViewSize sets the current view size gauge.
func UpdateViewSize(count int) {
	globalManager.viewSize.Set(float64(count))
}

// RecordViewRecompute records one view recomputation and its duration.
func RecordViewRecompute(durationMs float64) {
	globalManager.viewRecomputes.Inc()
	globalManager.recomputeDuration.Observe(durationMs)
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
