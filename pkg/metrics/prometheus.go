// Package metrics provides Prometheus metrics for the Pal table service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the table service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Dataset Metrics - What the snapshot looks like after load
	datasetFlatRecords prometheus.Gauge
	datasetRawRecords  prometheus.Gauge
	datasetIcons       *prometheus.GaugeVec
	facetValues        *prometheus.GaugeVec
	loadDuration       prometheus.Histogram
	loaderInputs       *prometheus.CounterVec

	// Table Engine Metrics - Per request work
	filterEvaluations prometheus.Counter
	filterLatency     prometheus.Histogram
	filterRows        prometheus.Histogram
	sortRequests      *prometheus.CounterVec
	detailLookups     *prometheus.CounterVec
	suggestions       prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "paldex",
		subsystem:        "table",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.constLabels)

	m.datasetFlatRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_flat_records",
		Help:        "Number of flat (table) records in the loaded snapshot",
		ConstLabels: labels,
	})

	m.datasetRawRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_raw_records",
		Help:        "Number of raw (detail) records in the loaded snapshot",
		ConstLabels: labels,
	})

	m.datasetIcons = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_icons",
		Help:        "Number of icon manifest entries by manifest",
		ConstLabels: labels,
	}, []string{"manifest"})

	m.facetValues = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "facet_values",
		Help:        "Number of distinct selectable values by facet",
		ConstLabels: labels,
	}, []string{"facet"})

	m.loadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "load_duration_milliseconds",
		Help:        "Time spent loading the dataset snapshot",
		Buckets:     []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		ConstLabels: labels,
	})

	m.loaderInputs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "loader_inputs_total",
		Help:        "Dataset inputs fetched by input name and outcome (ok, degraded, failed)",
		ConstLabels: labels,
	}, []string{"input", "outcome"})

	m.filterEvaluations = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "filter_evaluations_total",
		Help:        "Total number of filter evaluations over the dataset",
		ConstLabels: labels,
	})

	m.filterLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "filter_latency_milliseconds",
		Help:        "Time spent sorting and filtering one table view",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.filterRows = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "filter_rows",
		Help:        "Number of rows returned by a filter evaluation",
		Buckets:     []float64{0, 1, 5, 10, 25, 50, 100, 150, 250, 500},
		ConstLabels: labels,
	})

	m.sortRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "sort_requests_total",
		Help:        "Total number of sorts by column key and direction",
		ConstLabels: labels,
	}, []string{"key", "dir"})

	m.detailLookups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "detail_lookups_total",
		Help:        "Total number of detail lookups by outcome (found, fallback)",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.suggestions = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "suggestions_total",
		Help:        "Total number of empty searches answered with name suggestions",
		ConstLabels: labels,
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_component_total",
			Help:        "Total number of errors by component",
			ConstLabels: labels,
		},
		[]string{"component", "error_type"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_type_total",
			Help:        "Total number of errors by type and severity",
			ConstLabels: labels,
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_endpoint_total",
			Help:        "Total number of errors by HTTP endpoint",
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.errorLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "error_latency_milliseconds",
			Help:        "Latency of requests that ended in an error",
			Buckets:     m.histogramBuckets,
			ConstLabels: labels,
		},
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_usage_bytes",
		Help:        "System memory usage in bytes",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_time_milliseconds",
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: labels,
	})
}

// Dataset Metrics Functions.

// UpdateDatasetSize sets the flat and raw record gauges.
func UpdateDatasetSize(flat, raw int) {
	globalManager.datasetFlatRecords.Set(float64(flat))
	globalManager.datasetRawRecords.Set(float64(raw))
}

// UpdateDatasetIcons sets the entry count of one icon manifest.
func UpdateDatasetIcons(manifest string, count int) {
	globalManager.datasetIcons.WithLabelValues(manifest).Set(float64(count))
}

// UpdateFacetValues sets the number of distinct values of a facet.
func UpdateFacetValues(facet string, count int) {
	globalManager.facetValues.WithLabelValues(facet).Set(float64(count))
}

// RecordLoadDuration records how long the dataset load took.
func RecordLoadDuration(durationMs float64) {
	globalManager.loadDuration.Observe(durationMs)
}

// RecordLoaderInput counts one fetched input by outcome.
func RecordLoaderInput(input, outcome string) {
	globalManager.loaderInputs.WithLabelValues(input, outcome).Inc()
}

// Table Engine Metrics Functions.

// RecordFilterEvaluation records one filter pass, its latency and result size.
func RecordFilterEvaluation(latencyMs float64, rows int) {
	globalManager.filterEvaluations.Inc()
	globalManager.filterLatency.Observe(latencyMs)
	globalManager.filterRows.Observe(float64(rows))
}

// RecordSort counts a sort by column and direction.
func RecordSort(key, dir string) {
	globalManager.sortRequests.WithLabelValues(key, dir).Inc()
}

// RecordDetailLookup counts a detail lookup by outcome.
func RecordDetailLookup(outcome string) {
	globalManager.detailLookups.WithLabelValues(outcome).Inc()
}

// RecordSuggestion counts an empty search answered with suggestions.
func RecordSuggestion() {
	globalManager.suggestions.Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error Metrics Functions.

// RecordErrorByComponent records an error by component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records error latency.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System Metrics Functions.

// UpdateSystemMemoryUsage sets system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
