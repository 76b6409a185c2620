// Package metrics provides Prometheus metrics for the R&R dashboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the dashboard service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Dataset Metrics
	datasetRows         *prometheus.GaugeVec
	datasetLoadDuration *prometheus.HistogramVec
	datasetLoadErrors   *prometheus.CounterVec

	// View Metrics
	viewsRendered *prometheus.CounterVec
	viewsEmpty    *prometheus.CounterVec
	viewLatency   *prometheus.HistogramVec

	// Chart Metrics
	chartsRendered *prometheus.CounterVec
	chartErrors    *prometheus.CounterVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec

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
		namespace:        "rrdash",
		subsystem:        "dashboard",
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
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric definition
	auto := promauto.With(m.registry)

	m.datasetRows = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_rows",
		Help:      "Number of rows in the loaded dataset",
	}, []string{"source"})

	m.datasetLoadDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_load_duration_milliseconds",
		Help:      "Time spent loading the dataset in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"source"})

	m.datasetLoadErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_load_errors_total",
		Help:      "Dataset load failures by reason",
	}, []string{"source", "reason"})

	m.viewsRendered = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "views_rendered_total",
		Help:      "Total number of views rendered by mode",
	}, []string{"mode"})

	m.viewsEmpty = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "views_empty_total",
		Help:      "Views that produced an empty-state notice, by mode",
	}, []string{"mode"})

	m.viewLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "view_render_latency_milliseconds",
		Help:      "Histogram of view rendering latency in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"mode"})

	m.chartsRendered = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "charts_rendered_total",
		Help:      "Charts drawn to SVG, by kind",
	}, []string{"kind"})

	m.chartErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "chart_errors_total",
		Help:      "Chart rendering failures by kind and reason",
	}, []string{"kind", "reason"})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds (user experience)",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total number of errors by endpoint, method and error type",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Heap memory in use, in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_milliseconds",
		Help:      "Histogram of GC pause times in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// Dataset Metrics Functions.

// UpdateDatasetRows sets the row count of a loaded dataset.
func UpdateDatasetRows(source string, rows int) {
	globalManager.datasetRows.WithLabelValues(source).Set(float64(rows))
}

// RecordDatasetLoadDuration records how long a dataset load took.
func RecordDatasetLoadDuration(source string, ms float64) {
	globalManager.datasetLoadDuration.WithLabelValues(source).Observe(ms)
}

// RecordDatasetLoadError increments the load failure counter.
func RecordDatasetLoadError(source, reason string) {
	globalManager.datasetLoadErrors.WithLabelValues(source, reason).Inc()
}

// View Metrics Functions.

// RecordViewRendered increments the rendered views counter.
func RecordViewRendered(mode string) {
	globalManager.viewsRendered.WithLabelValues(mode).Inc()
}

// RecordViewEmpty increments the empty-state counter.
func RecordViewEmpty(mode string) {
	globalManager.viewsEmpty.WithLabelValues(mode).Inc()
}

// RecordViewLatency records view rendering latency.
func RecordViewLatency(mode string, latencyMs float64) {
	globalManager.viewLatency.WithLabelValues(mode).Observe(latencyMs)
}

// Chart Metrics Functions.

// RecordChartRendered increments the chart counter for kind.
func RecordChartRendered(kind string) {
	globalManager.chartsRendered.WithLabelValues(kind).Inc()
}

// RecordChartError increments the chart failure counter.
func RecordChartError(kind, reason string) {
	globalManager.chartErrors.WithLabelValues(kind, reason).Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
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
