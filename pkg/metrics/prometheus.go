// Package metrics provides Prometheus metrics for the team selector service.
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

	// Match pipeline metrics
	matchesRecorded  prometheus.Counter
	matchesDuplicate prometheus.Counter
	matchesRejected  prometheus.Counter
	ratingUpdates    prometheus.Counter
	matchApplyMs     prometheus.Histogram

	// Selection and partitioning metrics
	selectionRequests  prometheus.Counter
	partitionRequests  prometheus.Counter
	partitionImbalance prometheus.Histogram

	// Pool state gauges
	poolSize  prometheus.Gauge
	topRating prometheus.Gauge

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec

	// System performance metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "bts",
		subsystem:        "engine",
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

	m.matchesRecorded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_recorded_total",
		Help:      "Total number of match outcomes applied to the pool",
	})

	m.matchesDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_duplicate_total",
		Help:      "Total number of match submissions rejected as replays",
	})

	m.matchesRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_rejected_total",
		Help:      "Total number of match submissions rejected as invalid",
	})

	m.ratingUpdates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rating_updates_total",
		Help:      "Total number of per-player rating updates",
	})

	m.matchApplyMs = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_apply_milliseconds",
		Help:      "Histogram of match apply latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.selectionRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "selection_requests_total",
		Help:      "Total number of fairness-based candidate selections",
	})

	m.partitionRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "partition_requests_total",
		Help:      "Total number of team partition searches",
	})

	m.partitionImbalance = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "partition_imbalance",
		Help:      "Histogram of the winning split's inter-team strength gap",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2},
	})

	m.poolSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pool_size",
		Help:      "Current number of players in the pool",
	})

	m.topRating = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "top_rating",
		Help:      "Rating of the current rank-1 player",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "errors_total",
		Help:      "Total number of HTTP error responses by endpoint",
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_usage_bytes",
		Help:      "Current heap allocation in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutine_count",
		Help:      "Current number of goroutines",
	})
}

// RecordMatchRecorded increments the applied-match counter.
func RecordMatchRecorded() {
	globalManager.matchesRecorded.Inc()
}

// RecordDuplicateMatch increments the replayed-match counter.
func RecordDuplicateMatch() {
	globalManager.matchesDuplicate.Inc()
}

// RecordRejectedMatch increments the invalid-match counter.
func RecordRejectedMatch() {
	globalManager.matchesRejected.Inc()
}

// RecordRatingUpdates adds n per-player rating updates.
func RecordRatingUpdates(n int) {
	globalManager.ratingUpdates.Add(float64(n))
}

// RecordMatchApplyLatency observes one match apply duration in milliseconds.
func RecordMatchApplyLatency(latencyMs float64) {
	globalManager.matchApplyMs.Observe(latencyMs)
}

// RecordSelectionRequest increments the selection counter.
func RecordSelectionRequest() {
	globalManager.selectionRequests.Inc()
}

// RecordPartitionRequest increments the partition counter.
func RecordPartitionRequest() {
	globalManager.partitionRequests.Inc()
}

// RecordPartitionImbalance observes the chosen split's strength gap.
func RecordPartitionImbalance(gap float64) {
	globalManager.partitionImbalance.Observe(gap)
}

// UpdatePoolSize sets the pool size gauge.
func UpdatePoolSize(size int) {
	globalManager.poolSize.Set(float64(size))
}

// UpdateTopRating sets the rank-1 rating gauge.
func UpdateTopRating(rating int) {
	globalManager.topRating.Set(float64(rating))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint records an error response for an endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom registry used for exposition.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
