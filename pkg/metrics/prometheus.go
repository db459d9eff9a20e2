// Package metrics provides Prometheus metrics for the MONIKER username service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the MONIKER service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Core Business Metrics - name resolution and suggestion quality
	resolutionsTotal     prometheus.Counter
	resolutionLatency    prometheus.Histogram
	suggestionsTotal     prometheus.Counter
	suggestionLatency    prometheus.Histogram
	matchScore           prometheus.Histogram
	matchScanLatency     prometheus.Histogram
	candidatesGenerated  prometheus.Counter
	usernamesClaimed     prometheus.Counter
	usernamesFilteredOut prometheus.Counter

	// Memoization cache metrics
	matchCacheHits   prometheus.Counter
	matchCacheMisses prometheus.Counter
	matchCacheSize   prometheus.Gauge

	// Dataset / store gauges
	datasetRows    prometheus.Gauge
	takenUsernames prometheus.Gauge

	// LLM adapter metrics
	llmRequests prometheus.Counter
	llmErrors   prometheus.Counter
	llmLatency  prometheus.Histogram

	// Store metrics
	storeQueryLatency prometheus.Histogram

	// Batch pipeline metrics
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueues      prometheus.Counter
	queueDequeues      prometheus.Counter
	queueEnqueueErrors prometheus.Counter
	batchJobsProcessed prometheus.Counter
	batchJobsDuplicate prometheus.Counter
	workerActiveCount  prometheus.Gauge
	workerLatency      prometheus.Histogram
	workerErrors       prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Enhanced Error Metrics - detailed error tracking
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
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
		namespace:        "moniker",
		subsystem:        "usernames",
		histogramBuckets: prometheus.DefBuckets,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // metric declarations are inherently long
	auto := promauto.With(m.registry)

	// Core business metrics
	m.resolutionsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "resolutions_total",
		Help:      "Total number of name resolutions served",
	})
	m.resolutionLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "resolution_latency_milliseconds",
		Help:      "Histogram of full two-column resolution latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})
	m.suggestionsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "suggestions_total",
		Help:      "Total number of suggestion pipelines completed",
	})
	m.suggestionLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "suggestion_latency_milliseconds",
		Help:      "Histogram of end-to-end suggestion latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})
	m.matchScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_score",
		Help:      "Histogram of best match scores on the 0-100 similarity scale",
		Buckets:   prometheus.LinearBuckets(0, 10, 11),
	})
	m.matchScanLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_scan_latency_milliseconds",
		Help:      "Histogram of single-column linear scan latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})
	m.candidatesGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "candidates_generated_total",
		Help:      "Total number of username candidates generated",
	})
	m.usernamesClaimed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "usernames_claimed_total",
		Help:      "Total number of usernames recorded as taken via claims",
	})
	m.usernamesFilteredOut = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "usernames_filtered_total",
		Help:      "Total number of candidates dropped because they were already taken",
	})

	// Cache metrics
	m.matchCacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_cache_hits_total",
		Help:      "Total number of memoized scans served from the cache",
	})
	m.matchCacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_cache_misses_total",
		Help:      "Total number of scans computed fresh",
	})
	m.matchCacheSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_cache_size",
		Help:      "Current number of memoized scan results",
	})

	// Dataset / store gauges
	m.datasetRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_rows",
		Help:      "Number of rows in the loaded reference dataset",
	})
	m.takenUsernames = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "taken_usernames",
		Help:      "Number of usernames recorded in the store",
	})

	// LLM adapter metrics
	m.llmRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "llm_requests_total",
		Help:      "Total number of chat completion requests issued",
	})
	m.llmErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "llm_errors_total",
		Help:      "Total number of failed chat completion requests",
	})
	m.llmLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "llm_latency_milliseconds",
		Help:      "Histogram of chat completion latency in milliseconds",
		Buckets:   prometheus.ExponentialBuckets(10, 2, 12),
	})

	// Store metrics
	m.storeQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_query_latency_milliseconds",
		Help:      "Histogram of username store query latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	// Batch pipeline metrics
	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_queue_size",
		Help:      "Current number of queued batch jobs",
	})
	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_queue_capacity",
		Help:      "Configured batch queue capacity",
	})
	m.queueUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_queue_utilization",
		Help:      "Batch queue utilization ratio (0-1)",
	})
	m.queueEnqueues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_queue_enqueues_total",
		Help:      "Total number of jobs enqueued",
	})
	m.queueDequeues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_queue_dequeues_total",
		Help:      "Total number of jobs dequeued",
	})
	m.queueEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_queue_enqueue_errors_total",
		Help:      "Total number of rejected enqueues (backpressure or closed queue)",
	})
	m.batchJobsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_jobs_processed_total",
		Help:      "Total number of batch jobs completed",
	})
	m.batchJobsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_jobs_duplicate_total",
		Help:      "Total number of batch jobs skipped as duplicates",
	})
	m.workerActiveCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_active_count",
		Help:      "Number of active batch workers",
	})
	m.workerLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_processing_latency_milliseconds",
		Help:      "Histogram of per-job worker processing latency in milliseconds",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14),
	})
	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_errors_total",
		Help:      "Total number of failed batch jobs",
	})

	// HTTP performance metrics
	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint, method, and status",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"endpoint", "method", "status"})

	// Error tracking
	m.errorRateByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_component_total",
		Help:      "Total errors by component and error type",
	}, []string{"component", "error_type"})
	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_type_total",
		Help:      "Total errors by error type and severity",
	}, []string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "Total errors by endpoint, method, and error type",
	}, []string{"endpoint", "method", "error_type"})

	// System metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current allocated heap memory in bytes",
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
		Help:      "Histogram of average GC pause time in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// GetRegistry returns the custom Prometheus registry used by the global
// manager, for serving via promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers delegating to the global manager.

// RecordResolution records a completed name resolution and its latency.
func RecordResolution(latencyMs float64) {
	globalManager.resolutionsTotal.Inc()
	globalManager.resolutionLatency.Observe(latencyMs)
}

// RecordSuggestion records a completed suggestion pipeline and its latency.
func RecordSuggestion(latencyMs float64) {
	globalManager.suggestionsTotal.Inc()
	globalManager.suggestionLatency.Observe(latencyMs)
}

// RecordMatchScore records the best score of a scan.
func RecordMatchScore(score float64) {
	globalManager.matchScore.Observe(score)
}

// RecordMatchScanLatency records a single-column scan latency.
func RecordMatchScanLatency(latencyMs float64) {
	globalManager.matchScanLatency.Observe(latencyMs)
}

// RecordCandidatesGenerated adds n to the generated candidate counter.
func RecordCandidatesGenerated(n int) {
	globalManager.candidatesGenerated.Add(float64(n))
}

// RecordUsernameClaimed increments the claimed username counter.
func RecordUsernameClaimed() {
	globalManager.usernamesClaimed.Inc()
}

// RecordUsernamesFilteredOut adds n to the taken-candidate counter.
func RecordUsernamesFilteredOut(n int) {
	globalManager.usernamesFilteredOut.Add(float64(n))
}

// RecordMatchCacheHit increments the memoization hit counter.
func RecordMatchCacheHit() {
	globalManager.matchCacheHits.Inc()
}

// RecordMatchCacheMiss increments the memoization miss counter.
func RecordMatchCacheMiss() {
	globalManager.matchCacheMisses.Inc()
}

// UpdateMatchCacheSize sets the current memoization cache size.
func UpdateMatchCacheSize(n int) {
	globalManager.matchCacheSize.Set(float64(n))
}

// UpdateDatasetRows sets the loaded dataset row count.
func UpdateDatasetRows(n int) {
	globalManager.datasetRows.Set(float64(n))
}

// UpdateTakenUsernames sets the stored username count.
func UpdateTakenUsernames(n int) {
	globalManager.takenUsernames.Set(float64(n))
}

// RecordLLMRequest records a chat completion request and its latency.
func RecordLLMRequest(latencyMs float64) {
	globalManager.llmRequests.Inc()
	globalManager.llmLatency.Observe(latencyMs)
}

// RecordLLMError increments the chat completion error counter.
func RecordLLMError() {
	globalManager.llmErrors.Inc()
}

// RecordStoreQueryLatency records a username store query latency.
func RecordStoreQueryLatency(latencyMs float64) {
	globalManager.storeQueryLatency.Observe(latencyMs)
}

// UpdateQueueSize sets the current batch queue length.
func UpdateQueueSize(n int) {
	globalManager.queueSize.Set(float64(n))
}

// UpdateQueueCapacity sets the configured batch queue capacity.
func UpdateQueueCapacity(n int) {
	globalManager.queueCapacity.Set(float64(n))
}

// UpdateQueueUtilization sets the batch queue utilization ratio.
func UpdateQueueUtilization(ratio float64) {
	globalManager.queueUtilization.Set(ratio)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueues.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeues.Inc()
}

// RecordQueueEnqueueError increments the rejected-enqueue counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// RecordBatchJobProcessed increments the completed batch job counter.
func RecordBatchJobProcessed() {
	globalManager.batchJobsProcessed.Inc()
}

// RecordBatchJobDuplicate increments the duplicate batch job counter.
func RecordBatchJobDuplicate() {
	globalManager.batchJobsDuplicate.Inc()
}

// UpdateWorkerActiveCount sets the active worker gauge.
func UpdateWorkerActiveCount(n int) {
	globalManager.workerActiveCount.Set(float64(n))
}

// RecordWorkerProcessingLatency records a per-job worker latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerLatency.Observe(latencyMs)
}

// RecordWorkerError increments the failed batch job counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// RecordHTTPRequest records one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}

// RecordErrorByComponent records an error attributed to a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error surfaced at an HTTP endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the allocated heap gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(n int) {
	globalManager.systemGoroutineCount.Set(float64(n))
}

// RecordSystemGCPauseTime records an average GC pause observation.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}
