// Package metrics provides Prometheus metrics for the gridiron analytics service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus metric exposed by the service and the
// batch job. Metrics live on a custom registry so the default Go collector
// noise stays out of /healthz.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// ETL pipeline metrics
	playsLoaded      prometheus.Gauge
	playsDropped     prometheus.Gauge
	artifactsWritten *prometheus.CounterVec
	etlRunDuration   prometheus.Histogram

	// Document store sync metrics
	docsSynced   *prometheus.CounterVec
	syncCommits  *prometheus.CounterVec
	syncFailures *prometheus.CounterVec

	// Summary generation metrics
	summariesGenerated prometheus.Counter
	summariesFallback  prometheus.Counter
	summaryLatency     prometheus.Histogram

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec

	// Service state
	snapshotTeams    prometheus.Gauge
	snapshotLoadUnix prometheus.Gauge

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global manager on a custom registry, initialized at import time so every
// package can record without plumbing the manager around.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // shared registry for /healthz

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "gridiron",
		subsystem:        "analytics",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.playsLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "plays_loaded",
		Help:      "Number of plays accepted from the last dataset load",
	})

	m.playsDropped = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "plays_dropped",
		Help:      "Number of raw rows rejected during dataset validation",
	})

	m.artifactsWritten = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "artifacts_written_total",
			Help:      "JSON artifacts written, by artifact name",
		},
		[]string{"artifact"},
	)

	m.etlRunDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "etl_run_duration_seconds",
		Help:      "Wall-clock duration of full ETL runs",
		Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
	})

	m.docsSynced = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "docstore_docs_synced_total",
			Help:      "Documents written to the document store, by collection",
		},
		[]string{"collection"},
	)

	m.syncCommits = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "docstore_batch_commits_total",
			Help:      "Batch commits issued to the document store, by collection",
		},
		[]string{"collection"},
	)

	m.syncFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "docstore_sync_failures_total",
			Help:      "Failed document store syncs, by collection",
		},
		[]string{"collection"},
	)

	m.summariesGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "summaries_generated_total",
		Help:      "Team summaries produced by the generative-text service",
	})

	m.summariesFallback = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "summaries_fallback_total",
		Help:      "Team summaries served from the deterministic fallback template",
	})

	m.summaryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "summary_latency_milliseconds",
		Help:      "Latency of generative summary calls in milliseconds",
		Buckets:   []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint, method and status code",
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

	m.httpErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_errors_total",
			Help:      "HTTP error responses by endpoint and error type",
		},
		[]string{"endpoint", "error_type"},
	)

	m.snapshotTeams = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_teams",
		Help:      "Number of teams present in the loaded snapshot",
	})

	m.snapshotLoadUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_load_timestamp_seconds",
		Help:      "Unix time of the last snapshot load",
	})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current allocated heap bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})
}

// UpdatePlaysLoaded sets the accepted play count from the last load.
func UpdatePlaysLoaded(count int) {
	globalManager.playsLoaded.Set(float64(count))
}

// UpdatePlaysDropped sets the rejected row count from the last load.
func UpdatePlaysDropped(count int) {
	globalManager.playsDropped.Set(float64(count))
}

// RecordArtifactWritten counts a written JSON artifact.
func RecordArtifactWritten(artifact string) {
	globalManager.artifactsWritten.WithLabelValues(artifact).Inc()
}

// RecordETLRunDuration records the duration of a full ETL run in seconds.
func RecordETLRunDuration(seconds float64) {
	globalManager.etlRunDuration.Observe(seconds)
}

// RecordDocsSynced counts documents written to a collection.
func RecordDocsSynced(collection string, count int) {
	globalManager.docsSynced.WithLabelValues(collection).Add(float64(count))
}

// RecordSyncCommit counts a batch commit against a collection.
func RecordSyncCommit(collection string) {
	globalManager.syncCommits.WithLabelValues(collection).Inc()
}

// RecordSyncFailure counts a failed sync for a collection.
func RecordSyncFailure(collection string) {
	globalManager.syncFailures.WithLabelValues(collection).Inc()
}

// RecordSummaryGenerated counts a summary produced by the model.
func RecordSummaryGenerated() {
	globalManager.summariesGenerated.Inc()
}

// RecordSummaryFallback counts a summary served from the template.
func RecordSummaryFallback() {
	globalManager.summariesFallback.Inc()
}

// RecordSummaryLatency records generative call latency in milliseconds.
func RecordSummaryLatency(latencyMs float64) {
	globalManager.summaryLatency.Observe(latencyMs)
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordHTTPError counts an error response.
func RecordHTTPError(endpoint, errorType string) {
	globalManager.httpErrors.WithLabelValues(endpoint, errorType).Inc()
}

// UpdateSnapshotTeams sets the team count of the loaded snapshot.
func UpdateSnapshotTeams(count int) {
	globalManager.snapshotTeams.Set(float64(count))
}

// UpdateSnapshotLoadTime sets the unix time of the last snapshot load.
func UpdateSnapshotLoadTime(unix int64) {
	globalManager.snapshotLoadUnix.Set(float64(unix))
}

// UpdateSystemMemoryUsage sets current heap usage.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry exposes the custom registry for the /healthz handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
