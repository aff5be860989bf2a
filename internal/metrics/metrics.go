package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filestats_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "filestats_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "filestats_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Indexer metrics
var (
	ReindexRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filestats_reindex_runs_total",
			Help: "Total number of reindex passes by mode",
		},
		[]string{"mode"},
	)

	ReindexDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "filestats_reindex_duration_seconds",
			Help:    "Duration of reindex passes in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	ReindexIsRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "filestats_reindex_running",
			Help: "Whether a reindex pass is currently running (1) or not (0)",
		},
	)

	FilesScannedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filestats_files_scanned_total",
			Help: "Total number of files scanned across all passes",
		},
	)

	EntriesDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filestats_entries_deleted_total",
			Help: "Total number of cache entries removed across all passes",
		},
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "filestats_cache_entries",
			Help: "Number of entries in the stats cache after the last pass",
		},
	)
)

// Cache store metrics
var (
	CacheLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filestats_cache_loads_total",
			Help: "Total number of cache loads",
		},
		[]string{"status"},
	)

	CacheSavesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filestats_cache_saves_total",
			Help: "Total number of cache saves",
		},
		[]string{"status"},
	)
)

// Filesystem retry metrics for NFS resilience
var (
	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filestats_fs_retry_attempts_total",
			Help: "Total number of filesystem operation retries",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filestats_fs_retry_success_total",
			Help: "Total number of filesystem operations that succeeded after retrying",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filestats_fs_retry_failures_total",
			Help: "Total number of filesystem operations that failed after all retries",
		},
		[]string{"operation", "volume"},
	)

	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filestats_fs_stale_errors_total",
			Help: "Total number of NFS stale file handle errors observed",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "filestats_fs_operation_duration_seconds",
			Help:    "Duration of filesystem operations including retries",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"operation", "volume"},
	)
)
