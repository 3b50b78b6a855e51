// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Report metrics track the report variants that were produced
var (
	// ReportQueriesTotal counts report queries by family, scope and outcome
	ReportQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_queries_total",
			Help: "Total number of report queries",
		},
		[]string{"family", "scope", "status"}, // status: success, empty, error
	)

	// ReportRows measures how many records a report query returned
	ReportRows = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "report_rows",
			Help:    "Number of records returned by a report query",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"family"},
	)

	// ReportFilesTotal counts Markdown report files by outcome
	ReportFilesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_files_total",
			Help: "Total number of Markdown report files written",
		},
		[]string{"status"}, // status: success, failure, skipped
	)

	// ReportFileSize measures the size of written report files in bytes
	ReportFileSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "report_file_size_bytes",
			Help:    "Written Markdown report size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 4, 8),
		},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"family"},
	)

	// DBConnectAttemptsTotal counts connection attempts by result
	DBConnectAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_connect_attempts_total",
			Help: "Total number of database connection attempts",
		},
		[]string{"result"}, // result: success, failure
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	// DBBreakerState tracks the store circuit breaker state (0 closed, 1 half-open, 2 open)
	DBBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "db_circuit_breaker_state",
			Help: "Store circuit breaker state: 0 closed, 1 half-open, 2 open",
		},
		[]string{"breaker"},
	)

	// DBBreakerRejectionsTotal counts queries refused while the breaker was open
	DBBreakerRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_circuit_breaker_rejections_total",
			Help: "Total number of queries rejected by the store circuit breaker",
		},
		[]string{"breaker"},
	)
)
