package metrics

import (
	"time"
)

// Query outcome labels.
const (
	StatusSuccess = "success"
	StatusEmpty   = "empty"
	StatusError   = "error"
)

// RecordReportQuery records the outcome of one report query.
// A query that succeeded without rows is recorded as empty.
func RecordReportQuery(family, scope string, rows int, err error) {
	status := StatusSuccess
	switch {
	case err != nil:
		status = StatusError
	case rows == 0:
		status = StatusEmpty
	}
	ReportQueriesTotal.WithLabelValues(family, scope, status).Inc()
	if err == nil {
		ReportRows.WithLabelValues(family).Observe(float64(rows))
	}
}

// RecordDBQuery records the duration of a database query for a report family.
func RecordDBQuery(family string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(family).Observe(duration.Seconds())
}

// RecordDBConnectAttempt records one connection attempt.
func RecordDBConnectAttempt(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	DBConnectAttemptsTotal.WithLabelValues(result).Inc()
}

// UpdateDBConnectionStats updates database connection pool metrics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}

// RecordBreakerState records the state of a circuit breaker. state follows
// gobreaker's numbering: 0 closed, 1 half-open, 2 open.
func RecordBreakerState(breaker string, state int) {
	DBBreakerState.WithLabelValues(breaker).Set(float64(state))
}

// RecordBreakerRejection records a query refused by an open breaker.
func RecordBreakerRejection(breaker string) {
	DBBreakerRejectionsTotal.WithLabelValues(breaker).Inc()
}

// RecordReportFileWritten records a successfully written report file.
func RecordReportFileWritten(size int) {
	ReportFilesTotal.WithLabelValues("success").Inc()
	ReportFileSize.Observe(float64(size))
}

// RecordReportFileFailed records a report file that could not be written.
func RecordReportFileFailed() {
	ReportFilesTotal.WithLabelValues("failure").Inc()
}

// RecordReportFileSkipped records a report that produced no file because it
// had no rows.
func RecordReportFileSkipped() {
	ReportFilesTotal.WithLabelValues("skipped").Inc()
}
