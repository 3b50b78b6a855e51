// Package observability groups the structured logging, Prometheus metrics
// and OpenTelemetry tracing used by the report tool.
//
// Subpackages:
//   - logging: slog loggers, context propagation and invocation ids
//   - metrics: Prometheus collectors for report queries, store access and report files
//   - tracing: one span per executed report statement
//
// Example usage:
//
//	import (
//	    "world-report/internal/observability/logging"
//	    "world-report/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewTextLogger()
//	    logger.Info("application started")
//
//	    metrics.RecordReportFileWritten(512)
//	}
package observability
