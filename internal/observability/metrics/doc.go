// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - Report query outcomes and row counts
//   - Markdown report file writes
//   - Database query and connection metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint when the metrics server is enabled.
//
// Example usage:
//
//	import "world-report/internal/observability/metrics"
//
//	func runReport(family, scope string) {
//	    start := time.Now()
//	    records, err := repo.Countries(ctx, ...)
//	    metrics.RecordDBQuery(family, time.Since(start))
//	    metrics.RecordReportQuery(family, scope, len(records), err)
//	}
package metrics
