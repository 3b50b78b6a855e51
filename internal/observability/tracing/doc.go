// Package tracing provides OpenTelemetry tracing integration.
//
// Every report statement runs inside a client span carrying the report
// family, the SQL text and the number of rows returned. Spans go to the
// globally registered tracer provider; without one they are no-ops.
//
// Example usage:
//
//	ctx, span := tracing.StartQuerySpan(ctx, "country", stmt.SQL)
//	rows, err := run(ctx)
//	tracing.EndQuerySpan(span, rows, err)
package tracing
