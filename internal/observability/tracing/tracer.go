package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName identifies spans created by this application.
const TracerName = "world-report"

// GetTracer returns the tracer of the currently registered provider.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// StartQuerySpan starts a client span for one report statement.
func StartQuerySpan(ctx context.Context, family, statement string) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "report.query "+family,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("report.family", family),
			attribute.String("db.statement", statement),
		),
	)
}

// EndQuerySpan records the outcome of a query span and ends it.
func EndQuerySpan(span trace.Span, rows int, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("db.rows", rows))
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
