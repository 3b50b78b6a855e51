package tracing

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupExporter(t *testing.T) (*tracetest.InMemoryExporter, *sdktrace.TracerProvider) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(sdktrace.NewTracerProvider()) })
	return exporter, tp
}

func TestQuerySpan_Success(t *testing.T) {
	exporter, tp := setupExporter(t)

	_, span := StartQuerySpan(context.Background(), "country", "SELECT 1")
	EndQuerySpan(span, 7, nil)
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0]
	if s.Name != "report.query country" {
		t.Errorf("expected span name 'report.query country', got '%s'", s.Name)
	}
	if s.Status.Code != codes.Ok {
		t.Errorf("expected status Ok, got %v", s.Status.Code)
	}

	found := map[string]bool{}
	for _, attr := range s.Attributes {
		switch attr.Key {
		case "report.family":
			found["family"] = attr.Value.AsString() == "country"
		case "db.statement":
			found["statement"] = attr.Value.AsString() == "SELECT 1"
		case "db.rows":
			found["rows"] = attr.Value.AsInt64() == 7
		}
	}
	for _, key := range []string{"family", "statement", "rows"} {
		if !found[key] {
			t.Errorf("attribute %s missing or wrong", key)
		}
	}
}

func TestQuerySpan_Error(t *testing.T) {
	exporter, tp := setupExporter(t)

	_, span := StartQuerySpan(context.Background(), "city", "SELECT 1")
	EndQuerySpan(span, 0, errors.New("boom"))
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("expected status Error, got %v", spans[0].Status.Code)
	}
	if len(spans[0].Events) == 0 {
		t.Error("expected the error to be recorded as an event")
	}
}
