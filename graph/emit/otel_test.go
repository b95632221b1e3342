package emit

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func otelTestSetup(t *testing.T) (*OTelEmitter, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return NewOTelEmitter(otel.Tracer("test")), exporter
}

func TestOTelEmitter(t *testing.T) {
	emitter, exporter := otelTestSetup(t)

	emitter.Emit(Event{
		RunID:  "run-001",
		Step:   1,
		NodeID: "node-abc",
		Kind:   "SOLID_COLOR",
		Msg:    MsgNodeEnd,
		Meta:   map[string]any{"duration_ms": int64(7), "from_cache": false},
	})

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	span := spans[0]
	if span.Name != MsgNodeEnd {
		t.Errorf("span name = %q, want %q", span.Name, MsgNodeEnd)
	}

	attrs := make(map[string]any, len(span.Attributes))
	for _, kv := range span.Attributes {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	if attrs["imageflow.run_id"] != "run-001" {
		t.Errorf("run_id attribute = %v", attrs["imageflow.run_id"])
	}
	if attrs["imageflow.node_kind"] != "SOLID_COLOR" {
		t.Errorf("node_kind attribute = %v", attrs["imageflow.node_kind"])
	}
	if attrs["imageflow.duration_ms"] != int64(7) {
		t.Errorf("duration_ms attribute = %v", attrs["imageflow.duration_ms"])
	}
}

func TestOTelEmitterErrorStatus(t *testing.T) {
	emitter, exporter := otelTestSetup(t)

	emitter.Emit(Event{
		RunID:  "run-001",
		NodeID: "node-abc",
		Msg:    MsgNodeError,
		Meta:   map[string]any{"error": "missing required input"},
	})

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("status = %v, want error", spans[0].Status.Code)
	}
	if spans[0].Status.Description != "missing required input" {
		t.Errorf("description = %q", spans[0].Status.Description)
	}
}
