package observe

import (
	"context"
	"errors"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func newTestTracer() (Tracer, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return NewTracer(tp.Tracer("test")), recorder
}

// TestOpMeta_SpanName verifies deterministic span naming.
func TestOpMeta_SpanName(t *testing.T) {
	cases := []struct {
		meta OpMeta
		want string
	}{
		{OpMeta{Op: "get"}, "cache.get"},
		{OpMeta{Op: "put", Class: "immutable"}, "cache.put"},
		{OpMeta{Op: "invalidate"}, "cache.invalidate"},
	}
	for _, c := range cases {
		if got := c.meta.SpanName(); got != c.want {
			t.Errorf("SpanName() = %q, want %q", got, c.want)
		}
	}
}

// TestTracer_StartEndSpan verifies spans are recorded with operation attributes.
func TestTracer_StartEndSpan(t *testing.T) {
	tracer, recorder := newTestTracer()

	_, span := tracer.StartSpan(context.Background(), OpMeta{
		Op:    "get",
		Class: "dynamic",
		Scope: "user:u:org:o:env:e",
	})
	tracer.EndSpan(span, nil)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != "cache.get" {
		t.Errorf("expected span name 'cache.get', got %q", spans[0].Name())
	}

	attrs := make(map[string]any)
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	if attrs["cache.op"] != "get" {
		t.Errorf("expected cache.op='get', got %v", attrs["cache.op"])
	}
	if attrs["cache.class"] != "dynamic" {
		t.Errorf("expected cache.class='dynamic', got %v", attrs["cache.class"])
	}
}

// TestTracer_EndSpanRecordsError verifies error status on failed operations.
func TestTracer_EndSpanRecordsError(t *testing.T) {
	tracer, recorder := newTestTracer()

	_, span := tracer.StartSpan(context.Background(), OpMeta{Op: "fetch"})
	tracer.EndSpan(span, errors.New("source unavailable"))

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Status().Description != "source unavailable" {
		t.Errorf("expected error status description, got %q", spans[0].Status().Description)
	}

	var errored bool
	for _, kv := range spans[0].Attributes() {
		if string(kv.Key) == "cache.error" && kv.Value.AsBool() {
			errored = true
		}
	}
	if !errored {
		t.Error("expected cache.error=true attribute")
	}
}

// TestNoopTracer_NoPanic verifies the noop tracer is callable.
func TestNoopTracer_NoPanic(t *testing.T) {
	tracer := NewNoopTracer()
	ctx, span := tracer.StartSpan(context.Background(), OpMeta{Op: "get"})
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
	var _ trace.Span = span
	tracer.EndSpan(span, nil)
	tracer.EndSpan(span, errors.New("ignored"))
}
