package observe

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// TestMiddleware_PassesThroughResult verifies the wrapped fetch returns unchanged values.
func TestMiddleware_PassesThroughResult(t *testing.T) {
	mw := NewMiddleware(NewNoopTracer(), NewNoopMetrics(), &noopLogger{})

	want := map[string]any{"id": "p1"}
	fn := mw.Wrap(func(ctx context.Context, key string, args map[string]string) (any, error) {
		return want, nil
	})

	got, err := fn(context.Background(), "pipeline:def:p1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := got.(map[string]any)
	if !ok || m["id"] != "p1" {
		t.Errorf("expected fetched value to pass through, got %v", got)
	}
}

// TestMiddleware_PropagatesError verifies fetch errors pass through unchanged.
func TestMiddleware_PropagatesError(t *testing.T) {
	mw := NewMiddleware(NewNoopTracer(), NewNoopMetrics(), &noopLogger{})

	wantErr := errors.New("cli exited 1")
	fn := mw.Wrap(func(ctx context.Context, key string, args map[string]string) (any, error) {
		return nil, wantErr
	})

	_, err := fn(context.Background(), "runs:list", nil)
	if !errors.Is(err, wantErr) {
		t.Errorf("expected wrapped error %v, got %v", wantErr, err)
	}
}

// TestMiddleware_RecordsSpan verifies a fetch span is emitted.
func TestMiddleware_RecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	mw := NewMiddleware(NewTracer(tp.Tracer("test")), NewNoopMetrics(), &noopLogger{})

	fn := mw.Wrap(func(ctx context.Context, key string, args map[string]string) (any, error) {
		return "v", nil
	})
	if _, err := fn(context.Background(), "tasks:list", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != "cache.fetch" {
		t.Errorf("expected span 'cache.fetch', got %q", spans[0].Name())
	}
}

// TestMiddleware_LogsKeyNotValue verifies fetched values never reach the log.
func TestMiddleware_LogsKeyNotValue(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("debug", &buf)
	mw := NewMiddleware(NewNoopTracer(), NewNoopMetrics(), logger)

	fn := mw.Wrap(func(ctx context.Context, key string, args map[string]string) (any, error) {
		return map[string]any{"api_token": "supersecret123"}, nil
	})
	if _, err := fn(context.Background(), "pipeline:def:p1", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "pipeline:def:p1") {
		t.Errorf("expected key in log output, got: %s", output)
	}
	if strings.Contains(output, "supersecret123") {
		t.Errorf("fetched value leaked into log output: %s", output)
	}
}

// TestMiddlewareFromObserver verifies the convenience constructor.
func TestMiddlewareFromObserver(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{ServiceName: "plmcache-test"})
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}
	defer obs.Shutdown(context.Background())

	mw, err := MiddlewareFromObserver(obs)
	if err != nil {
		t.Fatalf("MiddlewareFromObserver failed: %v", err)
	}
	if mw == nil {
		t.Fatal("expected non-nil middleware")
	}
}
