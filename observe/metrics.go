package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records cache operation metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordLookup records a cache lookup and whether it hit.
	RecordLookup(ctx context.Context, meta OpMeta, hit bool)

	// RecordMutation records a cache mutation of the given kind
	// (insert, remove, evict, invalidate).
	RecordMutation(ctx context.Context, meta OpMeta, kind string)

	// RecordFetch records a read-through source fetch with duration and error status.
	RecordFetch(ctx context.Context, meta OpMeta, duration time.Duration, err error)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter         metric.Meter
	lookupCount   metric.Int64Counter
	mutationCount metric.Int64Counter
	fetchErrors   metric.Int64Counter
	fetchDuration metric.Float64Histogram
}

// NewMetrics creates a new Metrics instance with the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	lookupCount, err := meter.Int64Counter(
		"cache.lookups",
		metric.WithDescription("Total number of cache lookups"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	mutationCount, err := meter.Int64Counter(
		"cache.mutations",
		metric.WithDescription("Total number of cache mutations by kind"),
		metric.WithUnit("{mutation}"),
	)
	if err != nil {
		return nil, err
	}

	fetchErrors, err := meter.Int64Counter(
		"cache.fetch.errors",
		metric.WithDescription("Total number of read-through fetch errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	fetchDuration, err := meter.Float64Histogram(
		"cache.fetch.duration_ms",
		metric.WithDescription("Read-through fetch duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:         meter,
		lookupCount:   lookupCount,
		mutationCount: mutationCount,
		fetchErrors:   fetchErrors,
		fetchDuration: fetchDuration,
	}, nil
}

func opAttrs(meta OpMeta) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("cache.op", meta.Op),
	}
	if meta.Class != "" {
		attrs = append(attrs, attribute.String("cache.class", meta.Class))
	}
	return attrs
}

// RecordLookup records a cache lookup with its hit/miss outcome.
func (m *metricsImpl) RecordLookup(ctx context.Context, meta OpMeta, hit bool) {
	attrs := append(opAttrs(meta), attribute.Bool("cache.hit", hit))
	m.lookupCount.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordMutation records a cache mutation by kind.
func (m *metricsImpl) RecordMutation(ctx context.Context, meta OpMeta, kind string) {
	attrs := append(opAttrs(meta), attribute.String("cache.kind", kind))
	m.mutationCount.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordFetch records metrics for a read-through source fetch.
func (m *metricsImpl) RecordFetch(ctx context.Context, meta OpMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(opAttrs(meta)...)

	if err != nil {
		m.fetchErrors.Add(ctx, 1, opt)
	}

	m.fetchDuration.Record(ctx, float64(duration.Milliseconds()), opt)
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (m *noopMetrics) RecordLookup(ctx context.Context, meta OpMeta, hit bool)      {}
func (m *noopMetrics) RecordMutation(ctx context.Context, meta OpMeta, kind string) {}
func (m *noopMetrics) RecordFetch(context.Context, OpMeta, time.Duration, error)    {}

// NewNoopMetrics creates a Metrics implementation that discards everything.
func NewNoopMetrics() Metrics {
	return &noopMetrics{}
}
