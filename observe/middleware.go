package observe

import (
	"context"
	"time"
)

// FetchFunc is the signature for read-through source fetches.
// This is the standard function signature that Middleware wraps.
type FetchFunc func(ctx context.Context, key string, args map[string]string) (any, error)

// Middleware wraps read-through fetches with observability (tracing, metrics, logging).
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe FetchFunc.
//   - Context: Propagates context through tracing spans.
//   - Errors: Errors from wrapped function are recorded and propagated unchanged.
//   - Ownership: Fetched values are passed through without modification.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware with the given observability components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Wrap wraps a FetchFunc with tracing, metrics, and logging.
func (m *Middleware) Wrap(fn FetchFunc) FetchFunc {
	return func(ctx context.Context, key string, args map[string]string) (any, error) {
		meta := OpMeta{Op: "fetch"}

		// Start span
		ctx, span := m.tracer.StartSpan(ctx, meta)

		// Record start time
		start := time.Now()

		// Execute the fetch
		result, err := fn(ctx, key, args)

		// Calculate duration
		duration := time.Since(start)

		// End span (records error status if err != nil)
		m.tracer.EndSpan(span, err)

		// Record metrics
		m.metrics.RecordFetch(ctx, meta, duration, err)

		// Log the fetch; values are never logged, only the key
		opLogger := m.logger.WithOp(meta)
		fields := []Field{
			{Key: "key", Value: key},
			{Key: "duration_ms", Value: float64(duration.Milliseconds())},
		}

		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			opLogger.Error(ctx, "source fetch failed", fields...)
		} else {
			opLogger.Debug(ctx, "source fetch completed", fields...)
		}

		return result, err
	}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
// This is a convenience function for common use cases.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	tracer := NewTracer(obs.Tracer())

	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(tracer, metrics, obs.Logger()), nil
}
