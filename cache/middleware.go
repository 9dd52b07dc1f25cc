package cache

import (
	"context"
	"errors"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/plmcache/observe"
)

// Sentinel errors for the read-through middleware.
var (
	ErrNilCache  = errors.New("cache: cache is nil")
	ErrNilSource = errors.New("cache: source is nil")
)

// Source produces fresh values on cache miss. Implementations are the
// subprocess executor or the network API client.
type Source interface {
	// Fetch produces the value for key. Errors are returned to the caller
	// and never cached.
	Fetch(ctx context.Context, key string, args map[string]string) (any, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, key string, args map[string]string) (any, error)

// Fetch calls f.
func (f SourceFunc) Fetch(ctx context.Context, key string, args map[string]string) (any, error) {
	return f(ctx, key, args)
}

// Middleware is a read-through layer over the cache: hits are served from
// the cache, misses go to the Source and the result is cached. Concurrent
// misses for the same scoped key collapse into a single source fetch.
type Middleware struct {
	cache  *Cache
	source Source
	group  singleflight.Group
	logger observe.Logger
}

// MiddlewareOption customizes a Middleware.
type MiddlewareOption func(*Middleware)

// WithMiddlewareLogger attaches a structured logger.
func WithMiddlewareLogger(logger observe.Logger) MiddlewareOption {
	return func(m *Middleware) { m.logger = logger }
}

// NewMiddleware creates a read-through middleware over cache and source.
func NewMiddleware(c *Cache, source Source, opts ...MiddlewareOption) (*Middleware, error) {
	if c == nil {
		return nil, ErrNilCache
	}
	if source == nil {
		return nil, ErrNilSource
	}

	m := &Middleware{
		cache:  c,
		source: source,
		logger: observe.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// GetOrFetch returns the cached value for key, fetching it from the source
// on miss. Fetch errors are returned and not cached; the next call retries.
func (m *Middleware) GetOrFetch(ctx context.Context, cctx Context, key string, args map[string]string) (any, error) {
	if value, ok := m.cache.Get(ctx, cctx, key); ok {
		return value, nil
	}

	// Collapse concurrent misses for the same scoped key into one fetch.
	full := cctx.fullKey(key)
	value, err, shared := m.group.Do(full, func() (any, error) {
		// A concurrent fetch may have populated the cache while this call
		// waited its turn.
		if cached, ok := m.cache.Get(ctx, cctx, key); ok {
			return cached, nil
		}

		fetched, err := m.source.Fetch(ctx, key, args)
		if err != nil {
			return nil, err
		}

		m.cache.Put(ctx, cctx, key, fetched)
		return fetched, nil
	})
	if err != nil {
		m.logger.Debug(ctx, "source fetch failed",
			observe.Field{Key: "key", Value: key},
			observe.Field{Key: "error", Value: err.Error()},
		)
		return nil, err
	}

	if shared {
		m.logger.Debug(ctx, "fetch shared across waiters", observe.Field{Key: "key", Value: key})
	}
	return value, nil
}

// Warm pre-populates the cache for a scope: the pipeline list plus each
// given pipeline's definition. Fetch failures are collected; warming
// continues past them.
func (m *Middleware) Warm(ctx context.Context, cctx Context, pipelineIDs []string) error {
	var errs []error

	if _, err := m.GetOrFetch(ctx, cctx, PipelineListKey(), nil); err != nil {
		errs = append(errs, err)
	}

	for _, id := range pipelineIDs {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		if _, err := m.GetOrFetch(ctx, cctx, PipelineDefinitionKey(id), nil); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
