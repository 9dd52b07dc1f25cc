package cache

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/jonwraymond/plmcache/observe"
	"github.com/jonwraymond/plmcache/sensitive"
)

// Cache is the state-aware cache facade. It routes every key to the
// partition matching its mutability class, scrubs sensitive data on the way
// in, and keeps statistics.
//
// Contract:
// - Concurrency: safe for concurrent use; one RWMutex per partition.
// - Errors: operations never fail; the failure mode is absence.
// - Ownership: Get returns a deep clone; Put clones the value it stores.
type Cache struct {
	config     Config
	partitions map[Class]*partition
	stats      *statsCollector
	filter     *sensitive.Filter
	clock      clockwork.Clock
	logger     observe.Logger
	metrics    observe.Metrics
}

// Option customizes a Cache.
type Option func(*Cache)

// WithClock replaces the wall clock. Tests use a fake clock to drive TTL
// expiry deterministically.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Cache) { c.clock = clock }
}

// WithLogger attaches a structured logger for cache events.
func WithLogger(logger observe.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

// WithMetrics attaches telemetry instruments for lookups and mutations.
func WithMetrics(metrics observe.Metrics) Option {
	return func(c *Cache) { c.metrics = metrics }
}

// WithFilter replaces the sensitive-data filter.
func WithFilter(filter *sensitive.Filter) Option {
	return func(c *Cache) { c.filter = filter }
}

// New creates a Cache with the given configuration.
func New(cfg Config, opts ...Option) *Cache {
	c := &Cache{
		config:  cfg,
		stats:   newStatsCollector(cfg.EnableStats),
		filter:  sensitive.NewFilter(),
		clock:   clockwork.NewRealClock(),
		logger:  observe.NewNoopLogger(),
		metrics: observe.NewNoopMetrics(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.partitions = make(map[Class]*partition, len(classOrder))
	for _, class := range classOrder {
		c.partitions[class] = newPartition(class, cfg.MaxSizePerClass, c.clock)
	}
	return c
}

// NewDefault creates a Cache with the default configuration.
func NewDefault() *Cache {
	return New(DefaultConfig())
}

// Get retrieves the value cached under key in the given scope. Returns
// (nil, false) on miss, expiry, or when the cache is disabled.
func (c *Cache) Get(ctx context.Context, cctx Context, key string) (any, bool) {
	if !c.config.Enabled {
		return nil, false
	}

	full := cctx.fullKey(key)
	class := Classify(full)
	meta := observe.OpMeta{Op: "get", Class: class.String(), Scope: cctx.Prefix()}

	value, ok := c.partitions[class].get(full)
	if ok {
		c.stats.recordHit()
		c.metrics.RecordLookup(ctx, meta, true)
		c.logger.Debug(ctx, "cache hit", observe.Field{Key: "key", Value: full})
		return cloneValue(value), true
	}

	c.stats.recordMiss()
	c.metrics.RecordLookup(ctx, meta, false)
	c.logger.Debug(ctx, "cache miss", observe.Field{Key: "key", Value: full})
	return nil, false
}

// Put caches value under key in the given scope. Sensitive keys are not
// cached at all; sensitive fields and substrings in the value are scrubbed
// before storage. No-op when the cache is disabled.
func (c *Cache) Put(ctx context.Context, cctx Context, key string, value any) {
	if !c.config.Enabled {
		return
	}

	if c.filter.ShouldSkipCaching(key) {
		c.logger.Debug(ctx, "skipping sensitive key", observe.Field{Key: "key", Value: key})
		return
	}

	full := cctx.fullKey(key)
	class := Classify(full)
	meta := observe.OpMeta{Op: "put", Class: class.String(), Scope: cctx.Prefix()}

	entry := &Entry{
		Data:         cloneValue(c.filter.FilterValue(value)),
		CachedAt:     c.clock.Now(),
		TTL:          c.config.TTLFor(class),
		Class:        class,
		LastAccessed: c.clock.Now(),
	}

	replaced, evicted := c.partitions[class].put(full, entry)
	kind := "insert"
	if replaced {
		kind = "replace"
	} else {
		c.stats.recordInsertion()
	}
	if evicted {
		c.stats.recordEvictions(1)
		c.metrics.RecordMutation(ctx, meta, "evict")
	}

	c.metrics.RecordMutation(ctx, meta, kind)
	c.logger.Debug(ctx, "cached value",
		observe.Field{Key: "key", Value: full},
		observe.Field{Key: "class", Value: class.String()},
	)
}

// Remove deletes the entry for key in the given scope, reporting whether an
// entry was present.
func (c *Cache) Remove(ctx context.Context, cctx Context, key string) bool {
	if !c.config.Enabled {
		return false
	}

	full := cctx.fullKey(key)
	class := Classify(full)

	_, ok := c.partitions[class].remove(full)
	if ok {
		c.stats.recordEvictions(1)
		meta := observe.OpMeta{Op: "remove", Class: class.String(), Scope: cctx.Prefix()}
		c.metrics.RecordMutation(ctx, meta, "remove")
	}
	return ok
}

// InvalidatePattern removes, across all partitions, every entry in the
// given scope whose key contains substr as a plain substring. Returns the
// number of entries removed. Partitions are swept one at a time in a fixed
// order; the sweep is atomic per partition but not across partitions.
func (c *Cache) InvalidatePattern(ctx context.Context, cctx Context, substr string) int {
	if !c.config.Enabled {
		return 0
	}

	full := cctx.Prefix() + ":" + substr
	removed := 0
	for _, class := range classOrder {
		removed += c.partitions[class].invalidateSubstring(full)
	}

	c.stats.recordInvalidations(removed)
	if removed > 0 {
		meta := observe.OpMeta{Op: "invalidate", Scope: cctx.Prefix()}
		c.metrics.RecordMutation(ctx, meta, "invalidate")
	}
	c.logger.Debug(ctx, "pattern invalidation",
		observe.Field{Key: "pattern", Value: substr},
		observe.Field{Key: "removed", Value: removed},
	)
	return removed
}

// InvalidateEntity flushes the entries for one entity: every key containing
// "<kind>:<id>" plus the "<kind>s:list" collection listing.
func (c *Cache) InvalidateEntity(ctx context.Context, cctx Context, kind, id string) int {
	removed := c.InvalidatePattern(ctx, cctx, kind+":"+id)
	if c.Remove(ctx, cctx, kind+"s:list") {
		removed++
	}
	return removed
}

// InvalidatePipeline flushes everything cached for one pipeline: its
// definition, runs, events, REST-style paths, and the stale list views.
func (c *Cache) InvalidatePipeline(ctx context.Context, cctx Context, pipelineID string) {
	c.InvalidatePattern(ctx, cctx, "pipeline:def:"+pipelineID)
	c.InvalidatePattern(ctx, cctx, "pipeline:runs:"+pipelineID)
	c.InvalidatePattern(ctx, cctx, "pipeline:events:"+pipelineID)
	c.InvalidatePattern(ctx, cctx, "pipelines/"+pipelineID)

	c.Remove(ctx, cctx, "pipelines:list")
	c.Remove(ctx, cctx, "runs:list")
}

// InvalidateRun flushes everything cached for one run plus the run list.
func (c *Cache) InvalidateRun(ctx context.Context, cctx Context, runID string) {
	c.InvalidatePattern(ctx, cctx, "run:"+runID)
	c.InvalidatePattern(ctx, cctx, "runs/"+runID)

	c.Remove(ctx, cctx, "runs:list")
}

// CleanupExpired sweeps every partition for time-expired entries and
// returns the total removed. Idempotent and safe to run on any schedule.
func (c *Cache) CleanupExpired() int {
	if !c.config.Enabled {
		return 0
	}

	removed := 0
	for _, class := range classOrder {
		removed += c.partitions[class].cleanupExpired()
	}
	return removed
}

// Size returns the total entry count across all partitions.
func (c *Cache) Size() int {
	total := 0
	for _, class := range classOrder {
		total += c.partitions[class].len()
	}
	return total
}

// Stats returns a snapshot of the cache counters and per-class sizes.
func (c *Cache) Stats() Stats {
	stats := c.stats.snapshot()
	stats.SizeByClass = make(map[Class]int, len(classOrder))
	for _, class := range classOrder {
		stats.SizeByClass[class] = c.partitions[class].len()
	}
	return stats
}

// ClearAll drops every entry in every partition.
func (c *Cache) ClearAll() {
	for _, class := range classOrder {
		c.partitions[class].clear()
	}
}

// Config returns the configuration the cache was built with.
func (c *Cache) Config() Config {
	return c.config
}
