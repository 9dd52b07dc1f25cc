package invalidation

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/jonwraymond/plmcache/cache"
	"github.com/jonwraymond/plmcache/observe"
)

// ErrNilCache is returned when an Engine is constructed without a cache.
var ErrNilCache = errors.New("invalidation: cache is nil")

// Result reports one processed operation.
type Result struct {
	// EntriesInvalidated is the number of cache entries actually removed.
	EntriesInvalidated int

	// MatchedPatterns lists the operation patterns that fired, for audit.
	MatchedPatterns []string

	// Errors collects failure descriptions. Processing continues past
	// individual failures.
	Errors []string
}

// Engine consumes (operation, parameters) events and flushes the cache
// entries the operation stales.
//
// Contract:
// - Concurrency: safe for concurrent use; the rule registry has its own lock.
// - Errors: Process never fails; failures land in the Result and counters.
// - Idempotence: processing the same operation twice leaves the same state.
type Engine struct {
	cache *cache.Cache

	mu       sync.RWMutex
	registry map[string][]Rule

	stats  *statsCollector
	clock  clockwork.Clock
	logger observe.Logger
}

// EngineOption customizes an Engine.
type EngineOption func(*Engine)

// WithLogger attaches a structured logger.
func WithLogger(logger observe.Logger) EngineOption {
	return func(e *Engine) { e.logger = logger }
}

// WithClock replaces the wall clock used for deferred rules.
func WithClock(clock clockwork.Clock) EngineOption {
	return func(e *Engine) { e.clock = clock }
}

// NewEngine creates an Engine over the given cache, pre-loaded with the
// default rule registry.
func NewEngine(c *cache.Cache, opts ...EngineOption) (*Engine, error) {
	if c == nil {
		return nil, ErrNilCache
	}

	e := &Engine{
		cache:    c,
		registry: defaultRules(),
		stats:    newStatsCollector(),
		clock:    clockwork.NewRealClock(),
		logger:   observe.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Register adds a rule to the registry under its operation pattern.
// Rules registered under the same pattern accumulate.
func (e *Engine) Register(rule Rule) {
	e.mu.Lock()
	e.registry[rule.OperationPattern] = append(e.registry[rule.OperationPattern], rule)
	e.mu.Unlock()
}

// Rules returns a copy of the current registry.
func (e *Engine) Rules() map[string][]Rule {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make(map[string][]Rule, len(e.registry))
	for pattern, rules := range e.registry {
		out[pattern] = append([]Rule(nil), rules...)
	}
	return out
}

// Process applies every matching rule for the operation within the given
// scope. Deferred rules are scheduled and excluded from the returned
// counts; their removals still reach the statistics when they run.
func (e *Engine) Process(ctx context.Context, cctx cache.Context, operation string, params map[string]string) Result {
	result := Result{}
	e.stats.recordEvent(operation)

	for pattern, rules := range e.matchingRules(operation) {
		result.MatchedPatterns = append(result.MatchedPatterns, pattern)
		for _, rule := range rules {
			if rule.Immediate || rule.Delay <= 0 {
				result.EntriesInvalidated += e.applyRule(ctx, cctx, rule, params)
			} else {
				e.scheduleDeferred(ctx, cctx, rule, params)
			}
		}
	}

	e.stats.recordResult(result)

	e.logger.Debug(ctx, "processed invalidation event",
		observe.Field{Key: "operation", Value: operation},
		observe.Field{Key: "invalidated", Value: result.EntriesInvalidated},
		observe.Field{Key: "matched", Value: len(result.MatchedPatterns)},
	)
	return result
}

// matchingRules snapshots the registry entries whose pattern matches the
// operation.
func (e *Engine) matchingRules(operation string) map[string][]Rule {
	e.mu.RLock()
	defer e.mu.RUnlock()

	matched := make(map[string][]Rule)
	for pattern, rules := range e.registry {
		if OperationMatches(operation, pattern) {
			matched[pattern] = append([]Rule(nil), rules...)
		}
	}
	return matched
}

// applyRule expands and applies one rule's cache patterns, returning the
// number of entries removed.
func (e *Engine) applyRule(ctx context.Context, cctx cache.Context, rule Rule, params map[string]string) int {
	removed := 0
	for _, template := range rule.CachePatterns {
		key := expandTemplate(template, params)
		if hasUnexpandedPlaceholder(key) {
			e.logger.Debug(ctx, "unmatched placeholder in cache pattern",
				observe.Field{Key: "template", Value: template},
				observe.Field{Key: "expanded", Value: key},
			)
		}
		removed += e.invalidateKey(ctx, cctx, key)
	}
	return removed
}

// invalidateKey applies one expanded key: keys carrying '*' become
// substring invalidations with the asterisks stripped, anything else is an
// exact removal. Returns the true number of entries removed.
func (e *Engine) invalidateKey(ctx context.Context, cctx cache.Context, key string) int {
	if strings.Contains(key, "*") {
		substr := strings.ReplaceAll(key, "*", "")
		return e.cache.InvalidatePattern(ctx, cctx, substr)
	}

	if e.cache.Remove(ctx, cctx, key) {
		return 1
	}
	return 0
}

// scheduleDeferred applies a rule after its delay. Deferred removals update
// the statistics but never the originating Result.
func (e *Engine) scheduleDeferred(ctx context.Context, cctx cache.Context, rule Rule, params map[string]string) {
	go func() {
		select {
		case <-e.clock.After(rule.Delay):
		case <-ctx.Done():
			return
		}

		e.stats.recordInvalidated(e.applyRule(ctx, cctx, rule, params))
	}()
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return e.stats.snapshot()
}

// ClearStats resets all engine counters.
func (e *Engine) ClearStats() {
	e.stats.reset()
}
