package health

import (
	"context"
	"fmt"

	"github.com/jonwraymond/plmcache/cache"
)

// CacheThresholds sets the limits past which the cache reports degraded.
type CacheThresholds struct {
	// MinHitRate is the hit rate below which the cache is degraded.
	// Checked only once MinLookups lookups have happened. Default: 0.5
	MinHitRate float64

	// MaxEvictionRate is the ratio of evictions to lookups above which the
	// cache is degraded. Default: 0.2
	MaxEvictionRate float64

	// MaxUtilization is the per-partition fill ratio above which the cache
	// is degraded. Default: 0.9
	MaxUtilization float64

	// MinLookups gates the hit-rate and eviction-rate checks so a cold
	// cache does not alert. Default: 100
	MinLookups uint64
}

// DefaultCacheThresholds returns the standard alerting thresholds.
func DefaultCacheThresholds() CacheThresholds {
	return CacheThresholds{
		MinHitRate:      0.5,
		MaxEvictionRate: 0.2,
		MaxUtilization:  0.9,
		MinLookups:      100,
	}
}

// CacheChecker grades a cache from its statistics.
type CacheChecker struct {
	cache      *cache.Cache
	thresholds CacheThresholds
}

// NewCacheChecker creates a checker over the given cache. Zero-valued
// threshold fields fall back to the defaults.
func NewCacheChecker(c *cache.Cache, thresholds CacheThresholds) (*CacheChecker, error) {
	if c == nil {
		return nil, ErrNilCache
	}

	defaults := DefaultCacheThresholds()
	if thresholds.MinHitRate <= 0 {
		thresholds.MinHitRate = defaults.MinHitRate
	}
	if thresholds.MaxEvictionRate <= 0 {
		thresholds.MaxEvictionRate = defaults.MaxEvictionRate
	}
	if thresholds.MaxUtilization <= 0 {
		thresholds.MaxUtilization = defaults.MaxUtilization
	}
	if thresholds.MinLookups == 0 {
		thresholds.MinLookups = defaults.MinLookups
	}

	return &CacheChecker{cache: c, thresholds: thresholds}, nil
}

// Name returns the name of this checker.
func (c *CacheChecker) Name() string {
	return "cache"
}

// Check grades the cache. A disabled cache is degraded; low hit rate, high
// eviction rate, or a near-full partition degrade an enabled one.
func (c *CacheChecker) Check(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	if !c.cache.Config().Enabled {
		return Degraded("cache disabled")
	}

	stats := c.cache.Stats()
	lookups := stats.Hits + stats.Misses

	details := map[string]any{
		"hit_rate":   stats.HitRate(),
		"hits":       stats.Hits,
		"misses":     stats.Misses,
		"evictions":  stats.Evictions,
		"total_size": c.cache.Size(),
	}
	for class, size := range stats.SizeByClass {
		details["size_"+class.String()] = size
	}

	var problems []string

	if lookups >= c.thresholds.MinLookups {
		if rate := stats.HitRate(); rate < c.thresholds.MinHitRate {
			problems = append(problems, fmt.Sprintf("low hit rate: %.1f%%", rate*100))
		}

		evictionRate := float64(stats.Evictions) / float64(lookups)
		if evictionRate > c.thresholds.MaxEvictionRate {
			problems = append(problems, fmt.Sprintf("high eviction rate: %.1f%%", evictionRate*100))
		}
	}

	maxSize := c.cache.Config().MaxSizePerClass
	if maxSize > 0 {
		for class, size := range stats.SizeByClass {
			utilization := float64(size) / float64(maxSize)
			if utilization > c.thresholds.MaxUtilization {
				problems = append(problems, fmt.Sprintf("partition near capacity: %s %.0f%%", class, utilization*100))
			}
		}
	}

	if len(problems) > 0 {
		result := Degraded(problems[0])
		result.Details = details
		result.Details["problems"] = problems
		return result
	}

	return Healthy("cache operating normally").WithDetails(details)
}

var _ Checker = (*CacheChecker)(nil)
