package cache

import "time"

// Config controls cache behavior.
type Config struct {
	// Enabled gates all cache operations. When false, Get always misses and
	// mutations are no-ops.
	Enabled bool

	// MaxSizePerClass caps each partition's entry count.
	MaxSizePerClass int

	// CustomTTL overrides the per-class default TTLs. Classes absent from
	// the map keep their defaults.
	CustomTTL map[Class]time.Duration

	// EnableStats toggles hit/miss/insertion/eviction counting.
	EnableStats bool
}

// DefaultConfig returns the standard configuration: enabled, 1000 entries
// per class, default TTLs, stats on.
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		MaxSizePerClass: 1000,
		CustomTTL:       make(map[Class]time.Duration),
		EnableStats:     true,
	}
}

// WithEnabled sets whether the cache is active.
func (c Config) WithEnabled(enabled bool) Config {
	c.Enabled = enabled
	return c
}

// WithMaxSizePerClass sets the per-partition entry cap.
func (c Config) WithMaxSizePerClass(n int) Config {
	c.MaxSizePerClass = n
	return c
}

// WithStats sets whether statistics are collected.
func (c Config) WithStats(enabled bool) Config {
	c.EnableStats = enabled
	return c
}

// WithTTL overrides the TTL for a single class.
func (c Config) WithTTL(class Class, ttl time.Duration) Config {
	c.CustomTTL = cloneTTLMap(c.CustomTTL)
	c.CustomTTL[class] = ttl
	return c
}

// TTLFor returns the effective TTL for a class, honoring overrides.
func (c Config) TTLFor(class Class) time.Duration {
	if ttl, ok := c.CustomTTL[class]; ok {
		return ttl
	}
	return class.DefaultTTL()
}

// Development returns a configuration with short TTLs suited to local
// iteration: 5m immutable, 1h completed, 1m semi-dynamic, 10s dynamic.
func Development() Config {
	return DefaultConfig().
		WithTTL(Immutable, 5*time.Minute).
		WithTTL(Completed, 1*time.Hour).
		WithTTL(SemiDynamic, 1*time.Minute).
		WithTTL(Dynamic, 10*time.Second)
}

// Production returns a configuration with long TTLs: 24h immutable,
// 7d completed, 30m semi-dynamic, 2m dynamic.
func Production() Config {
	return DefaultConfig().
		WithTTL(Immutable, 24*time.Hour).
		WithTTL(Completed, 7*24*time.Hour).
		WithTTL(SemiDynamic, 30*time.Minute).
		WithTTL(Dynamic, 2*time.Minute)
}

// Testing returns a configuration with millisecond TTLs and small
// partitions so expiry and eviction paths are easy to exercise.
func Testing() Config {
	return DefaultConfig().
		WithTTL(Immutable, 100*time.Millisecond).
		WithTTL(Completed, 200*time.Millisecond).
		WithTTL(SemiDynamic, 50*time.Millisecond).
		WithTTL(Dynamic, 25*time.Millisecond).
		WithMaxSizePerClass(50)
}

func cloneTTLMap(m map[Class]time.Duration) map[Class]time.Duration {
	out := make(map[Class]time.Duration, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
