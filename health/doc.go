// Package health provides liveness and readiness checks for the caching
// subsystem. A CacheChecker grades the cache from its statistics (hit rate,
// eviction rate, partition utilization); an Aggregator combines checkers and
// backs the HTTP probe handlers.
package health
