// Package cache provides a state-aware, multi-tier LRU cache for PLM data.
//
// Keys are classified into mutability classes (immutable, completed,
// semi-dynamic, dynamic) by naming convention; each class lives in its own
// size-capped LRU partition with its own TTL. Completed entries never expire
// by time and are removed only by eviction or explicit invalidation.
//
// The cache is an optimization layer: operations never return errors, the
// failure mode is absence. Callers isolate their entries with a Context
// (user, org, environment) whose sanitized prefix is prepended to every key.
package cache
