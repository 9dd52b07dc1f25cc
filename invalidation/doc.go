// Package invalidation maps PLM write operations to the cache entries they
// stale. A rule registry keyed by dotted operation patterns (with leading or
// trailing wildcards) expands cache-key templates with event parameters and
// flushes the matches across every cache partition.
package invalidation
