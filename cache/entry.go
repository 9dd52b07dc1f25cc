package cache

import "time"

// Entry is a single cached record. Entries are owned by their partition;
// values handed to callers are deep clones.
type Entry struct {
	// Data is the cached value: JSON-shaped data (map[string]any, []any,
	// string, float64, bool, nil).
	Data any

	// CachedAt is when the entry was inserted.
	CachedAt time.Time

	// TTL bounds the entry's lifetime. For Completed entries the TTL is an
	// LRU hint only and is never consulted by the expiry check.
	TTL time.Duration

	// Class is the mutability class the entry was filed under.
	Class Class

	// AccessCount increments on every successful get.
	AccessCount uint64

	// LastAccessed is updated on every successful get.
	LastAccessed time.Time
}

// expired reports whether the entry's TTL has elapsed at now. Completed
// entries are immortal with respect to time.
func (e *Entry) expired(now time.Time) bool {
	if e.Class == Completed {
		return false
	}
	return now.Sub(e.CachedAt) > e.TTL
}

// touch records an access at now.
func (e *Entry) touch(now time.Time) {
	e.AccessCount++
	e.LastAccessed = now
}

// Age returns how long the entry has been cached as of now.
func (e *Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.CachedAt)
}
