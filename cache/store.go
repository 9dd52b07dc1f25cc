package cache

import (
	"strings"
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/jonboulle/clockwork"
)

// partition is one size-capped LRU store, holding entries of a single
// mutability class. The non-locking LRU sits under the partition's own
// RWMutex so an expiry check and the removal it triggers are atomic.
type partition struct {
	mu    sync.RWMutex
	class Class
	lru   *simplelru.LRU[string, *Entry]
	clock clockwork.Clock
}

func newPartition(class Class, maxSize int, clock clockwork.Clock) *partition {
	if maxSize < 1 {
		maxSize = 1
	}
	// Capacity evictions are counted from Add's return value, not the
	// eviction callback: the callback also fires on explicit removal.
	lru, err := simplelru.NewLRU[string, *Entry](maxSize, nil)
	if err != nil {
		// NewLRU only fails on a non-positive size, which is clamped above.
		panic(err)
	}
	return &partition{
		class: class,
		lru:   lru,
		clock: clock,
	}
}

// get returns the entry's value for key, or (nil, false) when the key is
// absent or expired. An expired entry is removed in the same critical
// section. On a hit, access metadata is updated and the entry becomes the
// most recently used.
func (p *partition) get(key string) (any, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.lru.Peek(key)
	if !ok {
		return nil, false
	}

	now := p.clock.Now()
	if entry.expired(now) {
		p.lru.Remove(key)
		return nil, false
	}

	entry.touch(now)
	p.lru.Get(key) // LRU touch
	return entry.Data, true
}

// put inserts or replaces the entry for key. It reports whether a prior
// entry was replaced and whether the insertion evicted the LRU entry.
func (p *partition) put(key string, entry *Entry) (replaced, evicted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	replaced = p.lru.Contains(key)
	evicted = p.lru.Add(key, entry)
	return replaced, evicted
}

// remove deletes key, returning the prior entry if any.
func (p *partition) remove(key string) (*Entry, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.lru.Peek(key)
	if !ok {
		return nil, false
	}
	p.lru.Remove(key)
	return entry, true
}

// clear drops all entries, returning how many were dropped.
func (p *partition) clear() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := p.lru.Len()
	p.lru.Purge()
	return n
}

// cleanupExpired removes every time-expired entry and returns the count.
// Completed entries never report expired and are skipped.
func (p *partition) cleanupExpired() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock.Now()
	removed := 0
	for _, key := range p.lru.Keys() {
		entry, ok := p.lru.Peek(key)
		if !ok {
			continue
		}
		if entry.expired(now) {
			p.lru.Remove(key)
			removed++
		}
	}
	return removed
}

// invalidateSubstring removes every entry whose key contains substr as a
// plain substring, returning the count. Atomic within the partition.
func (p *partition) invalidateSubstring(substr string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	removed := 0
	for _, key := range p.lru.Keys() {
		if strings.Contains(key, substr) {
			p.lru.Remove(key)
			removed++
		}
	}
	return removed
}

func (p *partition) len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lru.Len()
}
