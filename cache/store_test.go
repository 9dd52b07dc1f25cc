package cache

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func newTestPartition(class Class, size int) (*partition, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClock()
	return newPartition(class, size, clock), clock
}

func newTestEntry(class Class, clock clockwork.Clock, data any) *Entry {
	return &Entry{
		Data:         data,
		CachedAt:     clock.Now(),
		TTL:          class.DefaultTTL(),
		Class:        class,
		LastAccessed: clock.Now(),
	}
}

func TestPartition_PutGet(t *testing.T) {
	p, clock := newTestPartition(Dynamic, 10)

	p.put("k", newTestEntry(Dynamic, clock, "v"))
	got, ok := p.get("k")
	if !ok || got != "v" {
		t.Fatalf("expected hit with %q, got (%v, %v)", "v", got, ok)
	}

	if _, ok := p.get("absent"); ok {
		t.Error("expected miss for absent key")
	}
}

func TestPartition_ReplaceDoesNotGrow(t *testing.T) {
	p, clock := newTestPartition(Dynamic, 10)

	replaced, _ := p.put("k", newTestEntry(Dynamic, clock, 1))
	if replaced {
		t.Error("first put should not report replaced")
	}
	replaced, evicted := p.put("k", newTestEntry(Dynamic, clock, 2))
	if !replaced {
		t.Error("second put should report replaced")
	}
	if evicted {
		t.Error("replacement should not evict")
	}
	if p.len() != 1 {
		t.Errorf("expected len 1, got %d", p.len())
	}

	got, _ := p.get("k")
	if got != 2 {
		t.Errorf("expected replaced value 2, got %v", got)
	}
}

func TestPartition_LRUEviction(t *testing.T) {
	p, clock := newTestPartition(Dynamic, 2)

	p.put("a", newTestEntry(Dynamic, clock, 1))
	p.put("b", newTestEntry(Dynamic, clock, 2))

	_, evicted := p.put("c", newTestEntry(Dynamic, clock, 3))
	if !evicted {
		t.Fatal("third insert into size-2 partition should evict")
	}

	if _, ok := p.get("a"); ok {
		t.Error("least recently used key should be gone")
	}
	if _, ok := p.get("b"); !ok {
		t.Error("key b should survive")
	}
	if _, ok := p.get("c"); !ok {
		t.Error("key c should survive")
	}
}

// TestPartition_GetPromotes verifies a read moves the entry to
// most-recently-used, changing the eviction victim.
func TestPartition_GetPromotes(t *testing.T) {
	p, clock := newTestPartition(Dynamic, 2)

	p.put("a", newTestEntry(Dynamic, clock, 1))
	p.put("b", newTestEntry(Dynamic, clock, 2))

	p.get("a") // a becomes most recent; b is now the victim
	p.put("c", newTestEntry(Dynamic, clock, 3))

	if _, ok := p.get("a"); !ok {
		t.Error("recently read key should survive eviction")
	}
	if _, ok := p.get("b"); ok {
		t.Error("unread key should have been evicted")
	}
}

func TestPartition_ExpiryRemovesOnGet(t *testing.T) {
	p, clock := newTestPartition(Dynamic, 10)

	p.put("k", newTestEntry(Dynamic, clock, "v"))
	clock.Advance(Dynamic.DefaultTTL() + time.Second)

	if _, ok := p.get("k"); ok {
		t.Fatal("expired entry should miss")
	}
	if p.len() != 0 {
		t.Errorf("expired entry should be removed, len = %d", p.len())
	}
}

func TestPartition_CompletedNeverExpires(t *testing.T) {
	p, clock := newTestPartition(Completed, 10)

	p.put("run:status:completed:1", newTestEntry(Completed, clock, "done"))
	clock.Advance(365 * 24 * time.Hour)

	got, ok := p.get("run:status:completed:1")
	if !ok || got != "done" {
		t.Fatalf("completed entry should survive a year, got (%v, %v)", got, ok)
	}
}

func TestPartition_Remove(t *testing.T) {
	p, clock := newTestPartition(Dynamic, 10)

	p.put("k", newTestEntry(Dynamic, clock, "v"))
	entry, ok := p.remove("k")
	if !ok || entry.Data != "v" {
		t.Fatalf("expected removed entry with data %q, got (%v, %v)", "v", entry, ok)
	}

	if _, ok := p.remove("k"); ok {
		t.Error("second remove should report absent")
	}
}

func TestPartition_CleanupExpired(t *testing.T) {
	p, clock := newTestPartition(Dynamic, 10)

	p.put("old", newTestEntry(Dynamic, clock, 1))
	clock.Advance(30 * time.Second)
	p.put("fresh", newTestEntry(Dynamic, clock, 2))
	clock.Advance(40 * time.Second) // old is 70s past insert, fresh 40s

	removed := p.cleanupExpired()
	if removed != 1 {
		t.Fatalf("expected 1 removal, got %d", removed)
	}
	if _, ok := p.get("fresh"); !ok {
		t.Error("fresh entry should survive cleanup")
	}
}

func TestPartition_CleanupSkipsCompleted(t *testing.T) {
	p, clock := newTestPartition(Completed, 10)

	p.put("run:status:completed:1", newTestEntry(Completed, clock, 1))
	clock.Advance(48 * time.Hour)

	if removed := p.cleanupExpired(); removed != 0 {
		t.Fatalf("cleanup must skip completed entries, removed %d", removed)
	}
}

func TestPartition_InvalidateSubstring(t *testing.T) {
	p, clock := newTestPartition(Dynamic, 10)

	p.put("run:events:1", newTestEntry(Dynamic, clock, 1))
	p.put("run:events:2", newTestEntry(Dynamic, clock, 2))
	p.put("other:key", newTestEntry(Dynamic, clock, 3))

	removed := p.invalidateSubstring("run:events")
	if removed != 2 {
		t.Fatalf("expected 2 removals, got %d", removed)
	}
	if _, ok := p.get("other:key"); !ok {
		t.Error("unmatched key should survive")
	}
}

func TestPartition_Clear(t *testing.T) {
	p, clock := newTestPartition(Dynamic, 10)

	p.put("a", newTestEntry(Dynamic, clock, 1))
	p.put("b", newTestEntry(Dynamic, clock, 2))

	if n := p.clear(); n != 2 {
		t.Errorf("clear reported %d, want 2", n)
	}
	if p.len() != 0 {
		t.Errorf("expected empty partition, len = %d", p.len())
	}
}
