package cache

import "sync"

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits          uint64
	Misses        uint64
	Insertions    uint64
	Evictions     uint64
	Invalidations uint64

	// SizeByClass is the current entry count per partition.
	SizeByClass map[Class]int
}

// HitRate returns hits / (hits + misses), or 0 when no lookups happened.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// statsCollector accumulates counters under its own lock, separate from the
// partition locks.
type statsCollector struct {
	mu      sync.Mutex
	enabled bool

	hits          uint64
	misses        uint64
	insertions    uint64
	evictions     uint64
	invalidations uint64
}

func newStatsCollector(enabled bool) *statsCollector {
	return &statsCollector{enabled: enabled}
}

func (s *statsCollector) recordHit() {
	if !s.enabled {
		return
	}
	s.mu.Lock()
	s.hits++
	s.mu.Unlock()
}

func (s *statsCollector) recordMiss() {
	if !s.enabled {
		return
	}
	s.mu.Lock()
	s.misses++
	s.mu.Unlock()
}

func (s *statsCollector) recordInsertion() {
	if !s.enabled {
		return
	}
	s.mu.Lock()
	s.insertions++
	s.mu.Unlock()
}

func (s *statsCollector) recordEvictions(n int) {
	if !s.enabled || n == 0 {
		return
	}
	s.mu.Lock()
	s.evictions += uint64(n)
	s.mu.Unlock()
}

func (s *statsCollector) recordInvalidations(n int) {
	if !s.enabled || n == 0 {
		return
	}
	s.mu.Lock()
	s.invalidations += uint64(n)
	s.mu.Unlock()
}

// snapshot copies the counters into a Stats value. SizeByClass is filled in
// by the caller, which owns the partitions.
func (s *statsCollector) snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Hits:          s.hits,
		Misses:        s.misses,
		Insertions:    s.insertions,
		Evictions:     s.evictions,
		Invalidations: s.invalidations,
	}
}
