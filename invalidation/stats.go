package invalidation

import "sync"

// Stats is a point-in-time snapshot of the engine's counters.
type Stats struct {
	EventsProcessed    uint64
	EntriesInvalidated uint64
	PatternMatches     uint64
	Failures           uint64

	// OperationsByType counts processed events per operation name.
	OperationsByType map[string]uint64
}

// statsCollector accumulates engine counters under its own lock, separate
// from the rule registry lock.
type statsCollector struct {
	mu               sync.Mutex
	eventsProcessed  uint64
	invalidated      uint64
	patternMatches   uint64
	failures         uint64
	operationsByType map[string]uint64
}

func newStatsCollector() *statsCollector {
	return &statsCollector{
		operationsByType: make(map[string]uint64),
	}
}

func (s *statsCollector) recordEvent(operation string) {
	s.mu.Lock()
	s.eventsProcessed++
	s.operationsByType[operation]++
	s.mu.Unlock()
}

// recordResult folds one processing result into the counters atomically.
func (s *statsCollector) recordResult(r Result) {
	s.mu.Lock()
	s.invalidated += uint64(r.EntriesInvalidated)
	s.patternMatches += uint64(len(r.MatchedPatterns))
	s.failures += uint64(len(r.Errors))
	s.mu.Unlock()
}

func (s *statsCollector) recordInvalidated(n int) {
	if n == 0 {
		return
	}
	s.mu.Lock()
	s.invalidated += uint64(n)
	s.mu.Unlock()
}

func (s *statsCollector) snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	ops := make(map[string]uint64, len(s.operationsByType))
	for k, v := range s.operationsByType {
		ops[k] = v
	}
	return Stats{
		EventsProcessed:    s.eventsProcessed,
		EntriesInvalidated: s.invalidated,
		PatternMatches:     s.patternMatches,
		Failures:           s.failures,
		OperationsByType:   ops,
	}
}

func (s *statsCollector) reset() {
	s.mu.Lock()
	s.eventsProcessed = 0
	s.invalidated = 0
	s.patternMatches = 0
	s.failures = 0
	s.operationsByType = make(map[string]uint64)
	s.mu.Unlock()
}
