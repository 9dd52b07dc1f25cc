package cache

import (
	"strings"
	"time"
)

// Class is the mutability class of a cache key. It determines which
// partition an entry lands in and which TTL and expiration policy apply.
type Class int

const (
	// Immutable covers definitions and library-like descriptors that
	// effectively never change.
	Immutable Class = iota

	// Completed covers terminal records (finished, failed, cancelled work
	// units). Completed entries never expire by time.
	Completed

	// SemiDynamic covers collection listings and resource inventories that
	// change when membership changes.
	SemiDynamic

	// Dynamic covers in-flight state, event streams, and currently-running
	// records. The default class for unrecognized keys.
	Dynamic
)

// classOrder is the fixed partition order used by sweeps and pattern
// invalidation. Acquiring partition locks in this order precludes deadlock.
var classOrder = [4]Class{Immutable, Completed, SemiDynamic, Dynamic}

func (c Class) String() string {
	switch c {
	case Immutable:
		return "immutable"
	case Completed:
		return "completed"
	case SemiDynamic:
		return "semi-dynamic"
	case Dynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// DefaultTTL returns the built-in TTL for the class. The Completed TTL is
// nominal: it is stored on entries but ignored by the expiry check, serving
// only as an LRU hint.
func (c Class) DefaultTTL() time.Duration {
	switch c {
	case Immutable:
		return 1 * time.Hour
	case Completed:
		return 24 * time.Hour
	case SemiDynamic:
		return 10 * time.Minute
	default:
		return 1 * time.Minute
	}
}

// Substring signals tested in order; the first matching rule wins.
var (
	immutableSignals = []string{
		"definition", "task_lib", "pipeline:def:", "tasks:",
		"secrets:", "triggers:", "access-config:",
	}
	completedSignals = []string{
		"completed", "failed", "finished",
		":status:completed", ":status:failed",
	}
	semiDynamicSignals = []string{
		"list", "pipelines:", "runs:", "resources:", "groups:",
	}
)

// Classify maps a cache key to its mutability class. Pure and total: every
// key maps to exactly one class, unknown keys default to Dynamic. Matching
// is case-sensitive substring containment, first rule wins.
//
// A misclassification only affects performance (wrong TTL), never
// correctness: invalidation is explicit and sweeps all partitions.
func Classify(key string) Class {
	if containsAny(key, immutableSignals) {
		return Immutable
	}
	if containsAny(key, completedSignals) {
		return Completed
	}
	if containsAny(key, semiDynamicSignals) {
		return SemiDynamic
	}
	return Dynamic
}

func containsAny(key string, signals []string) bool {
	for _, s := range signals {
		if strings.Contains(key, s) {
			return true
		}
	}
	return false
}
