package cache

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.Enabled {
		t.Error("default config should be enabled")
	}
	if cfg.MaxSizePerClass != 1000 {
		t.Errorf("MaxSizePerClass = %d, want 1000", cfg.MaxSizePerClass)
	}
	if !cfg.EnableStats {
		t.Error("default config should collect stats")
	}
}

func TestConfig_TTLFor(t *testing.T) {
	cfg := DefaultConfig()
	for _, class := range classOrder {
		if got := cfg.TTLFor(class); got != class.DefaultTTL() {
			t.Errorf("TTLFor(%v) = %v, want default %v", class, got, class.DefaultTTL())
		}
	}

	cfg = cfg.WithTTL(Dynamic, 5*time.Second)
	if got := cfg.TTLFor(Dynamic); got != 5*time.Second {
		t.Errorf("TTLFor(Dynamic) = %v, want override 5s", got)
	}
	if got := cfg.TTLFor(Immutable); got != Immutable.DefaultTTL() {
		t.Errorf("TTLFor(Immutable) = %v, want untouched default", got)
	}
}

// TestConfig_WithTTLDoesNotAlias verifies the builder clones the override
// map so derived configs do not share state.
func TestConfig_WithTTLDoesNotAlias(t *testing.T) {
	base := DefaultConfig()
	derived := base.WithTTL(Dynamic, time.Second)

	if got := base.TTLFor(Dynamic); got != Dynamic.DefaultTTL() {
		t.Errorf("base config mutated by derived builder: %v", got)
	}
	if got := derived.TTLFor(Dynamic); got != time.Second {
		t.Errorf("derived TTL = %v, want 1s", got)
	}
}

func TestConfig_Builders(t *testing.T) {
	cfg := DefaultConfig().
		WithEnabled(false).
		WithMaxSizePerClass(42).
		WithStats(false)

	if cfg.Enabled {
		t.Error("WithEnabled(false) not applied")
	}
	if cfg.MaxSizePerClass != 42 {
		t.Errorf("MaxSizePerClass = %d, want 42", cfg.MaxSizePerClass)
	}
	if cfg.EnableStats {
		t.Error("WithStats(false) not applied")
	}
}

func TestConfig_Presets(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want map[Class]time.Duration
	}{
		{"development", Development(), map[Class]time.Duration{
			Immutable:   5 * time.Minute,
			Completed:   1 * time.Hour,
			SemiDynamic: 1 * time.Minute,
			Dynamic:     10 * time.Second,
		}},
		{"production", Production(), map[Class]time.Duration{
			Immutable:   24 * time.Hour,
			Completed:   7 * 24 * time.Hour,
			SemiDynamic: 30 * time.Minute,
			Dynamic:     2 * time.Minute,
		}},
		{"testing", Testing(), map[Class]time.Duration{
			Immutable:   100 * time.Millisecond,
			Completed:   200 * time.Millisecond,
			SemiDynamic: 50 * time.Millisecond,
			Dynamic:     25 * time.Millisecond,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for class, want := range tt.want {
				if got := tt.cfg.TTLFor(class); got != want {
					t.Errorf("%s TTLFor(%v) = %v, want %v", tt.name, class, got, want)
				}
			}
		})
	}

	if got := Testing().MaxSizePerClass; got != 50 {
		t.Errorf("Testing() MaxSizePerClass = %d, want 50", got)
	}
}
