package cache

import (
	"errors"
	"testing"
	"time"
)

func TestConfigBuildDefaults(t *testing.T) {
	cfg, err := Config{}.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if cfg.MaxSize != MaxCapacity {
		t.Errorf("MaxSize = %d, want %d", cfg.MaxSize, MaxCapacity)
	}
	if cfg.DefaultTTL != 15*time.Minute {
		t.Errorf("DefaultTTL = %s", cfg.DefaultTTL)
	}
	if cfg.SweepInterval != 500*time.Millisecond {
		t.Errorf("SweepInterval = %s", cfg.SweepInterval)
	}
	if cfg.SweepWindowSize != 100 {
		t.Errorf("SweepWindowSize = %d", cfg.SweepWindowSize)
	}
	if cfg.SweepWindowDuration != 50*time.Millisecond {
		t.Errorf("SweepWindowDuration = %s", cfg.SweepWindowDuration)
	}
}

func TestConfigBuildClampsAndFits(t *testing.T) {
	cfg, err := Config{
		MaxSize:          MaxCapacity + 1,
		SweepInterval:    MinSweepInterval,
		TimeBoundedSweep: true,
	}.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if cfg.MaxSize != MaxCapacity {
		t.Errorf("expected MaxSize clamped, got %d", cfg.MaxSize)
	}
	if cfg.SweepWindowDuration != MinSweepInterval {
		t.Errorf("expected default window to fit the interval, got %s", cfg.SweepWindowDuration)
	}
}

func TestConfigBuildRejects(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative max size", Config{MaxSize: -1}},
		{"sweep interval below floor", Config{SweepInterval: 10 * time.Millisecond}},
		{"negative sweep interval", Config{SweepInterval: -time.Second}},
		{"negative default ttl", Config{DefaultTTL: -time.Second}},
		{"unknown policy", Config{Policy: Policy(7)}},
		{"negative window size", Config{SweepWindowSize: -1}},
		{"negative window duration", Config{TimeBoundedSweep: true, SweepWindowDuration: -time.Millisecond}},
		{"window longer than interval", Config{
			TimeBoundedSweep:    true,
			SweepInterval:       30 * time.Millisecond,
			SweepWindowDuration: 40 * time.Millisecond,
		}},
		{"window above hard cap", Config{
			TimeBoundedSweep:    true,
			SweepInterval:       time.Second,
			SweepWindowDuration: 60 * time.Millisecond,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.cfg.Build(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestConfigBuildIgnoresUnselectedWindow(t *testing.T) {
	// A count-bounded sweep does not care about the duration budget.
	if _, err := (Config{SweepWindowDuration: time.Hour}).Build(); err != nil {
		t.Fatalf("count mode: %v", err)
	}
	if _, err := (Config{TimeBoundedSweep: true, SweepWindowSize: -5}).Build(); err != nil {
		t.Fatalf("time mode: %v", err)
	}
}

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]Policy{"lru": LRU, "LFU": LFU} {
		got, err := ParsePolicy(in)
		if err != nil || got != want {
			t.Fatalf("ParsePolicy(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePolicy("arc"); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
