package cache

import (
	"fmt"
	"math"
	"time"
)

// Policy selects how the cache picks an eviction candidate once it is full.
type Policy int

const (
	// LRU evicts the least recently used entry.
	LRU Policy = iota
	// LFU evicts the least frequently used entry; ties go to the least recently used.
	LFU
)

func (p Policy) String() string {
	switch p {
	case LRU:
		return "lru"
	case LFU:
		return "lfu"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy maps "lru" / "lfu" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "lru", "LRU":
		return LRU, nil
	case "lfu", "LFU":
		return LFU, nil
	}
	return 0, fmt.Errorf("%w: unknown policy %q", ErrInvalidConfig, s)
}

const (
	// MaxCapacity is the hard ceiling on MaxSize. Node handles are 32-bit.
	MaxCapacity = math.MaxInt32

	DefaultTTL           = 15 * time.Minute
	DefaultSweepInterval = 500 * time.Millisecond
	MinSweepInterval     = 20 * time.Millisecond
	DefaultSweepWindow   = 100

	// MaxSweepWindowDuration caps how long a single time-bounded sweep pass may run.
	MaxSweepWindowDuration = 50 * time.Millisecond
)

// Config controls capacity, TTL defaults and the active expiration sweep.
//
// Config is a plain struct. Zero values mean "use the default"; New calls
// Build to normalise and validate before any state is allocated.
//
// Sweep modes:
//   - Count-bounded (default): each pass examines at most SweepWindowSize
//     registry positions.
//   - Time-bounded (TimeBoundedSweep): each pass runs until SweepWindowDuration
//     elapses.
//
// In both modes a pass never examines more than one full lap of the keys that
// carry a TTL.
type Config struct {
	Policy Policy

	// MaxSize is the capacity ceiling. Values above MaxCapacity are clamped.
	MaxSize int

	// UseDefaultTTL applies DefaultTTL to new entries that are Put without a ttl.
	UseDefaultTTL bool
	DefaultTTL    time.Duration

	// SweepInterval is the sweep cadence, not a per-pass budget.
	SweepInterval       time.Duration
	SweepWindowSize     int
	SweepWindowDuration time.Duration
	TimeBoundedSweep    bool
}

// Build returns a normalised copy of c, or an error wrapping ErrInvalidConfig.
func (c Config) Build() (Config, error) {
	cfg := c

	switch cfg.Policy {
	case LRU, LFU:
	default:
		return Config{}, fmt.Errorf("%w: unknown policy %d", ErrInvalidConfig, int(cfg.Policy))
	}

	switch {
	case cfg.MaxSize < 0:
		return Config{}, fmt.Errorf("%w: max size must be positive, got %d", ErrInvalidConfig, cfg.MaxSize)
	case cfg.MaxSize == 0, cfg.MaxSize > MaxCapacity:
		cfg.MaxSize = MaxCapacity
	}

	switch {
	case cfg.DefaultTTL < 0:
		return Config{}, fmt.Errorf("%w: default ttl must be positive, got %s", ErrInvalidConfig, cfg.DefaultTTL)
	case cfg.DefaultTTL == 0:
		cfg.DefaultTTL = DefaultTTL
	}

	switch {
	case cfg.SweepInterval == 0:
		cfg.SweepInterval = DefaultSweepInterval
	case cfg.SweepInterval < MinSweepInterval:
		return Config{}, fmt.Errorf("%w: sweep interval must be at least %s, got %s",
			ErrInvalidConfig, MinSweepInterval, cfg.SweepInterval)
	}

	if cfg.SweepWindowSize == 0 {
		cfg.SweepWindowSize = DefaultSweepWindow
	}
	if cfg.SweepWindowDuration == 0 {
		cfg.SweepWindowDuration = min(MaxSweepWindowDuration, cfg.SweepInterval)
	}

	// Only the budget of the selected mode has to be consistent.
	if !cfg.TimeBoundedSweep {
		if cfg.SweepWindowSize < 0 {
			return Config{}, fmt.Errorf("%w: sweep window size must be positive, got %d",
				ErrInvalidConfig, cfg.SweepWindowSize)
		}
		return cfg, nil
	}

	switch {
	case cfg.SweepWindowDuration < 0:
		return Config{}, fmt.Errorf("%w: sweep window duration must be positive, got %s",
			ErrInvalidConfig, cfg.SweepWindowDuration)
	case cfg.SweepWindowDuration > cfg.SweepInterval:
		return Config{}, fmt.Errorf("%w: sweep window duration %s exceeds sweep interval %s",
			ErrInvalidConfig, cfg.SweepWindowDuration, cfg.SweepInterval)
	case cfg.SweepWindowDuration > MaxSweepWindowDuration:
		return Config{}, fmt.Errorf("%w: sweep window duration %s exceeds %s",
			ErrInvalidConfig, cfg.SweepWindowDuration, MaxSweepWindowDuration)
	}
	return cfg, nil
}
