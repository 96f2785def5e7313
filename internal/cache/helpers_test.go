package cache

import (
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// newManualCache builds a cache on a fake clock whose sweeper is effectively
// idle, so tests drive sweep passes themselves.
func newManualCache[T any](t *testing.T, cfg Config) (*Cache[T], *fakeClock) {
	t.Helper()
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = time.Hour
	}
	c, err := New[T](cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	clk := newFakeClock()
	c.mu.Lock()
	c.now = clk.Now
	c.mu.Unlock()
	return c, clk
}
