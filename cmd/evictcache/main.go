package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"evictcache/internal/cache"
)

var (
	policy        = flag.String("policy", "lru", "Eviction policy (lru, lfu)")
	maxSize       = flag.Int("max-size", 2, "Maximum number of entries")
	defaultTTL    = flag.Duration("default-ttl", 0, "TTL for entries put without one (0 disables)")
	sweepInterval = flag.Duration("sweep-interval", 100*time.Millisecond, "Interval between expiration sweeps")
	sweepWindow   = flag.Int("sweep-window", 100, "Keys examined per count-bounded sweep")
	timeBounded   = flag.Bool("time-bounded", false, "Bound each sweep by time instead of key count")
	instanceID    = flag.String("instance-id", "", "Id used in log lines (generated if not provided)")
)

func main() {
	flag.Parse()

	if *instanceID == "" {
		*instanceID = uuid.New().String()[:8]
	}
	log.SetPrefix(fmt.Sprintf("[%s] ", *instanceID))

	p, err := cache.ParsePolicy(*policy)
	if err != nil {
		log.Fatalf("parse policy: %v", err)
	}

	// Signal-aware context is the root of ownership for long-lived background work.
	// When SIGINT/SIGTERM arrives, ctx is canceled and we initiate a clean shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := cache.New[string](cache.Config{
		Policy:           p,
		MaxSize:          *maxSize,
		UseDefaultTTL:    *defaultTTL > 0,
		DefaultTTL:       *defaultTTL,
		SweepInterval:    *sweepInterval,
		SweepWindowSize:  *sweepWindow,
		TimeBoundedSweep: *timeBounded,
	})
	if err != nil {
		log.Fatalf("create cache: %v", err)
	}
	defer func() {
		// Close is idempotent; safe to call in defer.
		if err := c.Close(); err != nil {
			log.Printf("cache close: %v", err)
		}
	}()

	c.OnRemove(func(key string, _ string, reason cache.RemoveReason) {
		log.Printf("removed %s (%s)", key, reason)
	})

	opts := c.Options()
	log.Println("evictcache demo starting")
	log.Printf("config: policy=%s maxSize=%d sweepEvery=%s window=%d timeBounded=%t",
		opts.Policy, opts.MaxSize, opts.SweepInterval, opts.SweepWindowSize, opts.TimeBoundedSweep)

	// -------------------------------------------------------------------
	// 1) Capacity eviction demo
	// -------------------------------------------------------------------
	c.Put("a", "A", 0)
	c.Put("b", "B", 0)

	// Touch "a" so "b" becomes the eviction candidate under either policy.
	if v, ok := c.Get("a"); ok {
		log.Printf("GET a = %q", v)
	}

	c.Put("c", "C", 0)
	if _, ok := c.Get("b"); !ok {
		log.Println("GET b: missing (evicted)")
	}
	log.Printf("keys after eviction (%s order): %v", opts.Policy, c.Keys())

	// -------------------------------------------------------------------
	// 2) TTL expiration demo (shows the background sweep)
	// -------------------------------------------------------------------
	// Add a short-lived key and never read it; the sweeper has to remove it.
	c.Put("ttl", "short", 200*time.Millisecond)
	if ttl, ok := c.TTL("ttl"); ok {
		log.Printf("ttl set, %s left; keys: %v", ttl.Round(time.Millisecond), c.Keys())
	}

	wait := time.NewTimer(500 * time.Millisecond)
	defer wait.Stop()

	select {
	case <-ctx.Done():
		log.Println("received shutdown signal")
		return
	case <-wait.C:
	}

	log.Printf("keys after ttl + sweep: %v", c.Keys())
	for s := range c.All() {
		log.Printf("entry %s=%q freq=%d ttl=%s", s.Key, s.Value, s.Frequency, s.TTL)
	}

	st := c.Stats()
	log.Printf("stats: hits=%d misses=%d evictions=%d expirations=%d sweeps=%d",
		st.Hits, st.Misses, st.Evictions, st.Expirations, st.Sweeps)

	fmt.Println("Done. Press Ctrl+C to exit immediately next time.")
}
