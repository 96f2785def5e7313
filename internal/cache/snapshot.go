package cache

import (
	"iter"
	"time"
)

// Snapshot is a copy of one entry taken during iteration. Changing it does not
// affect the cache.
type Snapshot[T any] struct {
	Key   string
	Value T
	// Frequency is the access count under LFU and 0 under LRU.
	Frequency int
	// TTL is the time left at snapshot time, or NoExpiration.
	TTL time.Duration
}

// All returns a sequence of entry snapshots in eviction-policy order (see Keys).
//
// The sequence is lazy only in that nothing is read until it is ranged over.
// Each range then copies every live entry up front, under the lock, into a
// slice of len(cache) snapshots, and yields from that copy without holding
// the lock. The loop body may therefore call the cache, and memory for one
// iteration is O(n). Expired entries awaiting the sweep are skipped. Breaking
// out early is fine.
func (c *Cache[T]) All() iter.Seq[Snapshot[T]] {
	return func(yield func(Snapshot[T]) bool) {
		for _, s := range c.snapshot() {
			if !yield(s) {
				return
			}
		}
	}
}

func (c *Cache[T]) snapshot() []Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	now := c.now()
	out := make([]Snapshot[T], 0, c.store.len())
	c.store.walk(func(n *node[T]) bool {
		if n.expired(now) {
			return true
		}
		s := Snapshot[T]{Key: n.key, Value: n.value, TTL: NoExpiration}
		if c.cfg.Policy == LFU {
			s.Frequency = n.freq
		}
		if n.hasExpiry() {
			s.TTL = n.expiresAt.Sub(now)
		}
		out = append(out, s)
		return true
	})
	return out
}
