package cache

import (
	"fmt"
	"sync"
	"time"
)

// NoExpiration is reported by TTL and Snapshot for entries without a TTL.
const NoExpiration time.Duration = -1

// RemoveReason says why an entry left the cache.
type RemoveReason uint8

const (
	// Evicted means the entry was dropped to make room for a new key.
	Evicted RemoveReason = iota
	// Expired means the entry's TTL ran out (lazy check or sweep).
	Expired
	// Deleted means Delete was called for the key.
	Deleted
)

func (r RemoveReason) String() string {
	switch r {
	case Evicted:
		return "evicted"
	case Expired:
		return "expired"
	case Deleted:
		return "deleted"
	default:
		return fmt.Sprintf("reason(%d)", uint8(r))
	}
}

// RemoveFunc is notified when an entry leaves the cache. It runs with the
// cache lock held and must not call back into the cache.
type RemoveFunc[T any] func(key string, value T, reason RemoveReason)

// Stats are running counters since New. Flush does not reset them.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	Expirations int64
	Sweeps      int64
}

// Cache is an in-memory key–value cache with per-entry TTL and either LRU or
// LFU capacity eviction.
//
// A map gives O(1) key lookup into an arena of nodes; the policy store keeps
// those nodes ordered (one recency list, or frequency buckets). Keys with a
// finite TTL are also tracked in a registry that the background sweeper walks
// round-robin.
//
// All methods take one exclusive lock, so the store, index and registry are
// always updated together.
//
// Ownership model:
// Cache owns its sweeper goroutine. Call Close to stop it.
type Cache[T any] struct {
	mu sync.Mutex

	cfg      Config
	store    orderedStore[T]
	registry *ttlRegistry
	sweeper  *sweeper

	onRemove RemoveFunc[T]
	stats    Stats

	now        func() time.Time
	sweepClock func() time.Time // measures the time-bounded sweep budget
	closed     bool
}

// New validates cfg and constructs a cache with its sweeper running.
//
// The returned error wraps ErrInvalidConfig.
func New[T any](cfg Config) (*Cache[T], error) {
	built, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	c := &Cache[T]{
		cfg:        built,
		store:      newStore[T](built.Policy),
		registry:   newTTLRegistry(),
		now:        time.Now,
		sweepClock: time.Now,
	}
	c.sweeper = newSweeper(built.SweepInterval, c.sweep)
	c.sweeper.start()

	return c, nil
}

// Close stops the sweeper and drops every entry.
//
// Close is safe to call multiple times.
func (c *Cache[T]) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	// Stop outside the lock so an in-flight pass can finish.
	c.sweeper.stop()

	c.mu.Lock()
	c.store.reset()
	c.registry.reset()
	c.mu.Unlock()
	return nil
}

// OnRemove installs fn as the removal listener, replacing any previous one.
// Flush and Close do not notify.
func (c *Cache[T]) OnRemove(fn RemoveFunc[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onRemove = fn
}

// Get returns the value for key and records an access.
//
// It performs lazy TTL expiration: an expired key is removed and reported missing.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if c.closed || !c.liveLocked(key) {
		c.stats.Misses++
		return zero, false
	}
	c.stats.Hits++
	return c.store.get(key)
}

// Peek returns the value for key without affecting eviction order.
// Expired keys are still removed.
func (c *Cache[T]) Peek(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if c.closed || !c.liveLocked(key) {
		return zero, false
	}
	h, _ := c.store.lookup(key)
	return c.store.node(h).value, true
}

// Put writes key.
//
// ttl semantics for a new key:
//   - ttl > 0 expires the entry after ttl
//   - otherwise Config.DefaultTTL applies when Config.UseDefaultTTL is set
//   - otherwise the entry never expires
//
// A live existing key gets the new value and counts as used, but keeps the
// expiration it was created with; use ExtendTTL to change it. If the existing
// key has already expired it is removed and Put reports false without
// inserting.
//
// When a new key arrives at capacity, the policy's eviction candidate is
// removed first.
func (c *Cache[T]) Put(key string, value T, ttl time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	now := c.now()

	if h, ok := c.store.lookup(key); ok {
		if c.store.node(h).expired(now) {
			c.removeLocked(key, Expired)
			return false
		}
		c.store.put(key, value)
		return true
	}

	if c.store.len() >= c.cfg.MaxSize {
		c.evictLocked(now)
	}

	var expiresAt time.Time
	switch {
	case ttl > 0:
		expiresAt = now.Add(ttl)
	case c.cfg.UseDefaultTTL:
		expiresAt = now.Add(c.cfg.DefaultTTL)
	}

	h := c.store.put(key, value)
	if !expiresAt.IsZero() {
		c.store.node(h).expiresAt = expiresAt
		c.registry.add(key)
	}
	return true
}

// Delete removes key and reports whether it was present.
func (c *Cache[T]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	return c.removeLocked(key, Deleted)
}

// ExtendTTL pushes the expiration of key out by delta.
//
// An entry without a TTL gets one that ends delta from now. delta must be
// positive; a TTL cannot be shortened. Missing or expired keys report false.
func (c *Cache[T]) ExtendTTL(key string, delta time.Duration) (bool, error) {
	if delta <= 0 {
		return false, fmt.Errorf("%w: got %s", ErrInvalidExtension, delta)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false, ErrClosed
	}
	if !c.liveLocked(key) {
		return false, nil
	}

	h, _ := c.store.lookup(key)
	n := c.store.node(h)
	if n.hasExpiry() {
		n.expiresAt = n.expiresAt.Add(delta)
	} else {
		n.expiresAt = c.now().Add(delta)
		c.registry.add(key)
	}
	return true, nil
}

// TTL reports the time left before key expires, or NoExpiration.
// It does not touch or remove the entry.
func (c *Cache[T]) TTL(key string) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, false
	}
	h, ok := c.store.lookup(key)
	if !ok {
		return 0, false
	}
	n := c.store.node(h)
	now := c.now()
	switch {
	case n.expired(now):
		return 0, false
	case n.hasExpiry():
		return n.expiresAt.Sub(now), true
	default:
		return NoExpiration, true
	}
}

// Flush removes every entry and asks the sweeper to re-arm its timer a full
// interval out.
//
// The re-arm is queued, not synchronous: a pass whose tick already fired and
// is waiting for the lock still runs once, against the emptied cache.
func (c *Cache[T]) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.sweeper.reschedule()
	c.store.reset()
	c.registry.reset()
}

// Len returns the number of stored entries.
//
// Note: Len includes entries that have expired but haven't been cleaned up yet.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.len()
}

// Capacity returns the normalised MaxSize.
func (c *Cache[T]) Capacity() int {
	return c.cfg.MaxSize
}

// Options returns the normalised configuration the cache was built with.
func (c *Cache[T]) Options() Config {
	return c.cfg
}

// Stats returns a copy of the running counters.
func (c *Cache[T]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Keys returns live keys in eviction-policy order. Like All, it skips entries
// that have expired but are still waiting for the sweep; Len still counts them.
//
// LRU: MRU -> LRU. LFU: ascending frequency, most recent first within a frequency.
func (c *Cache[T]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	out := make([]string, 0, c.store.len())
	c.store.walk(func(n *node[T]) bool {
		if !n.expired(now) {
			out = append(out, n.key)
		}
		return true
	})
	return out
}

// liveLocked reports whether key is stored and unexpired, removing it if it
// has expired.
func (c *Cache[T]) liveLocked(key string) bool {
	h, ok := c.store.lookup(key)
	if !ok {
		return false
	}
	if c.store.node(h).expired(c.now()) {
		c.removeLocked(key, Expired)
		return false
	}
	return true
}

func (c *Cache[T]) evictLocked(now time.Time) {
	h, ok := c.store.evictionCandidate()
	if !ok {
		return
	}
	n := c.store.node(h)
	reason := Evicted
	if n.expired(now) {
		reason = Expired
	}
	c.removeLocked(n.key, reason)
}

// removeLocked drops key from the store and the TTL registry together.
func (c *Cache[T]) removeLocked(key string, reason RemoveReason) bool {
	h, ok := c.store.lookup(key)
	if !ok {
		return false
	}
	// The slot is cleared on removal; keep what the listener needs.
	value := c.store.node(h).value

	c.store.remove(key)
	c.registry.remove(key)

	switch reason {
	case Evicted:
		c.stats.Evictions++
	case Expired:
		c.stats.Expirations++
	}
	if c.onRemove != nil {
		c.onRemove(key, value, reason)
	}
	return true
}
