// Package cache implements a single-process, in-memory key–value cache with
// TTL expiration and pluggable capacity eviction.
//
// Goals for this package:
//   - O(1) Get/Put/Delete via a key index into an arena of list nodes
//   - Two eviction policies: LRU, and LFU with LRU as the tie-breaker
//   - Per-entry TTL with both lazy expiration and a bounded background sweep
//   - Own and cleanly stop the sweep goroutine (no leaks on Close)
//
// TTLs are fixed when a key is first written. Writing a live key again
// replaces its value but not its expiration; ExtendTTL is the only way to
// move it.
package cache
