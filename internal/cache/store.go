package cache

// orderedStore is the key-indexed ordered structure behind a Cache.
//
// Every key in the index has its node linked into exactly one list owned by
// the store. Stores know nothing about TTLs; the cache checks expiry before
// it touches anything.
type orderedStore[T any] interface {
	// lookup finds key without touching it.
	lookup(key string) (handle, bool)
	node(h handle) *node[T]

	// get returns the value for key and records an access.
	get(key string) (T, bool)
	// put inserts key, or updates its value and records an access.
	put(key string, value T) handle
	remove(key string) bool

	// evictionCandidate reports the node the policy would drop next.
	evictionCandidate() (handle, bool)

	// walk visits nodes in policy order until fn returns false.
	walk(fn func(*node[T]) bool)
	len() int
	reset()
}

func newStore[T any](p Policy) orderedStore[T] {
	if p == LFU {
		return newLFUStore[T]()
	}
	return newLRUStore[T]()
}

// keyIndex maps keys to arena handles. It never owns list positions.
type keyIndex[T any] struct {
	arena arena[T]
	index map[string]handle
}

func newKeyIndex[T any]() keyIndex[T] {
	return keyIndex[T]{index: make(map[string]handle)}
}

func (k *keyIndex[T]) lookup(key string) (handle, bool) {
	h, ok := k.index[key]
	return h, ok
}

func (k *keyIndex[T]) node(h handle) *node[T] {
	return k.arena.at(h)
}

func (k *keyIndex[T]) len() int {
	return len(k.index)
}

func (k *keyIndex[T]) add(key string, value T) handle {
	h := k.arena.alloc(key, value)
	k.index[key] = h
	return h
}

func (k *keyIndex[T]) drop(key string, h handle) {
	delete(k.index, key)
	k.arena.release(h)
}

func (k *keyIndex[T]) clear() {
	k.arena.reset()
	k.index = make(map[string]handle)
}
