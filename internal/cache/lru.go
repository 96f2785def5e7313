package cache

// lruStore keeps a single recency list.
// Front = most recently used (MRU), Back = least recently used (LRU).
type lruStore[T any] struct {
	keyIndex[T]
	recency nodeList
}

func newLRUStore[T any]() *lruStore[T] {
	return &lruStore[T]{
		keyIndex: newKeyIndex[T](),
		recency:  newNodeList(),
	}
}

func (s *lruStore[T]) get(key string) (T, bool) {
	h, ok := s.index[key]
	if !ok {
		var zero T
		return zero, false
	}
	s.arena.moveToFront(&s.recency, h)
	return s.arena.at(h).value, true
}

func (s *lruStore[T]) put(key string, value T) handle {
	if h, ok := s.index[key]; ok {
		s.arena.at(h).value = value
		// Updating counts as use; move to MRU.
		s.arena.moveToFront(&s.recency, h)
		return h
	}
	h := s.add(key, value)
	s.arena.pushFront(&s.recency, h)
	return h
}

func (s *lruStore[T]) remove(key string) bool {
	h, ok := s.index[key]
	if !ok {
		return false
	}
	s.arena.unlink(&s.recency, h)
	s.drop(key, h)
	return true
}

func (s *lruStore[T]) evictionCandidate() (handle, bool) {
	if s.recency.tail == nilHandle {
		return nilHandle, false
	}
	return s.recency.tail, true
}

func (s *lruStore[T]) walk(fn func(*node[T]) bool) {
	s.arena.walkList(&s.recency, fn)
}

func (s *lruStore[T]) reset() {
	s.clear()
	s.recency = newNodeList()
}
