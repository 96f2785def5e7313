package cache

import "container/list"

// freqBucket holds every node that has been accessed freq times, most recent first.
type freqBucket struct {
	freq  int
	nodes nodeList
}

// lfuStore implements the O(1) LFU scheme: frequency buckets kept in
// ascending order, LRU order inside each bucket.
//
// minFreq always names the first bucket in order (0 when empty). It is moved
// forward when the minimum bucket empties and reset to 1 on every insert, so
// eviction never scans.
type lfuStore[T any] struct {
	keyIndex[T]
	buckets map[int]*list.Element // freq -> element of order, value *freqBucket
	order   *list.List            // ascending freq
	minFreq int
}

func newLFUStore[T any]() *lfuStore[T] {
	return &lfuStore[T]{
		keyIndex: newKeyIndex[T](),
		buckets:  make(map[int]*list.Element),
		order:    list.New(),
	}
}

func bucketOf(e *list.Element) *freqBucket {
	return e.Value.(*freqBucket)
}

func (s *lfuStore[T]) get(key string) (T, bool) {
	h, ok := s.index[key]
	if !ok {
		var zero T
		return zero, false
	}
	s.increment(h)
	return s.arena.at(h).value, true
}

func (s *lfuStore[T]) put(key string, value T) handle {
	if h, ok := s.index[key]; ok {
		s.arena.at(h).value = value
		s.increment(h)
		return h
	}

	h := s.add(key, value)
	e, ok := s.buckets[1]
	if !ok {
		e = s.order.PushFront(&freqBucket{freq: 1, nodes: newNodeList()})
		s.buckets[1] = e
	}
	s.arena.pushFront(&bucketOf(e).nodes, h)
	s.minFreq = 1
	return h
}

// increment moves h from bucket f to the head of bucket f+1.
func (s *lfuStore[T]) increment(h handle) {
	n := s.arena.at(h)
	f := n.freq
	cur := s.buckets[f]

	next := cur.Next()
	if next == nil || bucketOf(next).freq != f+1 {
		next = s.order.InsertAfter(&freqBucket{freq: f + 1, nodes: newNodeList()}, cur)
		s.buckets[f+1] = next
	}

	s.arena.unlink(&bucketOf(cur).nodes, h)
	n.freq = f + 1
	s.arena.pushFront(&bucketOf(next).nodes, h)

	if bucketOf(cur).nodes.len == 0 {
		s.dropBucket(cur)
	}
}

func (s *lfuStore[T]) dropBucket(e *list.Element) {
	b := bucketOf(e)
	if b.freq == s.minFreq {
		if next := e.Next(); next != nil {
			s.minFreq = bucketOf(next).freq
		} else {
			s.minFreq = 0
		}
	}
	delete(s.buckets, b.freq)
	s.order.Remove(e)
}

func (s *lfuStore[T]) remove(key string) bool {
	h, ok := s.index[key]
	if !ok {
		return false
	}
	e := s.buckets[s.arena.at(h).freq]
	s.arena.unlink(&bucketOf(e).nodes, h)
	if bucketOf(e).nodes.len == 0 {
		s.dropBucket(e)
	}
	s.drop(key, h)
	return true
}

func (s *lfuStore[T]) evictionCandidate() (handle, bool) {
	e, ok := s.buckets[s.minFreq]
	if !ok {
		return nilHandle, false
	}
	// Same frequency: evict the least recently used.
	return bucketOf(e).nodes.tail, true
}

// walk visits buckets in ascending frequency, most recent first within each.
func (s *lfuStore[T]) walk(fn func(*node[T]) bool) {
	for e := s.order.Front(); e != nil; e = e.Next() {
		if !s.arena.walkList(&bucketOf(e).nodes, fn) {
			return
		}
	}
}

func (s *lfuStore[T]) reset() {
	s.clear()
	s.buckets = make(map[int]*list.Element)
	s.order.Init()
	s.minFreq = 0
}
