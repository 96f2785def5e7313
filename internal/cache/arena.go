package cache

import "time"

// handle addresses a node slot in an arena. Handles stay valid until the slot
// is released; the key index stores handles, never pointers.
type handle int32

const nilHandle handle = -1

// node holds one entry and its position in exactly one nodeList.
type node[T any] struct {
	key       string
	value     T
	freq      int
	expiresAt time.Time // zero means no expiration
	prev      handle
	next      handle
}

func (n *node[T]) hasExpiry() bool {
	return !n.expiresAt.IsZero()
}

func (n *node[T]) expired(now time.Time) bool {
	return n.hasExpiry() && !n.expiresAt.After(now)
}

// arena owns every node slot. Released slots go on a free list and are reused
// before the slice grows.
//
// Pointers returned by at are only valid until the next alloc.
type arena[T any] struct {
	nodes []node[T]
	free  []handle
}

func (a *arena[T]) alloc(key string, value T) handle {
	var h handle
	if n := len(a.free); n > 0 {
		h = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.nodes = append(a.nodes, node[T]{})
		h = handle(len(a.nodes) - 1)
	}
	a.nodes[h] = node[T]{key: key, value: value, freq: 1, prev: nilHandle, next: nilHandle}
	return h
}

func (a *arena[T]) release(h handle) {
	// Drop references so released values can be collected.
	a.nodes[h] = node[T]{prev: nilHandle, next: nilHandle}
	a.free = append(a.free, h)
}

func (a *arena[T]) at(h handle) *node[T] {
	return &a.nodes[h]
}

func (a *arena[T]) reset() {
	a.nodes = nil
	a.free = nil
}

// nodeList is an intrusive doubly-linked list of arena handles.
// head is the most recently touched node, tail the eviction candidate.
type nodeList struct {
	head handle
	tail handle
	len  int
}

func newNodeList() nodeList {
	return nodeList{head: nilHandle, tail: nilHandle}
}

func (a *arena[T]) pushFront(l *nodeList, h handle) {
	n := a.at(h)
	n.prev = nilHandle
	n.next = l.head
	if l.head != nilHandle {
		a.at(l.head).prev = h
	} else {
		l.tail = h
	}
	l.head = h
	l.len++
}

func (a *arena[T]) unlink(l *nodeList, h handle) {
	n := a.at(h)
	if n.prev != nilHandle {
		a.at(n.prev).next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nilHandle {
		a.at(n.next).prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev = nilHandle
	n.next = nilHandle
	l.len--
}

func (a *arena[T]) moveToFront(l *nodeList, h handle) {
	if l.head == h {
		return
	}
	a.unlink(l, h)
	a.pushFront(l, h)
}

// walkList visits l from head to tail. fn may not mutate the list.
func (a *arena[T]) walkList(l *nodeList, fn func(*node[T]) bool) bool {
	for h := l.head; h != nilHandle; h = a.at(h).next {
		if !fn(a.at(h)) {
			return false
		}
	}
	return true
}
