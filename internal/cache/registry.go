package cache

import "container/list"

// ttlRegistry is the set of keys whose live entry carries a finite TTL, with a
// cursor that survives across sweep passes.
//
// Keys are kept in a linked list so the cursor is a stable position: removing
// the key under the cursor moves the cursor forward first, and new keys go to
// the back. Successive passes therefore cover the registry round-robin even
// while membership changes between them.
type ttlRegistry struct {
	keys   *list.List // values are string
	pos    map[string]*list.Element
	cursor *list.Element // nil means "start from the front"
}

func newTTLRegistry() *ttlRegistry {
	return &ttlRegistry{
		keys: list.New(),
		pos:  make(map[string]*list.Element),
	}
}

func (r *ttlRegistry) len() int {
	return r.keys.Len()
}

func (r *ttlRegistry) contains(key string) bool {
	_, ok := r.pos[key]
	return ok
}

// add registers key. Adding a registered key is a no-op.
func (r *ttlRegistry) add(key string) {
	if _, ok := r.pos[key]; ok {
		return
	}
	r.pos[key] = r.keys.PushBack(key)
}

func (r *ttlRegistry) remove(key string) bool {
	el, ok := r.pos[key]
	if !ok {
		return false
	}
	if r.cursor == el {
		r.cursor = el.Next()
	}
	delete(r.pos, key)
	r.keys.Remove(el)
	return true
}

// next returns the key under the cursor and advances it, wrapping to the
// front at the end.
func (r *ttlRegistry) next() (string, bool) {
	if r.keys.Len() == 0 {
		r.cursor = nil
		return "", false
	}
	if r.cursor == nil {
		r.cursor = r.keys.Front()
	}
	el := r.cursor
	r.cursor = el.Next()
	return el.Value.(string), true
}

func (r *ttlRegistry) reset() {
	r.keys.Init()
	r.pos = make(map[string]*list.Element)
	r.cursor = nil
}
