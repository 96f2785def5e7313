package cache

import (
	"reflect"
	"testing"
)

func drain(r *ttlRegistry, n int) []string {
	var out []string
	for range n {
		k, ok := r.next()
		if !ok {
			break
		}
		out = append(out, k)
	}
	return out
}

func TestRegistryWrapsAround(t *testing.T) {
	r := newTTLRegistry()
	r.add("a")
	r.add("b")
	r.add("c")
	r.add("a") // no-op

	got := drain(r, 5)
	want := []string{"a", "b", "c", "a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("next sequence = %v, want %v", got, want)
	}
}

func TestRegistryRemoveUnderCursor(t *testing.T) {
	r := newTTLRegistry()
	r.add("a")
	r.add("b")
	r.add("c")

	drain(r, 1) // cursor now on b
	r.remove("b")

	if got := drain(r, 2); !reflect.DeepEqual(got, []string{"c", "a"}) {
		t.Fatalf("expected cursor to move past removed key, got %v", got)
	}
}

func TestRegistryAddDuringLap(t *testing.T) {
	r := newTTLRegistry()
	r.add("a")
	r.add("b")

	drain(r, 1)
	r.add("c")

	if got := drain(r, 3); !reflect.DeepEqual(got, []string{"b", "c", "a"}) {
		t.Fatalf("expected new key at the end of the lap, got %v", got)
	}
}

func TestRegistryEmpty(t *testing.T) {
	r := newTTLRegistry()
	if _, ok := r.next(); ok {
		t.Fatalf("expected no key from empty registry")
	}
	r.add("a")
	r.remove("a")
	if r.remove("a") {
		t.Fatalf("expected second remove to report false")
	}
	if _, ok := r.next(); ok || r.len() != 0 {
		t.Fatalf("expected empty registry")
	}
}
