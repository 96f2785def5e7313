package cache_test

import (
	"fmt"
	"time"

	"evictcache/internal/cache"
)

func ExampleCache_lru() {
	c, err := cache.New[string](cache.Config{Policy: cache.LRU, MaxSize: 2})
	if err != nil {
		panic(err)
	}
	defer c.Close()

	c.Put("a", "A", 0)
	c.Put("b", "B", 0)
	c.Get("a")
	c.Put("c", "C", 0)

	fmt.Println(c.Keys())
	// Output: [c a]
}

func ExampleCache_lfu() {
	c, err := cache.New[int](cache.Config{Policy: cache.LFU, MaxSize: 2})
	if err != nil {
		panic(err)
	}
	defer c.Close()

	c.Put("a", 1, 0)
	c.Put("b", 2, 0)
	c.Get("a")
	c.Put("c", 3, 0)

	for s := range c.All() {
		fmt.Println(s.Key, s.Frequency)
	}
	// Output:
	// c 1
	// a 2
}

func ExampleCache_ExtendTTL() {
	c, err := cache.New[string](cache.Config{})
	if err != nil {
		panic(err)
	}
	defer c.Close()

	c.Put("session", "token", time.Minute)
	if _, err := c.ExtendTTL("session", -time.Second); err != nil {
		fmt.Println(err)
	}
	ok, _ := c.ExtendTTL("session", time.Minute)
	fmt.Println(ok)
	// Output:
	// ttl extension must be positive: got -1s
	// true
}
