// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"strconv"
	"sync"
	"testing"
)

func TestGetFillsOnce(t *testing.T) {
	var (
		c     Cache[string, int]
		calls int
	)
	fill := func(k string) int {
		calls++
		n, _ := strconv.Atoi(k)
		return n
	}
	for i := 0; i < 3; i++ {
		if got := c.Get("42", fill); got != 42 {
			t.Fatalf("Get(%q) = %d, want 42", "42", got)
		}
	}
	if calls != 1 {
		t.Errorf("fill called %d times, want 1", calls)
	}
}

func count[K comparable, V any](c *Cache[K, V], keys []K) int {
	n := 0
	for _, k := range keys {
		if _, ok := c.Peek(k); ok {
			n++
		}
	}
	return n
}

func TestMaxSize(t *testing.T) {
	c := Cache[int, int]{MaxSize: 4}
	keys := make([]int, 100)
	for i := range keys {
		keys[i] = i
		c.Get(i, func(k int) int { return k })
	}
	if n := count(&c, keys); n > 4 {
		t.Errorf("cache holds %d elements, want <= 4", n)
	}
	// The most recently inserted element is never the one evicted.
	if _, ok := c.Peek(99); !ok {
		t.Errorf("Peek(99) missing after insert")
	}
}

type sized []int

func (s sized) Size() int64 { return int64(len(s)) }

func TestSizer(t *testing.T) {
	c := Cache[string, sized]{MaxSize: 9}
	c.Get("small", func(string) sized { return make(sized, 2) })
	c.Get("medium", func(string) sized { return make(sized, 5) })
	if n := count(&c, []string{"small", "medium"}); n != 2 {
		t.Fatalf("cache holds %d elements, want 2", n)
	}
	c.Get("large", func(string) sized { return make(sized, 8) })
	if _, ok := c.Peek("large"); !ok {
		t.Errorf("Peek(large) missing after insert")
	}
	// Nothing fits next to the large element.
	if n := count(&c, []string{"small", "medium"}); n != 0 {
		t.Errorf("%d older elements survived, want 0", n)
	}
}

func TestFlush(t *testing.T) {
	var c Cache[string, string]
	c.Get("a", func(string) string { return "1" })
	if v, ok := c.Peek("a"); !ok || v != "1" {
		t.Errorf("Peek(a) = %q, %v, want 1, true", v, ok)
	}
	c.Flush()
	if _, ok := c.Peek("a"); ok {
		t.Errorf("Peek(a) found element after Flush")
	}
	// Values handed out before the flush stay usable; the cache refills.
	if got := c.Get("a", func(string) string { return "2" }); got != "2" {
		t.Errorf("Get(a) after Flush = %q, want 2", got)
	}
}

func TestConcurrentGet(t *testing.T) {
	var (
		c  Cache[int, string]
		wg sync.WaitGroup
	)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if got, want := c.Get(i%10, strconv.Itoa), strconv.Itoa(i%10); got != want {
					t.Errorf("Get(%d) = %q, want %q", i%10, got, want)
					return
				}
			}
		}()
	}
	wg.Wait()
}
