package cache

import (
	"sync"
	"testing"
)

func TestGetOrCreateCaches(t *testing.T) {
	c := New[int, string](0)
	calls := 0
	create := func() string { calls++; return "v" }

	for range 3 {
		if got := c.GetOrCreate(1, create); got != "v" {
			t.Fatalf("GetOrCreate = %q, want v", got)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
}

func TestSoftLimitEvictsOldest(t *testing.T) {
	c := New[int, int](8)
	for i := range 8 {
		c.GetOrCreate(i, func() int { return i })
	}
	// Touch 0 so it is the most recently used.
	c.GetOrCreate(0, func() int { return -1 })
	c.GetOrCreate(8, func() int { return 8 })

	if n := c.Len(); n != 6 {
		t.Fatalf("Len() = %d, want 6", n)
	}
	if got := c.GetOrCreate(0, func() int { return -1 }); got != 0 {
		t.Errorf("recently used entry was evicted")
	}
	if got := c.GetOrCreate(1, func() int { return -1 }); got != -1 {
		t.Errorf("oldest entry survived eviction")
	}
}

func TestBoundedUnderSweep(t *testing.T) {
	c := New[int, int](16)
	for i := range 10000 {
		c.GetOrCreate(i, func() int { return i })
		if n := c.Len(); n > 16 {
			t.Fatalf("Len() = %d after %d inserts, limit 16", n, i+1)
		}
	}
}

func TestConcurrent(t *testing.T) {
	c := New[int, int](32)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 1000 {
				k := (i + g) % 64
				if got := c.GetOrCreate(k, func() int { return k * 2 }); got != k*2 {
					t.Errorf("GetOrCreate(%d) = %d", k, got)
					return
				}
			}
		}()
	}
	wg.Wait()
}
