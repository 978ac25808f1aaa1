package untile

import (
	"fmt"
	"sync"
	"testing"
)

func TestMemoryCache_GetPut(t *testing.T) {
	cache := NewMemoryCache()
	key := CacheKey{Identity: "ark:/test/img/v0001", Zoom: 12}

	if _, ok := cache.Get(key); ok {
		t.Error("empty cache should miss")
	}

	res := &Result{Zoom: 12, Width: 100, Height: 50}
	cache.Put(key, res)

	got, ok := cache.Get(key)
	if !ok {
		t.Fatal("cache should hit after Put")
	}
	if got != res {
		t.Error("Get returned a different result")
	}

	// Same image at another zoom level is a distinct entry.
	if _, ok := cache.Get(CacheKey{Identity: key.Identity, Zoom: 11}); ok {
		t.Error("different zoom level should miss")
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
}

func TestMemoryCache_Replace(t *testing.T) {
	cache := NewMemoryCache()
	key := CacheKey{Identity: "img", Zoom: 10}

	first := &Result{Zoom: 10, TilesRequested: 4, TilesSucceeded: 2}
	second := &Result{Zoom: 10, TilesRequested: 4, TilesSucceeded: 4}
	cache.Put(key, first)
	cache.Put(key, second)

	got, _ := cache.Get(key)
	if got != second {
		t.Error("Put should replace the previous entry")
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := NewMemoryCache()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := CacheKey{Identity: fmt.Sprintf("img-%d", n%4), Zoom: n % 3}
			cache.Put(key, &Result{Zoom: key.Zoom})
			if res, ok := cache.Get(key); ok && res.Zoom != key.Zoom {
				t.Errorf("got zoom %d for key %+v", res.Zoom, key)
			}
		}(i)
	}
	wg.Wait()

	if cache.Len() == 0 {
		t.Error("cache should hold entries after concurrent writes")
	}
}
