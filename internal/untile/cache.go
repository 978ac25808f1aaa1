package untile

import "sync"

// CacheKey identifies a memoized reconstruction: one image at one zoom
// level.
type CacheKey struct {
	// Identity is the stable identifier of the image (model.TiledImage.Identity).
	Identity string

	// Zoom is the zoom level the result was built at.
	Zoom int
}

// Cache memoizes reconstruction results per image and zoom level. It is a
// best-effort layer: callers consult it before Build and store afterwards,
// and correctness never depends on it. Implementations must be safe for
// concurrent use.
type Cache interface {
	Get(key CacheKey) (*Result, bool)
	Put(key CacheKey, res *Result)
}

// MemoryCache is an in-memory Cache guarded by a read/write lock.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[CacheKey]*Result
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[CacheKey]*Result)}
}

// Get returns the memoized result for key, if any.
func (c *MemoryCache) Get(key CacheKey) (*Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res, ok := c.entries[key]
	return res, ok
}

// Put stores res under key, replacing any previous entry.
func (c *MemoryCache) Put(key CacheKey, res *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = res
}

// Len returns the number of memoized results.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
