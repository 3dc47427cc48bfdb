package client

import "sync"

// Cache keys. Each read endpoint caches under one key and every
// mutation invalidates the keys it can affect.
const (
	CacheForms    = "forms"
	CacheNewCount = "newFormsCount"
	CacheProfile  = "currentUserProfile"
	CacheUserRole = "userRole"
	CacheIsAdmin  = "isAdmin"
)

// Cache is a resource-keyed response cache. Values live until a
// mutation invalidates their key, there is no TTL: the count refresher
// and explicit invalidation keep the dashboard fresh.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]any
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]any)}
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.entries[key]
	return value, ok
}

func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]any)
}
