package cache

import (
	"sync"
	"time"
)

// CacheItem represents an item stored in the cache, containing a value and its expiration time.
type CacheItem[T any] struct {
	Value      T
	Expiration time.Time
}

// Cache is a generic, thread-safe TTL cache that stores values with string keys.
// It holds at most maxEntries items; when full, the entry closest to expiry is evicted.
type Cache[T any] struct {
	data       map[string]CacheItem[T]
	mu         sync.RWMutex
	ttl        time.Duration
	maxEntries int
}

// NewCache initializes and returns a new Cache with a specified default TTL and capacity.
// A maxEntries of 0 means the cache is unbounded.
func NewCache[T any](ttl time.Duration, maxEntries int) *Cache[T] {
	return &Cache[T]{
		data:       make(map[string]CacheItem[T]),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// Get retrieves a value from the cache by its key.
// It returns the cached value and true if the key exists and has not expired; otherwise, it returns the zero value and false.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	item, ok := c.data[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(item.Expiration) {
		var zero T
		return zero, false
	}
	return item.Value, true
}

// Set adds or updates a value in the cache with the default TTL.
func (c *Cache[T]) Set(key string, value T) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL adds or updates a value in the cache with a custom TTL, overriding the default.
func (c *Cache[T]) SetWithTTL(key string, value T, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.data[key]; !exists && c.maxEntries > 0 && len(c.data) >= c.maxEntries {
		c.evictOne()
	}

	c.data[key] = CacheItem[T]{
		Value:      value,
		Expiration: time.Now().Add(ttl),
	}
}

// evictOne removes one expired entry, or failing that, the live entry closest to expiry.
// The caller must hold the write lock.
func (c *Cache[T]) evictOne() {
	now := time.Now()
	var oldestKey string
	var oldestExp time.Time
	for k, item := range c.data {
		if now.After(item.Expiration) {
			delete(c.data, k)
			return
		}
		if oldestKey == "" || item.Expiration.Before(oldestExp) {
			oldestKey = k
			oldestExp = item.Expiration
		}
	}
	if oldestKey != "" {
		delete(c.data, oldestKey)
	}
}

// Has reports whether a live entry exists for the key.
func (c *Cache[T]) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Delete removes an item from the cache by its key.
func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// Len returns the number of stored entries, counting expired ones not yet evicted.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear purges all items from the cache, making it empty.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]CacheItem[T])
}
