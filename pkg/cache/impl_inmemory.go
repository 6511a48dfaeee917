package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type cacheEntry struct {
	payload   []byte
	expiredAt time.Time
}

// InMemory implementation of the Cache client. The entries are evicted when
// the cache is full (least recently used first) or when they expire.
type InMemory struct {
	lru *expirable.LRU[string, cacheEntry]
}

// NewInMemory instantiates a new in-memory Cache Client. The ttl is an upper
// bound for the expiration given to Set.
func NewInMemory(size int, ttl time.Duration) *InMemory {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &InMemory{lru: expirable.NewLRU[string, cacheEntry](size, nil, ttl)}
}

// CheckStatus checks that the cache is ready, or returns an error.
func (c *InMemory) CheckStatus(ctx context.Context) (time.Duration, error) {
	return 0, nil
}

// Get fetch the cached asset at the given key, and returns true only if the
// asset was found.
func (c *InMemory) Get(key string) ([]byte, bool) {
	entry, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiredAt) {
		// The value is expired. Clean it and return not found
		c.Clear(key)
		return nil, false
	}
	return entry.payload, true
}

// Set stores an asset to the given key.
func (c *InMemory) Set(key string, data []byte, expiration time.Duration) {
	c.lru.Add(key, cacheEntry{
		payload:   data,
		expiredAt: time.Now().Add(expiration),
	})
}

// Clear removes a key from the cache
func (c *InMemory) Clear(key string) {
	c.lru.Remove(key)
}

// Len returns the number of entries in the cache.
func (c *InMemory) Len() int {
	return c.lru.Len()
}

// Kind returns the name of the backend.
func (c *InMemory) Kind() string {
	return "memory"
}
