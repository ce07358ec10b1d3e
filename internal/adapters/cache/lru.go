// Package cache provides query cache adapters.
// Clean Architecture: Adapter implementing ports.QueryCache.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/jismyseban/MINI-RAG-BOT/internal/domain/entities"
)

const (
	// DefaultCapacity bounds how many query results are kept.
	DefaultCapacity = 256

	// DefaultTTL is how long a cached result stays valid. The index can
	// change underneath the cache, so entries must not live forever.
	DefaultTTL = 5 * time.Minute
)

// LRUCache caches retrieval results keyed by normalized query text.
// Safe for concurrent use.
type LRUCache struct {
	lru *expirable.LRU[string, []entities.RetrievedChunk]
}

// NewLRUCache creates a query cache with the given capacity and entry TTL.
// Non-positive values fall back to the defaults.
func NewLRUCache(capacity int, ttl time.Duration) *LRUCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &LRUCache{
		lru: expirable.NewLRU[string, []entities.RetrievedChunk](capacity, nil, ttl),
	}
}

// Get returns the cached result for a key, if present and not expired.
func (c *LRUCache) Get(key string) ([]entities.RetrievedChunk, bool) {
	return c.lru.Get(key)
}

// Put stores a result under the key, evicting the least recently used entry
// when at capacity.
func (c *LRUCache) Put(key string, results []entities.RetrievedChunk) {
	c.lru.Add(key, results)
}
