// Package cache defines the interface for summary result caching.
package cache

import (
	"context"
	"sync"

	"github.com/openfield/gridiron/internal/domain/summary"
)

// Cache stores generated summaries so repeated requests for the same
// team do not hit the model again.
type Cache interface {
	// Get returns the cached result for a team, if present.
	Get(ctx context.Context, team string) (summary.Result, bool)

	// Put records a result for a team, evicting the oldest entry when
	// the cache is full.
	Put(ctx context.Context, team string, res summary.Result)

	// Clear drops every entry. Used when the snapshot is reloaded.
	Clear(ctx context.Context)

	Size() int
}

// inMemoryCache implements Cache with a map plus insertion-order
// eviction. With maxSize <= 0 the cache is unbounded.
type inMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]summary.Result
	order   []string
	maxSize int
}

// NewInMemoryCache creates a new in-memory cache with configuration options.
func NewInMemoryCache(opts ...Option) Cache {
	c := &inMemoryCache{
		entries: make(map[string]summary.Result),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *inMemoryCache) Get(_ context.Context, team string) (summary.Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res, ok := c.entries[team]
	return res, ok
}

func (c *inMemoryCache) Put(_ context.Context, team string, res summary.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[team]; !exists {
		if c.maxSize > 0 && len(c.order) >= c.maxSize {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, team)
	}
	c.entries[team] = res
}

func (c *inMemoryCache) Clear(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]summary.Result)
	c.order = nil
}

func (c *inMemoryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
