// Package cache holds client copies of server collections, one slice per
// filter key, so flipping between already-seen filters never refetches.
package cache

import (
	"sync"

	"github.com/nvidela/duet/internal/domain"
)

// Cache maps a filter key (owner, list name, entity name) to the last
// fetched slice of a collection. It lives for the session and is only
// invalidated by overwrite after a confirmed mutation.
type Cache[T domain.ListItem] struct {
	mu     sync.RWMutex
	slices map[string][]T
}

// New creates an empty cache
func New[T domain.ListItem]() *Cache[T] {
	return &Cache[T]{slices: make(map[string][]T)}
}

// Get returns a copy of the cached slice for key, if present. Copying
// keeps callers from aliasing cache memory across async updates.
func (c *Cache[T]) Get(key string) ([]T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items, ok := c.slices[key]
	if !ok {
		return nil, false
	}
	out := make([]T, len(items))
	copy(out, items)
	return out, true
}

// Set overwrites the slice for key wholesale. No partial merge.
func (c *Cache[T]) Set(key string, items []T) {
	stored := make([]T, len(items))
	copy(stored, items)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.slices[key] = stored
}

// UpdateOne replaces a single cached entry in place after a confirmed
// mutation, keeping the cache and visible state in agreement without a
// refetch. A miss is a no-op.
func (c *Cache[T]) UpdateOne(key, id string, item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, ok := c.slices[key]
	if !ok {
		return
	}
	for i := range items {
		if items[i].GetID() == id {
			items[i] = item
			return
		}
	}
}

// RemoveOne drops a single cached entry, used when the server deletes an
// item on mutation (non-reusable coupon redemption) or on confirmed delete.
func (c *Cache[T]) RemoveOne(key, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, ok := c.slices[key]
	if !ok {
		return
	}
	for i := range items {
		if items[i].GetID() == id {
			c.slices[key] = append(items[:i:i], items[i+1:]...)
			return
		}
	}
}

// InsertFront prepends a confirmed create to the cached slice. A key that
// was never fetched stays absent so the first view still hits the server.
func (c *Cache[T]) InsertFront(key string, item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, ok := c.slices[key]
	if !ok {
		return
	}
	c.slices[key] = append([]T{item}, items...)
}

// InvalidateAll drops every cached slice, forcing the next view of each
// filter key back to the server.
func (c *Cache[T]) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slices = make(map[string][]T)
}
