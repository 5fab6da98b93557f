// Package mutate implements the optimistic mutation protocol shared by
// every list view: mark an item pending, optionally apply a speculative
// local update, then confirm with the server's object or roll back.
package mutate

import (
	"sync"

	"github.com/nvidela/duet/internal/cache"
	"github.com/nvidela/duet/internal/domain"
)

// Tracker owns the visible slice for one collection view plus the per-item
// pending flags and rollback snapshots. Confirmed changes are mirrored into
// the backing cache under the tracker's current filter key, so the cache is
// never the sole source of truth for what is on screen.
type Tracker[T domain.ListItem] struct {
	mu        sync.Mutex
	key       string
	items     []T
	pending   map[string]bool
	snapshots map[string]T
	cache     *cache.Cache[T]
}

// NewTracker creates a tracker mirroring into the given cache
func NewTracker[T domain.ListItem](c *cache.Cache[T]) *Tracker[T] {
	return &Tracker[T]{
		pending:   make(map[string]bool),
		snapshots: make(map[string]T),
		cache:     c,
	}
}

// SetSlice replaces the visible slice and the filter key it belongs to.
// Pending flags and snapshots for the old slice are discarded; any
// in-flight mutations settle against the cache only.
func (t *Tracker[T]) SetSlice(key string, items []T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.key = key
	t.items = make([]T, len(items))
	copy(t.items, items)
	t.pending = make(map[string]bool)
	t.snapshots = make(map[string]T)
}

// Key returns the filter key of the current visible slice
func (t *Tracker[T]) Key() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.key
}

// Items returns a copy of the visible slice
func (t *Tracker[T]) Items() []T {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]T, len(t.items))
	copy(out, t.items)
	return out
}

// Item returns the visible item with the given id
func (t *Tracker[T]) Item(id string) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, item := range t.items {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Pending reports whether a mutation for id is in flight
func (t *Tracker[T]) Pending(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending[id]
}

// Begin marks a mutation as in flight. It refuses a second mutation for
// the same item before the first settles, which serializes rapid repeated
// toggles instead of letting them race.
func (t *Tracker[T]) Begin(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending[id] {
		return domain.ErrMutationPending
	}
	t.pending[id] = true
	return nil
}

// Speculate applies a local transform to the visible item before the
// network round trip resolves, snapshotting the prior value so Fail can
// restore it exactly.
func (t *Tracker[T]) Speculate(id string, fn func(T) T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, item := range t.items {
		if item.GetID() == id {
			if _, ok := t.snapshots[id]; !ok {
				t.snapshots[id] = item
			}
			t.items[i] = fn(item)
			return
		}
	}
}

// Confirm settles a mutation with the server's authoritative object.
// When removed is true the item disappears from visible state and cache
// instead of being updated in place. Pending always clears.
func (t *Tracker[T]) Confirm(id string, updated T, removed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.pending, id)
	delete(t.snapshots, id)

	if removed {
		for i, item := range t.items {
			if item.GetID() == id {
				t.items = append(t.items[:i:i], t.items[i+1:]...)
				break
			}
		}
		t.cache.RemoveOne(t.key, id)
		return
	}

	for i, item := range t.items {
		if item.GetID() == id {
			t.items[i] = updated
			break
		}
	}
	t.cache.UpdateOne(t.key, id, updated)
}

// Add settles a confirmed create: the server-assigned object joins the
// front of the visible slice and the cache.
func (t *Tracker[T]) Add(item T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.items = append([]T{item}, t.items...)
	t.cache.InsertFront(t.key, item)
}

// Fail settles a failed mutation: any speculative change is reverted and
// the item is otherwise untouched. Pending always clears.
func (t *Tracker[T]) Fail(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.pending, id)

	prior, ok := t.snapshots[id]
	if !ok {
		return
	}
	delete(t.snapshots, id)
	for i, item := range t.items {
		if item.GetID() == id {
			t.items[i] = prior
			return
		}
	}
}
