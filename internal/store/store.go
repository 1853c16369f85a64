package store

import (
	"sync"

	"github.com/kgrae/bookdesk/internal/bookapi"
)

// Entity is the minimal contract a cached record must satisfy.
type Entity interface {
	Key() string
}

// Snapshot is an immutable view of one collection cache at a point in time.
type Snapshot[T Entity] struct {
	Items      []T
	Selected   *T
	Pagination bookapi.Pagination
	Loading    bool
	Err        string
}

// Collection mirrors one entity kind's server-side collection: the last
// fetched page, the independently selected record, the server's pagination
// descriptor, and the request status. It is mutated only through the three
// request lifecycles (list, get, mutate) plus Reset.
//
// Overlapping dispatches against the same collection are not fenced or
// deduplicated: whichever completion lands last wins. Callers that need
// ordering must serialize their own dispatches.
type Collection[T Entity] struct {
	mu         sync.RWMutex
	items      []T
	selected   *T
	pagination bookapi.Pagination
	loading    bool
	err        string
}

// NewCollection returns an empty collection cache.
func NewCollection[T Entity]() *Collection[T] {
	return &Collection[T]{}
}

// Snapshot returns a defensive copy of the current state.
func (c *Collection[T]) Snapshot() Snapshot[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := Snapshot[T]{
		Items:      cloneItems(c.items),
		Pagination: c.pagination,
		Loading:    c.loading,
		Err:        c.err,
	}
	if c.selected != nil {
		sel := *c.selected
		snap.Selected = &sel
	}
	return snap
}

// BeginList marks a list fetch as in flight. The previous error is cleared
// the moment the request starts.
func (c *Collection[T]) BeginList() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = true
	c.err = ""
}

// ListLoaded replaces the cached page wholesale. The server is the sole
// source of truth for content, ordering, and pagination; nothing is merged.
func (c *Collection[T]) ListLoaded(items []T, p bookapi.Pagination) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = dedupe(items)
	c.pagination = p
	c.loading = false
	c.err = ""
}

// ListFailed records the failure and clears the visible page so an error
// state is never shown next to stale rows.
func (c *Collection[T]) ListFailed(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.pagination = bookapi.Pagination{}
	c.loading = false
	c.err = msg
}

// BeginGet marks a single-record fetch as in flight. The previous selection
// is cleared eagerly so a stale record is never shown while the new one
// loads.
func (c *Collection[T]) BeginGet() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = true
	c.err = ""
	c.selected = nil
}

// GetLoaded stores the independently fetched record as the selection.
func (c *Collection[T]) GetLoaded(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = &item
	c.loading = false
	c.err = ""
}

// GetFailed records the failure; the selection stays cleared.
func (c *Collection[T]) GetFailed(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = nil
	c.loading = false
	c.err = msg
}

// BeginMutate marks a create/update/delete/restore/stock dispatch in flight.
func (c *Collection[T]) BeginMutate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = true
	c.err = ""
}

// Created prepends the new record; admin-created entities list
// most-recent-first. Any stale copy with the same key is dropped first so
// the uniqueness invariant holds.
func (c *Collection[T]) Created(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.items[:0:0]
	for _, existing := range c.items {
		if existing.Key() != item.Key() {
			kept = append(kept, existing)
		}
	}
	c.items = append([]T{item}, kept...)
	c.loading = false
	c.err = ""
}

// Updated replaces the record in place by key; a matching selection is
// replaced too. Records outside the cached page are left alone.
func (c *Collection[T]) Updated(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Key() == item.Key() {
			c.items[i] = item
			break
		}
	}
	if c.selected != nil && (*c.selected).Key() == item.Key() {
		c.selected = &item
	}
	c.loading = false
	c.err = ""
}

// Deleted removes the record by key; a matching selection is cleared.
func (c *Collection[T]) Deleted(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.items[:0:0]
	for _, existing := range c.items {
		if existing.Key() != id {
			kept = append(kept, existing)
		}
	}
	c.items = kept
	if c.selected != nil && (*c.selected).Key() == id {
		c.selected = nil
	}
	c.loading = false
	c.err = ""
}

// MutateFailed records the failure. Items and selection are deliberately
// untouched so a failed mutation cannot corrupt displayed data.
func (c *Collection[T]) MutateFailed(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	c.err = msg
}

// ClearSelected drops the selection without touching the list, used when a
// consumer navigates away from a detail view.
func (c *Collection[T]) ClearSelected() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = nil
}

// Reset restores the empty defaults.
func (c *Collection[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.selected = nil
	c.pagination = bookapi.Pagination{}
	c.loading = false
	c.err = ""
}

func cloneItems[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}

// dedupe keeps the first occurrence of each key, preserving server order.
func dedupe[T Entity](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item.Key()]; dup {
			continue
		}
		seen[item.Key()] = struct{}{}
		out = append(out, item)
	}
	return out
}
