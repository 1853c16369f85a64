// Package lookup resolves cross-reference fields to display names.
//
// List endpoints return book references (author, publisher, category)
// either expanded or as bare ids depending on server-side population.
// Resolver labels both shapes: expanded documents are used directly and
// primed into the cache, bare ids are fetched once through the gateway and
// remembered in an LRU so table rendering never refetches per row.
package lookup

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kgrae/bookdesk/internal/bookapi"
)

const defaultCacheSize = 512

// FetchFunc loads the display name for an id from the gateway.
type FetchFunc func(ctx context.Context, id string) (string, error)

// Resolver caches id-to-name lookups for one referenced entity kind.
type Resolver struct {
	cache *lru.Cache[string, string]
	fetch FetchFunc
}

// New builds a Resolver with the given cache capacity; values below 1 use
// the default.
func New(size int, fetch FetchFunc) *Resolver {
	if size < 1 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		// lru.New only fails on a non-positive size, which is clamped above.
		cache, _ = lru.New[string, string](defaultCacheSize)
	}
	return &Resolver{cache: cache, fetch: fetch}
}

// Name resolves a reference to its display name. Unresolvable ids fall
// back to a shortened id so rows stay labelled; failures are not cached
// and will be retried on the next call.
func (r *Resolver) Name(ctx context.Context, ref bookapi.Ref) string {
	if ref.IsZero() {
		return ""
	}
	if name := ref.Name(); name != "" {
		r.Prime(ref.ID, name)
		return name
	}
	if name, ok := r.cache.Get(ref.ID); ok {
		return name
	}
	if r.fetch == nil {
		return shortID(ref.ID)
	}
	name, err := r.fetch(ctx, ref.ID)
	if err != nil || name == "" {
		return shortID(ref.ID)
	}
	r.cache.Add(ref.ID, name)
	return name
}

// Cached resolves a reference without touching the network. Expanded
// references and cache hits return their names; anything else falls back
// to the shortened id. View code uses this so rendering never blocks.
func (r *Resolver) Cached(ref bookapi.Ref) string {
	if ref.IsZero() {
		return ""
	}
	if name := ref.Name(); name != "" {
		r.Prime(ref.ID, name)
		return name
	}
	if name, ok := r.cache.Get(ref.ID); ok {
		return name
	}
	return shortID(ref.ID)
}

// Prime seeds the cache, used when list responses arrive pre-expanded.
func (r *Resolver) Prime(id, name string) {
	if id == "" || name == "" {
		return
	}
	r.cache.Add(id, name)
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
