package samsungdocs

import (
	"context"
	"sort"
	"time"
)

// Registry is the durable record of every known page plus the global
// "last full populate" watermark. It is the source of truth for staleness
// decisions; the search index is derived state and can always be rebuilt.
type Registry struct {
	PopulatedAt FetchState             `json:"populatedAt"`
	Pages       map[PageKey]*PageEntry `json:"pages"`
}

// NewRegistry returns an empty, never-populated registry.
func NewRegistry() *Registry {
	return &Registry{
		PopulatedAt: Pending(),
		Pages:       make(map[PageKey]*PageEntry),
	}
}

// RegisterIfAbsent inserts a pending entry for key only if the key is
// unknown, and reports whether an insertion occurred. It never touches an
// existing entry, so a page that has already been fetched keeps its
// timestamp.
func (r *Registry) RegisterIfAbsent(key PageKey, title string) bool {
	if _, ok := r.Pages[key]; ok {
		return false
	}
	r.Pages[key] = &PageEntry{
		Key:     key,
		Title:   title,
		Fetched: Pending(),
	}
	return true
}

// MarkFetched upserts the entry for key with a fresh fetch timestamp.
func (r *Registry) MarkFetched(key PageKey, title, contentHash string, now time.Time) {
	r.Pages[key] = &PageEntry{
		Key:         key,
		Title:       title,
		ContentHash: contentHash,
		Fetched:     FetchedAt(now),
	}
}

// SortedKeys returns the registry's keys in lexical order. Map iteration
// order is not stable across runs; the resolver and the list surface need a
// deterministic order.
func (r *Registry) SortedKeys() []PageKey {
	keys := make([]PageKey, 0, len(r.Pages))
	for key := range r.Pages {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// CachedCount returns the number of entries that have been fetched at least
// once.
func (r *Registry) CachedCount() int {
	var n int
	for _, entry := range r.Pages {
		if entry.Fetched.Fetched() {
			n++
		}
	}
	return n
}

// RegistryStore persists the registry.
//
// Load is fail-open: a missing or corrupt record yields a fresh empty
// registry and a nil error, never a failure — documentation caching must not
// block on registry corruption. Save replaces the prior record atomically
// and is safe to call frequently (once per fetch batch).
type RegistryStore interface {
	Load(ctx context.Context) (*Registry, error)
	Save(ctx context.Context, registry *Registry) error

	// Delete removes the persisted record entirely, as part of a cache
	// clear. A subsequent Load returns an empty registry.
	Delete(ctx context.Context) error
}
