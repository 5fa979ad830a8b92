// Package mock provides function-field mock implementations of the
// samsungdocs interfaces for testing.
package mock

import (
	"context"

	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
)

var _ samsungdocs.RegistryStore = (*RegistryStore)(nil)

// RegistryStore is a mock implementation of samsungdocs.RegistryStore.
type RegistryStore struct {
	LoadFn   func(ctx context.Context) (*samsungdocs.Registry, error)
	SaveFn   func(ctx context.Context, registry *samsungdocs.Registry) error
	DeleteFn func(ctx context.Context) error
}

func (s *RegistryStore) Load(ctx context.Context) (*samsungdocs.Registry, error) {
	return s.LoadFn(ctx)
}

func (s *RegistryStore) Save(ctx context.Context, registry *samsungdocs.Registry) error {
	return s.SaveFn(ctx, registry)
}

func (s *RegistryStore) Delete(ctx context.Context) error {
	return s.DeleteFn(ctx)
}

var _ samsungdocs.ContentStore = (*ContentStore)(nil)

// ContentStore is a mock implementation of samsungdocs.ContentStore.
type ContentStore struct {
	ReadFn  func(ctx context.Context, key samsungdocs.PageKey) (string, error)
	WriteFn func(ctx context.Context, key samsungdocs.PageKey, text string) error
	KeysFn  func(ctx context.Context) ([]samsungdocs.PageKey, error)
	ClearFn func(ctx context.Context) (int, error)
}

func (s *ContentStore) Read(ctx context.Context, key samsungdocs.PageKey) (string, error) {
	return s.ReadFn(ctx, key)
}

func (s *ContentStore) Write(ctx context.Context, key samsungdocs.PageKey, text string) error {
	return s.WriteFn(ctx, key, text)
}

func (s *ContentStore) Keys(ctx context.Context) ([]samsungdocs.PageKey, error) {
	return s.KeysFn(ctx)
}

func (s *ContentStore) Clear(ctx context.Context) (int, error) {
	return s.ClearFn(ctx)
}

var _ samsungdocs.SearchIndex = (*SearchIndex)(nil)

// SearchIndex is a mock implementation of samsungdocs.SearchIndex.
type SearchIndex struct {
	RebuildFn func(ctx context.Context) (int, error)
	UpsertFn  func(ctx context.Context, key samsungdocs.PageKey, text string) error
	ResetFn   func(ctx context.Context) error
	SearchFn  func(ctx context.Context, query samsungdocs.SearchQuery) ([]samsungdocs.SearchResult, error)
}

func (i *SearchIndex) Rebuild(ctx context.Context) (int, error) {
	return i.RebuildFn(ctx)
}

func (i *SearchIndex) Upsert(ctx context.Context, key samsungdocs.PageKey, text string) error {
	return i.UpsertFn(ctx, key, text)
}

func (i *SearchIndex) Reset(ctx context.Context) error {
	return i.ResetFn(ctx)
}

func (i *SearchIndex) Search(ctx context.Context, query samsungdocs.SearchQuery) ([]samsungdocs.SearchResult, error) {
	return i.SearchFn(ctx, query)
}
