package mcp

import (
	"context"

	"github.com/mallendeo/samsung-docs-mcp/populate"
)

// mockDocService is a function-field mock of DocService.
type mockDocService struct {
	SearchFn    func(ctx context.Context, opts populate.SearchOptions) (*populate.SearchOutput, error)
	PopulateFn  func(ctx context.Context, opts populate.Options) (*populate.RunResult, error)
	FetchPageFn func(ctx context.Context, ref string) (*populate.PageDocument, error)
	ListFn      func(ctx context.Context, patterns []string) ([]populate.PageListing, error)
	ClearFn     func(ctx context.Context) (int, error)
	StatusFn    func(ctx context.Context) (*populate.CacheStatus, error)
}

func (m *mockDocService) Search(ctx context.Context, opts populate.SearchOptions) (*populate.SearchOutput, error) {
	if m.SearchFn == nil {
		return &populate.SearchOutput{}, nil
	}
	return m.SearchFn(ctx, opts)
}

func (m *mockDocService) Populate(ctx context.Context, opts populate.Options) (*populate.RunResult, error) {
	if m.PopulateFn == nil {
		return &populate.RunResult{}, nil
	}
	return m.PopulateFn(ctx, opts)
}

func (m *mockDocService) FetchPage(ctx context.Context, ref string) (*populate.PageDocument, error) {
	if m.FetchPageFn == nil {
		return &populate.PageDocument{}, nil
	}
	return m.FetchPageFn(ctx, ref)
}

func (m *mockDocService) List(ctx context.Context, patterns []string) ([]populate.PageListing, error) {
	if m.ListFn == nil {
		return nil, nil
	}
	return m.ListFn(ctx, patterns)
}

func (m *mockDocService) Clear(ctx context.Context) (int, error) {
	if m.ClearFn == nil {
		return 0, nil
	}
	return m.ClearFn(ctx)
}

func (m *mockDocService) Status(ctx context.Context) (*populate.CacheStatus, error) {
	if m.StatusFn == nil {
		return &populate.CacheStatus{}, nil
	}
	return m.StatusFn(ctx)
}
