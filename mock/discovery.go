package mock

import (
	"context"

	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
)

var _ samsungdocs.Discoverer = (*Discoverer)(nil)

// Discoverer is a mock implementation of samsungdocs.Discoverer.
type Discoverer struct {
	DiscoverEntryPointFn func(ctx context.Context, entry samsungdocs.EntryPoint) ([]samsungdocs.DiscoveredPage, error)
}

func (d *Discoverer) DiscoverEntryPoint(ctx context.Context, entry samsungdocs.EntryPoint) ([]samsungdocs.DiscoveredPage, error) {
	return d.DiscoverEntryPointFn(ctx, entry)
}

var _ samsungdocs.DocumentFetcher = (*DocumentFetcher)(nil)

// DocumentFetcher is a mock implementation of samsungdocs.DocumentFetcher.
type DocumentFetcher struct {
	FetchDocumentFn func(ctx context.Context, key samsungdocs.PageKey) (*samsungdocs.FetchedDocument, error)
}

func (f *DocumentFetcher) FetchDocument(ctx context.Context, key samsungdocs.PageKey) (*samsungdocs.FetchedDocument, error) {
	return f.FetchDocumentFn(ctx, key)
}

var _ samsungdocs.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of samsungdocs.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ samsungdocs.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of samsungdocs.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*samsungdocs.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*samsungdocs.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ samsungdocs.Converter = (*Converter)(nil)

// Converter is a mock implementation of samsungdocs.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ samsungdocs.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of samsungdocs.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL)
}
