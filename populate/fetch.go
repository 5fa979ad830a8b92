package populate

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/cespare/xxhash/v2"
	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
)

// Ensure PageFetcher implements samsungdocs.DocumentFetcher at compile time.
var _ samsungdocs.DocumentFetcher = (*PageFetcher)(nil)

// PageFetcher renders a single documentation page: rate limit, fetch with
// retry, extract the main content, convert to markdown, and prepend the
// provenance header.
type PageFetcher struct {
	Fetcher     samsungdocs.Fetcher
	Extractor   samsungdocs.Extractor
	Converter   samsungdocs.Converter
	Limiter     *DomainLimiter
	RetryDelays []time.Duration
}

// FetchDocument retrieves and renders the page identified by key.
func (f *PageFetcher) FetchDocument(ctx context.Context, key samsungdocs.PageKey) (*samsungdocs.FetchedDocument, error) {
	pageURL, err := samsungdocs.URLForKey(key)
	if err != nil {
		return nil, err
	}

	if f.Limiter != nil {
		u, err := url.Parse(pageURL)
		if err != nil {
			return nil, samsungdocs.Errorf(samsungdocs.EINVALID, "invalid page URL %s: %v", pageURL, err)
		}
		if err := f.Limiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	delays := f.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, pageURL, f.Fetcher.Fetch, nil, delays)
	if err != nil {
		return nil, samsungdocs.Errorf(samsungdocs.EUNAVAILABLE, "fetch %s: %v", pageURL, err)
	}

	extracted, err := f.Extractor.Extract(html)
	if err != nil {
		return nil, err
	}

	markdown, err := f.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return nil, err
	}

	blob := samsungdocs.FormatDocument(pageURL, extracted.Since, markdown)

	title := extracted.Title
	if title == "" {
		title = samsungdocs.ExtractTitle(blob)
	}

	return &samsungdocs.FetchedDocument{
		Key:      key,
		URL:      pageURL,
		Title:    title,
		Since:    extracted.Since,
		Markdown: blob,
	}, nil
}

// ContentHash computes a hash of a document blob using xxhash. Unchanged
// hashes let the populator skip rewriting content and re-indexing.
func ContentHash(text string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(text))
}
