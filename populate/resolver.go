package populate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
)

// maxResolvedPages caps how many registry entries one resolution fetches.
const maxResolvedPages = 3

// Resolver fills cache misses on demand. When a search returns nothing it
// fetches the few registry entries whose titles look relevant, then re-runs
// the query against the freshly indexed content.
type Resolver struct {
	Registry samsungdocs.RegistryStore
	Content  samsungdocs.ContentStore
	Index    samsungdocs.SearchIndex
	Fetcher  samsungdocs.DocumentFetcher
	Logger   *slog.Logger

	// RegistryMu serializes registry read-modify-persist sequences.
	// Shared with the populator.
	RegistryMu *sync.Mutex

	fallbackMu sync.Mutex
}

func (r *Resolver) lock() *sync.Mutex {
	if r.RegistryMu != nil {
		return r.RegistryMu
	}
	return &r.fallbackMu
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Resolve handles a query that returned zero hits. It returns the results
// of re-running the query after fetching candidate pages, plus notes for
// the caller to surface: a building-cache hint when the registry is empty,
// and per-page fetch failures.
func (r *Resolver) Resolve(ctx context.Context, query samsungdocs.SearchQuery) ([]samsungdocs.SearchResult, []string, error) {
	mu := r.lock()
	mu.Lock()
	registry, err := r.Registry.Load(ctx)
	mu.Unlock()
	if err != nil {
		return nil, nil, err
	}

	if len(registry.Pages) == 0 {
		return nil, []string{"cache is still building; try again shortly"}, nil
	}

	candidates := titleCandidates(registry, query.Text)
	if len(candidates) == 0 {
		return nil, nil, nil
	}

	var notes []string
	for _, key := range candidates {
		if ctx.Err() != nil {
			break
		}

		doc, err := r.Fetcher.FetchDocument(ctx, key)
		if err != nil {
			notes = append(notes, fmt.Sprintf("failed to fetch %s: %s", key, samsungdocs.ErrorMessage(err)))
			continue
		}

		if err := r.Content.Write(ctx, doc.Key, doc.Markdown); err != nil {
			notes = append(notes, fmt.Sprintf("failed to cache %s: %s", key, samsungdocs.ErrorMessage(err)))
			continue
		}
		if err := r.Index.Upsert(ctx, doc.Key, doc.Markdown); err != nil {
			r.logger().Warn("index upsert failed", "key", doc.Key, "err", err)
		}

		mu.Lock()
		registry, err := r.Registry.Load(ctx)
		if err == nil {
			registry.MarkFetched(doc.Key, doc.Title, ContentHash(doc.Markdown), time.Now())
			err = r.Registry.Save(ctx, registry)
		}
		mu.Unlock()
		if err != nil {
			r.logger().Warn("registry save failed", "key", doc.Key, "err", err)
		}
	}

	results, err := r.Index.Search(ctx, query)
	if err != nil {
		return nil, notes, err
	}
	return results, notes, nil
}

// titleCandidates picks up to maxResolvedPages registry entries whose title
// contains any lower-cased token of the query, in key order.
func titleCandidates(registry *samsungdocs.Registry, text string) []samsungdocs.PageKey {
	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return nil
	}

	var candidates []samsungdocs.PageKey
	for _, key := range registry.SortedKeys() {
		title := strings.ToLower(registry.Pages[key].Title)
		for _, token := range tokens {
			if strings.Contains(title, token) {
				candidates = append(candidates, key)
				break
			}
		}
		if len(candidates) == maxResolvedPages {
			break
		}
	}
	return candidates
}
