// Package populate orchestrates the documentation mirror: discovery,
// fetching, content storage, indexing and the on-demand resolver.
package populate

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the fetch group size when none is configured.
const DefaultConcurrency = 4

// DefaultTTL is how long a cached page stays fresh.
const DefaultTTL = 7 * 24 * time.Hour

// progressEvery is how many completions pass between progress log lines.
const progressEvery = 10

// Config holds the populator's tunables.
type Config struct {
	// Concurrency is the fetch group size. Pages are fetched in
	// consecutive groups of this many; values below 1 fall back to
	// DefaultConcurrency.
	Concurrency int

	// Section restricts runs to one documentation area. Empty or
	// SectionAll covers the whole catalog.
	Section samsungdocs.Section

	// TTL is the freshness window. A page fetched within TTL of now is
	// skipped; zero means every page is always stale.
	TTL time.Duration
}

// Options adjusts a single run.
type Options struct {
	// Section overrides the configured section when non-empty.
	Section samsungdocs.Section

	// Force refetches every discovered page regardless of TTL.
	Force bool
}

// RunResult summarizes one populate run.
type RunResult struct {
	RunID      string `json:"runId"`
	Discovered int    `json:"discovered"`
	Fetched    int    `json:"fetched"`
	Fresh      int    `json:"fresh"`
	Errored    int    `json:"errored"`
	Total      int    `json:"total"` // pages selected for fetching
}

// Populator runs the populate pipeline: discover pages per entry point,
// register them, fetch the stale ones in groups, and keep the content store
// and search index in lockstep. No per-page error is fatal.
type Populator struct {
	Registry   samsungdocs.RegistryStore
	Content    samsungdocs.ContentStore
	Index      samsungdocs.SearchIndex
	Discoverer samsungdocs.Discoverer
	Sitemaps   samsungdocs.SitemapService // fallback when nav discovery yields nothing
	Fetcher    samsungdocs.DocumentFetcher
	Logger     *slog.Logger
	Config     Config

	// RegistryMu serializes registry read-modify-persist sequences.
	// The resolver shares it so concurrent saves never interleave.
	RegistryMu *sync.Mutex

	fallbackMu sync.Mutex
}

func (p *Populator) lock() *sync.Mutex {
	if p.RegistryMu != nil {
		return p.RegistryMu
	}
	return &p.fallbackMu
}

func (p *Populator) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// Run executes one populate pass. The returned result counts pages even
// when some of them errored; only an unknown section or a canceled context
// before any work is an error.
func (p *Populator) Run(ctx context.Context, opts Options) (*RunResult, error) {
	section := opts.Section
	if section == "" {
		section = p.Config.Section
	}
	if !samsungdocs.KnownSection(section) {
		return nil, samsungdocs.Errorf(samsungdocs.EINVALID, "unknown section %q", section)
	}

	runID := uuid.NewString()
	logger := p.logger().With("run", runID)
	logger.Info("populate started", "section", section, "force", opts.Force)

	discovered := p.discover(ctx, section, logger)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stale, prior := p.register(ctx, discovered, opts.Force, logger)

	total := len(stale)
	var fetched, fresh, errored, completed int

	concurrency := p.Config.Concurrency
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}

	type marked struct {
		key   samsungdocs.PageKey
		title string
		hash  string
	}

	for start := 0; start < total; start += concurrency {
		if ctx.Err() != nil {
			break
		}
		batch := stale[start:min(start+concurrency, total)]

		docs := make([]*samsungdocs.FetchedDocument, len(batch))
		errs := make([]error, len(batch))

		// Failures stay in the errs slice so one bad page never cancels
		// its group.
		g, gctx := errgroup.WithContext(ctx)
		for i, key := range batch {
			g.Go(func() error {
				doc, err := p.Fetcher.FetchDocument(gctx, key)
				if err != nil {
					errs[i] = err
					return nil
				}
				docs[i] = doc
				return nil
			})
		}
		_ = g.Wait()

		var marks []marked
		for i, key := range batch {
			completed++
			if errs[i] != nil {
				errored++
				logger.Warn("fetch failed", "key", key, "err", errs[i])
			} else {
				doc := docs[i]
				hash := ContentHash(doc.Markdown)
				switch {
				case hash == prior[doc.Key] && prior[doc.Key] != "":
					// Unchanged content: refresh the timestamp, skip the
					// write and the index churn.
					fresh++
					marks = append(marks, marked{doc.Key, doc.Title, hash})
				default:
					if err := p.Content.Write(ctx, doc.Key, doc.Markdown); err != nil {
						errored++
						logger.Warn("content write failed", "key", doc.Key, "err", err)
						break
					}
					if err := p.Index.Upsert(ctx, doc.Key, doc.Markdown); err != nil {
						// The index is rebuildable from the content store.
						logger.Warn("index upsert failed", "key", doc.Key, "err", err)
					}
					fetched++
					marks = append(marks, marked{doc.Key, doc.Title, hash})
				}
			}

			if completed%progressEvery == 0 {
				logger.Info("populate progress",
					"completed", completed, "total", total,
					"fetched", fetched, "fresh", fresh, "errored", errored)
			}
		}

		mu := p.lock()
		mu.Lock()
		registry, err := p.Registry.Load(ctx)
		if err == nil {
			now := time.Now()
			for _, m := range marks {
				registry.MarkFetched(m.key, m.title, m.hash, now)
			}
			err = p.Registry.Save(ctx, registry)
		}
		mu.Unlock()
		if err != nil {
			logger.Warn("registry save failed", "err", err)
		}
	}

	if ctx.Err() == nil {
		// A canceled run never advances the watermark, so the next
		// startup re-populates.
		mu := p.lock()
		mu.Lock()
		registry, err := p.Registry.Load(ctx)
		if err == nil {
			registry.PopulatedAt = samsungdocs.FetchedAt(time.Now())
			err = p.Registry.Save(ctx, registry)
		}
		mu.Unlock()
		if err != nil {
			logger.Warn("registry save failed", "err", err)
		}
	}

	logger.Info("populate finished",
		"discovered", len(discovered), "total", total,
		"fetched", fetched, "fresh", fresh, "errored", errored)

	return &RunResult{
		RunID:      runID,
		Discovered: len(discovered),
		Fetched:    fetched,
		Fresh:      fresh,
		Errored:    errored,
		Total:      total,
	}, nil
}

// discover collects pages from every entry point in the section, first
// title wins. A failed entry point is logged and skipped; when navigation
// markup yields nothing the sitemap is tried as a fallback source.
func (p *Populator) discover(ctx context.Context, section samsungdocs.Section, logger *slog.Logger) []samsungdocs.DiscoveredPage {
	seen := make(map[samsungdocs.PageKey]bool)
	var pages []samsungdocs.DiscoveredPage

	for _, entry := range samsungdocs.EntryPoints(section) {
		if ctx.Err() != nil {
			break
		}

		found, err := p.Discoverer.DiscoverEntryPoint(ctx, entry)
		if err != nil {
			logger.Warn("discovery failed", "section", entry.Section, "url", entry.URL, "err", err)
			found = nil
		}

		if len(found) == 0 && p.Sitemaps != nil {
			urls, err := p.Sitemaps.DiscoverURLs(ctx, entry.URL)
			if err != nil {
				logger.Warn("sitemap discovery failed", "section", entry.Section, "err", err)
			}
			for _, pageURL := range urls {
				key, err := samsungdocs.KeyForURL(pageURL)
				if err != nil {
					continue
				}
				found = append(found, samsungdocs.DiscoveredPage{Key: key, Title: titleFromURL(pageURL)})
			}
		}

		for _, page := range found {
			if seen[page.Key] {
				continue
			}
			seen[page.Key] = true
			pages = append(pages, page)
		}
	}

	return pages
}

// register inserts discovered pages as pending, persists the registry once,
// and returns the keys that need fetching along with their prior content
// hashes.
func (p *Populator) register(ctx context.Context, discovered []samsungdocs.DiscoveredPage, force bool, logger *slog.Logger) ([]samsungdocs.PageKey, map[samsungdocs.PageKey]string) {
	mu := p.lock()
	mu.Lock()
	defer mu.Unlock()

	registry, err := p.Registry.Load(ctx)
	if err != nil {
		logger.Warn("registry load failed", "err", err)
		registry = samsungdocs.NewRegistry()
	}

	for _, page := range discovered {
		registry.RegisterIfAbsent(page.Key, page.Title)
	}

	now := time.Now()
	var stale []samsungdocs.PageKey
	prior := make(map[samsungdocs.PageKey]string)
	for _, page := range discovered {
		entry := registry.Pages[page.Key]
		if force || entry.Stale(now, p.Config.TTL) {
			stale = append(stale, page.Key)
			prior[page.Key] = entry.ContentHash
		}
	}

	if err := p.Registry.Save(ctx, registry); err != nil {
		logger.Warn("registry save failed", "err", err)
	}

	return stale, prior
}

// titleFromURL derives a placeholder title from the last path segment of a
// sitemap-discovered URL. Discovery via navigation markup carries real
// titles; the real title replaces this one after the first fetch.
func titleFromURL(pageURL string) string {
	path := strings.TrimSuffix(pageURL, "/")
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	path = strings.TrimSuffix(path, ".html")
	if path == "" {
		return samsungdocs.UntitledPage
	}
	return path
}
