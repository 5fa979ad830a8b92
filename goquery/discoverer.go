package goquery

import (
	"context"
	"strings"

	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
	"github.com/mallendeo/samsung-docs-mcp/bloom"
)

// DefaultMaxIndexPages caps the number of section index pages the walk
// follows from an entry point. Index pages only contribute more links, so
// the cap bounds discovery cost without truncating leaf pages.
const DefaultMaxIndexPages = 25

// expectedPages sizes the walk's seen-set. Sections are in the low
// thousands of pages.
const expectedPages = 10000

// Ensure Discoverer implements samsungdocs.Discoverer at compile time.
var _ samsungdocs.Discoverer = (*Discoverer)(nil)

// Discoverer finds child pages by walking an entry point's navigation
// markup. Section index pages (develop.html landing pages and *index.html)
// are followed one hop to pick up pages the entry point's own sidebar does
// not list.
type Discoverer struct {
	fetcher       samsungdocs.Fetcher
	maxIndexPages int
}

// DiscovererOption configures a Discoverer.
type DiscovererOption func(*Discoverer)

// WithMaxIndexPages overrides the cap on followed index pages.
func WithMaxIndexPages(n int) DiscovererOption {
	return func(d *Discoverer) {
		d.maxIndexPages = n
	}
}

// NewDiscoverer creates a Discoverer that fetches pages with fetcher.
func NewDiscoverer(fetcher samsungdocs.Fetcher, opts ...DiscovererOption) *Discoverer {
	d := &Discoverer{
		fetcher:       fetcher,
		maxIndexPages: DefaultMaxIndexPages,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscoverEntryPoint fetches the entry point page, extracts its navigation
// links, and follows section index pages one hop. Results are (key, title)
// pairs in first-seen order; the first title seen for a key wins.
func (d *Discoverer) DiscoverEntryPoint(ctx context.Context, entry samsungdocs.EntryPoint) ([]samsungdocs.DiscoveredPage, error) {
	html, err := d.fetcher.Fetch(ctx, entry.URL)
	if err != nil {
		return nil, samsungdocs.Errorf(samsungdocs.EUNAVAILABLE, "fetch entry point %s: %v", entry.URL, err)
	}

	// Both the entry page and the index pages it links stay scoped to the
	// entry point's own prefix.
	scope := scopeForURL(entry.URL)
	links, err := extractNavLinks(html, entry.URL, scope)
	if err != nil {
		return nil, err
	}

	seen := bloom.NewSeenSet(expectedPages, 0.001)
	seen.Add(entry.URL)

	registered := make(map[samsungdocs.PageKey]bool)
	var pages []samsungdocs.DiscoveredPage
	var indexQueue []navLink

	collect := func(links []navLink, followIndexes bool) {
		for _, link := range links {
			if seen.Seen(link.URL) {
				continue
			}
			seen.Add(link.URL)

			if followIndexes && isIndexPage(link.URL) && len(indexQueue) < d.maxIndexPages {
				indexQueue = append(indexQueue, link)
			}

			key, err := samsungdocs.KeyForURL(link.URL)
			if err != nil {
				continue
			}
			if registered[key] {
				continue
			}
			registered[key] = true

			pages = append(pages, samsungdocs.DiscoveredPage{
				Key:   key,
				Title: titleFor(link),
			})
		}
	}

	collect(links, true)

	// One hop: index pages list subsections whose pages the entry point's
	// sidebar omits. Fetch failures here are non-fatal; the pages already
	// collected stand.
	for _, index := range indexQueue {
		if err := ctx.Err(); err != nil {
			return pages, err
		}

		indexHTML, err := d.fetcher.Fetch(ctx, index.URL)
		if err != nil {
			continue
		}
		indexLinks, err := extractNavLinks(indexHTML, index.URL, scope)
		if err != nil {
			continue
		}
		collect(indexLinks, false)
	}

	return pages, nil
}

// isIndexPage reports whether a URL looks like a section landing page worth
// following for more links.
func isIndexPage(pageURL string) bool {
	path := pageURL
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return strings.HasSuffix(path, "/") ||
		strings.HasSuffix(path, "/index.html") ||
		strings.HasSuffix(path, "-index.html") ||
		strings.HasSuffix(path, "/overview.html")
}

// titleFor derives a page title from a navigation link, falling back to the
// last path segment when the anchor text is empty.
func titleFor(link navLink) string {
	if link.Text != "" {
		return link.Text
	}
	path := strings.TrimSuffix(link.URL, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	path = strings.TrimSuffix(path, ".html")
	if path == "" {
		return samsungdocs.UntitledPage
	}
	return path
}
