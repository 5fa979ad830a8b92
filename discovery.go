package samsungdocs

import "context"

// Section identifies a documentation area of the developer portal.
type Section string

// Known portal sections. SectionAll selects every entry point.
const (
	SectionAll         Section = "all"
	SectionSmartTV     Section = "smart-tv"
	SectionGalaxyWatch Section = "galaxy-watch"
	SectionSmartThings Section = "smartthings"
	SectionHealth      Section = "health"
)

// EntryPoint is a root page whose navigation sidebar is crawled to discover
// child pages.
type EntryPoint struct {
	Section Section
	Title   string
	URL     string
}

// entryPoints is the portal catalog. Discovery failures for one entry point
// never abort the others.
var entryPoints = []EntryPoint{
	{Section: SectionSmartTV, Title: "Smart TV", URL: DefaultBaseURL + "/smarttv/develop.html"},
	{Section: SectionGalaxyWatch, Title: "Galaxy Watch", URL: DefaultBaseURL + "/galaxy-watch/develop.html"},
	{Section: SectionSmartThings, Title: "SmartThings", URL: DefaultBaseURL + "/smartthings/develop.html"},
	{Section: SectionHealth, Title: "Samsung Health", URL: DefaultBaseURL + "/health/develop.html"},
}

// EntryPoints returns the entry points matching section. SectionAll (or the
// empty string) returns the full catalog.
func EntryPoints(section Section) []EntryPoint {
	if section == SectionAll || section == "" {
		return append([]EntryPoint(nil), entryPoints...)
	}
	var matched []EntryPoint
	for _, ep := range entryPoints {
		if ep.Section == section {
			matched = append(matched, ep)
		}
	}
	return matched
}

// KnownSection reports whether s names a known section or SectionAll.
func KnownSection(s Section) bool {
	if s == SectionAll || s == "" {
		return true
	}
	for _, ep := range entryPoints {
		if ep.Section == s {
			return true
		}
	}
	return false
}

// DiscoveredPage is a (key, title) pair produced by discovery. Discovered
// pages are registered as pending before any content is fetched, so partial
// crawls remain queryable.
type DiscoveredPage struct {
	Key   PageKey
	Title string
}

// Discoverer finds child pages from an entry point's navigation markup.
type Discoverer interface {
	DiscoverEntryPoint(ctx context.Context, entry EntryPoint) ([]DiscoveredPage, error)
}

// FetchedDocument is a fully rendered documentation page.
type FetchedDocument struct {
	Key      PageKey
	URL      string
	Title    string
	Since    string // minimum platform version, empty when unknown
	Markdown string // includes the provenance header line
}

// DocumentFetcher retrieves and renders a single page. Failures are
// per-document and non-fatal to callers.
type DocumentFetcher interface {
	FetchDocument(ctx context.Context, key PageKey) (*FetchedDocument, error)
}

// Fetcher retrieves raw HTML from URLs. The context controls timeout and
// cancellation.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any underlying resources.
	Close() error
}

// ExtractResult holds the extracted content of an HTML page.
type ExtractResult struct {
	// Title is the page title from the portal's metadata.
	Title string

	// ContentHTML is the main content with portal chrome removed.
	ContentHTML string

	// Since is the minimum platform version the page declares, if any.
	Since string
}

// Extractor extracts main content from portal HTML, removing chrome.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	Convert(html string) (string, error)
}

// SitemapService discovers URLs from the portal's sitemap. Used as a
// fallback source when navigation discovery yields nothing for an entry
// point.
type SitemapService interface {
	// DiscoverURLs finds all URLs under baseURL's path prefix, checking
	// robots.txt for sitemap directives before falling back to
	// /sitemap.xml.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
