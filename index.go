package samsungdocs

import "context"

// SearchQuery describes one query against the search index.
type SearchQuery struct {
	// Text is the free-text query.
	Text string

	// Limit caps the number of results, applied after filtering.
	Limit int

	// Keys restricts results to pages whose URL path the filter accepts.
	// A nil filter means no restriction.
	Keys KeyFilter

	// Version, when non-empty, is a comparator expression (see
	// MatchVersion) evaluated against each page's minimum platform
	// version. Pages without version metadata always pass.
	Version string
}

// SearchResult is a single ranked hit.
type SearchResult struct {
	Key          PageKey  `json:"key"`
	URL          string   `json:"url"`
	Title        string   `json:"title"`
	Score        float64  `json:"score"`
	MatchedTerms []string `json:"matchedTerms,omitempty"`

	// Snippet holds up to 5 lines of the document containing a matched
	// term, provenance header excluded.
	Snippet []string `json:"snippet,omitempty"`
}

// SearchIndex is the in-memory inverted index over the content store.
//
// The index is derived, disposable state: it is never persisted and can be
// rebuilt from the content store at any time, which is the single source of
// truth for recovery. Implementations rebuild lazily on the first query
// after construction or Reset.
type SearchIndex interface {
	// Rebuild discards the in-memory index and re-derives it from every
	// document in the content store. Returns the number of documents
	// indexed.
	Rebuild(ctx context.Context) (int, error)

	// Upsert indexes a document, replacing any previous postings for the
	// key.
	Upsert(ctx context.Context, key PageKey, text string) error

	// Reset drops the index to empty. The next query triggers a rebuild.
	Reset(ctx context.Context) error

	// Search returns ranked results for the query.
	Search(ctx context.Context, query SearchQuery) ([]SearchResult, error)
}
