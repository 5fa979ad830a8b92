// Package bleve provides an in-memory full-text search index over the
// content store. The index is derived, disposable state: it is rebuilt
// lazily from the content store on the first query after construction or a
// reset, and is never persisted.
package bleve

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search"
	"github.com/blevesearch/bleve/v2/search/query"
	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
)

const (
	indexFieldTitle   = "title"
	indexFieldBody    = "body"
	indexFieldVersion = "version"

	indexingBatchSize = 100

	// snippetMaxLines caps how many matching lines a snippet carries.
	snippetMaxLines = 5

	// overfetchSize is how many hits to pull from bleve when a key or
	// version filter applies, since filtering happens before the
	// caller's limit.
	overfetchSize = 500

	// DefaultTitleBoost is the relevance boost for title-field matches.
	DefaultTitleBoost = 2.0

	prefixBoost = 1.5
)

// Ensure Index implements samsungdocs.SearchIndex at compile time.
var _ samsungdocs.SearchIndex = (*Index)(nil)

// document is the indexed projection of a cached page.
type document struct {
	Title   string `json:"title"`
	Body    string `json:"body"`
	Version string `json:"version"`
}

// Index is an in-memory bleve index over a content store.
// It is safe for concurrent use by multiple goroutines.
type Index struct {
	mu         sync.Mutex
	store      samsungdocs.ContentStore
	index      bleve.Index
	ready      bool
	titleBoost float64
}

// Option configures an Index.
type Option func(*Index)

// WithTitleBoost sets the relevance boost applied to title-field matches.
// Defaults to DefaultTitleBoost.
func WithTitleBoost(boost float64) Option {
	return func(idx *Index) {
		idx.titleBoost = boost
	}
}

// NewIndex creates an empty in-memory index backed by store. The first
// query triggers a rebuild from the store.
func NewIndex(store samsungdocs.ContentStore, opts ...Option) (*Index, error) {
	idx := &Index{
		store:      store,
		titleBoost: DefaultTitleBoost,
	}
	for _, opt := range opts {
		opt(idx)
	}

	empty, err := bleve.NewMemOnly(createIndexMapping())
	if err != nil {
		return nil, err
	}
	idx.index = empty
	return idx, nil
}

func createIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	// Title field - analyzed, stored for result rendering.
	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt(indexFieldTitle, titleFieldMapping)

	// Body field - analyzed for full-text search, not stored (snippets
	// come from the content store).
	bodyFieldMapping := bleve.NewTextFieldMapping()
	bodyFieldMapping.Analyzer = standard.Name
	bodyFieldMapping.Store = false
	bodyFieldMapping.Index = true
	docMapping.AddFieldMappingsAt(indexFieldBody, bodyFieldMapping)

	// Version field - stored only, filtered in Go against comparator
	// expressions.
	versionFieldMapping := bleve.NewTextFieldMapping()
	versionFieldMapping.Index = false
	docMapping.AddFieldMappingsAt(indexFieldVersion, versionFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)
	return indexMapping
}

func documentFor(text string) document {
	_, since := samsungdocs.ParseProvenance(text)
	return document{
		Title:   samsungdocs.ExtractTitle(text),
		Body:    samsungdocs.DocumentBody(text),
		Version: since,
	}
}

// Rebuild discards the in-memory index and re-derives it from every
// document in the content store. Returns the number of documents indexed.
func (idx *Index) Rebuild(ctx context.Context) (int, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.rebuildLocked(ctx)
}

func (idx *Index) rebuildLocked(ctx context.Context) (int, error) {
	keys, err := idx.store.Keys(ctx)
	if err != nil {
		return 0, err
	}

	fresh, err := bleve.NewMemOnly(createIndexMapping())
	if err != nil {
		return 0, err
	}

	batch := fresh.NewBatch()
	var count int
	for _, key := range keys {
		text, err := idx.store.Read(ctx, key)
		if err != nil {
			// A blob deleted between Keys and Read is not fatal.
			continue
		}
		if err := batch.Index(string(key), documentFor(text)); err != nil {
			return 0, err
		}
		count++

		if batch.Size() >= indexingBatchSize {
			if err := fresh.Batch(batch); err != nil {
				return 0, err
			}
			batch = fresh.NewBatch()
		}
	}
	if batch.Size() > 0 {
		if err := fresh.Batch(batch); err != nil {
			return 0, err
		}
	}

	old := idx.index
	idx.index = fresh
	idx.ready = true
	if old != nil {
		_ = old.Close()
	}
	return count, nil
}

// Upsert indexes a document, replacing any previous postings for the key.
func (idx *Index) Upsert(ctx context.Context, key samsungdocs.PageKey, text string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.index.Index(string(key), documentFor(text))
}

// Reset drops the index to empty. The next query triggers a rebuild from
// the content store.
func (idx *Index) Reset(ctx context.Context) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	fresh, err := bleve.NewMemOnly(createIndexMapping())
	if err != nil {
		return err
	}
	old := idx.index
	idx.index = fresh
	idx.ready = false
	if old != nil {
		_ = old.Close()
	}
	return nil
}

// Search returns ranked results for the query. Key and version filters are
// applied before the limit.
func (idx *Index) Search(ctx context.Context, query samsungdocs.SearchQuery) ([]samsungdocs.SearchResult, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if !idx.ready {
		if _, err := idx.rebuildLocked(ctx); err != nil {
			return nil, err
		}
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 10
	}

	size := limit
	if query.Keys != nil || query.Version != "" {
		size = overfetchSize
	}

	searchRequest := bleve.NewSearchRequestOptions(buildSearchQuery(query.Text, idx.titleBoost), size, 0, false)
	searchRequest.Fields = []string{indexFieldTitle, indexFieldVersion}
	searchRequest.IncludeLocations = true

	searchResult, err := idx.index.Search(searchRequest)
	if err != nil {
		return nil, err
	}

	var results []samsungdocs.SearchResult
	for _, hit := range searchResult.Hits {
		if len(results) >= limit {
			break
		}

		key := samsungdocs.PageKey(hit.ID)
		if query.Keys != nil && !query.Keys(key) {
			continue
		}

		var version string
		if v, ok := hit.Fields[indexFieldVersion].(string); ok {
			version = v
		}
		// Pages without version metadata always pass the filter.
		if query.Version != "" && version != "" && !samsungdocs.MatchVersion(version, query.Version) {
			continue
		}

		result := samsungdocs.SearchResult{
			Key:   key,
			Score: hit.Score,
		}
		if title, ok := hit.Fields[indexFieldTitle].(string); ok {
			result.Title = title
		}
		if url, err := samsungdocs.URLForKey(key); err == nil {
			result.URL = url
		}

		result.MatchedTerms = matchedTerms(hit.Locations)
		result.Snippet = idx.extractSnippet(ctx, key, result.MatchedTerms)

		results = append(results, result)
	}
	return results, nil
}

// buildSearchQuery combines full-text matching with per-term fuzzy and
// prefix matching, boosting title-field hits. bleve ranks the disjunction
// by TF-IDF, with the title boost layered on top.
func buildSearchQuery(text string, titleBoost float64) query.Query {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return bleve.NewMatchAllQuery()
	}

	disjunct := bleve.NewDisjunctionQuery()

	titleQuery := bleve.NewMatchQuery(text)
	titleQuery.SetField(indexFieldTitle)
	titleQuery.SetBoost(titleBoost)
	disjunct.AddQuery(titleQuery)

	bodyQuery := bleve.NewMatchQuery(text)
	bodyQuery.SetField(indexFieldBody)
	disjunct.AddQuery(bodyQuery)

	for _, term := range strings.Fields(text) {
		if fuzz := fuzziness(term); fuzz > 0 {
			fuzzyBody := bleve.NewMatchQuery(term)
			fuzzyBody.SetField(indexFieldBody)
			fuzzyBody.SetFuzziness(fuzz)
			disjunct.AddQuery(fuzzyBody)

			fuzzyTitle := bleve.NewMatchQuery(term)
			fuzzyTitle.SetField(indexFieldTitle)
			fuzzyTitle.SetFuzziness(fuzz)
			fuzzyTitle.SetBoost(titleBoost)
			disjunct.AddQuery(fuzzyTitle)
		}

		if len(term) > 2 {
			prefixBody := bleve.NewPrefixQuery(term)
			prefixBody.SetField(indexFieldBody)
			prefixBody.SetBoost(prefixBoost)
			disjunct.AddQuery(prefixBody)

			prefixTitle := bleve.NewPrefixQuery(term)
			prefixTitle.SetField(indexFieldTitle)
			prefixTitle.SetBoost(prefixBoost * titleBoost)
			disjunct.AddQuery(prefixTitle)
		}
	}

	return disjunct
}

// fuzziness allows edit distance of roughly 20% of the term length,
// capped at bleve's maximum of 2.
func fuzziness(term string) int {
	fuzz := len(term) / 5
	if fuzz > 2 {
		fuzz = 2
	}
	return fuzz
}

// matchedTerms collects the distinct analyzed terms that produced the hit.
func matchedTerms(locations search.FieldTermLocationMap) []string {
	seen := make(map[string]bool)
	for _, termLocations := range locations {
		for term := range termLocations {
			seen[term] = true
		}
	}
	terms := make([]string, 0, len(seen))
	for term := range seen {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// extractSnippet pulls up to snippetMaxLines lines containing a matched
// term from the cached document, skipping the provenance header.
func (idx *Index) extractSnippet(ctx context.Context, key samsungdocs.PageKey, terms []string) []string {
	if len(terms) == 0 {
		return nil
	}

	text, err := idx.store.Read(ctx, key)
	if err != nil {
		return nil
	}

	var snippet []string
	for _, line := range strings.Split(samsungdocs.DocumentBody(text), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || samsungdocs.IsProvenanceLine(trimmed) {
			continue
		}
		lower := strings.ToLower(trimmed)
		for _, term := range terms {
			if strings.Contains(lower, term) {
				snippet = append(snippet, trimmed)
				break
			}
		}
		if len(snippet) >= snippetMaxLines {
			break
		}
	}
	return snippet
}
