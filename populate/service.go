package populate

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
)

// Service is the front door for every cache operation. It owns the
// populator, the resolver and the registry mutex they share; the MCP server
// and the CLI both sit on top of it.
type Service struct {
	registry  samsungdocs.RegistryStore
	content   samsungdocs.ContentStore
	index     samsungdocs.SearchIndex
	fetcher   samsungdocs.DocumentFetcher
	populator *Populator
	resolver  *Resolver
	cacheDir  string
	logger    *slog.Logger
	mu        *sync.Mutex
}

// ServiceParams holds the collaborators a Service is built from.
type ServiceParams struct {
	Registry   samsungdocs.RegistryStore
	Content    samsungdocs.ContentStore
	Index      samsungdocs.SearchIndex
	Discoverer samsungdocs.Discoverer
	Sitemaps   samsungdocs.SitemapService
	Fetcher    samsungdocs.DocumentFetcher
	CacheDir   string
	Logger     *slog.Logger
	Config     Config
}

// NewService wires a populator and a resolver around shared storage with a
// common registry mutex.
func NewService(params ServiceParams) *Service {
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mu := &sync.Mutex{}

	populator := &Populator{
		Registry:   params.Registry,
		Content:    params.Content,
		Index:      params.Index,
		Discoverer: params.Discoverer,
		Sitemaps:   params.Sitemaps,
		Fetcher:    params.Fetcher,
		Logger:     logger,
		Config:     params.Config,
		RegistryMu: mu,
	}
	resolver := &Resolver{
		Registry:   params.Registry,
		Content:    params.Content,
		Index:      params.Index,
		Fetcher:    params.Fetcher,
		Logger:     logger,
		RegistryMu: mu,
	}

	return &Service{
		registry:  params.Registry,
		content:   params.Content,
		index:     params.Index,
		fetcher:   params.Fetcher,
		populator: populator,
		resolver:  resolver,
		cacheDir:  params.CacheDir,
		logger:    logger,
		mu:        mu,
	}
}

// SearchOptions describes one search request.
type SearchOptions struct {
	Text     string
	Limit    int
	Patterns []string // glob patterns over page paths
	Version  string   // comparator expression, see samsungdocs.MatchVersion
}

// SearchOutput carries ranked hits plus human-readable notes: a
// cache-still-building hint or per-page resolution failures.
type SearchOutput struct {
	Results []samsungdocs.SearchResult `json:"results"`
	Notes   []string                   `json:"notes,omitempty"`
}

// Search queries the index. Zero hits hand the query to the resolver,
// which fetches likely pages on demand and retries.
func (s *Service) Search(ctx context.Context, opts SearchOptions) (*SearchOutput, error) {
	if strings.TrimSpace(opts.Text) == "" {
		return nil, samsungdocs.Errorf(samsungdocs.EINVALID, "search query must not be empty")
	}

	query := samsungdocs.SearchQuery{
		Text:    opts.Text,
		Limit:   opts.Limit,
		Keys:    samsungdocs.NewKeyFilter(opts.Patterns),
		Version: opts.Version,
	}

	results, err := s.index.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(results) > 0 {
		return &SearchOutput{Results: results}, nil
	}

	results, notes, err := s.resolver.Resolve(ctx, query)
	if err != nil {
		return nil, err
	}
	return &SearchOutput{Results: results, Notes: notes}, nil
}

// Populate runs one populate pass. See Populator.Run.
func (s *Service) Populate(ctx context.Context, opts Options) (*RunResult, error) {
	return s.populator.Run(ctx, opts)
}

// NewScheduler returns a scheduler driving this service's populator.
func (s *Service) NewScheduler(interval time.Duration) *Scheduler {
	return &Scheduler{
		Registry:  s.registry,
		Populator: s.populator,
		Interval:  interval,
		Logger:    s.logger,
	}
}

// PageDocument is a single page's rendered markdown, cached or fresh.
type PageDocument struct {
	Key      samsungdocs.PageKey `json:"key"`
	URL      string              `json:"url"`
	Title    string              `json:"title"`
	Markdown string              `json:"markdown"`
	Cached   bool                `json:"cached"`
}

// FetchPage returns the page identified by ref, a full portal URL or a
// path like "smarttv/develop/api/avplay.html". Cache hits are served as-is;
// misses are fetched, cached and indexed before returning.
func (s *Service) FetchPage(ctx context.Context, ref string) (*PageDocument, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, samsungdocs.Errorf(samsungdocs.EINVALID, "page reference must not be empty")
	}

	pageURL := ref
	if !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") {
		pageURL = samsungdocs.DefaultBaseURL + "/" + strings.TrimPrefix(ref, "/")
	}
	key, err := samsungdocs.KeyForURL(pageURL)
	if err != nil {
		return nil, err
	}

	text, err := s.content.Read(ctx, key)
	if err == nil {
		sourceURL, _ := samsungdocs.ParseProvenance(text)
		if sourceURL == "" {
			sourceURL = pageURL
		}
		return &PageDocument{
			Key:      key,
			URL:      sourceURL,
			Title:    samsungdocs.ExtractTitle(text),
			Markdown: text,
			Cached:   true,
		}, nil
	}
	if samsungdocs.ErrorCode(err) != samsungdocs.ENOTFOUND {
		return nil, err
	}

	doc, err := s.fetcher.FetchDocument(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := s.content.Write(ctx, doc.Key, doc.Markdown); err != nil {
		return nil, err
	}
	if err := s.index.Upsert(ctx, doc.Key, doc.Markdown); err != nil {
		s.logger.Warn("index upsert failed", "key", doc.Key, "err", err)
	}

	s.mu.Lock()
	registry, err := s.registry.Load(ctx)
	if err == nil {
		registry.MarkFetched(doc.Key, doc.Title, ContentHash(doc.Markdown), time.Now())
		err = s.registry.Save(ctx, registry)
	}
	s.mu.Unlock()
	if err != nil {
		s.logger.Warn("registry save failed", "key", doc.Key, "err", err)
	}

	return &PageDocument{
		Key:      doc.Key,
		URL:      doc.URL,
		Title:    doc.Title,
		Markdown: doc.Markdown,
		Cached:   false,
	}, nil
}

// PageListing is one registry entry in a List result.
type PageListing struct {
	Key    samsungdocs.PageKey    `json:"key"`
	Path   string                 `json:"path"`
	Title  string                 `json:"title"`
	Status samsungdocs.PageStatus `json:"status"`
}

// List returns registry entries in key order, optionally narrowed by glob
// patterns over page paths.
func (s *Service) List(ctx context.Context, patterns []string) ([]PageListing, error) {
	s.mu.Lock()
	registry, err := s.registry.Load(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	filter := samsungdocs.NewKeyFilter(patterns)

	listings := []PageListing{}
	for _, key := range registry.SortedKeys() {
		if filter != nil && !filter(key) {
			continue
		}
		path, err := samsungdocs.PathForKey(key)
		if err != nil {
			continue
		}
		entry := registry.Pages[key]
		listings = append(listings, PageListing{
			Key:    key,
			Path:   path,
			Title:  entry.Title,
			Status: entry.Status(),
		})
	}
	return listings, nil
}

// Clear wipes the cache: every content blob, the registry record and the
// in-memory index. Returns how many documents were removed. Afterwards the
// system is indistinguishable from never-populated.
func (s *Service) Clear(ctx context.Context) (int, error) {
	count, err := s.content.Clear(ctx)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	err = s.registry.Delete(ctx)
	s.mu.Unlock()
	if err != nil {
		return count, err
	}

	if err := s.index.Reset(ctx); err != nil {
		return count, err
	}
	return count, nil
}

// CacheStatus summarizes the mirror's state.
type CacheStatus struct {
	CacheDir    string    `json:"cacheDir"`
	Populated   bool      `json:"populated"`
	PopulatedAt time.Time `json:"populatedAt,omitzero"`
	TotalPages  int       `json:"totalPages"`
	CachedPages int       `json:"cachedPages"`
}

// Status reports the cache directory, the last full populate (if any) and
// how much of the registry is cached.
func (s *Service) Status(ctx context.Context) (*CacheStatus, error) {
	s.mu.Lock()
	registry, err := s.registry.Load(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	status := &CacheStatus{
		CacheDir:    s.cacheDir,
		Populated:   registry.PopulatedAt.Fetched(),
		TotalPages:  len(registry.Pages),
		CachedPages: registry.CachedCount(),
	}
	if status.Populated {
		status.PopulatedAt = registry.PopulatedAt.Time()
	}
	return status, nil
}
