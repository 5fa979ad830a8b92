package populate_test

import (
	"context"
	"testing"
	"time"

	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
	"github.com/mallendeo/samsung-docs-mcp/mock"
	"github.com/mallendeo/samsung-docs-mcp/populate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, stores *memStores, index *mock.SearchIndex, fetcher samsungdocs.DocumentFetcher) *populate.Service {
	t.Helper()
	if index == nil {
		index = stores.SearchIndex(nil)
	}
	if fetcher == nil {
		fetcher = &mock.DocumentFetcher{
			FetchDocumentFn: func(ctx context.Context, key samsungdocs.PageKey) (*samsungdocs.FetchedDocument, error) {
				t.Fatal("unexpected fetch")
				return nil, nil
			},
		}
	}
	return populate.NewService(populate.ServiceParams{
		Registry: stores.RegistryStore(),
		Content:  stores.ContentStore(),
		Index:    index,
		Fetcher:  fetcher,
		CacheDir: "/tmp/samsung-docs-test",
		Config:   populate.Config{TTL: time.Hour},
	})
}

func TestService_SearchRejectsEmptyQuery(t *testing.T) {
	t.Parallel()

	s := newTestService(t, newMemStores(), nil, nil)
	_, err := s.Search(context.Background(), populate.SearchOptions{Text: "   "})

	require.Error(t, err)
	assert.Equal(t, samsungdocs.EINVALID, samsungdocs.ErrorCode(err))
}

func TestService_SearchWithHitsSkipsResolver(t *testing.T) {
	t.Parallel()

	stores := newMemStores()
	hit := samsungdocs.SearchResult{Title: "AVPlay API", Score: 2}
	index := stores.SearchIndex(func(ctx context.Context, query samsungdocs.SearchQuery) ([]samsungdocs.SearchResult, error) {
		return []samsungdocs.SearchResult{hit}, nil
	})

	s := newTestService(t, stores, index, nil)
	out, err := s.Search(context.Background(), populate.SearchOptions{Text: "avplay"})

	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, hit, out.Results[0])
	assert.Empty(t, out.Notes)
}

func TestService_SearchFallsBackToResolver(t *testing.T) {
	t.Parallel()

	// Story: the index is empty and so is the registry; the caller gets
	// the building-cache note instead of a bare empty result.
	s := newTestService(t, newMemStores(), nil, &mock.DocumentFetcher{
		FetchDocumentFn: func(ctx context.Context, key samsungdocs.PageKey) (*samsungdocs.FetchedDocument, error) {
			return nil, samsungdocs.Errorf(samsungdocs.EUNAVAILABLE, "offline")
		},
	})
	out, err := s.Search(context.Background(), populate.SearchOptions{Text: "avplay"})

	require.NoError(t, err)
	assert.Empty(t, out.Results)
	require.Len(t, out.Notes, 1)
	assert.Contains(t, out.Notes[0], "cache is still building")
}

func TestService_SearchAppliesFilters(t *testing.T) {
	t.Parallel()

	stores := newMemStores()
	var got samsungdocs.SearchQuery
	index := stores.SearchIndex(func(ctx context.Context, query samsungdocs.SearchQuery) ([]samsungdocs.SearchResult, error) {
		got = query
		return []samsungdocs.SearchResult{{Title: "hit"}}, nil
	})

	s := newTestService(t, stores, index, nil)
	_, err := s.Search(context.Background(), populate.SearchOptions{
		Text:     "avplay",
		Limit:    5,
		Patterns: []string{"smarttv/*"},
		Version:  ">=2.3",
	})

	require.NoError(t, err)
	assert.Equal(t, 5, got.Limit)
	assert.Equal(t, ">=2.3", got.Version)
	require.NotNil(t, got.Keys)

	key := mustKey(t, samsungdocs.DefaultBaseURL+"/smarttv/develop.html")
	other := mustKey(t, samsungdocs.DefaultBaseURL+"/health/develop.html")
	assert.True(t, got.Keys(key))
	assert.False(t, got.Keys(other))
}

func TestService_FetchPage(t *testing.T) {
	t.Parallel()

	pageURL := samsungdocs.DefaultBaseURL + "/smarttv/develop/api/avplay.html"
	key := mustKey(t, pageURL)
	blob := samsungdocs.FormatDocument(pageURL, "2.3", "# AVPlay\n\nPlayback API.")

	t.Run("serves cached content", func(t *testing.T) {
		t.Parallel()

		stores := newMemStores()
		stores.content[key] = blob

		s := newTestService(t, stores, nil, nil)
		doc, err := s.FetchPage(context.Background(), pageURL)

		require.NoError(t, err)
		assert.True(t, doc.Cached)
		assert.Equal(t, key, doc.Key)
		assert.Equal(t, pageURL, doc.URL)
		assert.Equal(t, "AVPlay", doc.Title)
		assert.Equal(t, blob, doc.Markdown)
	})

	t.Run("fetches and caches on miss", func(t *testing.T) {
		t.Parallel()

		stores := newMemStores()
		s := newTestService(t, stores, nil, docFetcher(map[samsungdocs.PageKey]string{
			key: "# AVPlay\n\nPlayback API.",
		}))

		doc, err := s.FetchPage(context.Background(), pageURL)

		require.NoError(t, err)
		assert.False(t, doc.Cached)
		assert.Contains(t, stores.content, key)
		assert.Contains(t, stores.indexed, key)
		assert.True(t, stores.registry.Pages[key].Fetched.Fetched())
	})

	t.Run("accepts a portal path", func(t *testing.T) {
		t.Parallel()

		stores := newMemStores()
		stores.content[key] = blob

		s := newTestService(t, stores, nil, nil)
		doc, err := s.FetchPage(context.Background(), "smarttv/develop/api/avplay.html")

		require.NoError(t, err)
		assert.True(t, doc.Cached)
		assert.Equal(t, key, doc.Key)
	})

	t.Run("rejects empty reference", func(t *testing.T) {
		t.Parallel()

		s := newTestService(t, newMemStores(), nil, nil)
		_, err := s.FetchPage(context.Background(), "")

		require.Error(t, err)
		assert.Equal(t, samsungdocs.EINVALID, samsungdocs.ErrorCode(err))
	})
}

func TestService_List(t *testing.T) {
	t.Parallel()

	stores := newMemStores()
	tvKey := mustKey(t, samsungdocs.DefaultBaseURL+"/smarttv/develop/api/avplay.html")
	watchKey := mustKey(t, samsungdocs.DefaultBaseURL+"/galaxy-watch/develop/tiles.html")
	stores.registry.MarkFetched(tvKey, "AVPlay API", "abc", time.Now())
	stores.registry.RegisterIfAbsent(watchKey, "Tiles")

	s := newTestService(t, stores, nil, nil)

	all, err := s.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "galaxy-watch/develop/tiles.html", all[0].Path)
	assert.Equal(t, samsungdocs.StatusPending, all[0].Status)
	assert.Equal(t, samsungdocs.StatusCached, all[1].Status)

	tv, err := s.List(context.Background(), []string{"smarttv/*"})
	require.NoError(t, err)
	require.Len(t, tv, 1)
	assert.Equal(t, tvKey, tv[0].Key)
}

func TestService_Clear(t *testing.T) {
	t.Parallel()

	// Story: after a clear the system is indistinguishable from
	// never-populated.
	stores := newMemStores()
	key := mustKey(t, samsungdocs.DefaultBaseURL+"/smarttv/develop/api/avplay.html")
	stores.registry.MarkFetched(key, "AVPlay API", "abc", time.Now())
	stores.registry.PopulatedAt = samsungdocs.FetchedAt(time.Now())
	stores.content[key] = "doc"
	stores.indexed[key] = "doc"

	s := newTestService(t, stores, nil, nil)
	count, err := s.Clear(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Empty(t, stores.content)
	assert.Empty(t, stores.indexed)
	assert.Empty(t, stores.registry.Pages)
	assert.False(t, stores.registry.PopulatedAt.Fetched())
}

func TestService_Status(t *testing.T) {
	t.Parallel()

	stores := newMemStores()
	key := mustKey(t, samsungdocs.DefaultBaseURL+"/smarttv/develop/api/avplay.html")
	pendingKey := mustKey(t, samsungdocs.DefaultBaseURL+"/smarttv/develop/guides/media.html")

	s := newTestService(t, stores, nil, nil)

	status, err := s.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Populated)
	assert.Zero(t, status.TotalPages)
	assert.Equal(t, "/tmp/samsung-docs-test", status.CacheDir)

	populatedAt := time.Now().Truncate(time.Millisecond)
	stores.registry.MarkFetched(key, "AVPlay API", "abc", populatedAt)
	stores.registry.RegisterIfAbsent(pendingKey, "Media Guide")
	stores.registry.PopulatedAt = samsungdocs.FetchedAt(populatedAt)

	status, err = s.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Populated)
	assert.Equal(t, populatedAt, status.PopulatedAt)
	assert.Equal(t, 2, status.TotalPages)
	assert.Equal(t, 1, status.CachedPages)
}
