package bleve_test

import (
	"context"
	"testing"

	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
	"github.com/mallendeo/samsung-docs-mcp/bleve"
	"github.com/mallendeo/samsung-docs-mcp/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIndexedStore(t *testing.T) (*fs.ContentStore, *bleve.Index) {
	t.Helper()
	store := fs.NewContentStore(t.TempDir())
	index, err := bleve.NewIndex(store)
	require.NoError(t, err)
	return store, index
}

func write(t *testing.T, ctx context.Context, store samsungdocs.ContentStore, index samsungdocs.SearchIndex, key samsungdocs.PageKey, url, since, markdown string) {
	t.Helper()
	blob := samsungdocs.FormatDocument(url, since, markdown)
	require.NoError(t, store.Write(ctx, key, blob))
	require.NoError(t, index.Upsert(ctx, key, blob))
}

// Story: Index/Store Consistency
// Every write is queryable; the index is rebuildable from the store alone

func TestIndex_UpsertThenSearch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, index := newIndexedStore(t)

	write(t, ctx, store, index, "smarttv__develop__api__avplay.html",
		"https://developer.samsung.com/smarttv/develop/api/avplay.html", "2.3",
		"# AVPlay API\n\nThe avplay module controls hardware media playback.")

	results, err := index.Search(ctx, samsungdocs.SearchQuery{Text: "avplay", Limit: 10})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, samsungdocs.PageKey("smarttv__develop__api__avplay.html"), results[0].Key)
	assert.Equal(t, "AVPlay API", results[0].Title)
	assert.Equal(t, "https://developer.samsung.com/smarttv/develop/api/avplay.html", results[0].URL)
	assert.Greater(t, results[0].Score, 0.0)
	assert.Contains(t, results[0].MatchedTerms, "avplay")
}

func TestIndex_UpsertReplacesOldPostings(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, index := newIndexedStore(t)

	write(t, ctx, store, index, "k", "https://x/k.html", "", "# Doc\n\nUnique term aardwolf here.")
	write(t, ctx, store, index, "k", "https://x/k.html", "", "# Doc\n\nNow about zyzzyva instead.")

	gone, err := index.Search(ctx, samsungdocs.SearchQuery{Text: "aardwolf", Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, gone, "old postings must be removed on re-index")

	found, err := index.Search(ctx, samsungdocs.SearchQuery{Text: "zyzzyva", Limit: 10})
	require.NoError(t, err)
	require.Len(t, found, 1)
}

func TestIndex_ResetThenSearchRebuildsFromStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, index := newIndexedStore(t)

	write(t, ctx, store, index, "a", "https://x/a.html", "", "# Alpha\n\nContains flamingo.")
	write(t, ctx, store, index, "b", "https://x/b.html", "", "# Beta\n\nContains pelican.")

	require.NoError(t, index.Reset(ctx))

	// No upserts after the reset; the first query rebuilds lazily.
	results, err := index.Search(ctx, samsungdocs.SearchQuery{Text: "flamingo", Limit: 10})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, samsungdocs.PageKey("a"), results[0].Key)
}

func TestIndex_RebuildCountsDocuments(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, index := newIndexedStore(t)

	write(t, ctx, store, index, "a", "https://x/a.html", "", "# A")
	write(t, ctx, store, index, "b", "https://x/b.html", "", "# B")

	count, err := index.Rebuild(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestIndex_TitleMatchesRankAboveBodyMatches(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, index := newIndexedStore(t)

	write(t, ctx, store, index, "body-hit", "https://x/body.html", "",
		"# Unrelated Heading\n\nThe websocket protocol is mentioned here.")
	write(t, ctx, store, index, "title-hit", "https://x/title.html", "",
		"# WebSocket Guide\n\nSome body text.")

	results, err := index.Search(ctx, samsungdocs.SearchQuery{Text: "websocket", Limit: 10})
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, samsungdocs.PageKey("title-hit"), results[0].Key, "title match should outrank body match")
}

func TestIndex_FuzzyAndPrefixMatching(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, index := newIndexedStore(t)

	write(t, ctx, store, index, "k", "https://x/k.html", "",
		"# Player API\n\nControls the player lifecycle.")

	// One edit away from "player" (~20% of the term length).
	fuzzy, err := index.Search(ctx, samsungdocs.SearchQuery{Text: "playr", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, fuzzy, 1, "fuzzy match within edit distance should hit")

	// Partial-word query matches by prefix.
	prefix, err := index.Search(ctx, samsungdocs.SearchQuery{Text: "play", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, prefix, 1, "prefix match should hit")
}

func TestIndex_KeyFilterAppliesBeforeLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, index := newIndexedStore(t)

	write(t, ctx, store, index, "smarttv__a.html", "https://x/smarttv/a.html", "", "# A\n\ncommon term")
	write(t, ctx, store, index, "smarttv__b.html", "https://x/smarttv/b.html", "", "# B\n\ncommon term")
	write(t, ctx, store, index, "health__c.html", "https://x/health/c.html", "", "# C\n\ncommon term")

	results, err := index.Search(ctx, samsungdocs.SearchQuery{
		Text:  "common",
		Limit: 1,
		Keys:  samsungdocs.NewKeyFilter([]string{"/health/*"}),
	})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, samsungdocs.PageKey("health__c.html"), results[0].Key,
		"filter must apply before the limit, not after")
}

func TestIndex_VersionFilter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, index := newIndexedStore(t)

	write(t, ctx, store, index, "old", "https://x/old.html", "2.4", "# Old API\n\nlegacy widget")
	write(t, ctx, store, index, "new", "https://x/new.html", "6.0", "# New API\n\nlegacy widget")
	write(t, ctx, store, index, "unversioned", "https://x/un.html", "", "# Plain\n\nlegacy widget")

	results, err := index.Search(ctx, samsungdocs.SearchQuery{
		Text:    "widget",
		Limit:   10,
		Version: ">=4",
	})
	require.NoError(t, err)

	keys := make([]samsungdocs.PageKey, 0, len(results))
	for _, r := range results {
		keys = append(keys, r.Key)
	}
	assert.ElementsMatch(t, []samsungdocs.PageKey{"new", "unversioned"}, keys,
		"pages without version metadata always pass")
}

func TestIndex_SnippetLines(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, index := newIndexedStore(t)

	markdown := "# Doc\n\n" +
		"kangaroo line one\n" +
		"irrelevant line\n" +
		"kangaroo line two\n" +
		"kangaroo line three\n" +
		"kangaroo line four\n" +
		"kangaroo line five\n" +
		"kangaroo line six\n"
	write(t, ctx, store, index, "k", "https://x/k.html", "", markdown)

	results, err := index.Search(ctx, samsungdocs.SearchQuery{Text: "kangaroo", Limit: 10})
	require.NoError(t, err)
	require.Len(t, results, 1)

	snippet := results[0].Snippet
	require.NotEmpty(t, snippet)
	assert.LessOrEqual(t, len(snippet), 5, "snippets carry at most 5 lines")
	for _, line := range snippet {
		assert.NotContains(t, line, "<!-- source:", "provenance header is never part of a snippet")
	}
}
