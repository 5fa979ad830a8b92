package populate_test

import (
	"context"
	"strings"
	"testing"
	"time"

	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
	"github.com/mallendeo/samsung-docs-mcp/mock"
	"github.com/mallendeo/samsung-docs-mcp/populate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageFetcher_FetchDocument(t *testing.T) {
	t.Parallel()

	pageURL := samsungdocs.DefaultBaseURL + "/smarttv/develop/api/avplay.html"
	key := mustKey(t, pageURL)

	t.Run("renders a document with provenance", func(t *testing.T) {
		t.Parallel()

		f := &populate.PageFetcher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					assert.Equal(t, pageURL, url)
					return "<html>raw</html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(html string) (*samsungdocs.ExtractResult, error) {
					return &samsungdocs.ExtractResult{
						Title:       "AVPlay API",
						ContentHTML: "<h1>AVPlay API</h1><p>Playback.</p>",
						Since:       "2.3",
					}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(html string) (string, error) {
					return "# AVPlay API\n\nPlayback.", nil
				},
			},
		}

		doc, err := f.FetchDocument(context.Background(), key)

		require.NoError(t, err)
		assert.Equal(t, key, doc.Key)
		assert.Equal(t, pageURL, doc.URL)
		assert.Equal(t, "AVPlay API", doc.Title)
		assert.Equal(t, "2.3", doc.Since)

		firstLine, _, _ := strings.Cut(doc.Markdown, "\n")
		assert.True(t, samsungdocs.IsProvenanceLine(firstLine))
		src, since := samsungdocs.ParseProvenance(doc.Markdown)
		assert.Equal(t, pageURL, src)
		assert.Equal(t, "2.3", since)
	})

	t.Run("falls back to the markdown heading for the title", func(t *testing.T) {
		t.Parallel()

		f := &populate.PageFetcher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) { return "x", nil },
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(html string) (*samsungdocs.ExtractResult, error) {
					return &samsungdocs.ExtractResult{ContentHTML: "<h1>Heading Title</h1>"}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(html string) (string, error) { return "# Heading Title", nil },
			},
		}

		doc, err := f.FetchDocument(context.Background(), key)

		require.NoError(t, err)
		assert.Equal(t, "Heading Title", doc.Title)
	})

	t.Run("exhausted retries surface as unavailable", func(t *testing.T) {
		t.Parallel()

		var attempts int
		f := &populate.PageFetcher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					attempts++
					return "", samsungdocs.Errorf(samsungdocs.EUNAVAILABLE, "portal down")
				},
			},
			RetryDelays: []time.Duration{time.Millisecond, time.Millisecond},
		}

		_, err := f.FetchDocument(context.Background(), key)

		require.Error(t, err)
		assert.Equal(t, samsungdocs.EUNAVAILABLE, samsungdocs.ErrorCode(err))
		assert.Equal(t, 3, attempts, "1 initial attempt + 2 retries")
	})
}
