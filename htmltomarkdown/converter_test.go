package htmltomarkdown_test

import (
	"testing"

	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
	"github.com/mallendeo/samsung-docs-mcp/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts headings and paragraphs", func(t *testing.T) {
		t.Parallel()

		html := `<h1>AVPlay API</h1><p>Controls media playback.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# AVPlay API")
		assert.Contains(t, md, "Controls media playback.")
	})

	t.Run("converts parameter tables", func(t *testing.T) {
		t.Parallel()

		html := `<table><tr><th>Parameter</th><th>Type</th></tr><tr><td>url</td><td>String</td></tr></table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "| Parameter | Type |")
		assert.Contains(t, md, "| url | String |")
	})

	t.Run("converts code blocks", func(t *testing.T) {
		t.Parallel()

		html := `<pre><code>webapis.avplay.open(url);</code></pre>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "webapis.avplay.open(url);")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("   ")

		require.Error(t, err)
		assert.Equal(t, samsungdocs.EINVALID, samsungdocs.ErrorCode(err))
	})
}
