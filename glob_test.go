package samsungdocs_test

import (
	"testing"

	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchGlob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		subject string
		pattern string
		want    bool
	}{
		{"/a/b-api.html", "*b-api*", true},
		{"/a/b-api.html", "*c-api*", false},
		{"ab", "a?", true},
		{"abc", "a?", false},
		{"a", "a?", false},
		{"/docs/api.html", "/docs/*.html", true},

		// Regex metacharacters are literals; '.' must not match 'x'.
		{"/docs/apixhtml", "/docs/api.html", false},
		{"anything", "*", true},
		{"", "*", true},
		{"exact", "exact", true},
	}

	for _, tt := range tests {
		got := samsungdocs.MatchGlob(tt.subject, tt.pattern)
		assert.Equal(t, tt.want, got, "MatchGlob(%q, %q)", tt.subject, tt.pattern)
	}
}

func TestNewKeyFilter(t *testing.T) {
	t.Parallel()

	// No patterns means no restriction.
	assert.Nil(t, samsungdocs.NewKeyFilter(nil))

	filter := samsungdocs.NewKeyFilter([]string{"*b-api*", "/health/*"})
	require.NotNil(t, filter)

	bAPI, err := samsungdocs.KeyForURL("/a/b-api.html")
	require.NoError(t, err)
	health, err := samsungdocs.KeyForURL("/health/develop.html")
	require.NoError(t, err)
	other, err := samsungdocs.KeyForURL("/a/c-api.html")
	require.NoError(t, err)

	assert.True(t, filter(bAPI))
	assert.True(t, filter(health))
	assert.False(t, filter(other))
}

func TestKeyFilter_MatchesDecodedPath(t *testing.T) {
	t.Parallel()

	// The filter sees the URL path, not the encoded key.
	filter := samsungdocs.NewKeyFilter([]string{"/smarttv/develop/api/*"})

	key, err := samsungdocs.KeyForURL("/smarttv/develop/api/player.html?device=tv")
	require.NoError(t, err)

	assert.True(t, filter(key))
}
