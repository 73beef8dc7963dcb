package trafilatura_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/pagemark"
	"github.com/fwojciec/pagemark/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title from meta tags", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Page Title</title>
<meta property="og:title" content="OG Title">
</head>
<body>
<article><p>This is the main content of the article with enough text to be extracted.</p></article>
</body>
</html>`

		result, err := trafilatura.NewExtractor().Extract(strings.NewReader(html), "")

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
	})

	t.Run("extracts main content and drops boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav class="main-nav"><a href="/">Home</a><a href="/docs">Docs</a></nav>
<article>
<h1>Documentation</h1>
<p>This is important documentation content that should be extracted.</p>
<p>Article body with substantive content for readers.</p>
</article>
<footer><p>Copyright 2024 Example Corp</p></footer>
</body>
</html>`

		result, err := trafilatura.NewExtractor().Extract(strings.NewReader(html), "https://example.com/docs/page")

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "important documentation content")
		assert.NotContains(t, result.ContentHTML, "main-nav")
		assert.NotContains(t, result.ContentHTML, "Copyright 2024 Example Corp")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().Extract(strings.NewReader(""), "")

		require.Error(t, err)
		assert.Equal(t, pagemark.EINVALID, pagemark.ErrorCode(err))
	})

	t.Run("returns error for invalid page URL", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().Extract(strings.NewReader("<p>x</p>"), "://bad")

		assert.Equal(t, pagemark.EINVALID, pagemark.ErrorCode(err))
	})
}
