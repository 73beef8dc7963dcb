package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/pagemark"
	"github.com/fwojciec/pagemark/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("renders only the main region", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Docs</title></head><body>
<nav><a href="/">Home</a></nav>
<main><h1>Title</h1><p>Visit <a href="https://example.com">Example</a> for <strong>more</strong>.</p></main>
<footer>Copyright</footer>
</body></html>`

		page, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Equal(t, "Docs", page.Title)
		assert.Contains(t, page.Content, "# Title")
		assert.Contains(t, page.Content, "[Example](https://example.com)")
		assert.Contains(t, page.Content, "**more**")
		assert.NotContains(t, page.Content, "Home")
		assert.NotContains(t, page.Content, "Copyright")
	})

	t.Run("falls back to the body", func(t *testing.T) {
		t.Parallel()

		page, err := htmltomarkdown.NewConverter().Convert(`<ul><li>First</li><li>Second</li></ul>`)

		require.NoError(t, err)
		assert.Empty(t, page.Title)
		assert.Contains(t, page.Content, "- First")
		assert.Contains(t, page.Content, "- Second")
	})

	t.Run("converts tables and code blocks", func(t *testing.T) {
		t.Parallel()

		html := `<main>
<pre><code class="language-go">package main</code></pre>
<table>
<thead><tr><th>Option</th><th>Default</th></tr></thead>
<tbody><tr><td>timeout</td><td>30s</td></tr></tbody>
</table>
</main>`

		page, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Contains(t, page.Content, "```go")
		assert.Contains(t, page.Content, "package main")
		assert.Contains(t, page.Content, "|")
		assert.Contains(t, page.Content, "timeout")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().Convert(" ")

		require.Error(t, err)
		assert.Equal(t, pagemark.EINVALID, pagemark.ErrorCode(err))
	})
}
