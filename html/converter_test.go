package html_test

import (
	"errors"
	"io"
	"testing"

	"github.com/fwojciec/pagemark"
	"github.com/fwojciec/pagemark/html"
	"github.com/fwojciec/pagemark/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("renders the main element", func(t *testing.T) {
		t.Parallel()

		page, err := html.NewConverter().Convert(`<html><head><title> The
 Title </title></head><body><nav>menu</nav><main><p>Hello <em>world</em></p></main><footer>bye</footer></body></html>`)

		require.NoError(t, err)
		assert.Equal(t, "The Title", page.Title)
		assert.Equal(t, "\n\nHello _world_\n\n", page.Content)
	})

	t.Run("falls back to the body", func(t *testing.T) {
		t.Parallel()

		page, err := html.NewConverter().Convert("<title>T</title><p>x</p>")

		require.NoError(t, err)
		assert.Equal(t, "T", page.Title)
		assert.Equal(t, "\n\nx\n\n", page.Content)
	})

	t.Run("carries parse diagnostics", func(t *testing.T) {
		t.Parallel()

		page, err := html.NewConverter().Convert("<main><p>x</p></aside></main>")

		require.NoError(t, err)
		assert.Equal(t, []string{"stray end tag </aside>"}, page.Diagnostics)
	})
}

func TestLinkCollector_CollectLinks(t *testing.T) {
	t.Parallel()

	links, err := html.NewLinkCollector().CollectLinks(
		`<a href="/a">1</a><p><a href="/b">2</a><a name="x">3</a><a href="/a">4</a></p>`)

	require.NoError(t, err)
	assert.Equal(t, []string{"/a", "/b", "/a"}, links)
}

func TestExtractingConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts the extracted region", func(t *testing.T) {
		t.Parallel()

		var gotURL string
		c := &html.ExtractingConverter{
			Extractor: &mock.Extractor{
				ExtractFn: func(r io.Reader, pageURL string) (*pagemark.ExtractResult, error) {
					gotURL = pageURL
					return &pagemark.ExtractResult{Title: "Extracted", ContentHTML: "<p>x</p>"}, nil
				},
			},
			Converter: html.NewConverter(),
			PageURL:   "https://example.com/page",
		}

		page, err := c.Convert("<html>ignored</html>")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/page", gotURL)
		assert.Equal(t, "Extracted", page.Title)
		assert.Equal(t, "\n\nx\n\n", page.Content)
	})

	t.Run("returns extractor errors", func(t *testing.T) {
		t.Parallel()

		c := &html.ExtractingConverter{
			Extractor: &mock.Extractor{
				ExtractFn: func(io.Reader, string) (*pagemark.ExtractResult, error) {
					return nil, errors.New("boom")
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(string) (*pagemark.Page, error) {
					t.Fatal("converter must not run")
					return nil, nil
				},
			},
		}

		_, err := c.Convert("<p>x</p>")

		assert.EqualError(t, err, "boom")
	})
}
