package main_test

import (
	"context"
	"testing"

	main "github.com/fwojciec/pagemark/cmd/pagemark"
	"github.com/fwojciec/pagemark/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const linksHTML = `<a href="/a">1</a><a href="https://other.com/x">2</a><a href="/a#top">3</a><a href="mailto:me@example.com">4</a>`

func TestLinksCmd_Run(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return linksHTML, nil
		},
	}

	t.Run("prints raw hrefs", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(fetcher)

		err := (&main.LinksCmd{Source: "https://example.com/docs/"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "/a\nhttps://other.com/x\n/a#top\nmailto:me@example.com\n", stdout.String())
	})

	t.Run("resolves and deduplicates", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(fetcher)

		err := (&main.LinksCmd{Source: "https://example.com/docs/", Resolve: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/a\nhttps://other.com/x\n", stdout.String())
	})

	t.Run("keeps only the page host", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(fetcher)

		err := (&main.LinksCmd{Source: "https://example.com/docs/", Resolve: true, SameHost: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/a\n", stdout.String())
	})
}
