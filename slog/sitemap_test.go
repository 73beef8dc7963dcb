package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"regexp"
	"testing"

	"github.com/fwojciec/pagemark"
	"github.com/fwojciec/pagemark/mock"
	pmslog "github.com/fwojciec/pagemark/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discover(urls []string, err error) *mock.SitemapService {
	return &mock.SitemapService{
		DiscoverURLsFn: func(context.Context, string, *pagemark.URLFilter) ([]string, error) {
			return urls, err
		},
	}
}

func TestLoggingSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("logs the page count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		svc := pmslog.NewLoggingSitemapService(
			discover([]string{"https://example.com/a", "https://example.com/b"}, nil),
			slog.New(slog.NewTextHandler(&buf, nil)))

		urls, err := svc.DiscoverURLs(context.Background(), "https://example.com", nil)

		require.NoError(t, err)
		assert.Len(t, urls, 2)
		out := buf.String()
		assert.Contains(t, out, "level=INFO")
		assert.Contains(t, out, "site=https://example.com")
		assert.Contains(t, out, "urls=2")
		assert.NotContains(t, out, "include=")
	})

	t.Run("warns with the filter when nothing is left", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		svc := pmslog.NewLoggingSitemapService(discover(nil, nil), slog.New(slog.NewTextHandler(&buf, nil)))
		filter := &pagemark.URLFilter{Include: []*regexp.Regexp{regexp.MustCompile("/docs/")}}

		_, err := svc.DiscoverURLs(context.Background(), "https://example.com", filter)

		require.NoError(t, err)
		out := buf.String()
		assert.Contains(t, out, "level=WARN")
		assert.Contains(t, out, "found no pages")
		assert.Contains(t, out, "include=1")
		assert.Contains(t, out, "exclude=0")
	})

	t.Run("logs failures at error level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		svc := pmslog.NewLoggingSitemapService(
			discover(nil, errors.New("connection failed")),
			slog.New(slog.NewTextHandler(&buf, nil)))

		_, err := svc.DiscoverURLs(context.Background(), "https://example.com", nil)

		require.Error(t, err)
		out := buf.String()
		assert.Contains(t, out, "level=ERROR")
		assert.Contains(t, out, `err="connection failed"`)
	})
}
