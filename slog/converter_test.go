package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/pagemark"
	"github.com/fwojciec/pagemark/mock"
	pmslog "github.com/fwojciec/pagemark/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("logs title, size and diagnostics", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Converter{
			ConvertFn: func(html string) (*pagemark.Page, error) {
				return &pagemark.Page{
					Title:       "Doc",
					Content:     "\n\nhello\n\n",
					Diagnostics: []string{"stray '>'"},
				}, nil
			},
		}

		conv := pmslog.NewLoggingConverter(inner, logger)
		page, err := conv.Convert("<main>hello</main>")

		require.NoError(t, err)
		assert.Equal(t, "Doc", page.Title)
		output := buf.String()
		assert.Contains(t, output, "msg=convert")
		assert.Contains(t, output, "input=18")
		assert.Contains(t, output, "title=Doc")
		assert.Contains(t, output, "bytes=9")
		assert.Contains(t, output, "diagnostics=1")
		assert.Contains(t, output, "level=WARN msg=\"parse diagnostic\"")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Converter{
			ConvertFn: func(html string) (*pagemark.Page, error) {
				return nil, errors.New("bad input")
			},
		}

		conv := pmslog.NewLoggingConverter(inner, logger)
		_, err := conv.Convert("")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"bad input\"")
	})
}
