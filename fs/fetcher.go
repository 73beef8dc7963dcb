package fs

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/pagemark"
	"github.com/fwojciec/pagemark/html"
)

// Ensure Fetcher implements pagemark.Fetcher at compile time.
var _ pagemark.Fetcher = (*Fetcher)(nil)

// Fetcher reads documents from local files. The source "-" reads Stdin and
// file:// URLs are accepted as paths.
type Fetcher struct {
	Stdin io.Reader
}

// NewFetcher creates a new Fetcher reading "-" from os.Stdin.
func NewFetcher() *Fetcher {
	return &Fetcher{Stdin: os.Stdin}
}

// Fetch reads the document at path and decodes it to UTF-8.
func (f *Fetcher) Fetch(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var r io.Reader
	if path == "-" {
		r = f.Stdin
	} else {
		file, err := os.Open(strings.TrimPrefix(path, "file://"))
		if errors.Is(err, os.ErrNotExist) {
			return "", pagemark.Errorf(pagemark.ENOTFOUND, "file not found: %s", path)
		} else if err != nil {
			return "", pagemark.Wrapf(err, pagemark.EFETCH, "open %s", path)
		}
		defer file.Close()
		r = file
	}

	dr, err := html.NewReader(r, "")
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(dr)
	if err != nil {
		return "", pagemark.Wrapf(err, pagemark.EFETCH, "read %s", path)
	}
	return string(data), nil
}

// Close is a no-op.
func (f *Fetcher) Close() error {
	return nil
}
