// Package readability implements pagemark.Extractor with the Mozilla
// Readability port github.com/go-shiori/go-readability.
package readability

import (
	"bytes"
	"io"
	"net/url"

	"github.com/fwojciec/pagemark"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements pagemark.Extractor at compile time.
var _ pagemark.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. Relative links
// in the content are resolved against pageURL when it is set.
func (e *Extractor) Extract(r io.Reader, pageURL string) (*pagemark.ExtractResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pagemark.Errorf(pagemark.EINVALID, "failed to read HTML: %v", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, pagemark.Errorf(pagemark.EINVALID, "empty HTML input")
	}

	u, err := parsePageURL(pageURL)
	if err != nil {
		return nil, err
	}

	article, err := readability.FromReader(bytes.NewReader(data), u)
	if err != nil {
		return nil, err
	}

	return &pagemark.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}

func parsePageURL(pageURL string) (*url.URL, error) {
	if pageURL == "" {
		return nil, nil
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, pagemark.Errorf(pagemark.EINVALID, "invalid page URL: %v", err)
	}
	return u, nil
}
