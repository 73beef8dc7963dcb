// Package trafilatura implements pagemark.Extractor with
// github.com/markusmobius/go-trafilatura.
package trafilatura

import (
	"bytes"
	"io"
	"net/url"

	"github.com/fwojciec/pagemark"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements pagemark.Extractor at compile time.
var _ pagemark.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(r io.Reader, pageURL string) (*pagemark.ExtractResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pagemark.Errorf(pagemark.EINVALID, "failed to read HTML: %v", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, pagemark.Errorf(pagemark.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			return nil, pagemark.Errorf(pagemark.EINVALID, "invalid page URL: %v", err)
		}
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(bytes.NewReader(data), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &pagemark.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
