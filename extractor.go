package pagemark

import "io"

// ExtractResult holds the main content region found in an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as HTML, boilerplate removed.
	ContentHTML string
}

// Extractor narrows an HTML page down to its main content region.
type Extractor interface {
	// Extract reads the page from r. The pageURL, when not empty, is used
	// to resolve relative links.
	Extract(r io.Reader, pageURL string) (*ExtractResult, error)
}
