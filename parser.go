package pagemark

import "io"

// Document is a parsed HTML document.
type Document struct {
	Tree *Tree

	// Diagnostics lists parse errors reported while building the tree.
	Diagnostics []string
}

// Parser builds a Tree from HTML using a conformant parser.
type Parser interface {
	Parse(r io.Reader) (*Document, error)
}
