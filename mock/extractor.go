package mock

import (
	"io"

	"github.com/fwojciec/pagemark"
)

var _ pagemark.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of pagemark.Extractor.
type Extractor struct {
	ExtractFn func(r io.Reader, pageURL string) (*pagemark.ExtractResult, error)
}

func (e *Extractor) Extract(r io.Reader, pageURL string) (*pagemark.ExtractResult, error) {
	return e.ExtractFn(r, pageURL)
}
