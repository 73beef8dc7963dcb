package mock

import (
	"io"

	"github.com/fwojciec/pagemark"
)

var _ pagemark.Parser = (*Parser)(nil)

// Parser is a mock implementation of pagemark.Parser.
type Parser struct {
	ParseFn func(r io.Reader) (*pagemark.Document, error)
}

func (p *Parser) Parse(r io.Reader) (*pagemark.Document, error) {
	return p.ParseFn(r)
}
