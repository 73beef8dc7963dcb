package scan

import (
	"github.com/fwojciec/pagemark"
	"github.com/fwojciec/pagemark/markdown"
)

// Ensure Converter implements pagemark.Converter at compile time.
var _ pagemark.Converter = (*Converter)(nil)

// Converter is the streaming engine. Every call runs a fresh Tokenizer and
// Filter, so a Converter may be shared between goroutines.
type Converter struct{}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{}
}

// Convert tokenizes html, keeps the main region and renders it.
func (c *Converter) Convert(html string) (*pagemark.Page, error) {
	tok := NewTokenizer()
	tok.FeedString(html)

	filter := NewFilter()
	for _, tag := range tok.Tags() {
		filter.Feed(tag)
	}

	page := &pagemark.Page{
		Title: filter.Title(),
		Tags:  filter.Tags(),
	}
	page.Content = markdown.RenderTags(page.Tags)
	page.Diagnostics = append(tok.Diagnostics(), filter.Diagnostics()...)
	return page, nil
}
