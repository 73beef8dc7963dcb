package html

import (
	"strings"

	"github.com/fwojciec/pagemark"
	"github.com/fwojciec/pagemark/markdown"
)

// Ensure service types implement interfaces at compile time.
var (
	_ pagemark.Converter     = (*Converter)(nil)
	_ pagemark.LinkCollector = (*LinkCollector)(nil)
	_ pagemark.Converter     = (*ExtractingConverter)(nil)
)

// regions are tried in order when choosing the subtree to render.
var regions = []string{"main", "body"}

// Converter is the DOM engine: it parses with the conformant parser and
// renders the main element, or the body when the page has none.
type Converter struct {
	parser *Parser
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{parser: NewParser()}
}

// Convert parses html and renders its main region.
func (c *Converter) Convert(html string) (*pagemark.Page, error) {
	doc, err := c.parser.ParseString(html)
	if err != nil {
		return nil, err
	}

	page := &pagemark.Page{
		Title:       Title(doc.Tree),
		Diagnostics: doc.Diagnostics,
	}
	page.Content = markdown.RenderNode(doc.Tree, region(doc.Tree))
	return page, nil
}

// Title returns the normalized text of the first title element.
func Title(tree *pagemark.Tree) string {
	id, ok := tree.Find("title")
	if !ok {
		return ""
	}
	s, _ := pagemark.CollapseWhitespace(tree.Text(id))
	return strings.TrimSpace(s)
}

func region(tree *pagemark.Tree) pagemark.NodeID {
	for _, name := range regions {
		if id, ok := tree.Find(name); ok {
			return id
		}
	}
	return pagemark.RootID
}

// LinkCollector lists anchor targets using the conformant parser.
type LinkCollector struct {
	parser *Parser
}

// NewLinkCollector creates a new LinkCollector.
func NewLinkCollector() *LinkCollector {
	return &LinkCollector{parser: NewParser()}
}

// CollectLinks returns every anchor href in document order.
func (l *LinkCollector) CollectLinks(html string) ([]string, error) {
	doc, err := l.parser.ParseString(html)
	if err != nil {
		return nil, err
	}
	return markdown.CollectLinks(doc.Tree), nil
}

// ExtractingConverter narrows a page to its main content with an Extractor
// before handing the result to a Converter.
type ExtractingConverter struct {
	Extractor pagemark.Extractor
	Converter pagemark.Converter

	// PageURL is passed to the extractor for resolving relative links.
	PageURL string
}

// Convert extracts, then converts. The extracted content is wrapped in a
// main element so every engine treats all of it as the main region. The
// extractor's title is kept when the converter finds none.
func (c *ExtractingConverter) Convert(html string) (*pagemark.Page, error) {
	result, err := c.Extractor.Extract(strings.NewReader(html), c.PageURL)
	if err != nil {
		return nil, err
	}

	page, err := c.Converter.Convert("<main>" + result.ContentHTML + "</main>")
	if err != nil {
		return nil, err
	}
	if page.Title == "" {
		page.Title = result.Title
	}
	return page, nil
}
