// Package htmltomarkdown implements the reference engine, a
// pagemark.Converter backed by github.com/JohannesKaufmann/html-to-markdown.
// Its output is used to compare against the single-pass renderers.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagemark"
)

// Ensure Converter implements pagemark.Converter at compile time.
var _ pagemark.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert renders the main element of html, or the body when there is
// none.
func (c *Converter) Convert(html string) (*pagemark.Page, error) {
	if strings.TrimSpace(html) == "" {
		return nil, pagemark.Errorf(pagemark.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pagemark.Errorf(pagemark.EINVALID, "failed to parse HTML: %v", err)
	}

	region := doc.Find("main").First()
	if region.Length() == 0 {
		region = doc.Find("body").First()
	}
	regionHTML, err := goquery.OuterHtml(region)
	if err != nil {
		return nil, pagemark.Errorf(pagemark.EINTERNAL, "failed to render region: %v", err)
	}

	md, err := c.conv.ConvertString(regionHTML)
	if err != nil {
		return nil, pagemark.Errorf(pagemark.EINTERNAL, "failed to convert HTML: %v", err)
	}

	return &pagemark.Page{
		Title:   strings.TrimSpace(doc.Find("title").First().Text()),
		Content: md,
	}, nil
}
