// Package goquery implements content extraction and link resolution with
// CSS selectors over github.com/PuerkitoBio/goquery documents.
package goquery

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagemark"
)

// Ensure Extractor implements pagemark.Extractor at compile time.
var _ pagemark.Extractor = (*Extractor)(nil)

// regionSelectors are tried in order; the first match is the content region.
var regionSelectors = []string{
	"main",
	"article",
	"[role=main]",
	"body",
}

// boilerplate is removed from inside the chosen region.
const boilerplate = "nav, footer, aside, script, style, noscript, template, [role=navigation], [aria-hidden=true]"

// Extractor picks the main content region of a page with a fixed selector
// chain. It is the cheapest of the extractors and works well on pages that
// mark up their content semantically.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the inner HTML of the content region and the page title.
func (e *Extractor) Extract(r io.Reader, pageURL string) (*pagemark.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, pagemark.Errorf(pagemark.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &pagemark.ExtractResult{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	region := selectRegion(doc)
	if region == nil {
		return result, nil
	}
	region.Find(boilerplate).Remove()

	result.ContentHTML, err = region.Html()
	if err != nil {
		return nil, pagemark.Errorf(pagemark.EINTERNAL, "failed to render content: %v", err)
	}
	return result, nil
}

func selectRegion(doc *goquery.Document) *goquery.Selection {
	for _, sel := range regionSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	return nil
}
