package main

import (
	"github.com/fwojciec/pagemark"
	"github.com/fwojciec/pagemark/goquery"
	"github.com/fwojciec/pagemark/html"
	"github.com/fwojciec/pagemark/htmltomarkdown"
	"github.com/fwojciec/pagemark/readability"
	"github.com/fwojciec/pagemark/scan"
	"github.com/fwojciec/pagemark/trafilatura"
)

// NewConverter builds the converter selected by engine and extractor for
// the page at pageURL.
func NewConverter(engine, extractor, pageURL string) (pagemark.Converter, error) {
	var conv pagemark.Converter
	switch engine {
	case "stream", "":
		conv = scan.NewConverter()
	case "dom":
		conv = html.NewConverter()
	case "reference":
		conv = htmltomarkdown.NewConverter()
	default:
		return nil, pagemark.Errorf(pagemark.EINVALID, "unknown engine %q", engine)
	}

	var ext pagemark.Extractor
	switch extractor {
	case "none", "":
		return conv, nil
	case "goquery":
		ext = goquery.NewExtractor()
	case "readability":
		ext = readability.NewExtractor()
	case "trafilatura":
		ext = trafilatura.NewExtractor()
	default:
		return nil, pagemark.Errorf(pagemark.EINVALID, "unknown extractor %q", extractor)
	}

	return &html.ExtractingConverter{Extractor: ext, Converter: conv, PageURL: pageURL}, nil
}
