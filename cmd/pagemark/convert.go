package main

import (
	"fmt"

	"github.com/fwojciec/pagemark"
	pmslog "github.com/fwojciec/pagemark/slog"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	conv, err := NewConverter(c.Engine, c.Extractor, pageURL(c.Source))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagemark.ErrorMessage(err))
		return err
	}

	html, err := deps.Fetcher.Fetch(deps.Ctx, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagemark.ErrorMessage(err))
		return err
	}

	page, err := pmslog.NewLoggingConverter(conv, deps.Logger).Convert(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagemark.ErrorMessage(err))
		return err
	}

	writePage(deps.Stdout, page, !c.NoTitle)
	return nil
}

// pageURL returns source when it is a web URL, for extractors that resolve
// relative links. Local sources have no page URL.
func pageURL(source string) string {
	if IsWebURL(source) {
		return source
	}
	return ""
}
