package main

import (
	"fmt"

	"github.com/fwojciec/pagemark"
)

// Run executes the archive list command.
func (c *ArchiveListCmd) Run(deps *Dependencies) error {
	pages, err := deps.Pages.FindPages(deps.Ctx, pagemark.PageFilter{
		URLPrefix: c.Prefix,
		Limit:     c.Limit,
		Offset:    c.Offset,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagemark.ErrorMessage(err))
		return err
	}

	if len(pages) == 0 {
		fmt.Fprintln(deps.Stdout, "No pages found. Use 'pagemark batch --db' to archive some.")
		return nil
	}

	for _, p := range pages {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", p.FetchedAt.Format("2006-01-02"), p.URL, p.Title)
	}
	return nil
}

// Run executes the archive show command.
func (c *ArchiveShowCmd) Run(deps *Dependencies) error {
	page, err := deps.Pages.FindPageByURL(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagemark.ErrorMessage(err))
		return err
	}

	writePage(deps.Stdout, page, !c.NoTitle)
	return nil
}

// Run executes the archive delete command.
func (c *ArchiveDeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Pages.DeletePage(deps.Ctx, c.URL); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagemark.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted %s\n", c.URL)
	return nil
}
