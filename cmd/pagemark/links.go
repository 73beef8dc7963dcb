package main

import (
	"fmt"

	"github.com/fwojciec/pagemark"
	"github.com/fwojciec/pagemark/goquery"
	"github.com/fwojciec/pagemark/html"
)

// Run executes the links command.
func (c *LinksCmd) Run(deps *Dependencies) error {
	src, err := deps.Fetcher.Fetch(deps.Ctx, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagemark.ErrorMessage(err))
		return err
	}

	var links []string
	if c.Resolve {
		links, err = goquery.ResolveLinks(src, pageURL(c.Source), c.SameHost)
	} else {
		links, err = html.NewLinkCollector().CollectLinks(src)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagemark.ErrorMessage(err))
		return err
	}

	for _, l := range links {
		fmt.Fprintln(deps.Stdout, l)
	}
	return nil
}
