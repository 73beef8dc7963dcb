package mock

import "github.com/fwojciec/pagemark"

var (
	_ pagemark.Converter     = (*Converter)(nil)
	_ pagemark.LinkCollector = (*LinkCollector)(nil)
)

// Converter is a mock implementation of pagemark.Converter.
type Converter struct {
	ConvertFn func(html string) (*pagemark.Page, error)
}

func (c *Converter) Convert(html string) (*pagemark.Page, error) {
	return c.ConvertFn(html)
}

// LinkCollector is a mock implementation of pagemark.LinkCollector.
type LinkCollector struct {
	CollectLinksFn func(html string) ([]string, error)
}

func (c *LinkCollector) CollectLinks(html string) ([]string, error) {
	return c.CollectLinksFn(html)
}
