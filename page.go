package pagemark

import (
	"context"
	"time"
)

// Page is the rendered result of one conversion pass. It is populated once
// and not modified afterwards.
type Page struct {
	// ID is assigned by stores that keep pages, empty otherwise.
	ID string

	URL   string
	Title string

	// Tags is the filtered, depth-annotated tag stream when the page was
	// produced by the streaming engine. Empty for the DOM engines.
	Tags []Tag

	// Content is the rendered Markdown body.
	Content string

	// Diagnostics lists non-fatal parse problems in the order found.
	Diagnostics []string

	// ContentHash identifies the rendered content. Set by stores.
	ContentHash string

	FetchedAt time.Time
}

// Validate returns an error if the page cannot be stored.
func (p *Page) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	return nil
}

// PageStore persists rendered pages.
type PageStore interface {
	// SavePage stores the page, replacing any earlier version with the same URL.
	SavePage(ctx context.Context, page *Page) error
}

// PageService archives rendered pages for later retrieval.
type PageService interface {
	PageStore

	// FindPageByURL retrieves a page by URL. Returns ENOTFOUND if missing.
	FindPageByURL(ctx context.Context, url string) (*Page, error)

	// FindPages retrieves pages matching the filter, most recent first.
	FindPages(ctx context.Context, filter PageFilter) ([]*Page, error)

	// DeletePage removes a page by URL. Returns ENOTFOUND if missing.
	DeletePage(ctx context.Context, url string) error
}

// PageFilter represents a filter for FindPages.
type PageFilter struct {
	// URLPrefix restricts results to pages whose URL starts with it.
	URLPrefix string

	Limit  int
	Offset int
}
