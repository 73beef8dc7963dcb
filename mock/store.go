package mock

import (
	"context"

	"github.com/fwojciec/pagemark"
)

var _ pagemark.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of pagemark.PageStore.
type PageStore struct {
	SavePageFn func(ctx context.Context, page *pagemark.Page) error
}

func (s *PageStore) SavePage(ctx context.Context, page *pagemark.Page) error {
	return s.SavePageFn(ctx, page)
}

var _ pagemark.PageService = (*PageService)(nil)

// PageService is a mock implementation of pagemark.PageService.
type PageService struct {
	SavePageFn      func(ctx context.Context, page *pagemark.Page) error
	FindPageByURLFn func(ctx context.Context, url string) (*pagemark.Page, error)
	FindPagesFn     func(ctx context.Context, filter pagemark.PageFilter) ([]*pagemark.Page, error)
	DeletePageFn    func(ctx context.Context, url string) error
}

func (s *PageService) SavePage(ctx context.Context, page *pagemark.Page) error {
	return s.SavePageFn(ctx, page)
}

func (s *PageService) FindPageByURL(ctx context.Context, url string) (*pagemark.Page, error) {
	return s.FindPageByURLFn(ctx, url)
}

func (s *PageService) FindPages(ctx context.Context, filter pagemark.PageFilter) ([]*pagemark.Page, error) {
	return s.FindPagesFn(ctx, filter)
}

func (s *PageService) DeletePage(ctx context.Context, url string) error {
	return s.DeletePageFn(ctx, url)
}
