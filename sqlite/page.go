package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/pagemark"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pagemark.PageService = (*PageService)(nil)

// PageService implements pagemark.PageService using SQLite. Pages are
// keyed by URL; saving a URL again replaces the stored page but keeps its ID.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

const pageColumns = "id, url, title, content, content_hash, diagnostics, fetched_at"

// SavePage inserts or replaces the page stored under page.URL. It fills in
// page.ID, page.ContentHash and, when unset, page.FetchedAt.
func (s *PageService) SavePage(ctx context.Context, page *pagemark.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	if page.FetchedAt.IsZero() {
		page.FetchedAt = time.Now().UTC()
	}
	page.ContentHash = hashContent(page.Content)

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO pages (`+pageColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			content_hash = excluded.content_hash,
			diagnostics = excluded.diagnostics,
			fetched_at = excluded.fetched_at
		RETURNING id
	`, uuid.New().String(), page.URL, page.Title, page.Content, page.ContentHash,
		strings.Join(page.Diagnostics, "\n"), page.FetchedAt.UTC().Format(time.RFC3339)).Scan(&page.ID)

	return err
}

// FindPageByURL retrieves a page by URL.
func (s *PageService) FindPageByURL(ctx context.Context, url string) (*pagemark.Page, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+pageColumns+` FROM pages WHERE url = ?`, url)
	page, err := scanPage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pagemark.Errorf(pagemark.ENOTFOUND, "page not found: %s", url)
	}
	return page, err
}

// FindPages retrieves pages matching the filter, most recently fetched first.
func (s *PageService) FindPages(ctx context.Context, filter pagemark.PageFilter) ([]*pagemark.Page, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + pageColumns + " FROM pages WHERE 1=1")
	if filter.URLPrefix != "" {
		query.WriteString(" AND instr(url, ?) = 1")
		args = append(args, filter.URLPrefix)
	}
	query.WriteString(" ORDER BY fetched_at DESC, url ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*pagemark.Page
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, rows.Err()
}

// DeletePage removes a page by URL.
func (s *PageService) DeletePage(ctx context.Context, url string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM pages WHERE url = ?`, url)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return pagemark.Errorf(pagemark.ENOTFOUND, "page not found: %s", url)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPage(row scanner) (*pagemark.Page, error) {
	var page pagemark.Page
	var diagnostics, fetchedAt string

	if err := row.Scan(&page.ID, &page.URL, &page.Title, &page.Content, &page.ContentHash,
		&diagnostics, &fetchedAt); err != nil {
		return nil, err
	}

	if diagnostics != "" {
		page.Diagnostics = strings.Split(diagnostics, "\n")
	}

	var err error
	page.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}
	return &page, nil
}
