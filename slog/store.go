package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagemark"
)

// Ensure LoggingPageStore implements pagemark.PageStore.
var _ pagemark.PageStore = (*LoggingPageStore)(nil)

// LoggingPageStore wraps a PageStore with debug logging.
type LoggingPageStore struct {
	next   pagemark.PageStore
	logger *slog.Logger
}

// NewLoggingPageStore creates a new LoggingPageStore.
func NewLoggingPageStore(next pagemark.PageStore, logger *slog.Logger) *LoggingPageStore {
	return &LoggingPageStore{next: next, logger: logger}
}

// SavePage delegates to the wrapped store and logs the operation.
func (s *LoggingPageStore) SavePage(ctx context.Context, page *pagemark.Page) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save page",
			"url", page.URL,
			"bytes", len(page.Content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SavePage(ctx, page)
}
