package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagemark"
)

// Ensure LoggingSitemapService implements pagemark.SitemapService.
var _ pagemark.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService logs each sitemap lookup a batch run makes. A
// failed lookup is logged at error level, and a lookup that leaves nothing
// to convert is logged at warn level with the filter that emptied it.
type LoggingSitemapService struct {
	next   pagemark.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next pagemark.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, site string, filter *pagemark.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"site", site,
			"urls", len(urls),
			"duration", time.Since(begin),
		}
		if filter != nil {
			attrs = append(attrs, "include", len(filter.Include), "exclude", len(filter.Exclude))
		}

		switch {
		case err != nil:
			s.logger.Error("sitemap discovery", append(attrs, "err", err)...)
		case len(urls) == 0:
			s.logger.Warn("sitemap discovery found no pages", attrs...)
		default:
			s.logger.Info("sitemap discovery", attrs...)
		}
	}(time.Now())
	return s.next.DiscoverURLs(ctx, site, filter)
}
