package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pagemark"
)

// Ensure LoggingConverter implements pagemark.Converter.
var _ pagemark.Converter = (*LoggingConverter)(nil)

// LoggingConverter wraps a Converter with debug logging. Each diagnostic
// the conversion produced is logged at warn level.
type LoggingConverter struct {
	next   pagemark.Converter
	logger *slog.Logger
}

// NewLoggingConverter creates a new LoggingConverter.
func NewLoggingConverter(next pagemark.Converter, logger *slog.Logger) *LoggingConverter {
	return &LoggingConverter{next: next, logger: logger}
}

// Convert delegates to the wrapped converter and logs the result.
func (c *LoggingConverter) Convert(html string) (page *pagemark.Page, err error) {
	defer func(begin time.Time) {
		var title string
		var bytes, diagnostics int
		if page != nil {
			title = page.Title
			bytes = len(page.Content)
			diagnostics = len(page.Diagnostics)
			for _, d := range page.Diagnostics {
				c.logger.Warn("parse diagnostic", "detail", d)
			}
		}
		c.logger.Info("convert",
			"input", len(html),
			"title", title,
			"bytes", bytes,
			"diagnostics", diagnostics,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Convert(html)
}
