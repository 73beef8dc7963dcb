package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fwojciec/pagemark"
	"github.com/fwojciec/pagemark/batch"
	"github.com/fwojciec/pagemark/fs"
	pmslog "github.com/fwojciec/pagemark/slog"
	"github.com/fwojciec/pagemark/sqlite"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	if c.Out == "" && c.DB == "" {
		err := pagemark.Errorf(pagemark.EINVALID, "nothing to store into: pass --out, --db, or both")
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagemark.ErrorMessage(err))
		return err
	}

	filter, err := pagemark.NewURLFilter(c.Filter, c.Exclude)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagemark.ErrorMessage(err))
		return err
	}

	// Validate the engine choice before any fetching starts.
	if _, err := NewConverter(c.Engine, c.Extractor, ""); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagemark.ErrorMessage(err))
		return err
	}

	var stores multiStore
	var dir *fs.Store
	if c.Out != "" {
		dir = fs.NewStore(filepath.Dir(c.Out), filepath.Base(c.Out))
		stores = append(stores, dir)
	}
	if c.DB != "" {
		db := sqlite.NewDB(c.DB)
		if err := db.Open(); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		defer db.Close()
		stores = append(stores, sqlite.NewPageService(db))
	}

	runner := &batch.Runner{
		Fetcher: deps.Fetcher,
		Store:   pmslog.NewLoggingPageStore(stores, deps.Logger),
		NewConverter: func(pageURL string) pagemark.Converter {
			conv, _ := NewConverter(c.Engine, c.Extractor, pageURL)
			return pmslog.NewLoggingConverter(conv, deps.Logger)
		},
		Limiter:     batch.NewDomainLimiter(c.RPS),
		Filter:      filter,
		Concurrency: c.Concurrency,
		Retry:       batch.DefaultRetryPolicy(),
	}
	runner.Retry.MaxRetries = c.Retries
	if c.Sitemap {
		runner.Sitemaps = deps.Sitemaps
	}

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d URLs\n", event.Total)
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", batch.TruncateURL(event.URL, 80), event.Error)
		case batch.ProgressSkipped:
			deps.Logger.Debug("duplicate url", "url", event.URL)
		}
	}

	result, err := runner.Run(deps.Ctx, c.URLs, progress)
	if err != nil {
		if dir != nil {
			_ = dir.Abort()
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagemark.ErrorMessage(err))
		return err
	}

	if dir != nil {
		if err := dir.Commit(); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Saved %d pages (%s), %d failed, %d duplicates skipped\n",
		result.Saved, batch.FormatBytes(result.Bytes), result.Failed, result.Skipped)
	return nil
}

// multiStore saves each page to every store in turn.
type multiStore []pagemark.PageStore

func (s multiStore) SavePage(ctx context.Context, page *pagemark.Page) error {
	var errs []error
	for _, store := range s {
		if err := store.SavePage(ctx, page); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
