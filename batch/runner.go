// Package batch converts many pages concurrently, saving each result to a
// PageStore.
package batch

import (
	"context"
	"net/url"
	"time"

	"github.com/fwojciec/pagemark"
	"github.com/fwojciec/pagemark/bloom"
	"golang.org/x/sync/errgroup"
)

// Defaults for a Runner's zero-valued fields.
const (
	DefaultConcurrency = 4

	falsePositiveRate = 0.001
)

// Runner fetches, converts and stores a list of pages.
type Runner struct {
	// Sitemaps, when set, expands each input URL into the URLs listed in
	// that site's sitemap.
	Sitemaps pagemark.SitemapService

	Fetcher pagemark.Fetcher
	Store   pagemark.PageStore

	// NewConverter returns the converter for one page. It is called once
	// per page so no conversion state is shared between goroutines.
	NewConverter func(pageURL string) pagemark.Converter

	// Limiter, when set, throttles fetches per host.
	Limiter pagemark.DomainLimiter

	// Filter restricts which URLs are processed. Nil passes everything.
	Filter *pagemark.URLFilter

	Concurrency int

	// Retry governs fetch retries. The zero value makes one attempt.
	Retry RetryPolicy

	// Now returns the fetch time stamped on saved pages.
	Now func() time.Time
}

// Result holds the outcome of a run.
type Result struct {
	Saved   int
	Failed  int
	Skipped int
	Bytes   int
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

type pageResult struct {
	url  string
	page *pagemark.Page
	err  error
}

// Run processes every URL in sources. Duplicate URLs are skipped. Up to
// bloom.ExactLimit URLs are deduplicated exactly; larger runs use a Bloom
// filter and may skip a distinct URL at falsePositiveRate. A page
// that fails to fetch or convert is counted and reported through progress
// but does not stop the run; only sitemap failures and cancellation are
// returned as errors.
func (r *Runner) Run(ctx context.Context, sources []string, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	urls, err := r.expand(ctx, sources)
	if err != nil {
		return nil, err
	}

	var result Result
	seen := bloom.NewSeenFor(uint(len(urls)), falsePositiveRate)
	todo := urls[:0:0]
	for _, u := range urls {
		if seen.Visit(u) {
			result.Skipped++
			progress(ProgressEvent{Type: ProgressSkipped, URL: u})
			continue
		}
		todo = append(todo, u)
	}

	total := len(todo)
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan pageResult, concurrency)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, u := range todo {
			g.Go(func() error {
				page, err := r.process(gctx, u)
				resultCh <- pageResult{url: u, page: page, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	completed := 0
	for res := range resultCh {
		if res.err == nil {
			res.err = r.Store.SavePage(ctx, res.page)
		}

		completed++
		n := completed
		if res.err != nil {
			result.Failed++
			progress(ProgressEvent{Type: ProgressFailed, Completed: n, Total: total, URL: res.url, Error: res.err})
			continue
		}
		result.Saved++
		result.Bytes += len(res.page.Content)
		progress(ProgressEvent{Type: ProgressCompleted, Completed: n, Total: total, URL: res.url})
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})

	if err := ctx.Err(); err != nil {
		return &result, err
	}
	return &result, nil
}

// expand resolves sources through the sitemap service when one is set and
// applies the filter.
func (r *Runner) expand(ctx context.Context, sources []string) ([]string, error) {
	if r.Sitemaps == nil {
		var urls []string
		for _, s := range sources {
			if r.Filter.Match(s) {
				urls = append(urls, s)
			}
		}
		return urls, nil
	}

	var urls []string
	for _, s := range sources {
		found, err := r.Sitemaps.DiscoverURLs(ctx, s, r.Filter)
		if err != nil {
			return nil, pagemark.Wrapf(err, pagemark.EFETCH, "sitemap discovery for %s", s)
		}
		urls = append(urls, found...)
	}
	return urls, nil
}

// process fetches and converts a single page.
func (r *Runner) process(ctx context.Context, pageURL string) (*pagemark.Page, error) {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return nil, pagemark.Errorf(pagemark.EINVALID, "invalid URL %q", pageURL)
	}

	if r.Limiter != nil {
		if err := r.Limiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	html, err := FetchWithRetry(ctx, r.Fetcher, pageURL, r.Retry, nil)
	if err != nil {
		return nil, err
	}

	page, err := r.NewConverter(pageURL).Convert(html)
	if err != nil {
		return nil, err
	}

	page.URL = pageURL
	if r.Now != nil {
		page.FetchedAt = r.Now()
	} else {
		page.FetchedAt = time.Now().UTC()
	}
	return page, nil
}
