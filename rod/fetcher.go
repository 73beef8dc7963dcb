// Package rod provides a Fetcher that renders pages in headless Chrome,
// for documents whose main content is produced by JavaScript.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/pagemark"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements pagemark.Fetcher at compile time.
var _ pagemark.Fetcher = (*Fetcher)(nil)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 30 * time.Second

// serializeJS returns the rendered document with open shadow roots inlined
// into their hosts, so content inside web components reaches the converter.
const serializeJS = `() => {
	const inline = (root) => {
		for (const el of root.querySelectorAll('*')) {
			if (el.shadowRoot) {
				inline(el.shadowRoot);
				el.insertAdjacentHTML('beforeend', el.shadowRoot.innerHTML);
			}
		}
	};
	inline(document);
	const dt = document.doctype ? '<!DOCTYPE ' + document.doctype.name + '>' : '';
	return dt + document.documentElement.outerHTML;
}`

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser *browser
	timeout time.Duration
	agent   string
	closed  atomic.Bool
}

// Option configures a Fetcher.
type Option func(*options)

type options struct {
	timeout time.Duration
	config  Config
}

// WithFetchTimeout sets the time allowed for a single page to load and render.
func WithFetchTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithConfig replaces the browser settings as a whole.
func WithConfig(cfg Config) Option {
	return func(o *options) { o.config = cfg }
}

// WithRecycleAfter sets how many pages the browser renders before it is
// replaced with a fresh process.
func WithRecycleAfter(n int64) Option {
	return func(o *options) { o.config.RecycleAfter = n }
}

// WithChrome sets the Chrome executable to launch.
func WithChrome(bin string) Option {
	return func(o *options) { o.config.Bin = bin }
}

// WithUserAgent sets the User-Agent the browser sends.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.config.UserAgent = ua }
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	o := options{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	b, err := newBrowser(o.config, launchChrome)
	if err != nil {
		return nil, pagemark.Wrapf(err, pagemark.EINTERNAL, "starting browser")
	}

	return &Fetcher{browser: b, timeout: o.timeout, agent: o.config.UserAgent}, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", pagemark.Errorf(pagemark.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", pagemark.Wrapf(err, pagemark.EFETCH, "rendering %s", url)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	html, err := f.render(ctx, url)
	if err != nil {
		// Report the deadline rather than whatever the CDP call saw.
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return "", pagemark.Wrapf(err, pagemark.EFETCH, "rendering %s", url)
	}
	return html, nil
}

func (f *Fetcher) render(ctx context.Context, url string) (string, error) {
	s, err := f.browser.acquire()
	if err != nil {
		return "", err
	}
	defer f.browser.release(s)

	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)
	if f.agent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.agent}); err != nil {
			return "", err
		}
	}

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	res, err := page.Eval(serializeJS)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.browser.Close()
}

// PID returns the process ID of the Chrome launcher currently serving
// renders.
func (f *Fetcher) PID() int {
	return f.browser.pid()
}
