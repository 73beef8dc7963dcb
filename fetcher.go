package pagemark

import "context"

// Fetcher retrieves HTML documents.
type Fetcher interface {
	// Fetch returns the document at url decoded as UTF-8.
	// Retrieval failures carry the EFETCH code.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
