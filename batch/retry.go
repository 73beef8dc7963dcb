package batch

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/fwojciec/pagemark"
	pmhttp "github.com/fwojciec/pagemark/http"
)

// RetryPolicy bounds the retries of a single fetch. Delays grow
// exponentially from InitialInterval up to MaxInterval.
type RetryPolicy struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxRetries      uint64
}

// DefaultRetryPolicy retries three times starting at one second.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		InitialInterval: 1 * time.Second,
		MaxInterval:     8 * time.Second,
		MaxRetries:      3,
	}
}

// NotifyFunc is called before each retry with the error that caused it and
// the delay before the next attempt.
type NotifyFunc func(err error, wait time.Duration)

// FetchWithRetry fetches url, retrying transient failures per policy.
// Errors that http.IsTransient rejects are returned after the first attempt.
func FetchWithRetry(ctx context.Context, fetcher pagemark.Fetcher, url string, policy RetryPolicy, notify NotifyFunc) (string, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = policy.InitialInterval
	if policy.MaxInterval > 0 {
		bo.MaxInterval = policy.MaxInterval
	}
	bo.MaxElapsedTime = 0

	b := backoff.WithContext(backoff.WithMaxRetries(bo, policy.MaxRetries), ctx)

	operation := func() (string, error) {
		html, err := fetcher.Fetch(ctx, url)
		if err != nil && !pmhttp.IsTransient(err) {
			return "", backoff.Permanent(err)
		}
		return html, err
	}

	var n backoff.Notify
	if notify != nil {
		n = backoff.Notify(notify)
	}
	return backoff.RetryNotifyWithData(operation, b, n)
}
