package batch_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/pagemark"
	"github.com/fwojciec/pagemark/batch"
	pmhttp "github.com/fwojciec/pagemark/http"
	"github.com/fwojciec/pagemark/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(n uint64) batch.RetryPolicy {
	return batch.RetryPolicy{InitialInterval: time.Millisecond, MaxInterval: time.Millisecond, MaxRetries: n}
}

func statusErr(code int) error {
	return pagemark.Wrapf(&pmhttp.StatusError{StatusCode: code}, pagemark.EFETCH, "HTTP %d for https://example.com", code)
}

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("retries transient failures until success", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				if calls.Add(1) < 3 {
					return "", statusErr(503)
				}
				return "<main>ok</main>", nil
			},
		}

		var retries int
		html, err := batch.FetchWithRetry(context.Background(), fetcher, "https://example.com", fastRetry(3),
			func(err error, wait time.Duration) { retries++ })

		require.NoError(t, err)
		assert.Equal(t, "<main>ok</main>", html)
		assert.Equal(t, int32(3), calls.Load())
		assert.Equal(t, 2, retries)
	})

	t.Run("gives up after the retry budget", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				calls.Add(1)
				return "", statusErr(502)
			},
		}

		_, err := batch.FetchWithRetry(context.Background(), fetcher, "https://example.com", fastRetry(2), nil)

		require.Error(t, err)
		assert.Equal(t, pagemark.EFETCH, pagemark.ErrorCode(err))
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("does not retry permanent failures", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				calls.Add(1)
				return "", statusErr(404)
			},
		}

		_, err := batch.FetchWithRetry(context.Background(), fetcher, "https://example.com", fastRetry(3), nil)

		var se *pmhttp.StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 404, se.StatusCode)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("zero policy makes a single attempt", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				calls.Add(1)
				return "", statusErr(503)
			},
		}

		_, err := batch.FetchWithRetry(context.Background(), fetcher, "https://example.com", batch.RetryPolicy{}, nil)

		require.Error(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				cancel()
				return "", statusErr(503)
			},
		}

		policy := batch.RetryPolicy{InitialInterval: time.Hour, MaxInterval: time.Hour, MaxRetries: 3}
		_, err := batch.FetchWithRetry(ctx, fetcher, "https://example.com", policy, nil)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
