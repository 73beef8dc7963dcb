package rod

import (
	"errors"
	"sync"
	"testing"

	"github.com/fwojciec/pagemark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChrome launches sessions that only record when they are stopped.
type fakeChrome struct {
	mu       sync.Mutex
	launched []*session
	stopped  map[int]bool
	failNext bool
}

func (c *fakeChrome) launch(Config) (*session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failNext {
		c.failNext = false
		return nil, errors.New("no chrome")
	}
	pid := len(c.launched) + 1
	s := &session{pid: pid, stop: func() error {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.stopped[pid] = true
		return nil
	}}
	c.launched = append(c.launched, s)
	return s, nil
}

func (c *fakeChrome) isStopped(pid int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped[pid]
}

func newFakeChrome() *fakeChrome {
	return &fakeChrome{stopped: map[int]bool{}}
}

func render(t *testing.T, b *browser) int {
	t.Helper()
	s, err := b.acquire()
	require.NoError(t, err)
	b.release(s)
	return s.pid
}

func TestBrowser_Recycle(t *testing.T) {
	t.Parallel()

	t.Run("replaces the process after the configured renders", func(t *testing.T) {
		t.Parallel()

		chrome := newFakeChrome()
		b, err := newBrowser(Config{RecycleAfter: 2}, chrome.launch)
		require.NoError(t, err)

		pids := []int{render(t, b), render(t, b), render(t, b), render(t, b), render(t, b)}

		assert.Equal(t, []int{1, 1, 2, 2, 3}, pids)
		assert.True(t, chrome.isStopped(1))
		assert.True(t, chrome.isStopped(2))
		assert.False(t, chrome.isStopped(3))
	})

	t.Run("defaults the threshold", func(t *testing.T) {
		t.Parallel()

		b, err := newBrowser(Config{}, newFakeChrome().launch)

		require.NoError(t, err)
		assert.Equal(t, int64(DefaultRecycleAfter), b.cfg.RecycleAfter)
	})

	t.Run("waits for in-flight renders before stopping a retired process", func(t *testing.T) {
		t.Parallel()

		chrome := newFakeChrome()
		b, err := newBrowser(Config{RecycleAfter: 1}, chrome.launch)
		require.NoError(t, err)

		first, err := b.acquire()
		require.NoError(t, err)
		assert.Equal(t, 2, render(t, b))
		assert.False(t, chrome.isStopped(1), "retired process is still rendering")

		b.release(first)

		assert.True(t, chrome.isStopped(1))
	})

	t.Run("keeps the old process when a relaunch fails", func(t *testing.T) {
		t.Parallel()

		chrome := newFakeChrome()
		b, err := newBrowser(Config{RecycleAfter: 1}, chrome.launch)
		require.NoError(t, err)
		render(t, b)

		chrome.failNext = true

		assert.Equal(t, 1, render(t, b))
		assert.False(t, chrome.isStopped(1))
		assert.Equal(t, 2, render(t, b))
	})
}

func TestBrowser_Close(t *testing.T) {
	t.Parallel()

	t.Run("stops an idle process", func(t *testing.T) {
		t.Parallel()

		chrome := newFakeChrome()
		b, err := newBrowser(Config{}, chrome.launch)
		require.NoError(t, err)

		require.NoError(t, b.Close())
		require.NoError(t, b.Close())

		assert.True(t, chrome.isStopped(1))
		_, err = b.acquire()
		assert.Equal(t, pagemark.EINVALID, pagemark.ErrorCode(err))
	})

	t.Run("stops a busy process when its render finishes", func(t *testing.T) {
		t.Parallel()

		chrome := newFakeChrome()
		b, err := newBrowser(Config{}, chrome.launch)
		require.NoError(t, err)
		s, err := b.acquire()
		require.NoError(t, err)

		require.NoError(t, b.Close())
		assert.False(t, chrome.isStopped(1))

		b.release(s)
		assert.True(t, chrome.isStopped(1))
	})
}

func TestNewBrowser_LaunchFailure(t *testing.T) {
	t.Parallel()

	chrome := newFakeChrome()
	chrome.failNext = true

	_, err := newBrowser(Config{}, chrome.launch)

	assert.EqualError(t, err, "no chrome")
}
