package rod

import (
	"sync"

	"github.com/fwojciec/pagemark"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultRecycleAfter is the number of renders one Chrome process serves
// before it is replaced.
const DefaultRecycleAfter = 75

// Config describes how Chrome is launched and when it is replaced.
type Config struct {
	// Bin is the Chrome executable. Empty lets rod find or download one.
	Bin string

	// UserAgent overrides the browser's User-Agent when set.
	UserAgent string

	// RecycleAfter is the number of renders before a fresh process takes
	// over. Values below 1 mean DefaultRecycleAfter.
	RecycleAfter int64
}

// session is one running Chrome process. Renders hold a lease on it; a
// retired session shuts down when its last lease is released, so recycling
// never tears a browser out from under an in-flight render.
type session struct {
	browser *rod.Browser
	pid     int
	stop    func() error

	leases  int
	renders int64
	retired bool
}

type launchFunc func(Config) (*session, error)

// browser hands out leases on the current Chrome session and rotates it
// after cfg.RecycleAfter renders. It is safe for concurrent use.
type browser struct {
	cfg    Config
	launch launchFunc

	mu      sync.Mutex
	current *session
	closed  bool
}

func newBrowser(cfg Config, launch launchFunc) (*browser, error) {
	if cfg.RecycleAfter < 1 {
		cfg.RecycleAfter = DefaultRecycleAfter
	}
	s, err := launch(cfg)
	if err != nil {
		return nil, err
	}
	return &browser{cfg: cfg, launch: launch, current: s}, nil
}

// acquire leases the current session for one render, starting a fresh
// process first when the current one has served its quota. If the fresh
// process fails to start, the old one keeps serving.
func (b *browser) acquire() (*session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, pagemark.Errorf(pagemark.EINVALID, "browser is closed")
	}
	if b.current.renders >= b.cfg.RecycleAfter {
		if next, err := b.launch(b.cfg); err == nil {
			b.retire(b.current)
			b.current = next
		}
	}

	s := b.current
	s.leases++
	s.renders++
	return s, nil
}

// release returns a lease taken by acquire.
func (b *browser) release(s *session) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s.leases--
	if s.retired && s.leases == 0 {
		_ = s.stop()
	}
}

// retire marks s for shutdown and stops it at once when nothing holds it.
// Must be called with mu held.
func (b *browser) retire(s *session) error {
	s.retired = true
	if s.leases > 0 {
		return nil
	}
	return s.stop()
}

// Close stops the current session, or marks it to stop after the renders
// still using it. Close is safe to call multiple times.
func (b *browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	return b.retire(b.current)
}

// pid returns the process ID of the current Chrome launcher.
func (b *browser) pid() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current.pid
}

// launchChrome starts a headless Chrome and connects to it.
func launchChrome(cfg Config) (*session, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)
	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, pagemark.Wrapf(err, pagemark.EINTERNAL, "launching browser")
	}

	br := rod.New().ControlURL(u)
	if err := br.Connect(); err != nil {
		l.Kill()
		return nil, pagemark.Wrapf(err, pagemark.EINTERNAL, "connecting to browser")
	}

	return &session{
		browser: br,
		pid:     l.PID(),
		stop: func() error {
			err := br.Close()
			l.Kill()
			return err
		},
	}, nil
}
