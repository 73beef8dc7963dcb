// Package bloom provides URL deduplication for batch runs, exact for
// lists that fit in memory and Bloom-filter backed beyond that.
package bloom

import (
	"net/url"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// ExactLimit is the largest expected URL count for which NewSeenFor keeps
// every key in memory instead of using a Bloom filter.
const ExactLimit = 1 << 20

// Seen records which page URLs a batch run has already handled. It is safe
// for concurrent use. An exact Seen stores every key. A Bloom-backed Seen
// may falsely report a URL as seen at roughly the configured rate; an
// unseen URL is never reported as seen by either.
type Seen struct {
	mu   sync.Mutex
	f    *bloom.BloomFilter
	keys map[string]struct{}
}

// NewSeen creates a Bloom-backed set sized for n expected URLs with the
// given false positive rate.
func NewSeen(n uint, fpRate float64) *Seen {
	return &Seen{f: bloom.NewWithEstimates(n, fpRate)}
}

// NewExactSeen creates a set that never reports a false positive.
func NewExactSeen() *Seen {
	return &Seen{keys: make(map[string]struct{})}
}

// NewSeenFor returns an exact set when n is at most ExactLimit, and a
// Bloom-backed set with rate fpRate otherwise.
func NewSeenFor(n uint, fpRate float64) *Seen {
	if n <= ExactLimit {
		return NewExactSeen()
	}
	return NewSeen(n, fpRate)
}

// Exact reports whether the set stores every key.
func (s *Seen) Exact() bool {
	return s.keys != nil
}

// Visit marks rawURL as seen and reports whether it had been seen before.
func (s *Seen) Visit(rawURL string) bool {
	key := Key(rawURL)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.keys != nil {
		_, ok := s.keys[key]
		s.keys[key] = struct{}{}
		return ok
	}
	return s.f.TestOrAddString(key)
}

// Has reports whether rawURL has been seen. A Bloom-backed set answers
// approximately.
func (s *Seen) Has(rawURL string) bool {
	key := Key(rawURL)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.keys != nil {
		_, ok := s.keys[key]
		return ok
	}
	return s.f.TestString(key)
}

// Len returns the number of distinct URLs seen, approximated for a
// Bloom-backed set.
func (s *Seen) Len() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.keys != nil {
		return uint(len(s.keys))
	}
	return uint(s.f.ApproximatedSize())
}

// Key normalizes a URL so that addresses of the same page compare equal.
// The fragment is dropped, scheme and host are lower-cased and a trailing
// slash on a non-root path is removed. Unparseable input is returned as is.
func Key(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	u.RawFragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if len(u.Path) > 1 {
		u.Path = strings.TrimSuffix(u.Path, "/")
		u.RawPath = ""
	}
	return u.String()
}
