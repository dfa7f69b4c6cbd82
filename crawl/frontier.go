package crawl

import (
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Frontier is an in-memory crawl frontier: a LIFO queue of pending URLs with
// Bloom filter deduplication of everything ever queued. Pop order carries no
// contract; callers may only rely on membership semantics. It is safe for
// concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.BloomFilter
	queue []string
}

// NewFrontier creates a Frontier sized for n expected URLs with the given
// false positive rate for deduplication. A false positive drops a URL from
// the crawl; it never causes a URL to be visited twice.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		seen: bloom.NewWithEstimates(n, fpRate),
	}
}

// Push adds a URL to the frontier. Returns false if the URL has already been
// seen. Fragments are stripped before deduplication, so URLs differing only
// by fragment are duplicates.
func (f *Frontier) Push(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	url = stripFragment(url)
	if f.seen.TestString(url) {
		return false
	}
	f.seen.AddString(url)
	f.queue = append(f.queue, url)
	return true
}

// Pop removes and returns a pending URL. The bool result is false if the
// frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[len(f.queue)-1]
	f.queue = f.queue[:len(f.queue)-1]
	return url, true
}

// Len returns the number of pending URLs.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL has ever been queued. Fragments are stripped
// before checking.
func (f *Frontier) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.TestString(stripFragment(url))
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}
