package diff

import (
	"hash/fnv"
	"slices"
	"sync"

	"github.com/fwojciec/korekta"
)

type key struct {
	session  uint64
	provider korekta.ProviderID
	hash     uint64
}

// Cache memoizes Words results keyed by session, provider and a hash of the
// final text. It is safe for concurrent use.
type Cache struct {
	mu           sync.Mutex
	entries      map[key][]korekta.Span
	compute      func(original, final string) []korekta.Span
	computations int
}

// CacheOption configures a [Cache].
type CacheOption func(*Cache)

// WithComputeFunc replaces the diff function. Useful for counting calls in
// tests.
func WithComputeFunc(fn func(original, final string) []korekta.Span) CacheOption {
	return func(c *Cache) { c.compute = fn }
}

// NewCache creates an empty [Cache].
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries: make(map[key][]korekta.Span),
		compute: Words,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// GetOrCompute returns the spans for final against original, computing them
// at most once per (session, provider, final text). The returned slice is a
// copy; the cached entry cannot be modified through it.
func (c *Cache) GetOrCompute(session uint64, p korekta.ProviderID, original, final string) []korekta.Span {
	k := key{session: session, provider: p, hash: hashText(final)}

	c.mu.Lock()
	defer c.mu.Unlock()
	if spans, ok := c.entries[k]; ok {
		return slices.Clone(spans)
	}
	spans := c.compute(original, final)
	c.computations++
	c.entries[k] = spans
	return slices.Clone(spans)
}

// Computations returns how many times the diff function has run.
func (c *Cache) Computations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.computations
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Prune evicts entries whose session is neither current nor the one
// immediately before it.
func (c *Cache) Prune(current uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.session != current && k.session+1 != current {
			delete(c.entries, k)
		}
	}
}

func hashText(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
