// Package memory provides an in-process result cache with TTL expiry
// and LRU eviction. The cache is a pure performance aid: dropping it
// entirely changes nothing but latency.
package memory

import (
	"container/list"
	"sync"
	"time"

	"github.com/refman-tools/refman-cli/internal/core/domain"
	"github.com/refman-tools/refman-cli/internal/core/ports/driven"
)

// DefaultTTL is how long an entry stays valid.
const DefaultTTL = 5 * time.Minute

// DefaultCapacity bounds the number of cached result lists.
const DefaultCapacity = 100

// Ensure ResultCache implements the interface.
var _ driven.ResultCache = (*ResultCache)(nil)

// ResultCache is a bounded TTL cache of search result lists.
type ResultCache struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = most recently used

	// now is replaceable for expiry tests.
	now func() time.Time
}

type cacheEntry struct {
	key     string
	results []domain.SearchResult
	expires time.Time
}

// Option configures the cache.
type Option func(*ResultCache)

// WithTTL sets the entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(c *ResultCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCapacity sets the maximum number of entries.
func WithCapacity(n int) Option {
	return func(c *ResultCache) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// NewResultCache creates a cache with the given options.
func NewResultCache(opts ...Option) *ResultCache {
	c := &ResultCache{
		ttl:      DefaultTTL,
		capacity: DefaultCapacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached results for key if present and fresh.
// A hit refreshes the entry's LRU position.
func (c *ResultCache) Get(key string) ([]domain.SearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	entry := elem.Value.(*cacheEntry)
	if c.now().After(entry.expires) {
		c.remove(elem)
		return nil, false
	}

	c.order.MoveToFront(elem)
	return entry.results, true
}

// Set stores results under key, evicting the least recently used
// entry when full.
func (c *ResultCache) Set(key string, results []domain.SearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*cacheEntry)
		entry.results = results
		entry.expires = c.now().Add(c.ttl)
		c.order.MoveToFront(elem)
		return
	}

	if len(c.entries) >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.remove(oldest)
		}
	}

	elem := c.order.PushFront(&cacheEntry{
		key:     key,
		results: results,
		expires: c.now().Add(c.ttl),
	})
	c.entries[key] = elem
}

// Purge drops all entries.
func (c *ResultCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.order.Init()
}

// Len returns the current entry count.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *ResultCache) remove(elem *list.Element) {
	entry := elem.Value.(*cacheEntry)
	delete(c.entries, entry.key)
	c.order.Remove(elem)
}
