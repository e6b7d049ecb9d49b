package driven

import "github.com/refman-tools/refman-cli/internal/core/domain"

// ResultCache stores computed search result lists keyed by the full
// (sanitized query, options, effective filter) tuple. Entries expire
// after a fixed TTL and the cache holds a bounded number of entries.
//
// The cache is a pure performance aid: it may be empty at any time
// with identical externally observable behaviour.
type ResultCache interface {
	// Get returns the cached results for key, if present and fresh.
	Get(key string) ([]domain.SearchResult, bool)

	// Set stores results under key, evicting the least recently used
	// entry when the cache is full.
	Set(key string, results []domain.SearchResult)

	// Purge drops all entries.
	Purge()
}
