package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/refman-tools/refman-cli/internal/core/domain"
	"github.com/refman-tools/refman-cli/internal/core/ports/driven"
	"github.com/refman-tools/refman-cli/internal/core/ports/driving"
	"github.com/refman-tools/refman-cli/internal/intent"
	"github.com/refman-tools/refman-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// Query and sampling bounds.
const (
	// maxQueryLength is the sanitization cap on raw query length.
	maxQueryLength = 500

	// defaultMaxResults applies when the caller passes no limit.
	defaultMaxResults = 10

	// filteredCandidateLimit caps candidate chunks for scoped searches.
	filteredCandidateLimit = 150

	// unfilteredCandidateLimit caps candidate chunks for corpus-wide
	// searches, which scan far more text.
	unfilteredCandidateLimit = 500
)

// Scoring weights. Score is dominated by match density; document
// priority and occurrence volume act as bounded boosts.
const (
	densityWeight      = 10.0
	priorityWeight     = 0.2
	occurrenceWeight   = 0.1
	occurrenceBoostCap = 2.0
)

// SearchService answers free-text queries over the indexed manuals.
type SearchService struct {
	store      driven.DocumentStore
	cache      driven.ResultCache
	classifier *intent.Classifier
	expander   *intent.Expander

	filteredLimit   int
	unfilteredLimit int
}

// SearchOption configures a SearchService.
type SearchOption func(*SearchService)

// WithCandidateLimits overrides the candidate sampling caps.
func WithCandidateLimits(filtered, unfiltered int) SearchOption {
	return func(s *SearchService) {
		if filtered > 0 {
			s.filteredLimit = filtered
		}
		if unfiltered > 0 {
			s.unfilteredLimit = unfiltered
		}
	}
}

// NewSearchService creates a search service. The cache is optional;
// pass nil to disable result caching.
func NewSearchService(
	store driven.DocumentStore, cache driven.ResultCache, opts ...SearchOption,
) *SearchService {
	classifier := intent.NewClassifier()
	s := &SearchService{
		store:           store,
		cache:           cache,
		classifier:      classifier,
		expander:        intent.NewExpander(classifier),
		filteredLimit:   filteredCandidateLimit,
		unfilteredLimit: unfilteredCandidateLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search returns ranked excerpts for a free-text query.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	terms := sanitizeQuery(query)
	if len(terms) == 0 {
		logger.Debug("No usable terms after sanitization, returning no results")
		return []domain.SearchResult{}, nil
	}
	logger.Debug("Sanitized terms: %v", terms)

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	filter, intentMsg, auto := s.resolveFilter(terms, opts)
	if auto {
		logger.Info("Auto filter: %s", intentMsg)
	}

	key := cacheKey(terms, maxResults, filter, auto)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			logger.Debug("Cache hit for %q", key)
			return cached, nil
		}
	}

	results, err := s.runSearch(ctx, terms, filter, maxResults, intentMsg)
	if err != nil {
		return nil, err
	}

	// A confidently applied topic filter can still be wrong, or simply
	// too narrow. Widen in stages and keep the widened set only when it
	// finds strictly more.
	if auto && len(results) < maxResults {
		results, err = s.widen(ctx, terms, filter, maxResults, results)
		if err != nil {
			return nil, err
		}
	}

	if s.cache != nil {
		s.cache.Set(key, results)
	}

	logger.Info("Final results: %d", len(results))
	return results, nil
}

// ExpandQuery derives a recall-oriented term set from a query and
// optional free-text context.
func (s *SearchService) ExpandQuery(query, context string) domain.QueryExpansion {
	return s.expander.Expand(query, context)
}

// resolveFilter determines the effective search scope. An explicit
// caller filter always wins; otherwise a confident classification is
// applied automatically. Returns the filter, the caller-visible intent
// message and whether the filter was applied automatically.
func (s *SearchService) resolveFilter(
	terms []string, opts domain.SearchOptions,
) (driven.ChunkFilter, string, bool) {
	if opts.Category != "" || opts.Subcategory != "" {
		return driven.ChunkFilter{
			Category:    opts.Category,
			Subcategory: opts.Subcategory,
		}, "", false
	}

	detected := s.classifier.Classify(strings.Join(terms, " "))
	if detected.Confidence == domain.ConfidenceLow {
		logger.Debug("Intent confidence low (weight %d), searching unscoped", detected.Weight)
		return driven.ChunkFilter{}, "", false
	}

	filter := driven.ChunkFilter{
		Category:    detected.Category,
		Subcategory: detected.Subcategory,
	}
	msg := string(detected.Category)
	if detected.Subcategory != "" {
		msg += "/" + detected.Subcategory
	}
	msg += fmt.Sprintf(" (%s confidence)", detected.Confidence)
	return filter, msg, true
}

// runSearch executes one retrieval pass: sample candidates, score,
// rank and truncate.
func (s *SearchService) runSearch(
	ctx context.Context, terms []string, filter driven.ChunkFilter,
	maxResults int, intentMsg string,
) ([]domain.SearchResult, error) {
	limit := s.unfilteredLimit
	if !filter.IsZero() {
		limit = s.filteredLimit
	}

	hits, err := s.store.SearchChunks(ctx, terms, filter, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchFailed, err)
	}
	logger.Debug("Candidates: %d (limit %d)", len(hits), limit)

	results := make([]domain.SearchResult, 0, len(hits))
	for _, hit := range hits {
		density, occurrences := matchStats(hit.Chunk.ContentLower, terms)
		if density == 0 {
			continue
		}

		score := densityWeight*density +
			priorityWeight*float64(hit.Document.Priority) +
			min(occurrenceWeight*float64(occurrences), occurrenceBoostCap)

		results = append(results, domain.SearchResult{
			Document:       hit.Document,
			Chunk:          hit.Chunk,
			Score:          score,
			MatchDensity:   density,
			Highlights:     generateHighlights(hit.Chunk.Content, terms),
			DetectedIntent: intentMsg,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].Document.ID != results[j].Document.ID {
			return results[i].Document.ID < results[j].Document.ID
		}
		return results[i].Chunk.ChunkIndex < results[j].Chunk.ChunkIndex
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// widen relaxes an automatically applied filter in stages: first drop
// the subcategory, then the category. A widened result set replaces
// the current one only when it is strictly larger.
func (s *SearchService) widen(
	ctx context.Context, terms []string, filter driven.ChunkFilter,
	maxResults int, current []domain.SearchResult,
) ([]domain.SearchResult, error) {
	if filter.Subcategory != "" {
		wider := driven.ChunkFilter{Category: filter.Category}
		msg := fmt.Sprintf("%s (widened from %s/%s)",
			filter.Category, filter.Category, filter.Subcategory)
		logger.Debug("Widening to category only: %s", filter.Category)

		widened, err := s.runSearch(ctx, terms, wider, maxResults, msg)
		if err != nil {
			return nil, err
		}
		if len(widened) > len(current) {
			current = widened
		}
		if len(current) >= maxResults {
			return current, nil
		}
	}

	logger.Debug("Widening to unscoped search")
	widened, err := s.runSearch(ctx, terms, driven.ChunkFilter{}, maxResults, "")
	if err != nil {
		return nil, err
	}
	if len(widened) > len(current) {
		current = widened
	}
	return current, nil
}

// sanitizeQuery normalises a raw query into match terms. The raw text
// is capped, control characters and angle brackets are stripped, and
// single-character tokens are dropped.
func sanitizeQuery(query string) []string {
	if len(query) > maxQueryLength {
		// Back up to a rune boundary so the cut never leaves a
		// partial UTF-8 sequence.
		cut := maxQueryLength
		for cut > 0 && !utf8.RuneStart(query[cut]) {
			cut--
		}
		query = query[:cut]
	}

	var b strings.Builder
	for _, r := range query {
		if r == '<' || r == '>' {
			continue
		}
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}

	var terms []string
	for _, token := range strings.Fields(b.String()) {
		if len(token) > 1 {
			terms = append(terms, strings.ToLower(token))
		}
	}
	return terms
}

// matchStats returns the fraction of distinct terms present in the
// chunk and the total occurrence count across all terms.
func matchStats(contentLower string, terms []string) (float64, int) {
	matched := 0
	occurrences := 0
	for _, term := range terms {
		n := strings.Count(contentLower, term)
		if n > 0 {
			matched++
			occurrences += n
		}
	}
	return float64(matched) / float64(len(terms)), occurrences
}

// cacheKey builds the cache key from the sanitized terms, the result
// limit, the effective filter and how the filter was applied. Auto
// and explicit entries never share a key: an automatically scoped
// search may cache fallback-widened results that an identical explicit
// filter must not be served.
func cacheKey(terms []string, maxResults int, filter driven.ChunkFilter, auto bool) string {
	scope := "explicit"
	if auto {
		scope = "auto"
	}
	return fmt.Sprintf("q=%s|max=%d|cat=%s|sub=%s|scope=%s",
		strings.Join(terms, " "), maxResults, filter.Category, filter.Subcategory, scope)
}

// generateHighlights creates up to three sentence snippets containing
// matched terms.
func generateHighlights(content string, terms []string) []string {
	var highlights []string
	for _, sentence := range splitSentences(content) {
		sentenceLower := strings.ToLower(sentence)
		for _, term := range terms {
			if strings.Contains(sentenceLower, term) {
				if len(sentence) > 200 {
					sentence = sentence[:200] + "..."
				}
				highlights = append(highlights, sentence)
				break
			}
		}
		if len(highlights) >= 3 {
			break
		}
	}
	return highlights
}

// splitSentences splits content into sentences by common terminators.
func splitSentences(content string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for _, r := range content {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			flush()
		}
	}
	flush()

	return sentences
}
