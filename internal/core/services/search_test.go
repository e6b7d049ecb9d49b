package services

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cachemem "github.com/refman-tools/refman-cli/internal/adapters/driven/cache/memory"
	storagemem "github.com/refman-tools/refman-cli/internal/adapters/driven/storage/memory"
	"github.com/refman-tools/refman-cli/internal/core/domain"
	"github.com/refman-tools/refman-cli/internal/core/ports/driven"
)

// trackingStore counts SearchChunks calls on top of the in-memory store.
type trackingStore struct {
	*storagemem.DocumentStore
	searchCalls int
}

func (t *trackingStore) SearchChunks(
	ctx context.Context, terms []string, filter driven.ChunkFilter, limit int,
) ([]driven.ChunkHit, error) {
	t.searchCalls++
	return t.DocumentStore.SearchChunks(ctx, terms, filter, limit)
}

func newTrackingStore() *trackingStore {
	return &trackingStore{DocumentStore: storagemem.NewDocumentStore()}
}

func seedDocument(t *testing.T, store driven.DocumentStore, fileName string,
	category domain.Category, subcategory string, priority int, contents ...string,
) *domain.Document {
	t.Helper()
	ctx := context.Background()

	doc := &domain.Document{
		FileName:    fileName,
		FilePath:    "/manuals/" + fileName,
		Category:    category,
		Subcategory: subcategory,
		DocType:     domain.DocTypeGuide,
		Title:       fileName,
		Priority:    priority,
	}
	require.NoError(t, store.SaveDocument(ctx, doc))

	chunks := make([]domain.Chunk, len(contents))
	for i, content := range contents {
		chunks[i] = domain.Chunk{DocumentID: doc.ID, ChunkIndex: i, Content: content}
	}
	require.NoError(t, store.SaveChunks(ctx, chunks))
	return doc
}

func TestSearch_EmptyQueryNeverTouchesStore(t *testing.T) {
	store := newTrackingStore()
	svc := NewSearchService(store, nil)

	for _, query := range []string{"", "   ", "a b c", "<><>", "\x00\x01"} {
		results, err := svc.Search(context.Background(), query, domain.SearchOptions{})
		require.NoError(t, err)
		assert.Empty(t, results)
	}
	assert.Zero(t, store.searchCalls, "sanitized-empty queries must not reach storage")
}

func TestSearch_AutoFilterFromIntent(t *testing.T) {
	store := newTrackingStore()
	seedDocument(t, store, "apex.pdf", domain.CategoryDevelopment, "apex", 9,
		"Batch Apex lets you process records asynchronously. Queueable Apex chains jobs.")
	seedDocument(t, store, "reports.pdf", domain.CategoryAnalytics, "reports", 9,
		"Batch apex is mentioned here in passing inside a reporting guide.")

	svc := NewSearchService(store, nil)
	results, err := svc.Search(context.Background(), "batch apex queueable",
		domain.SearchOptions{MaxResults: 1})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, "apex", results[0].Document.Subcategory)
	assert.Contains(t, results[0].DetectedIntent, "development/apex")
	assert.Contains(t, results[0].DetectedIntent, "high confidence")
}

func TestSearch_ExplicitFilterSkipsIntent(t *testing.T) {
	store := newTrackingStore()
	seedDocument(t, store, "auth.pdf", domain.CategorySecurity, "auth", 5,
		"Batch apex appears in a security context here.")

	svc := NewSearchService(store, nil)
	results, err := svc.Search(context.Background(), "batch apex",
		domain.SearchOptions{Category: domain.CategorySecurity})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Empty(t, results[0].DetectedIntent,
		"explicit filters carry no intent message")
	assert.Equal(t, domain.CategorySecurity, results[0].Document.Category)
}

func TestSearch_ScoreAndDensity(t *testing.T) {
	store := newTrackingStore()
	seedDocument(t, store, "guide.pdf", domain.CategoryAnalytics, "reports", 5,
		"dashboards and reports and dashboards again",
		"only dashboards here")

	svc := NewSearchService(store, nil)
	results, err := svc.Search(context.Background(), "dashboards reports",
		domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Both terms present beats one term present.
	assert.Equal(t, 1.0, results[0].MatchDensity)
	assert.Equal(t, 0.5, results[1].MatchDensity)
	assert.Greater(t, results[0].Score, results[1].Score)

	// density 1.0*10 + priority 5*0.2 + occurrences 3*0.1
	assert.InDelta(t, 11.3, results[0].Score, 1e-9)

	for _, r := range results {
		assert.GreaterOrEqual(t, r.MatchDensity, 0.0)
		assert.LessOrEqual(t, r.MatchDensity, 1.0)
		assert.NotEmpty(t, r.Highlights)
	}
}

func TestSearch_OccurrenceBoostIsCapped(t *testing.T) {
	store := newTrackingStore()
	repeated := ""
	for i := 0; i < 40; i++ {
		repeated += "flow "
	}
	seedDocument(t, store, "flows.pdf", domain.CategoryAutomation, "flow", 5, repeated)

	svc := NewSearchService(store, nil)
	results, err := svc.Search(context.Background(), "flow builder overview",
		domain.SearchOptions{Category: domain.CategoryAutomation})
	require.NoError(t, err)
	require.Len(t, results, 1)

	// density 1/3*10 + priority 5*0.2 + capped occurrence boost 2.0
	assert.InDelta(t, 10.0/3.0+1.0+2.0, results[0].Score, 1e-9)
}

func TestSearch_WideningAdoptsStrictlyMoreResults(t *testing.T) {
	store := newTrackingStore()
	// One match inside the auto-detected scope, two more outside it.
	seedDocument(t, store, "apex.pdf", domain.CategoryDevelopment, "apex", 9,
		"Batch apex chapter one.")
	seedDocument(t, store, "bulk.pdf", domain.CategoryAPI, "bulk", 5,
		"Batch apex referenced by the bulk manual.",
		"More batch apex notes in the bulk manual.")

	svc := NewSearchService(store, nil)
	results, err := svc.Search(context.Background(), "batch apex",
		domain.SearchOptions{MaxResults: 10})
	require.NoError(t, err)

	assert.Len(t, results, 3, "widening to unscoped must adopt the larger set")
}

func TestSearch_WideningKeepsScopedResultsWhenNotBetter(t *testing.T) {
	store := newTrackingStore()
	seedDocument(t, store, "apex.pdf", domain.CategoryDevelopment, "apex", 9,
		"Batch apex chapter one.")

	svc := NewSearchService(store, nil)
	results, err := svc.Search(context.Background(), "batch apex",
		domain.SearchOptions{MaxResults: 10})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Contains(t, results[0].DetectedIntent, "development/apex",
		"scoped result set survives an unhelpful widening")
}

func TestSearch_CacheServesRepeatQueries(t *testing.T) {
	store := newTrackingStore()
	seedDocument(t, store, "soql.pdf", domain.CategoryDevelopment, "soql", 8,
		"SOQL relationship queries traverse parent and child records.")

	svc := NewSearchService(store, cachemem.NewResultCache())
	opts := domain.SearchOptions{Category: domain.CategoryDevelopment}

	first, err := svc.Search(context.Background(), "relationship queries", opts)
	require.NoError(t, err)
	callsAfterFirst := store.searchCalls

	second, err := svc.Search(context.Background(), "relationship queries", opts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, callsAfterFirst, store.searchCalls,
		"repeat query must be served from cache")
}

func TestSearch_CacheKeyIncludesOptions(t *testing.T) {
	store := newTrackingStore()
	seedDocument(t, store, "soql.pdf", domain.CategoryDevelopment, "soql", 8,
		"SOQL relationship queries traverse parent and child records.")
	seedDocument(t, store, "rest.pdf", domain.CategoryAPI, "rest", 8,
		"REST relationship queries are a different thing entirely.")

	svc := NewSearchService(store, cachemem.NewResultCache())

	scoped, err := svc.Search(context.Background(), "relationship queries",
		domain.SearchOptions{Category: domain.CategoryDevelopment})
	require.NoError(t, err)
	require.Len(t, scoped, 1)

	unscoped, err := svc.Search(context.Background(), "relationship queries",
		domain.SearchOptions{})
	require.NoError(t, err)

	assert.Len(t, unscoped, 2, "different options must not share a cache entry")
}

func TestSearch_CachedWidenedResultsStayOutOfExplicitScope(t *testing.T) {
	store := newTrackingStore()
	seedDocument(t, store, "apex.pdf", domain.CategoryDevelopment, "apex", 9,
		"Queueable batch apex jobs chain asynchronously.")
	seedDocument(t, store, "security.pdf", domain.CategorySecurity, "auth", 5,
		"Queueable audit jobs run during the security review.")

	svc := NewSearchService(store, cachemem.NewResultCache())

	// The auto-classified search widens past development/apex and picks
	// up the security document too.
	widened, err := svc.Search(context.Background(), "batch apex queueable",
		domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, widened, 2)

	// The same terms with an explicit filter must stay in scope rather
	// than hit the widened cache entry.
	scoped, err := svc.Search(context.Background(), "batch apex queueable",
		domain.SearchOptions{
			Category:    domain.CategoryDevelopment,
			Subcategory: "apex",
		})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "apex.pdf", scoped[0].Document.FileName)
}

func TestSearch_QueryTruncation(t *testing.T) {
	store := newTrackingStore()
	seedDocument(t, store, "guide.pdf", domain.CategoryDevelopment, "apex", 5,
		"trigger context variables explained at length in this passage")

	long := "trigger "
	for len(long) < 2*maxQueryLength {
		long += "xzzzzzzq "
	}

	svc := NewSearchService(store, nil)
	results, err := svc.Search(context.Background(), long, domain.SearchOptions{})
	require.NoError(t, err)
	assert.NotEmpty(t, results, "leading terms inside the cap still match")
}

func TestExpandQuery_Delegates(t *testing.T) {
	svc := NewSearchService(newTrackingStore(), nil)

	expansion := svc.ExpandQuery("batch apex queueable", "governor limits")
	assert.NotEmpty(t, expansion.ExpandedTerms)
	assert.Equal(t, domain.CategoryDevelopment, expansion.SuggestedCategory)
	assert.Equal(t, domain.ConfidenceHigh, expansion.Confidence)
}

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"plain", "batch apex", []string{"batch", "apex"}},
		{"angle brackets stripped", "<script>apex</script>", []string{"scriptapex/script"}},
		{"single chars dropped", "a b apex c", []string{"apex"}},
		{"control chars stripped", "ap\x00ex\ttrigger", []string{"apex", "trigger"}},
		{"lowercased", "Batch APEX", []string{"batch", "apex"}},
		{"empty", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeQuery(tt.query))
		})
	}
}

func TestSanitizeQuery_TruncatesOnRuneBoundary(t *testing.T) {
	// The cap falls in the middle of the two-byte "é".
	query := strings.Repeat("a", maxQueryLength-1) + "émore terms"

	terms := sanitizeQuery(query)

	require.Len(t, terms, 1)
	assert.Equal(t, strings.Repeat("a", maxQueryLength-1), terms[0])
	assert.True(t, utf8.ValidString(terms[0]))
}
