package cli

import (
	"context"

	"github.com/refman-tools/refman-cli/internal/core/domain"
)

// mockSearchService records the last call and returns canned results.
type mockSearchService struct {
	results   []domain.SearchResult
	expansion domain.QueryExpansion
	err       error
	lastQuery string
	lastOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(_ context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	m.lastQuery = query
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

func (m *mockSearchService) ExpandQuery(query, _ string) domain.QueryExpansion {
	m.lastQuery = query
	return m.expansion
}

type mockIndexService struct {
	report    *domain.BuildReport
	err       error
	lastRoots []string
}

func (m *mockIndexService) Build(_ context.Context, roots []string) (*domain.BuildReport, error) {
	m.lastRoots = roots
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

type mockDocsService struct {
	documents []domain.Document
	document  *domain.Document
	stats     domain.IndexStats
	err       error
}

func (m *mockDocsService) List(_ context.Context) ([]domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.documents, nil
}

func (m *mockDocsService) Get(_ context.Context, _ string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.document == nil {
		return nil, domain.ErrNotFound
	}
	return m.document, nil
}

func (m *mockDocsService) Stats(_ context.Context) (domain.IndexStats, error) {
	if m.err != nil {
		return domain.IndexStats{}, m.err
	}
	return m.stats, nil
}

func testSearchResult() domain.SearchResult {
	return domain.SearchResult{
		Document: domain.Document{
			ID:          1,
			FileName:    "apex_developer_guide_v58.pdf",
			Title:       "Apex Developer Guide v58",
			Category:    domain.CategoryDevelopment,
			Subcategory: "apex",
			DocType:     domain.DocTypeGuide,
			Priority:    9,
		},
		Chunk: domain.Chunk{
			ID:           10,
			DocumentID:   1,
			ChunkIndex:   0,
			Content:      "Batch Apex processes records asynchronously in batches.",
			SectionTitle: "Batch Apex",
		},
		Score:        11.8,
		MatchDensity: 1.0,
		Highlights:   []string{"Batch Apex processes records asynchronously in batches."},
	}
}

// setupTestServices installs mock services and returns a cleanup that
// restores the previous wiring.
func setupTestServices() func() {
	oldSearch := searchService
	oldIndex := indexService
	oldDocs := docsService

	searchService = &mockSearchService{
		results: []domain.SearchResult{testSearchResult()},
		expansion: domain.QueryExpansion{
			ExpandedTerms:     []string{"batch", "apex", "queueable", "asynchronous"},
			DetectedConcepts:  []string{"batch apex"},
			SuggestedCategory: domain.CategoryDevelopment,
			Confidence:        domain.ConfidenceHigh,
			Reasoning:         "matched 1 concept phrase",
		},
	}
	indexService = &mockIndexService{
		report: &domain.BuildReport{
			RunID:            "run-test",
			DocumentsIndexed: 2,
			TotalChunks:      40,
		},
	}
	docsService = &mockDocsService{
		documents: []domain.Document{testSearchResult().Document},
		stats:     domain.IndexStats{Documents: 360, Chunks: 48210},
	}

	return func() {
		searchService = oldSearch
		indexService = oldIndex
		docsService = oldDocs
	}
}
