package mcp

import (
	"context"

	"github.com/refman-tools/refman-cli/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results   []domain.SearchResult
	expansion domain.QueryExpansion
	err       error

	lastQuery string
	lastOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockSearchService) ExpandQuery(_, _ string) domain.QueryExpansion {
	return m.expansion
}

// mockDocsService is a mock implementation of driving.DocsService.
type mockDocsService struct {
	documents []domain.Document
	document  *domain.Document
	stats     domain.IndexStats
	err       error
}

func (m *mockDocsService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
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
	return m.stats, m.err
}
