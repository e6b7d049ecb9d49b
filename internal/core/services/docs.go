package services

import (
	"context"

	"github.com/refman-tools/refman-cli/internal/core/domain"
	"github.com/refman-tools/refman-cli/internal/core/ports/driven"
	"github.com/refman-tools/refman-cli/internal/core/ports/driving"
)

// Ensure DocsService implements the interface.
var _ driving.DocsService = (*DocsService)(nil)

// DocsService exposes the indexed document catalogue.
type DocsService struct {
	store driven.DocumentStore
}

// NewDocsService creates a docs service backed by the given store.
func NewDocsService(store driven.DocumentStore) *DocsService {
	return &DocsService{store: store}
}

// List returns all indexed documents ordered by priority descending.
func (s *DocsService) List(ctx context.Context) ([]domain.Document, error) {
	return s.store.ListDocuments(ctx)
}

// Get returns one document by its unique file name.
func (s *DocsService) Get(ctx context.Context, fileName string) (*domain.Document, error) {
	return s.store.GetDocumentByFileName(ctx, fileName)
}

// Stats returns corpus-wide counts.
func (s *DocsService) Stats(ctx context.Context) (domain.IndexStats, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return domain.IndexStats{}, err
	}
	return domain.IndexStats{Documents: stats.Documents, Chunks: stats.Chunks}, nil
}
