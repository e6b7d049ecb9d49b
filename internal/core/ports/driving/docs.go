package driving

import (
	"context"

	"github.com/refman-tools/refman-cli/internal/core/domain"
)

// DocsService exposes the indexed document catalogue.
type DocsService interface {
	// List returns all indexed documents ordered by priority descending.
	List(ctx context.Context) ([]domain.Document, error)

	// Get returns one document by its unique file name.
	Get(ctx context.Context, fileName string) (*domain.Document, error)

	// Stats returns corpus-wide counts.
	Stats(ctx context.Context) (domain.IndexStats, error)
}
