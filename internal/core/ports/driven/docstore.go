package driven

import (
	"context"

	"github.com/refman-tools/refman-cli/internal/core/domain"
)

// ChunkFilter scopes chunk matching to documents satisfying a
// category and/or subcategory. Zero value means no filter.
type ChunkFilter struct {
	// Category restricts matches to documents in this category.
	Category domain.Category

	// Subcategory restricts matches to documents with this subcategory.
	Subcategory string
}

// IsZero reports whether the filter imposes no restriction.
func (f ChunkFilter) IsZero() bool {
	return f.Category == "" && f.Subcategory == ""
}

// ChunkHit is one matching chunk joined with its owning document.
type ChunkHit struct {
	Chunk    domain.Chunk
	Document domain.Document
}

// StoreStats summarises the contents of a store.
type StoreStats struct {
	Documents int
	Chunks    int
}

// DocumentStore persists documents and chunks.
// Backed by SQLite for metadata and passage storage.
type DocumentStore interface {
	// SaveDocument stores a new document and assigns its ID.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// SaveChunks stores chunks for a document in one transaction.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id int64) (*domain.Document, error)

	// GetDocumentByFileName retrieves a document by its unique file name.
	GetDocumentByFileName(ctx context.Context, fileName string) (*domain.Document, error)

	// ListDocuments returns all documents ordered by priority descending.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// DeleteDocument removes a document and its chunks.
	DeleteDocument(ctx context.Context, id int64) error

	// SearchChunks returns chunks whose lowercase content contains any
	// of the given terms as a substring, scoped by filter. Candidates
	// are ordered by document priority descending before the limit is
	// applied, so high-priority documents are never starved by the cap.
	SearchChunks(ctx context.Context, terms []string, filter ChunkFilter, limit int) ([]ChunkHit, error)

	// Stats returns document and chunk counts.
	Stats(ctx context.Context) (StoreStats, error)

	// Close releases the store.
	Close() error
}

// StoreReplacer promotes a freshly built store over the live one.
// The replacement is whole-file: the new store is only moved to its
// final location after the build completed successfully.
type StoreReplacer interface {
	// Replace atomically installs the store built at buildPath.
	Replace(buildPath string) error
}
