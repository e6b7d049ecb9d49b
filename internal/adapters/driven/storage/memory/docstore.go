// Package memory provides in-memory implementations of the storage
// ports. Used in tests and as a reference implementation of the
// store contracts.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/refman-tools/refman-cli/internal/core/domain"
	"github.com/refman-tools/refman-cli/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[int64]domain.Document
	chunks    map[int64]domain.Chunk
	nextDocID int64
	nextChkID int64
}

// NewDocumentStore creates an empty in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[int64]domain.Document),
		chunks:    make(map[int64]domain.Chunk),
		nextDocID: 1,
		nextChkID: 1,
	}
}

// SaveDocument stores a new document and assigns its ID.
func (s *DocumentStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	if doc == nil {
		return domain.ErrInvalidInput
	}
	if !doc.Category.IsValid() {
		return domain.ErrInvalidCategory
	}
	if doc.Priority < 1 || doc.Priority > 10 {
		return domain.ErrInvalidPriority
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.documents {
		if existing.FileName == doc.FileName {
			return domain.ErrAlreadyExists
		}
	}

	doc.ID = s.nextDocID
	s.nextDocID++
	s.documents[doc.ID] = *doc
	return nil
}

// SaveChunks stores chunks, assigning IDs.
func (s *DocumentStore) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range chunks {
		if _, ok := s.documents[chunks[i].DocumentID]; !ok {
			return domain.ErrNotFound
		}
		if chunks[i].ContentLower == "" {
			chunks[i].ContentLower = strings.ToLower(chunks[i].Content)
		}
		chunks[i].ID = s.nextChkID
		s.nextChkID++
		s.chunks[chunks[i].ID] = chunks[i]
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *DocumentStore) GetDocument(_ context.Context, id int64) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// GetDocumentByFileName retrieves a document by its unique file name.
func (s *DocumentStore) GetDocumentByFileName(_ context.Context, fileName string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.documents {
		if doc.FileName == fileName {
			d := doc
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListDocuments returns all documents ordered by priority descending.
func (s *DocumentStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]domain.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].Priority != docs[j].Priority {
			return docs[i].Priority > docs[j].Priority
		}
		return docs[i].ID < docs[j].ID
	})
	return docs, nil
}

// DeleteDocument removes a document and cascades to its chunks.
func (s *DocumentStore) DeleteDocument(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.documents, id)
	for chunkID, chunk := range s.chunks {
		if chunk.DocumentID == id {
			delete(s.chunks, chunkID)
		}
	}
	return nil
}

// SearchChunks returns chunks containing any term, ordered by document
// priority descending before the limit is applied.
func (s *DocumentStore) SearchChunks(
	_ context.Context, terms []string, filter driven.ChunkFilter, limit int,
) ([]driven.ChunkHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var hits []driven.ChunkHit
	for _, chunk := range s.chunks {
		doc, ok := s.documents[chunk.DocumentID]
		if !ok {
			continue
		}
		if filter.Category != "" && doc.Category != filter.Category {
			continue
		}
		if filter.Subcategory != "" && doc.Subcategory != filter.Subcategory {
			continue
		}
		if !containsAny(chunk.ContentLower, terms) {
			continue
		}
		hits = append(hits, driven.ChunkHit{Chunk: chunk, Document: doc})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Document.Priority != hits[j].Document.Priority {
			return hits[i].Document.Priority > hits[j].Document.Priority
		}
		if hits[i].Document.ID != hits[j].Document.ID {
			return hits[i].Document.ID < hits[j].Document.ID
		}
		return hits[i].Chunk.ChunkIndex < hits[j].Chunk.ChunkIndex
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// Stats returns document and chunk counts.
func (s *DocumentStore) Stats(_ context.Context) (driven.StoreStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return driven.StoreStats{Documents: len(s.documents), Chunks: len(s.chunks)}, nil
}

// Close releases the store. No-op for the in-memory implementation.
func (s *DocumentStore) Close() error {
	return nil
}

func containsAny(contentLower string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(contentLower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
