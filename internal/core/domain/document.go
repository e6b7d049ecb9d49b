package domain

import "time"

// Category classifies a manual into one of the fixed topical areas.
// The set is closed: the index builder and the search filters only
// accept these values.
type Category string

// The eight document categories.
const (
	CategoryDevelopment    Category = "development"
	CategoryAPI            Category = "api"
	CategoryIntegration    Category = "integration"
	CategoryAutomation     Category = "automation"
	CategorySecurity       Category = "security"
	CategoryAnalytics      Category = "analytics"
	CategoryDeployment     Category = "deployment"
	CategoryAdministration Category = "administration"
)

// Categories lists all valid category values in a stable order.
func Categories() []Category {
	return []Category{
		CategoryDevelopment,
		CategoryAPI,
		CategoryIntegration,
		CategoryAutomation,
		CategorySecurity,
		CategoryAnalytics,
		CategoryDeployment,
		CategoryAdministration,
	}
}

// IsValid reports whether c is one of the defined categories.
func (c Category) IsValid() bool {
	for _, v := range Categories() {
		if c == v {
			return true
		}
	}
	return false
}

// DocType describes the editorial form of a manual.
type DocType string

// Document types recognised by the index builder.
const (
	DocTypeGuide        DocType = "guide"
	DocTypeReference    DocType = "reference"
	DocTypeReleaseNotes DocType = "release-notes"
	DocTypeCheatsheet   DocType = "cheatsheet"
)

// Document represents one indexed manual with its metadata.
// Documents are created by the index builder and are immutable
// afterwards; a rebuild replaces the whole store.
type Document struct {
	// ID is assigned by the store on creation.
	ID int64

	// FileName is the source file name. Unique across the index.
	FileName string

	// FilePath is the location the file was indexed from.
	FilePath string

	// Category is one of the eight defined categories.
	Category Category

	// Subcategory is a free-form refinement of Category. Optional.
	Subcategory string

	// DocType is the editorial form (guide, reference, ...).
	DocType DocType

	// Title is the human-readable title derived from the file name.
	Title string

	// Description is an optional short summary.
	Description string

	// Keywords are classification keywords in declaration order.
	Keywords []string

	// APIVersion is the product API version the manual covers. Optional.
	APIVersion string

	// PageCount is the number of pages in the source file.
	PageCount int

	// SizeBytes is the size of the source file.
	SizeBytes int64

	// Priority is a ranking boost in [1,10]. Higher ranks earlier.
	Priority int

	// CreatedAt is when the document was indexed.
	CreatedAt time.Time
}

// IndexStats summarises the indexed corpus.
type IndexStats struct {
	// Documents is the number of indexed manuals.
	Documents int

	// Chunks is the number of stored passages.
	Chunks int
}

// Chunk is a bounded passage of a document's cleaned text, the unit
// of retrieval. Chunks are written once by the index builder and only
// removed via document cascade or a full rebuild.
type Chunk struct {
	// ID is assigned by the store on creation.
	ID int64

	// DocumentID links to the owning Document.
	DocumentID int64

	// ChunkIndex is the 0-based position within the document.
	ChunkIndex int

	// Content is the passage text in its original case.
	Content string

	// ContentLower is the precomputed lowercase mirror of Content,
	// used for case-insensitive substring matching.
	ContentLower string

	// SectionTitle is the nearest preceding heading. Optional.
	SectionTitle string

	// PageNumber is the source page, when known. Not reliably populated.
	PageNumber int
}
