// Package domain defines the core business entities for refman.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An indexed manual with metadata
//   - Chunk: A searchable passage within a document
//   - DetectedIntent: The topical scope inferred from a query
//   - SearchResult: One scored hit returned to callers
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
