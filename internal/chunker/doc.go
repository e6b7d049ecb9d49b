// Package chunker splits cleaned manual text into bounded, overlapping,
// section-aware passages. It is the offline half of the search core:
// the index builder feeds every document through Clean and a Chunker,
// and persists the resulting passages as chunks.
package chunker
