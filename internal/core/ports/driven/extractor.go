package driven

import "context"

// ExtractResult is the output of text extraction for one source file.
type ExtractResult struct {
	// Text is the raw extracted text, before cleaning.
	Text string

	// PageCount is the number of pages in the source file.
	PageCount int
}

// TextExtractor converts a source file into plain text.
// The extraction engine (PDF parsing) is treated as a black box.
type TextExtractor interface {
	// Extract reads the file at path and returns its text and page count.
	Extract(ctx context.Context, path string) (*ExtractResult, error)
}
