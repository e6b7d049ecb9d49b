// Package pdf extracts plain text from PDF manuals for indexing.
package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/refman-tools/refman-cli/internal/core/domain"
	"github.com/refman-tools/refman-cli/internal/core/ports/driven"
)

var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor reads PDF files and returns their plain text.
type Extractor struct{}

// NewExtractor creates a PDF text extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the full plain text and page count of the PDF at path.
// Scanned PDFs without a text layer yield domain.ErrNoText.
func (e *Extractor) Extract(ctx context.Context, path string) (*driven.ExtractResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extracting text from %s: %w", path, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return nil, fmt.Errorf("reading text from %s: %w", path, err)
	}

	if buf.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrNoText)
	}

	return &driven.ExtractResult{
		Text:      buf.String(),
		PageCount: reader.NumPage(),
	}, nil
}
