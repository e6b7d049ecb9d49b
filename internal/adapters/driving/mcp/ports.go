package mcp

import (
	"github.com/refman-tools/refman-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP
// server. This provides a single injection point for dependencies.
type Ports struct {
	// Search answers queries and expands terms.
	Search driving.SearchService

	// Docs exposes the indexed document catalogue.
	Docs driving.DocsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Docs is optional; the catalogue resources degrade gracefully.
	return nil
}
