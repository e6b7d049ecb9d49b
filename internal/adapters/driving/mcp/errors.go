// Package mcp provides an MCP (Model Context Protocol) server adapter
// for refman. It lets AI assistants search the indexed manuals and
// browse the document catalogue.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
