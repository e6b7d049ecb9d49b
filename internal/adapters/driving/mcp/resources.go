package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for refman resources.
const uriScheme = "refman://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the document catalogue.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "Catalogue of all indexed manuals",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	// Static resource for corpus statistics.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "stats",
		Name:        "stats",
		Description: "Document and passage counts for the index",
		MIMEType:    "application/json",
	}, s.handleStatsResource)

	// Template for single-document metadata.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{fileName}",
		Name:        "document",
		Description: "Metadata for one indexed manual",
		MIMEType:    "application/json",
	}, s.handleDocumentResource)
}

// documentInfo is the catalogue entry serialised for resources.
type documentInfo struct {
	FileName    string `json:"file_name"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	DocType     string `json:"doc_type"`
	APIVersion  string `json:"api_version,omitempty"`
	PageCount   int    `json:"page_count"`
	Priority    int    `json:"priority"`
}

// handleDocumentsResource returns the catalogue of indexed manuals.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Docs == nil {
		return jsonResource(req.Params.URI, []byte("[]")), nil
	}

	docs, err := s.ports.Docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	infos := make([]documentInfo, len(docs))
	for i := range docs {
		infos[i] = documentInfo{
			FileName:    docs[i].FileName,
			Title:       docs[i].Title,
			Category:    string(docs[i].Category),
			Subcategory: docs[i].Subcategory,
			DocType:     string(docs[i].DocType),
			APIVersion:  docs[i].APIVersion,
			PageCount:   docs[i].PageCount,
			Priority:    docs[i].Priority,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return jsonResource(req.Params.URI, data), nil
}

// handleDocumentResource returns metadata for one manual.
func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Docs == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	fileName := extractFileName(req.Params.URI)
	if fileName == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.Docs.Get(ctx, fileName)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	data, err := json.MarshalIndent(documentInfo{
		FileName:    doc.FileName,
		Title:       doc.Title,
		Category:    string(doc.Category),
		Subcategory: doc.Subcategory,
		DocType:     string(doc.DocType),
		APIVersion:  doc.APIVersion,
		PageCount:   doc.PageCount,
		Priority:    doc.Priority,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling document: %w", err)
	}

	return jsonResource(req.Params.URI, data), nil
}

// handleStatsResource returns corpus-wide counts.
func (s *Server) handleStatsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Docs == nil {
		return jsonResource(req.Params.URI, []byte("{}")), nil
	}

	stats, err := s.ports.Docs.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading stats: %w", err)
	}

	data, err := json.MarshalIndent(map[string]int{
		"documents": stats.Documents,
		"chunks":    stats.Chunks,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling stats: %w", err)
	}

	return jsonResource(req.Params.URI, data), nil
}

// extractFileName extracts the file name from a URI like
// refman://documents/{fileName}.
func extractFileName(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	return strings.TrimPrefix(uri, prefix)
}

func jsonResource(uri string, data []byte) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}
}
