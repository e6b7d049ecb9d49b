package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/refman-tools/refman-cli/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query       string `json:"query" jsonschema:"the search query to find passages in the manuals"`
	Category    string `json:"category,omitempty" jsonschema:"restrict results to one category (development, api, integration, automation, security, analytics, deployment, administration)"`
	Subcategory string `json:"subcategory,omitempty" jsonschema:"restrict results to one subcategory, e.g. apex or rest"`
	MaxResults  int    `json:"max_results,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results        []SearchResultOutput `json:"results"`
	Count          int                  `json:"count"`
	DetectedIntent string               `json:"detected_intent,omitempty"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	FileName     string   `json:"file_name"`
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	Subcategory  string   `json:"subcategory,omitempty"`
	SectionTitle string   `json:"section_title,omitempty"`
	Score        float64  `json:"score"`
	MatchDensity float64  `json:"match_density"`
	Highlights   []string `json:"highlights,omitempty"`
	Content      string   `json:"content,omitempty"`
}

// ExpandInput is the input schema for the expand_query tool.
type ExpandInput struct {
	Query   string `json:"query" jsonschema:"the query to expand into related search terms"`
	Context string `json:"context,omitempty" jsonschema:"optional free-text context that refines the expansion"`
}

// ExpandOutput is the output schema for the expand_query tool.
type ExpandOutput struct {
	ExpandedTerms     []string `json:"expanded_terms"`
	DetectedConcepts  []string `json:"detected_concepts,omitempty"`
	SuggestedCategory string   `json:"suggested_category,omitempty"`
	Confidence        string   `json:"confidence"`
	Reasoning         string   `json:"reasoning"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search across all indexed developer manuals",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "expand_query",
		Description: "Expand a query into related search terms and a suggested category",
	}, s.handleExpandQuery)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if input.Category != "" && !domain.Category(input.Category).IsValid() {
		return nil, SearchOutput{}, fmt.Errorf("%w: unknown category %q",
			domain.ErrInvalidCategory, input.Category)
	}

	opts := domain.SearchOptions{
		Category:    domain.Category(input.Category),
		Subcategory: input.Subcategory,
		MaxResults:  input.MaxResults,
	}

	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	if len(results) > 0 {
		output.DetectedIntent = results[0].DetectedIntent
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			FileName:     results[i].Document.FileName,
			Title:        results[i].Document.Title,
			Category:     string(results[i].Document.Category),
			Subcategory:  results[i].Document.Subcategory,
			SectionTitle: results[i].Chunk.SectionTitle,
			Score:        results[i].Score,
			MatchDensity: results[i].MatchDensity,
			Highlights:   results[i].Highlights,
			Content:      results[i].Chunk.Content,
		}
	}

	return nil, output, nil
}

// handleExpandQuery handles the expand_query tool invocation.
func (s *Server) handleExpandQuery(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ExpandInput,
) (*mcp.CallToolResult, ExpandOutput, error) {
	expansion := s.ports.Search.ExpandQuery(input.Query, input.Context)

	return nil, ExpandOutput{
		ExpandedTerms:     expansion.ExpandedTerms,
		DetectedConcepts:  expansion.DetectedConcepts,
		SuggestedCategory: string(expansion.SuggestedCategory),
		Confidence:        string(expansion.Confidence),
		Reasoning:         expansion.Reasoning,
	}, nil
}
