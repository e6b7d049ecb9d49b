package driving

import (
	"context"

	"github.com/refman-tools/refman-cli/internal/core/domain"
)

// SearchService provides query capabilities to external actors.
type SearchService interface {
	// Search returns ranked excerpts for a free-text query. When no
	// explicit filter is supplied and the intent classifier is
	// confident, the detected topic scopes the search, widening
	// automatically if the scoped result set is too small.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// ExpandQuery derives a recall-oriented term set from a query and
	// optional free-text context. It is a pure function and never fails.
	ExpandQuery(query, context string) domain.QueryExpansion
}
