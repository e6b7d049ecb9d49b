package driving

import (
	"context"

	"github.com/refman-tools/refman-cli/internal/core/domain"
)

// IndexService builds the persistent document/chunk index.
type IndexService interface {
	// Build indexes every file under the given root directories.
	// A failure on one file is reported in the returned BuildReport
	// and never aborts the run.
	Build(ctx context.Context, roots []string) (*domain.BuildReport, error)
}
