package driven

import (
	"context"

	"github.com/sage-labs/sage-cli/internal/core/domain"
)

// LibraryLoader loads documents from a local library directory.
//
// Implementations must enumerate files in a deterministic order, apply the
// active exclusion rules before reading, and honour document-count and
// per-document size caps. A nonexistent or unreadable base path is reported
// as domain.ErrLibraryPath; enumeration pathology (runaway trees) as
// domain.ErrLoadTimeout.
type LibraryLoader interface {
	// Load returns the accepted documents under basePath, in order.
	// Excluded files are skipped silently.
	Load(ctx context.Context, basePath string) ([]domain.LibraryDocument, error)
}

// ExclusionSource provides the active exclusion rules.
// The canonical implementation reads a line-oriented rule document and
// caches it between queries.
type ExclusionSource interface {
	// Rules returns the current exclusion rules.
	Rules(ctx context.Context) ([]domain.ExclusionRule, error)
}
