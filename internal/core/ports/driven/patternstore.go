package driven

import (
	"context"

	"github.com/sage-labs/sage-cli/internal/core/domain"
)

// PatternStore persists patterns. Lookup during query handling reads
// via ListByDomain and matches in the core; IncrementUsage is the separate
// write path kept off the hot query path.
type PatternStore interface {
	// Save stores or updates a pattern.
	Save(ctx context.Context, pattern domain.Pattern) error

	// Get retrieves a pattern by ID.
	// Returns domain.ErrNotFound if no such pattern exists.
	Get(ctx context.Context, id string) (*domain.Pattern, error)

	// ListByDomain returns all patterns for a domain.
	ListByDomain(ctx context.Context, domainID string) ([]domain.Pattern, error)

	// Delete removes a pattern.
	Delete(ctx context.Context, id string) error

	// DeleteByDomain removes all patterns belonging to a domain.
	DeleteByDomain(ctx context.Context, domainID string) error

	// IncrementUsage bumps a pattern's usage count by one.
	IncrementUsage(ctx context.Context, id string) error
}
