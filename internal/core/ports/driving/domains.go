package driving

import (
	"context"

	"github.com/sage-labs/sage-cli/internal/core/domain"
)

// DomainService manages domain configurations.
type DomainService interface {
	// Add creates a new domain configuration.
	// Validates the persona/library-path invariant before storing.
	Add(ctx context.Context, cfg domain.DomainConfig) error

	// Get retrieves a domain by ID.
	Get(ctx context.Context, id string) (*domain.DomainConfig, error)

	// List returns all configured domains.
	List(ctx context.Context) ([]domain.DomainConfig, error)

	// Update modifies an existing domain configuration.
	Update(ctx context.Context, cfg domain.DomainConfig) error

	// Remove deletes a domain and its patterns.
	Remove(ctx context.Context, id string) error
}

// PatternService manages the patterns of a domain.
type PatternService interface {
	// Add authors a new pattern within a domain.
	Add(ctx context.Context, pattern domain.Pattern) error

	// List returns all patterns of a domain.
	List(ctx context.Context, domainID string) ([]domain.Pattern, error)

	// Remove deletes a pattern.
	Remove(ctx context.Context, id string) error
}
