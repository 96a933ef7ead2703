package driven

import (
	"context"

	"github.com/sage-labs/sage-cli/internal/core/domain"
)

// DomainStore persists domain configurations. It is the explicit registry
// of loaded domains: services receive it by injection, and no package-level
// state shadows it.
type DomainStore interface {
	// Save stores or updates a domain configuration.
	Save(ctx context.Context, cfg domain.DomainConfig) error

	// Get retrieves a domain configuration by ID.
	// Returns domain.ErrNotFound if no such domain exists.
	Get(ctx context.Context, id string) (*domain.DomainConfig, error)

	// List returns all domain configurations.
	List(ctx context.Context) ([]domain.DomainConfig, error)

	// Delete removes a domain configuration.
	Delete(ctx context.Context, id string) error
}
