package services

import (
	"context"
	"fmt"
	"os"

	"github.com/sage-labs/sage-cli/internal/core/domain"
	"github.com/sage-labs/sage-cli/internal/core/ports/driven"
	"github.com/sage-labs/sage-cli/internal/core/ports/driving"
)

// Ensure DomainService implements the interface.
var _ driving.DomainService = (*DomainService)(nil)

// DomainService manages domain configurations. Persona/library-path
// invariants are enforced here, at create and update time, so that query
// handling never has to fail on a missing library directory that could
// have been rejected earlier.
type DomainService struct {
	domainStore  driven.DomainStore
	patternStore driven.PatternStore
}

// NewDomainService creates a new domain service.
func NewDomainService(domainStore driven.DomainStore, patternStore driven.PatternStore) *DomainService {
	return &DomainService{
		domainStore:  domainStore,
		patternStore: patternStore,
	}
}

// Add creates a new domain configuration.
func (s *DomainService) Add(ctx context.Context, cfg domain.DomainConfig) error {
	if s.domainStore == nil {
		return domain.ErrNotImplemented
	}
	if err := s.validate(&cfg); err != nil {
		return err
	}
	existing, err := s.domainStore.Get(ctx, cfg.ID)
	if err == nil && existing != nil {
		return domain.ErrAlreadyExists
	}
	return s.domainStore.Save(ctx, cfg)
}

// Get retrieves a domain by ID.
func (s *DomainService) Get(ctx context.Context, id string) (*domain.DomainConfig, error) {
	if s.domainStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.domainStore.Get(ctx, id)
}

// List returns all configured domains.
func (s *DomainService) List(ctx context.Context) ([]domain.DomainConfig, error) {
	if s.domainStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.domainStore.List(ctx)
}

// Update modifies an existing domain configuration.
func (s *DomainService) Update(ctx context.Context, cfg domain.DomainConfig) error {
	if s.domainStore == nil {
		return domain.ErrNotImplemented
	}
	if err := s.validate(&cfg); err != nil {
		return err
	}
	if _, err := s.domainStore.Get(ctx, cfg.ID); err != nil {
		return domain.ErrNotFound
	}
	return s.domainStore.Save(ctx, cfg)
}

// Remove deletes a domain and its patterns.
func (s *DomainService) Remove(ctx context.Context, id string) error {
	if s.domainStore == nil {
		return domain.ErrNotImplemented
	}
	if s.patternStore != nil {
		//nolint:errcheck // Intentionally ignore errors to continue cleanup
		_ = s.patternStore.DeleteByDomain(ctx, id)
	}
	return s.domainStore.Delete(ctx, id)
}

// validate enforces the domain invariants, including that a library persona
// points at an existing, readable directory.
func (s *DomainService) validate(cfg *domain.DomainConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	persona, err := cfg.ResolvePersona()
	if err != nil {
		return err
	}
	if !persona.DataSource.RequiresLibraryPath() {
		return nil
	}

	info, err := os.Stat(cfg.LibraryPath)
	if err != nil {
		return fmt.Errorf("%w: library_path %q: %v", domain.ErrConfiguration, cfg.LibraryPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: library_path %q is not a directory", domain.ErrConfiguration, cfg.LibraryPath)
	}
	return nil
}
