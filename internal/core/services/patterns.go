package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sage-labs/sage-cli/internal/core/domain"
	"github.com/sage-labs/sage-cli/internal/core/ports/driven"
	"github.com/sage-labs/sage-cli/internal/core/ports/driving"
)

// Ensure PatternService implements the interface.
var _ driving.PatternService = (*PatternService)(nil)

// PatternService manages the patterns of a domain. All mutation goes
// through here; query handling only reads.
type PatternService struct {
	patternStore driven.PatternStore
	domainStore  driven.DomainStore
}

// NewPatternService creates a new pattern service.
func NewPatternService(patternStore driven.PatternStore, domainStore driven.DomainStore) *PatternService {
	return &PatternService{
		patternStore: patternStore,
		domainStore:  domainStore,
	}
}

// Add authors a new pattern within a domain.
func (s *PatternService) Add(ctx context.Context, pattern domain.Pattern) error {
	if s.patternStore == nil {
		return domain.ErrNotImplemented
	}
	if pattern.ID == "" {
		return fmt.Errorf("%w: pattern id is empty", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(pattern.Match) == "" {
		return fmt.Errorf("%w: pattern matcher is empty", domain.ErrInvalidInput)
	}
	if s.domainStore != nil {
		if _, err := s.domainStore.Get(ctx, pattern.DomainID); err != nil {
			return fmt.Errorf("domain %q: %w", pattern.DomainID, err)
		}
	}
	existing, err := s.patternStore.Get(ctx, pattern.ID)
	if err == nil && existing != nil {
		return domain.ErrAlreadyExists
	}
	return s.patternStore.Save(ctx, pattern)
}

// List returns all patterns of a domain.
func (s *PatternService) List(ctx context.Context, domainID string) ([]domain.Pattern, error) {
	if s.patternStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.patternStore.ListByDomain(ctx, domainID)
}

// Remove deletes a pattern.
func (s *PatternService) Remove(ctx context.Context, id string) error {
	if s.patternStore == nil {
		return domain.ErrNotImplemented
	}
	return s.patternStore.Delete(ctx, id)
}
