package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/sage-labs/sage-cli/internal/core/domain"
	"github.com/sage-labs/sage-cli/internal/core/ports/driven"
)

// Ensure PatternStore implements the interface.
var _ driven.PatternStore = (*PatternStore)(nil)

// PatternStore is an in-memory implementation of driven.PatternStore.
type PatternStore struct {
	mu       sync.RWMutex
	patterns map[string]domain.Pattern
}

// NewPatternStore creates a new in-memory pattern store.
func NewPatternStore() *PatternStore {
	return &PatternStore{
		patterns: make(map[string]domain.Pattern),
	}
}

// Save stores or updates a pattern.
func (s *PatternStore) Save(_ context.Context, pattern domain.Pattern) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patterns[pattern.ID] = pattern
	return nil
}

// Get retrieves a pattern by ID.
func (s *PatternStore) Get(_ context.Context, id string) (*domain.Pattern, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pattern, ok := s.patterns[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &pattern, nil
}

// ListByDomain returns all patterns for a domain, ordered by ID.
func (s *PatternStore) ListByDomain(_ context.Context, domainID string) ([]domain.Pattern, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Pattern, 0)
	for _, pattern := range s.patterns {
		if pattern.DomainID == domainID {
			result = append(result, pattern)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Delete removes a pattern.
func (s *PatternStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.patterns, id)
	return nil
}

// DeleteByDomain removes all patterns belonging to a domain.
func (s *PatternStore) DeleteByDomain(_ context.Context, domainID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, pattern := range s.patterns {
		if pattern.DomainID == domainID {
			delete(s.patterns, id)
		}
	}
	return nil
}

// IncrementUsage bumps a pattern's usage count by one.
func (s *PatternStore) IncrementUsage(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pattern, ok := s.patterns[id]
	if !ok {
		return domain.ErrNotFound
	}
	pattern.UsageCount++
	s.patterns[id] = pattern
	return nil
}
