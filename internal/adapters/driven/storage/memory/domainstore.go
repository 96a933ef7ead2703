// Package memory provides in-memory implementations of the driven storage
// ports. They are used for tests and as a zero-setup storage backend.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/sage-labs/sage-cli/internal/core/domain"
	"github.com/sage-labs/sage-cli/internal/core/ports/driven"
)

// Ensure DomainStore implements the interface.
var _ driven.DomainStore = (*DomainStore)(nil)

// DomainStore is an in-memory implementation of driven.DomainStore.
type DomainStore struct {
	mu      sync.RWMutex
	domains map[string]domain.DomainConfig
}

// NewDomainStore creates a new in-memory domain store.
func NewDomainStore() *DomainStore {
	return &DomainStore{
		domains: make(map[string]domain.DomainConfig),
	}
}

// Save stores or updates a domain configuration.
func (s *DomainStore) Save(_ context.Context, cfg domain.DomainConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.domains[cfg.ID] = cfg
	return nil
}

// Get retrieves a domain configuration by ID.
func (s *DomainStore) Get(_ context.Context, id string) (*domain.DomainConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.domains[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &cfg, nil
}

// List returns all domain configurations, ordered by ID.
func (s *DomainStore) List(_ context.Context) ([]domain.DomainConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.DomainConfig, 0, len(s.domains))
	for _, cfg := range s.domains {
		result = append(result, cfg)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Delete removes a domain configuration.
func (s *DomainStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.domains, id)
	return nil
}
