package mcp

import (
	"context"

	"github.com/sage-labs/sage-cli/internal/core/domain"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	result  *domain.QueryResult
	err     error
	lastReq domain.QueryRequest
}

func (m *mockQueryService) Ask(_ context.Context, req domain.QueryRequest) (*domain.QueryResult, error) {
	m.lastReq = req
	return m.result, m.err
}

// mockDomainService is a mock implementation of driving.DomainService.
type mockDomainService struct {
	domains []domain.DomainConfig
	cfg     *domain.DomainConfig
	err     error
}

func (m *mockDomainService) Add(_ context.Context, _ domain.DomainConfig) error {
	return m.err
}

func (m *mockDomainService) Get(_ context.Context, _ string) (*domain.DomainConfig, error) {
	return m.cfg, m.err
}

func (m *mockDomainService) List(_ context.Context) ([]domain.DomainConfig, error) {
	return m.domains, m.err
}

func (m *mockDomainService) Update(_ context.Context, _ domain.DomainConfig) error {
	return m.err
}

func (m *mockDomainService) Remove(_ context.Context, _ string) error {
	return m.err
}

// mockPatternService is a mock implementation of driving.PatternService.
type mockPatternService struct {
	patterns []domain.Pattern
	err      error
}

func (m *mockPatternService) Add(_ context.Context, _ domain.Pattern) error {
	return m.err
}

func (m *mockPatternService) List(_ context.Context, _ string) ([]domain.Pattern, error) {
	return m.patterns, m.err
}

func (m *mockPatternService) Remove(_ context.Context, _ string) error {
	return m.err
}
