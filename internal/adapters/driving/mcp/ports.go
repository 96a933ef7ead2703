package mcp

import (
	"github.com/sage-labs/sage-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers questions scoped to a domain.
	Query driving.QueryService

	// Domain manages domain configurations.
	Domain driving.DomainService

	// Pattern manages stored patterns.
	Pattern driving.PatternService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	// Domain and Pattern back the resources and are optional
	return nil
}
