package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Sage resources.
	uriScheme = "sage://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing domains.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "domains",
		Name:        "domains",
		Description: "List of all configured domains",
		MIMEType:    "application/json",
	}, s.handleDomainsResource)

	// Template for a domain's patterns.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "domains/{domainId}/patterns",
		Name:        "domain-patterns",
		Description: "Stored patterns of a specific domain",
		MIMEType:    "application/json",
	}, s.handlePatternsResource)
}

// handleDomainsResource returns a list of all configured domains.
func (s *Server) handleDomainsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Domain == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	domains, err := s.ports.Domain.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing domains: %w", err)
	}

	// Build simplified domain list.
	type domainInfo struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Persona  string `json:"persona"`
		Patterns bool   `json:"patterns_enabled"`
	}

	infos := make([]domainInfo, len(domains))
	for i, d := range domains {
		infos[i] = domainInfo{
			ID:       d.ID,
			Name:     d.Name,
			Persona:  d.Persona,
			Patterns: d.PatternsEnabled,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling domains: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handlePatternsResource returns the patterns of a specific domain.
func (s *Server) handlePatternsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Pattern == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract domainId from URI: sage://domains/{domainId}/patterns
	domainID := extractDomainID(req.Params.URI)
	if domainID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	patterns, err := s.ports.Pattern.List(ctx, domainID)
	if err != nil {
		return nil, fmt.Errorf("listing patterns: %w", err)
	}

	// Build simplified pattern list.
	type patternInfo struct {
		ID         string `json:"id"`
		Match      string `json:"match"`
		Answer     string `json:"answer"`
		UsageCount int    `json:"usage_count"`
	}

	infos := make([]patternInfo, len(patterns))
	for i, p := range patterns {
		infos[i] = patternInfo{
			ID:         p.ID,
			Match:      p.Match,
			Answer:     p.Answer,
			UsageCount: p.UsageCount,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling patterns: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractDomainID extracts the domain ID from a URI like sage://domains/{domainId}/patterns.
func extractDomainID(uri string) string {
	const prefix = uriScheme + "domains/"
	const suffix = "/patterns"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
