package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sage-labs/sage-cli/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Query  string `json:"query" jsonschema:"the natural-language question to answer"`
	Domain string `json:"domain" jsonschema:"the domain ID that scopes the question"`

	// Patterns overrides the domain's pattern-search default when set.
	Patterns *bool `json:"patterns,omitempty" jsonschema:"override pattern search for this query"`

	// Thinking requests the model's reasoning trace.
	Thinking *bool `json:"thinking,omitempty" jsonschema:"include the model's reasoning trace"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer    string   `json:"answer"`
	Reasoning string   `json:"reasoning,omitempty"`
	Source    string   `json:"source_used"`
	PatternID string   `json:"pattern_id,omitempty"`
	Documents []string `json:"documents,omitempty"`
	Trace     []string `json:"trace"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask a question within a Sage domain",
	}, s.handleAsk)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	req := domain.QueryRequest{
		Text:           input.Query,
		DomainID:       input.Domain,
		SearchPatterns: input.Patterns,
		ShowThinking:   input.Thinking,
	}

	result, err := s.ports.Query.Ask(ctx, req)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:    result.Answer,
		Reasoning: result.Reasoning,
		Source:    string(result.Source),
		PatternID: result.PatternID,
		Documents: result.Documents,
		Trace:     make([]string, len(result.Trace)),
	}
	for i, state := range result.Trace {
		output.Trace[i] = string(state)
	}

	return nil, output, nil
}
