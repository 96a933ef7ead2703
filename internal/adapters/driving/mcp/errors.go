// Package mcp provides an MCP (Model Context Protocol) server adapter for Sage.
// It lets AI assistants route questions through Sage's domains and stored patterns.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")
