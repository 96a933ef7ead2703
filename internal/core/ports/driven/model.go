package driven

import "context"

// ModelClient invokes the language model backend. The core treats the model
// as an opaque capability: prompt plus assembled context in, text out.
// Retry and timeout policy belong to the implementation, not the core.
//
// This is an optional service - when nil, only pattern answers are available.
type ModelClient interface {
	// Answer submits the query and its assembled context.
	Answer(ctx context.Context, req ModelRequest) (ModelResponse, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ModelRequest carries one model invocation.
type ModelRequest struct {
	// Query is the user's question.
	Query string

	// Context is the assembled retrieval context. Empty for bare queries.
	Context string

	// ShowThinking asks the backend for a reasoning trace alongside the
	// answer. Backends that cannot produce one return an empty Reasoning.
	ShowThinking bool
}

// ModelResponse is the model's reply.
type ModelResponse struct {
	// Answer is the answer text.
	Answer string

	// Reasoning is the reasoning trace, when requested and available.
	Reasoning string
}

// WebSearcher retrieves web context for a query. Best-effort: failures
// degrade to an empty context rather than failing the query.
//
// This is an optional service - when nil, internet personas behave like
// none personas.
type WebSearcher interface {
	// Search returns an opaque text context for the query.
	Search(ctx context.Context, query string) (string, error)

	// Close releases resources.
	Close() error
}
