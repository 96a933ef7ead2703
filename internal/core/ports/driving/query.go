package driving

import (
	"context"

	"github.com/sage-labs/sage-cli/internal/core/domain"
)

// QueryService answers one query at a time. It holds no state between
// queries and is safe for concurrent use.
type QueryService interface {
	// Ask routes the query through pattern lookup and the persona's data
	// source, invokes the model when needed, and returns the structured
	// result.
	Ask(ctx context.Context, req domain.QueryRequest) (*domain.QueryResult, error)
}
