package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-labs/sage-cli/internal/core/domain"
)

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the answered query", func(t *testing.T) {
		mockQuery := &mockQueryService{
			result: &domain.QueryResult{
				Answer:    "V = IR",
				Source:    domain.SourcePattern,
				PatternID: "p1",
				Elapsed:   5 * time.Millisecond,
				Trace: []domain.QueryState{
					domain.StateStart,
					domain.StatePatternCheck,
					domain.StatePatternHit,
					domain.StateDone,
				},
			},
		}

		ports := &Ports{Query: mockQuery}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := AskInput{Query: "what is ohm's law", Domain: "physics"}
		_, output, err := server.handleAsk(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "V = IR", output.Answer)
		assert.Equal(t, "pattern", output.Source)
		assert.Equal(t, "p1", output.PatternID)
		assert.Equal(t, []string{"start", "pattern_check", "pattern_hit", "done"}, output.Trace)
	})

	t.Run("passes overrides through", func(t *testing.T) {
		mockQuery := &mockQueryService{
			result: &domain.QueryResult{Source: domain.SourceNone},
		}
		ports := &Ports{Query: mockQuery}
		server, err := NewServer(ports)
		require.NoError(t, err)

		off := false
		on := true
		input := AskInput{
			Query:    "anything",
			Domain:   "physics",
			Patterns: &off,
			Thinking: &on,
		}
		_, _, err = server.handleAsk(ctx, nil, input)

		require.NoError(t, err)
		require.NotNil(t, mockQuery.lastReq.SearchPatterns)
		assert.False(t, *mockQuery.lastReq.SearchPatterns)
		require.NotNil(t, mockQuery.lastReq.ShowThinking)
		assert.True(t, *mockQuery.lastReq.ShowThinking)
	})

	t.Run("returns error on query failure", func(t *testing.T) {
		mockQuery := &mockQueryService{
			err: errors.New("ask failed"),
		}

		ports := &Ports{Query: mockQuery}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := AskInput{Query: "anything", Domain: "physics"}
		_, _, err = server.handleAsk(ctx, nil, input)

		assert.Error(t, err)
	})

	t.Run("library documents are surfaced", func(t *testing.T) {
		mockQuery := &mockQueryService{
			result: &domain.QueryResult{
				Answer:    "From your notes.",
				Source:    domain.SourceLibrary,
				Documents: []string{"notes.md", "guides/setup.md"},
			},
		}

		ports := &Ports{Query: mockQuery}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := AskInput{Query: "how do I set this up", Domain: "docs"}
		_, output, err := server.handleAsk(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "library", output.Source)
		assert.Equal(t, []string{"notes.md", "guides/setup.md"}, output.Documents)
	})
}
