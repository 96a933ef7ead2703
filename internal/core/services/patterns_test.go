package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-labs/sage-cli/internal/core/domain"
)

func TestPatternService_Add(t *testing.T) {
	patterns := newMockPatternStore()
	svc := NewPatternService(patterns, newMockDomainStore(tutorDomain("physics")))

	err := svc.Add(context.Background(), domain.Pattern{
		ID: "p1", DomainID: "physics", Match: "ohm's law", Answer: "V = IR",
	})
	require.NoError(t, err)

	got, err := svc.List(context.Background(), "physics")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
}

func TestPatternService_Add_Validation(t *testing.T) {
	svc := NewPatternService(newMockPatternStore(), newMockDomainStore(tutorDomain("physics")))

	tests := []struct {
		name    string
		pattern domain.Pattern
		want    error
	}{
		{
			name:    "empty id",
			pattern: domain.Pattern{DomainID: "physics", Match: "ohm"},
			want:    domain.ErrInvalidInput,
		},
		{
			name:    "blank matcher",
			pattern: domain.Pattern{ID: "p1", DomainID: "physics", Match: "   "},
			want:    domain.ErrInvalidInput,
		},
		{
			name:    "unknown domain",
			pattern: domain.Pattern{ID: "p1", DomainID: "ghost", Match: "ohm"},
			want:    domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Add(context.Background(), tt.pattern)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPatternService_Add_EmptyAnswerAllowed(t *testing.T) {
	svc := NewPatternService(newMockPatternStore(), newMockDomainStore(tutorDomain("physics")))

	err := svc.Add(context.Background(), domain.Pattern{
		ID: "p1", DomainID: "physics", Match: "classified", Answer: "",
	})
	assert.NoError(t, err)
}

func TestPatternService_Add_Duplicate(t *testing.T) {
	patterns := newMockPatternStore(domain.Pattern{ID: "p1", DomainID: "physics", Match: "ohm"})
	svc := NewPatternService(patterns, newMockDomainStore(tutorDomain("physics")))

	err := svc.Add(context.Background(), domain.Pattern{
		ID: "p1", DomainID: "physics", Match: "different",
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestPatternService_Remove(t *testing.T) {
	patterns := newMockPatternStore(domain.Pattern{ID: "p1", DomainID: "physics", Match: "ohm"})
	svc := NewPatternService(patterns, newMockDomainStore(tutorDomain("physics")))

	require.NoError(t, svc.Remove(context.Background(), "p1"))

	got, err := svc.List(context.Background(), "physics")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPatternService_NilStore(t *testing.T) {
	svc := NewPatternService(nil, nil)

	err := svc.Add(context.Background(), domain.Pattern{ID: "p1", Match: "x"})
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}
