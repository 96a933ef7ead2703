package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-labs/sage-cli/internal/core/domain"
)

func TestDomainService_Add(t *testing.T) {
	store := newMockDomainStore()
	svc := NewDomainService(store, newMockPatternStore())

	err := svc.Add(context.Background(), tutorDomain("physics"))
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), "physics")
	require.NoError(t, err)
	assert.Equal(t, "physics", got.ID)
}

func TestDomainService_Add_Duplicate(t *testing.T) {
	svc := NewDomainService(newMockDomainStore(tutorDomain("physics")), newMockPatternStore())

	err := svc.Add(context.Background(), tutorDomain("physics"))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestDomainService_Add_InvalidConfig(t *testing.T) {
	svc := NewDomainService(newMockDomainStore(), newMockPatternStore())

	tests := []struct {
		name string
		cfg  domain.DomainConfig
		want error
	}{
		{
			name: "empty id",
			cfg:  domain.DomainConfig{Persona: domain.PersonaTutor},
			want: domain.ErrInvalidInput,
		},
		{
			name: "unknown persona",
			cfg:  domain.DomainConfig{ID: "d", Persona: "oracle"},
			want: domain.ErrUnknownPersona,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Add(context.Background(), tt.cfg)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDomainService_Add_LibraryPathChecked(t *testing.T) {
	svc := NewDomainService(newMockDomainStore(), newMockPatternStore())

	t.Run("existing directory accepted", func(t *testing.T) {
		err := svc.Add(context.Background(), librarianDomain("lib", t.TempDir()))
		assert.NoError(t, err)
	})

	t.Run("missing directory rejected", func(t *testing.T) {
		err := svc.Add(context.Background(), librarianDomain("lib2", "/no/such/dir"))
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})

	t.Run("empty path rejected", func(t *testing.T) {
		err := svc.Add(context.Background(), librarianDomain("lib3", ""))
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})

	t.Run("no path needed for tutor", func(t *testing.T) {
		err := svc.Add(context.Background(), tutorDomain("plain"))
		assert.NoError(t, err)
	})
}

func TestDomainService_Update(t *testing.T) {
	svc := NewDomainService(newMockDomainStore(tutorDomain("physics")), newMockPatternStore())

	cfg := tutorDomain("physics")
	cfg.Name = "Physics 101"
	require.NoError(t, svc.Update(context.Background(), cfg))

	got, err := svc.Get(context.Background(), "physics")
	require.NoError(t, err)
	assert.Equal(t, "Physics 101", got.Name)
}

func TestDomainService_Update_Missing(t *testing.T) {
	svc := NewDomainService(newMockDomainStore(), newMockPatternStore())

	err := svc.Update(context.Background(), tutorDomain("ghost"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDomainService_Remove_DeletesPatterns(t *testing.T) {
	domains := newMockDomainStore(tutorDomain("physics"))
	patterns := newMockPatternStore(
		domain.Pattern{ID: "p1", DomainID: "physics", Match: "ohm", Answer: "V = IR"},
		domain.Pattern{ID: "p2", DomainID: "chem", Match: "mole", Answer: "6.022e23"},
	)
	svc := NewDomainService(domains, patterns)

	require.NoError(t, svc.Remove(context.Background(), "physics"))

	_, err := svc.Get(context.Background(), "physics")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	left, err := patterns.ListByDomain(context.Background(), "physics")
	require.NoError(t, err)
	assert.Empty(t, left)

	// Other domains' patterns are untouched.
	kept, err := patterns.ListByDomain(context.Background(), "chem")
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestDomainService_List(t *testing.T) {
	svc := NewDomainService(newMockDomainStore(tutorDomain("a"), tutorDomain("b")), newMockPatternStore())

	domains, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, domains, 2)
}

func TestDomainService_NilStore(t *testing.T) {
	svc := NewDomainService(nil, nil)

	assert.ErrorIs(t, svc.Add(context.Background(), tutorDomain("d")), domain.ErrNotImplemented)
	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}
