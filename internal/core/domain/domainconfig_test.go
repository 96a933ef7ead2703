package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainConfig_Validate(t *testing.T) {
	cfg := DomainConfig{
		ID:          "dom-1",
		Name:        "Work notes",
		Persona:     PersonaLibrarian,
		LibraryPath: "/srv/library",
	}
	assert.NoError(t, cfg.Validate())
}

func TestDomainConfig_Validate_EmptyID(t *testing.T) {
	cfg := DomainConfig{Persona: PersonaTutor}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidInput)
}

func TestDomainConfig_Validate_UnknownPersona(t *testing.T) {
	cfg := DomainConfig{ID: "dom-1", Persona: "chancellor"}
	assert.ErrorIs(t, cfg.Validate(), ErrUnknownPersona)
}

func TestDomainConfig_Validate_LibraryPersonaNeedsPath(t *testing.T) {
	cfg := DomainConfig{ID: "dom-1", Persona: PersonaLibrarian}

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "library_path")
}

func TestDomainConfig_Validate_NonLibraryPersonaNeedsNoPath(t *testing.T) {
	cfg := DomainConfig{ID: "dom-1", Persona: PersonaResearcher}
	assert.NoError(t, cfg.Validate())
}

func TestDomainConfig_ResolvePersona(t *testing.T) {
	cfg := DomainConfig{ID: "dom-1", Persona: PersonaResearcher}

	p, err := cfg.ResolvePersona()
	require.NoError(t, err)
	assert.Equal(t, DataSourceInternet, p.DataSource)
}
