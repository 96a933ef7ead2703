package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataSource_IsValid(t *testing.T) {
	assert.True(t, DataSourceNone.IsValid())
	assert.True(t, DataSourceLibrary.IsValid())
	assert.True(t, DataSourceInternet.IsValid())
	assert.False(t, DataSource("database").IsValid())
	assert.False(t, DataSource("").IsValid())
}

func TestDataSource_RequiresLibraryPath(t *testing.T) {
	assert.True(t, DataSourceLibrary.RequiresLibraryPath())
	assert.False(t, DataSourceNone.RequiresLibraryPath())
	assert.False(t, DataSourceInternet.RequiresLibraryPath())
}

func TestDataSource_Description(t *testing.T) {
	assert.Equal(t, "Library (local documents)", DataSourceLibrary.Description())
	assert.Equal(t, unknownDescription, DataSource("bogus").Description())
}

func TestPersonas_ReturnsCatalog(t *testing.T) {
	personas := Personas()
	require.Len(t, personas, 3)

	names := make([]string, len(personas))
	for i, p := range personas {
		names[i] = p.Name
		assert.True(t, p.DataSource.IsValid(), "persona %s has invalid data source", p.Name)
	}
	assert.Equal(t, []string{PersonaTutor, PersonaLibrarian, PersonaResearcher}, names)
}

func TestPersonas_ReturnsCopy(t *testing.T) {
	personas := Personas()
	personas[0].Name = "mutated"

	again := Personas()
	assert.Equal(t, PersonaTutor, again[0].Name)
}

func TestPersonaByName(t *testing.T) {
	p, err := PersonaByName(PersonaLibrarian)
	require.NoError(t, err)
	assert.Equal(t, DataSourceLibrary, p.DataSource)
	assert.False(t, p.RevealReasoningDefault)
}

func TestPersonaByName_TutorRevealsReasoning(t *testing.T) {
	p, err := PersonaByName(PersonaTutor)
	require.NoError(t, err)
	assert.Equal(t, DataSourceNone, p.DataSource)
	assert.True(t, p.RevealReasoningDefault)
}

func TestPersonaByName_Unknown(t *testing.T) {
	_, err := PersonaByName("sage")
	assert.ErrorIs(t, err, ErrUnknownPersona)
}
