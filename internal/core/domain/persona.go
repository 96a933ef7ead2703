package domain

const unknownDescription = "Unknown"

// DataSource defines the retrieval strategy a persona defaults to.
type DataSource string

// Available data sources.
const (
	// DataSourceNone performs no retrieval; the model receives the bare query.
	DataSourceNone DataSource = "none"

	// DataSourceLibrary loads documents from a local library directory.
	DataSourceLibrary DataSource = "library"

	// DataSourceInternet delegates to a best-effort web search collaborator.
	DataSourceInternet DataSource = "internet"
)

// IsValid returns true if the data source is recognised.
func (d DataSource) IsValid() bool {
	switch d {
	case DataSourceNone, DataSourceLibrary, DataSourceInternet:
		return true
	default:
		return false
	}
}

// RequiresLibraryPath returns true if this data source needs a library base path.
func (d DataSource) RequiresLibraryPath() bool {
	return d == DataSourceLibrary
}

// String returns the string representation.
func (d DataSource) String() string {
	return string(d)
}

// Description returns a human-readable description of the data source.
func (d DataSource) Description() string {
	switch d {
	case DataSourceNone:
		return "None (bare query)"
	case DataSourceLibrary:
		return "Library (local documents)"
	case DataSourceInternet:
		return "Internet (web search)"
	default:
		return unknownDescription
	}
}

// Persona is a named capability bundle. It declares which data source a
// domain falls back to when no pattern matches, and whether the reasoning
// trace is revealed by default.
//
// Personas are a small closed catalog defined at compile time. They are
// data, not types: adding a persona means adding a catalog entry, never a
// new Go type. Read-only during query handling.
type Persona struct {
	// Name is the unique persona identifier.
	Name string

	// DataSource is the retrieval strategy this persona defaults to.
	DataSource DataSource

	// RevealReasoningDefault controls whether query results include the
	// model's reasoning trace when the query does not say otherwise.
	RevealReasoningDefault bool

	// Description is a short human-readable summary for CLI listings.
	Description string
}

// Built-in persona names.
const (
	// PersonaTutor answers from the model alone and shows its reasoning.
	PersonaTutor = "tutor"

	// PersonaLibrarian grounds answers in the domain's local library.
	PersonaLibrarian = "librarian"

	// PersonaResearcher grounds answers in best-effort web search results.
	PersonaResearcher = "researcher"
)

// builtinPersonas is the closed persona catalog.
// Order is the display order for CLI listings.
var builtinPersonas = []Persona{
	{
		Name:                   PersonaTutor,
		DataSource:             DataSourceNone,
		RevealReasoningDefault: true,
		Description:            "Explains from the model alone, reasoning shown",
	},
	{
		Name:                   PersonaLibrarian,
		DataSource:             DataSourceLibrary,
		RevealReasoningDefault: false,
		Description:            "Answers grounded in the domain's local library",
	},
	{
		Name:                   PersonaResearcher,
		DataSource:             DataSourceInternet,
		RevealReasoningDefault: false,
		Description:            "Answers grounded in web search results",
	},
}

// Personas returns the built-in persona catalog in display order.
// The returned slice is a copy; callers may not mutate the catalog.
func Personas() []Persona {
	out := make([]Persona, len(builtinPersonas))
	copy(out, builtinPersonas)
	return out
}

// PersonaByName looks up a built-in persona.
// Returns ErrUnknownPersona if the name is not in the catalog.
func PersonaByName(name string) (Persona, error) {
	for _, p := range builtinPersonas {
		if p.Name == name {
			return p, nil
		}
	}
	return Persona{}, ErrUnknownPersona
}
