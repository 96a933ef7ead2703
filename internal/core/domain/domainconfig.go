package domain

import (
	"fmt"
	"time"
)

// DomainConfig is a named configuration scope for query handling.
// It bundles a persona, a pattern store and retrieval settings.
//
// Domains are created and edited through the DomainService; during query
// handling they are read-only snapshots.
type DomainConfig struct {
	// ID is the unique domain identifier.
	ID string

	// Name is the human-readable display name.
	Name string

	// Persona is the name of the built-in persona this domain uses.
	Persona string

	// LibraryPath is the base directory for library retrieval.
	// Required iff the persona's data source is library.
	LibraryPath string

	// PatternsEnabled is the domain-level default for whether pattern
	// search runs before falling back to the persona's data source.
	// A query may override it either way.
	PatternsEnabled bool

	// CreatedAt is when the domain was created.
	CreatedAt time.Time

	// UpdatedAt is when the domain was last modified.
	UpdatedAt time.Time
}

// ResolvePersona returns the built-in persona this domain references.
func (d *DomainConfig) ResolvePersona() (Persona, error) {
	return PersonaByName(d.Persona)
}

// Validate checks the domain's structural invariants. A domain whose persona
// requires a library path must carry a non-empty one; whether the path exists
// on disk is checked by the DomainService, which can touch the filesystem.
func (d *DomainConfig) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("%w: domain id is empty", ErrInvalidInput)
	}
	persona, err := d.ResolvePersona()
	if err != nil {
		return fmt.Errorf("%w: persona %q", ErrUnknownPersona, d.Persona)
	}
	if persona.DataSource.RequiresLibraryPath() && d.LibraryPath == "" {
		return fmt.Errorf("%w: library_path is required for persona %q", ErrConfiguration, d.Persona)
	}
	return nil
}
