package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrConfiguration indicates a domain is misconfigured for its persona.
	// The wrapping error names the offending field. Fatal for the query,
	// recoverable by editing the domain.
	ErrConfiguration = errors.New("configuration error")

	// ErrUnknownPersona indicates a domain references a persona that is not
	// in the built-in catalog.
	ErrUnknownPersona = errors.New("unknown persona")

	// ErrLibraryPath indicates the library base path does not exist or
	// cannot be read. Fatal for the query that hit it; other queries and
	// other domains are unaffected.
	ErrLibraryPath = errors.New("library path unreadable")

	// ErrLoadTimeout indicates library enumeration exceeded its hard
	// ceiling (wall clock or visited-entry count). Guards against
	// pathological directory structures.
	ErrLoadTimeout = errors.New("library load timeout")

	// ErrSearchUnavailable indicates the web search collaborator failed.
	// Handled locally by degrading to an empty context, never surfaced
	// to the end user as a query failure.
	ErrSearchUnavailable = errors.New("web search unavailable")

	// ErrModelUnavailable indicates the model service is not configured.
	ErrModelUnavailable = errors.New("model service unavailable")
)
