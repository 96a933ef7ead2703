// Package domain defines the core business entities for Sage.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Persona: A capability bundle declaring a default data source
//   - DomainConfig: A named configuration scope for query handling
//   - Pattern: A pre-authored matcher/answer pair
//   - ExclusionRule: A substring block-list entry for library loading
//   - QueryRequest / QueryResult: One question in, one answer out
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
