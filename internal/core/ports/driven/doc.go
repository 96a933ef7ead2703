// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DomainStore: Domain configuration persistence
//   - PatternStore: Pattern persistence and lookup support
//   - LibraryLoader: Local library document loading
//   - ExclusionSource: The exclusion rule document
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ModelClient: Language model invocation. Without it, only pattern
//     answers are available.
//   - WebSearcher: Web search retrieval. Without it, internet personas
//     behave like none personas.
//   - PromptStore: Custom prompt templates. Without it, embedded defaults
//     are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or library package
package driven
