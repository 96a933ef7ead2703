package domain

import "time"

// SourceUsed identifies which retrieval strategy actually produced a
// query's context. It differs from the persona's DataSource when a pattern
// short-circuits the query or when web search degrades to nothing.
type SourceUsed string

// Recognised sources.
const (
	// SourcePattern means a stored pattern answered the query directly.
	SourcePattern SourceUsed = "pattern"

	// SourceNone means the model received the bare query.
	SourceNone SourceUsed = "none"

	// SourceLibrary means local library documents were loaded into context.
	SourceLibrary SourceUsed = "library"

	// SourceInternet means web search results were loaded into context.
	SourceInternet SourceUsed = "internet"
)

// IsValid returns true if the source is recognised.
func (s SourceUsed) IsValid() bool {
	switch s {
	case SourcePattern, SourceNone, SourceLibrary, SourceInternet:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s SourceUsed) String() string {
	return string(s)
}

// QueryState is one step of the query handling state machine. States are
// first-class so tests can assert on the path a query took, not just its
// final answer.
type QueryState string

// Query handling states, in machine order.
const (
	// StateStart resolves the effective per-query flags.
	StateStart QueryState = "start"

	// StatePatternCheck looks the query up in the domain's pattern store.
	StatePatternCheck QueryState = "pattern_check"

	// StatePatternHit short-circuits with a canned answer.
	StatePatternHit QueryState = "pattern_hit"

	// StateFallback resolves the persona's data source after a miss.
	StateFallback QueryState = "fallback"

	// StateDispatch performs retrieval and invokes the model.
	StateDispatch QueryState = "dispatch"

	// StateDone assembles the result.
	StateDone QueryState = "done"
)

// QueryRequest carries one natural-language question scoped to a domain.
// The two optional flags override the domain/persona defaults when set;
// nil means "use the default".
type QueryRequest struct {
	// Text is the natural-language query.
	Text string

	// DomainID identifies the domain to answer within.
	DomainID string

	// SearchPatterns overrides DomainConfig.PatternsEnabled when non-nil.
	SearchPatterns *bool

	// ShowThinking overrides Persona.RevealReasoningDefault when non-nil.
	ShowThinking *bool
}

// QueryResult is the structured answer to one query.
// Results are never persisted by the core.
type QueryResult struct {
	// Answer is the answer text.
	Answer string

	// Reasoning is the model's reasoning trace. Present only when the
	// effective show-thinking flag was true and the model produced one.
	Reasoning string

	// Source is the retrieval strategy that actually ran.
	Source SourceUsed

	// PatternID is set when a stored pattern answered the query.
	PatternID string

	// Documents lists the identifiers of library documents loaded into
	// context, in loader order. Empty for non-library sources.
	Documents []string

	// Elapsed is the wall-clock time spent handling the query.
	Elapsed time.Duration

	// Trace is the ordered list of states the query passed through.
	Trace []QueryState
}
