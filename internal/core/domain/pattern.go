package domain

import (
	"strings"
	"time"
)

// Pattern is a pre-authored matcher/answer pair. When a query matches a
// pattern, the canned answer is authoritative: the model is never invoked
// to re-derive it.
type Pattern struct {
	// ID is the unique pattern identifier within a domain.
	ID string

	// DomainID links to the DomainConfig this pattern belongs to.
	DomainID string

	// Match is the matcher text. A pattern matches a query when the
	// normalised matcher occurs as a substring of the normalised query.
	Match string

	// Answer is the canned answer returned on a match.
	Answer string

	// UsageCount is how many times this pattern has answered a query.
	// Updated outside the hot query path.
	UsageCount int

	// CreatedAt is when the pattern was authored.
	CreatedAt time.Time
}

// NormalizeQuery folds a query into the canonical form used for pattern
// matching: surrounding whitespace trimmed, case folded.
func NormalizeQuery(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Matches reports whether this pattern matches the already-normalised query.
// Patterns with an empty matcher never match.
func (p *Pattern) Matches(normalizedQuery string) bool {
	matcher := NormalizeQuery(p.Match)
	if matcher == "" {
		return false
	}
	return strings.Contains(normalizedQuery, matcher)
}

// BestMatch selects the winning pattern for a query, or nil on a miss.
// The nil return is the explicit no-match signal; it is distinct from a
// matched pattern whose canned answer happens to be empty.
//
// Policy: the longest matcher wins (most specific), ties broken by the
// lexicographically smallest pattern ID. Evaluation is deterministic and
// independent of the order patterns are supplied in.
func BestMatch(patterns []Pattern, query string) *Pattern {
	normalized := NormalizeQuery(query)
	if normalized == "" {
		return nil
	}

	var best *Pattern
	bestLen := -1
	for i := range patterns {
		p := &patterns[i]
		if !p.Matches(normalized) {
			continue
		}
		matchLen := len(NormalizeQuery(p.Match))
		switch {
		case matchLen > bestLen:
			best = p
			bestLen = matchLen
		case matchLen == bestLen && best != nil && p.ID < best.ID:
			best = p
		}
	}
	return best
}
