package domain

import (
	"path"
	"strings"
)

// ExclusionRule is a single line from the exclusion rule document: a
// case-sensitive substring that blocks matching files from being loaded
// into context. Rules are a security control, so matching errs on the
// side of excluding.
type ExclusionRule string

// MatchesPath reports whether this rule excludes the given path.
// The rule may target a directory name anywhere in the path or the
// filename itself, so both the full path and its final segment are checked.
func (r ExclusionRule) MatchesPath(p string) bool {
	rule := string(r)
	if rule == "" {
		return false
	}
	return strings.Contains(p, rule) || strings.Contains(path.Base(p), rule)
}

// IsExcluded reports whether any rule excludes the given path.
// An empty path cannot be attributed to a file and is always excluded.
func IsExcluded(p string, rules []ExclusionRule) bool {
	if p == "" {
		return true
	}
	for _, rule := range rules {
		if rule.MatchesPath(p) {
			return true
		}
	}
	return false
}

// DefaultExclusionRules are the rules seeded into a fresh exclusion
// document. They block the usual credential and VCS files.
func DefaultExclusionRules() []ExclusionRule {
	return []ExclusionRule{
		".env",
		".git/",
		".ssh/",
		".pem",
		"id_rsa",
		"credentials",
	}
}
