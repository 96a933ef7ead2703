package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExclusionRule_MatchesPath(t *testing.T) {
	rule := ExclusionRule(".env")

	assert.True(t, rule.MatchesPath("notes/.env"))
	assert.True(t, rule.MatchesPath(".env"))
	assert.True(t, rule.MatchesPath("config/.env.local"))
	assert.False(t, rule.MatchesPath("notes/environment.md"))
}

func TestExclusionRule_MatchesDirectoryName(t *testing.T) {
	rule := ExclusionRule("secrets/")

	assert.True(t, rule.MatchesPath("secrets/key.txt"))
	assert.True(t, rule.MatchesPath("vault/secrets/key.txt"))
	assert.False(t, rule.MatchesPath("secretstore.txt"))
}

func TestExclusionRule_CaseSensitive(t *testing.T) {
	rule := ExclusionRule(".ENV")

	assert.False(t, rule.MatchesPath("notes/.env"))
	assert.True(t, rule.MatchesPath("notes/.ENV"))
}

func TestExclusionRule_EmptyRuleMatchesNothing(t *testing.T) {
	rule := ExclusionRule("")
	assert.False(t, rule.MatchesPath("anything.txt"))
}

func TestIsExcluded(t *testing.T) {
	rules := []ExclusionRule{".env", "id_rsa"}

	assert.True(t, IsExcluded("home/.env", rules))
	assert.True(t, IsExcluded("home/.ssh/id_rsa", rules))
	assert.False(t, IsExcluded("home/notes.md", rules))
}

func TestIsExcluded_NoRules(t *testing.T) {
	assert.False(t, IsExcluded("anything.txt", nil))
}

func TestIsExcluded_EmptyPathAlwaysExcluded(t *testing.T) {
	// A path that cannot be attributed to a file is excluded, not included.
	assert.True(t, IsExcluded("", nil))
	assert.True(t, IsExcluded("", []ExclusionRule{".env"}))
}

func TestDefaultExclusionRules_BlockCredentialFiles(t *testing.T) {
	rules := DefaultExclusionRules()

	assert.True(t, IsExcluded("project/.env", rules))
	assert.True(t, IsExcluded(".ssh/id_rsa", rules))
	assert.True(t, IsExcluded("deploy/server.pem", rules))
	assert.True(t, IsExcluded(".git/config", rules))
	assert.False(t, IsExcluded("docs/readme.md", rules))
}
