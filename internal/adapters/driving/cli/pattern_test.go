package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternCmd_Use(t *testing.T) {
	assert.Equal(t, "pattern", patternCmd.Use)
}

func TestPatternCmd_HasSubcommands(t *testing.T) {
	commands := patternCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "add")
	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "remove")
}

func TestPatternAddCmd_RequiresDomainFlag(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := executeCommand(t, "pattern", "add", "ohm", "V = IR")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "domain")
}

func TestPatternCommands_Lifecycle(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() { patternAddID = "" })

	_, err := executeCommand(t, "domain", "add", "Physics", "--persona", "tutor")
	require.NoError(t, err)

	out, err := executeCommand(t, "pattern", "add", "--domain", "physics", "--id", "p1", "ohm's law", "V = IR")
	require.NoError(t, err)
	assert.Contains(t, out, `Added pattern p1 to domain "physics"`)

	out, err = executeCommand(t, "pattern", "list", "physics")
	require.NoError(t, err)
	assert.Contains(t, out, "p1")
	assert.Contains(t, out, "ohm's law")

	// A matching query answers from the pattern with no model wired.
	out, err = executeCommand(t, "ask", "--domain", "physics", "what is ohm's law")
	require.NoError(t, err)
	assert.Contains(t, out, "V = IR")
	assert.Contains(t, out, "(pattern p1)")

	out, err = executeCommand(t, "pattern", "remove", "p1")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed pattern p1")

	out, err = executeCommand(t, "pattern", "list", "physics")
	require.NoError(t, err)
	assert.Contains(t, out, "No patterns in this domain.")
}

func TestPatternAddCmd_UnknownDomain(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := executeCommand(t, "pattern", "add", "--domain", "ghost", "ohm", "V = IR")

	assert.Error(t, err)
}
