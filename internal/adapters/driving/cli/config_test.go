package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCmd_HasSubcommands(t *testing.T) {
	commands := configCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "set")
	assert.Contains(t, commandNames, "path")
}

func TestParseConfigValue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want any
	}{
		{name: "integer", in: "25", want: int64(25)},
		{name: "negative integer", in: "-1", want: int64(-1)},
		{name: "boolean true", in: "true", want: true},
		{name: "boolean false", in: "false", want: false},
		{name: "string", in: "ollama", want: "ollama"},
		{name: "url stays string", in: "https://searx.example.org", want: "https://searx.example.org"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseConfigValue(tt.in))
		})
	}
}

func TestConfigCommands_SetAndGet(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := executeCommand(t, "config", "set", "model.provider", "ollama")
	require.NoError(t, err)
	assert.Contains(t, out, "Set model.provider")

	out, err = executeCommand(t, "config", "get", "model.provider")
	require.NoError(t, err)
	assert.Contains(t, out, "ollama")
}

func TestConfigGetCmd_UnknownKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := executeCommand(t, "config", "get", "no.such.key")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not set")
}

func TestConfigPathCmd(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	out, err := executeCommand(t, "config", "path")

	require.NoError(t, err)
	assert.Contains(t, out, ".sage")
	assert.Contains(t, out, "config.toml")
}
