package anthropic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient(Config{APIKey: "test-key"})
	require.NoError(t, err)

	assert.Equal(t, DefaultModel, client.ModelName())
	assert.Equal(t, DefaultBaseURL, client.baseURL)
}

func TestNewClient_CustomConfig(t *testing.T) {
	client, err := NewClient(Config{
		APIKey:  "test-key",
		BaseURL: "https://proxy.internal",
		Model:   "claude-sonnet-4-5",
	})
	require.NoError(t, err)

	assert.Equal(t, "claude-sonnet-4-5", client.ModelName())
	assert.Equal(t, "https://proxy.internal", client.baseURL)
}
