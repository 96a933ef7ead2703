// Package model provides factory functions for creating model backend adapters.
package model

import (
	"context"
	"fmt"
	"time"

	"github.com/sage-labs/sage-cli/internal/adapters/driven/model/anthropic"
	"github.com/sage-labs/sage-cli/internal/adapters/driven/model/ollama"
	"github.com/sage-labs/sage-cli/internal/core/domain"
	"github.com/sage-labs/sage-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for backend connectivity validation.
const pingTimeout = 5 * time.Second

// Supported providers.
const (
	ProviderOllama    = "ollama"
	ProviderAnthropic = "anthropic"
)

// Settings selects and configures a model backend.
type Settings struct {
	// Provider names the backend ("ollama", "anthropic").
	// Empty means no model backend is configured.
	Provider string

	// BaseURL overrides the backend base URL.
	BaseURL string

	// Model selects the model. Empty uses the provider default.
	Model string

	// APIKey authenticates hosted providers.
	APIKey string

	// PromptStore supplies customisable prompt templates. Optional.
	PromptStore driven.PromptStore
}

// IsConfigured reports whether a backend is selected.
func (s *Settings) IsConfigured() bool {
	return s != nil && s.Provider != ""
}

// CreateClient creates a model client for the configured provider.
// Returns nil (no error) when no provider is configured.
func CreateClient(settings *Settings) (driven.ModelClient, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case ProviderOllama:
		client := ollama.NewClient(ollama.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
		if settings.PromptStore != nil {
			client.SetPromptStore(settings.PromptStore)
		}
		return client, nil

	case ProviderAnthropic:
		client, err := anthropic.NewClient(anthropic.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
		if err != nil {
			return nil, err
		}
		if settings.PromptStore != nil {
			client.SetPromptStore(settings.PromptStore)
		}
		return client, nil

	default:
		return nil, fmt.Errorf("%w: unknown model provider %q", domain.ErrConfiguration, settings.Provider)
	}
}

// CreateAndValidateClient creates a model client and validates connectivity.
// Returns the client if successful, or an error with guidance.
func CreateAndValidateClient(settings *Settings) (driven.ModelClient, error) {
	client, err := CreateClient(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'sage config set model.provider' to fix",
			domain.ErrModelUnavailable, err)
	}
	if client == nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: backend unreachable (%w)", domain.ErrModelUnavailable, err)
	}

	return client, nil
}
