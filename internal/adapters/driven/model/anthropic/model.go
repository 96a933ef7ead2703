// Package anthropic provides a model backend adapter using the Anthropic API.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sage-labs/sage-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.ModelClient = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.anthropic.com"
	DefaultModel   = "claude-3-5-haiku-latest"
	DefaultTimeout = 120 * time.Second

	// anthropicVersion is the required API version header.
	anthropicVersion = "2023-06-01"

	// maxAnswerTokens bounds one answer.
	maxAnswerTokens = 4096

	// thinkingBudgetTokens is the reasoning budget when a trace is requested.
	thinkingBudgetTokens = 2048
)

// Config holds configuration for the Anthropic model client.
type Config struct {
	// APIKey is the Anthropic API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.anthropic.com).
	BaseURL string

	// Model is the model to use (default: claude-3-5-haiku-latest).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// Client answers queries using the Anthropic Messages API.
type Client struct {
	client      *http.Client
	baseURL     string
	apiKey      string
	model       string
	promptStore driven.PromptStore
}

// messagesRequest is the Anthropic /v1/messages request format.
type messagesRequest struct {
	Model     string            `json:"model"`
	Messages  []messagesMessage `json:"messages"`
	MaxTokens int               `json:"max_tokens"`
	System    string            `json:"system,omitempty"`
	Thinking  *thinkingConfig   `json:"thinking,omitempty"`
}

// thinkingConfig enables extended thinking.
type thinkingConfig struct {
	Type         string `json:"type"`
	BudgetTokens int    `json:"budget_tokens"`
}

// messagesMessage is the Anthropic message format.
type messagesMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesResponse is the Anthropic /v1/messages response format.
type messagesResponse struct {
	Content []struct {
		Type     string `json:"type"`
		Text     string `json:"text"`
		Thinking string `json:"thinking"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

// errorResponse is the Anthropic error envelope.
type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewClient creates a new Anthropic model client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// defaultAnswerSystemPrompt is the fallback when no PromptStore is configured.
const defaultAnswerSystemPrompt = `You are Sage, a focused question-answering assistant. Answer the user's question directly and concisely.`

// Answer submits the query and its assembled context.
func (c *Client) Answer(ctx context.Context, req driven.ModelRequest) (driven.ModelResponse, error) {
	system := c.loadPrompt(driven.PromptAnswerSystem, defaultAnswerSystemPrompt)

	var messages []messagesMessage
	if req.Context != "" {
		messages = append(messages, messagesMessage{Role: "user", Content: req.Context})
		messages = append(messages, messagesMessage{Role: "assistant", Content: "Understood. I will use this context."})
	}
	messages = append(messages, messagesMessage{Role: "user", Content: req.Query})

	reqBody := messagesRequest{
		Model:     c.model,
		Messages:  messages,
		MaxTokens: maxAnswerTokens,
		System:    system,
	}
	if req.ShowThinking {
		reqBody.Thinking = &thinkingConfig{
			Type:         "enabled",
			BudgetTokens: thinkingBudgetTokens,
		}
		// Thinking tokens count against max_tokens.
		reqBody.MaxTokens = maxAnswerTokens + thinkingBudgetTokens
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return driven.ModelResponse{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/v1/messages",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return driven.ModelResponse{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return driven.ModelResponse{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return driven.ModelResponse{}, parseError(resp)
	}

	var msgResp messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&msgResp); err != nil {
		return driven.ModelResponse{}, fmt.Errorf("decode response: %w", err)
	}

	var answer, reasoning strings.Builder
	for _, block := range msgResp.Content {
		switch block.Type {
		case "text":
			answer.WriteString(block.Text)
		case "thinking":
			reasoning.WriteString(block.Thinking)
		}
	}

	return driven.ModelResponse{
		Answer:    strings.TrimSpace(answer.String()),
		Reasoning: strings.TrimSpace(reasoning.String()),
	}, nil
}

// parseError extracts the API error message from a non-200 response.
func parseError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("anthropic error (status %d): failed to read response", resp.StatusCode)
	}

	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return fmt.Errorf("anthropic error (status %d): %s", resp.StatusCode, errResp.Error.Message)
	}
	return fmt.Errorf("anthropic error (status %d): %s", resp.StatusCode, string(body))
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func (c *Client) loadPrompt(name, fallback string) string {
	if c.promptStore == nil {
		return fallback
	}
	prompt, err := c.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}

// ModelName returns the name of the model being used.
func (c *Client) ModelName() string {
	return c.model
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (c *Client) SetPromptStore(store driven.PromptStore) {
	c.promptStore = store
}

// Ping validates the API key with a minimal request.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Answer(ctx, driven.ModelRequest{Query: "ping"})
	if err != nil {
		return fmt.Errorf("anthropic: ping failed: %w", err)
	}
	return nil
}

// Close releases resources.
func (c *Client) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
