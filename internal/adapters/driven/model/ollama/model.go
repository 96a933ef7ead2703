// Package ollama provides a model backend adapter using Ollama.
package ollama

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
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "llama3.2"
	DefaultTimeout = 120 * time.Second
)

// Config holds configuration for the Ollama model client.
type Config struct {
	// BaseURL is the Ollama API base URL (default: http://localhost:11434).
	BaseURL string

	// Model is the model to use (default: llama3.2).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// Client answers queries using a local Ollama instance.
type Client struct {
	client      *http.Client
	baseURL     string
	model       string
	promptStore driven.PromptStore
}

// chatRequest is the Ollama /api/chat request format.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Think    bool          `json:"think,omitempty"`
}

// chatMessage is the Ollama chat message format.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the Ollama /api/chat response format.
type chatResponse struct {
	Message struct {
		Role     string `json:"role"`
		Content  string `json:"content"`
		Thinking string `json:"thinking"`
	} `json:"message"`
	Done bool `json:"done"`
}

// NewClient creates a new Ollama model client.
func NewClient(cfg Config) *Client {
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
		model:   cfg.Model,
	}
}

// defaultAnswerSystemPrompt is the fallback when no PromptStore is configured.
const defaultAnswerSystemPrompt = `You are Sage, a focused question-answering assistant. Answer the user's question directly and concisely.`

// Answer submits the query and its assembled context.
func (c *Client) Answer(ctx context.Context, req driven.ModelRequest) (driven.ModelResponse, error) {
	system := c.loadPrompt(driven.PromptAnswerSystem, defaultAnswerSystemPrompt)

	messages := []chatMessage{{Role: "system", Content: system}}
	if req.Context != "" {
		messages = append(messages, chatMessage{Role: "user", Content: req.Context})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Query})

	reqBody := chatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
		Think:    req.ShowThinking,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return driven.ModelResponse{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/api/chat",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return driven.ModelResponse{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return driven.ModelResponse{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return driven.ModelResponse{}, fmt.Errorf("ollama error (status %d): failed to read response", resp.StatusCode)
		}
		return driven.ModelResponse{}, fmt.Errorf("ollama error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return driven.ModelResponse{}, fmt.Errorf("decode response: %w", err)
	}

	answer, reasoning := splitThinking(chatResp.Message.Content)
	if chatResp.Message.Thinking != "" {
		reasoning = chatResp.Message.Thinking
	}

	return driven.ModelResponse{
		Answer:    strings.TrimSpace(answer),
		Reasoning: strings.TrimSpace(reasoning),
	}, nil
}

// splitThinking separates an inline <think>...</think> block from the answer.
// Reasoning models emit one when the think option is not honoured server-side.
func splitThinking(content string) (answer, reasoning string) {
	start := strings.Index(content, "<think>")
	if start == -1 {
		return content, ""
	}
	end := strings.Index(content, "</think>")
	if end == -1 || end < start {
		return content, ""
	}
	reasoning = content[start+len("<think>") : end]
	answer = content[:start] + content[end+len("</think>"):]
	return answer, reasoning
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
// If not set, the client uses hardcoded default prompts.
func (c *Client) SetPromptStore(store driven.PromptStore) {
	c.promptStore = store
}

// Ping validates the service is reachable by checking the /api/tags endpoint.
// This is a lightweight check that validates connectivity without running inference.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", http.NoBody)
	if err != nil {
		return fmt.Errorf("ollama: failed to create ping request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("ollama: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("ollama: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Close releases resources.
func (c *Client) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
