// Package searxng provides a web search adapter backed by a SearXNG instance.
//
// SearXNG is a self-hosted metasearch engine with a keyless JSON API, which
// keeps web retrieval free of per-provider API credentials. Results are
// flattened into a plain text context block for the model backend.
package searxng

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/sage-labs/sage-cli/internal/core/domain"
	"github.com/sage-labs/sage-cli/internal/core/ports/driven"
)

// Ensure Searcher implements the interface.
var _ driven.WebSearcher = (*Searcher)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "http://localhost:8888"
	DefaultTimeout    = 15 * time.Second
	DefaultMaxResults = 5

	// Public instances throttle aggressively; stay well under their limits.
	requestsPerSecond = 1.0
	burstSize         = 3
)

// Config holds configuration for the SearXNG searcher.
type Config struct {
	// BaseURL is the SearXNG instance URL (default: http://localhost:8888).
	BaseURL string

	// MaxResults caps how many results feed the context (default: 5).
	MaxResults int

	// Timeout is the request timeout (default: 15s).
	Timeout time.Duration
}

// Searcher retrieves web context from a SearXNG instance.
type Searcher struct {
	client     *http.Client
	limiter    *rate.Limiter
	baseURL    string
	maxResults int
}

// searchResponse is the SearXNG /search JSON response format.
type searchResponse struct {
	Results []searchResult `json:"results"`
}

// searchResult is one SearXNG result entry.
type searchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
	Engine  string `json:"engine"`
}

// NewSearcher creates a new SearXNG searcher.
func NewSearcher(cfg Config) *Searcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Searcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		maxResults: cfg.MaxResults,
	}
}

// Search returns a plain text context block for the query.
func (s *Searcher) Search(ctx context.Context, query string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		s.baseURL+"/search?"+params.Encode(),
		http.NoBody,
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSearchUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("%w: status %d", domain.ErrSearchUnavailable, resp.StatusCode)
		}
		return "", fmt.Errorf("%w: status %d: %s", domain.ErrSearchUnavailable, resp.StatusCode, string(body))
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return renderResults(searchResp.Results, s.maxResults), nil
}

// renderResults flattens results into the text block handed to the model.
// An empty result set renders as an empty string, which callers treat as
// no retrieved context.
func renderResults(results []searchResult, limit int) string {
	if len(results) > limit {
		results = results[:limit]
	}

	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "## %s\n%s", r.Title, r.URL)
		if r.Content != "" {
			b.WriteString("\n")
			b.WriteString(r.Content)
		}
	}
	return b.String()
}

// Close releases resources.
func (s *Searcher) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
