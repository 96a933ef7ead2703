package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sage-labs/sage-cli/internal/core/domain"
	"github.com/sage-labs/sage-cli/internal/core/ports/driven"
	"github.com/sage-labs/sage-cli/internal/core/ports/driving"
	"github.com/sage-labs/sage-cli/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// Default context framing templates, used when no PromptStore is injected.
const (
	defaultLibraryContext = "The following documents come from the user's local library. Ground your answer in them and say so when they do not cover the question.\n\n%s"
	defaultSearchContext  = "The following are web search results. Ground your answer in them and note when they are insufficient.\n\n%s"
)

// usageTimeout bounds the background usage-count write.
const usageTimeout = 5 * time.Second

// QueryService routes one query at a time through pattern lookup and the
// persona's data source, then hands the assembled context to the model.
//
// The service keeps no state between queries; every Ask call works from
// the injected stores, so concurrent queries against the same or different
// domains never interfere.
type QueryService struct {
	domains     driven.DomainStore
	patterns    driven.PatternStore
	loader      driven.LibraryLoader
	model       driven.ModelClient
	searcher    driven.WebSearcher
	promptStore driven.PromptStore
}

// NewQueryService creates a new query service.
// The model and searcher parameters are optional (can be nil).
func NewQueryService(
	domains driven.DomainStore,
	patterns driven.PatternStore,
	loader driven.LibraryLoader,
	model driven.ModelClient,
	searcher driven.WebSearcher,
) *QueryService {
	return &QueryService{
		domains:  domains,
		patterns: patterns,
		loader:   loader,
		model:    model,
		searcher: searcher,
	}
}

// SetPromptStore sets the prompt store for customisable context framing.
func (s *QueryService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Ask handles a single query. See domain.QueryState for the states the
// query moves through; the result's Trace records the path taken.
func (s *QueryService) Ask(ctx context.Context, req domain.QueryRequest) (*domain.QueryResult, error) {
	logger.Section("Query Handling")
	logger.Debug("Query: %q, domain: %s", req.Text, req.DomainID)

	start := time.Now()

	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("%w: query text is empty", domain.ErrInvalidInput)
	}
	if s.domains == nil {
		return nil, domain.ErrNotImplemented
	}

	cfg, err := s.domains.Get(ctx, req.DomainID)
	if err != nil {
		return nil, fmt.Errorf("domain %q: %w", req.DomainID, err)
	}

	persona, err := cfg.ResolvePersona()
	if err != nil {
		return nil, fmt.Errorf("%w: domain %q references persona %q", domain.ErrConfiguration, cfg.ID, cfg.Persona)
	}

	result := &domain.QueryResult{
		Trace: []domain.QueryState{domain.StateStart},
	}

	searchPatterns := resolveFlag(req.SearchPatterns, cfg.PatternsEnabled)
	showThinking := resolveFlag(req.ShowThinking, persona.RevealReasoningDefault)
	logger.Debug("Effective flags: search_patterns=%t, show_thinking=%t", searchPatterns, showThinking)

	if searchPatterns {
		result.Trace = append(result.Trace, domain.StatePatternCheck)
		if hit := s.lookupPattern(ctx, cfg.ID, req.Text); hit != nil {
			logger.Info("Pattern hit: %s", hit.ID)
			result.Trace = append(result.Trace, domain.StatePatternHit, domain.StateDone)
			result.Answer = hit.Answer
			result.Source = domain.SourcePattern
			result.PatternID = hit.ID
			result.Elapsed = time.Since(start)
			s.recordUsage(hit.ID)
			return result, nil
		}
		logger.Debug("Pattern miss")
	}

	result.Trace = append(result.Trace, domain.StateFallback, domain.StateDispatch)

	contextText, err := s.dispatch(ctx, cfg, persona, req.Text, result)
	if err != nil {
		return nil, err
	}

	if s.model == nil {
		return nil, domain.ErrModelUnavailable
	}

	resp, err := s.model.Answer(ctx, driven.ModelRequest{
		Query:        req.Text,
		Context:      contextText,
		ShowThinking: showThinking,
	})
	if err != nil {
		return nil, fmt.Errorf("model invocation: %w", err)
	}

	result.Answer = resp.Answer
	if showThinking {
		result.Reasoning = resp.Reasoning
	}
	result.Trace = append(result.Trace, domain.StateDone)
	result.Elapsed = time.Since(start)
	logger.Info("Query answered from source %s in %s", result.Source, result.Elapsed)

	return result, nil
}

// lookupPattern finds the best matching pattern, or nil on a miss.
// Lookup never fails a query: a store error degrades to a miss.
func (s *QueryService) lookupPattern(ctx context.Context, domainID, query string) *domain.Pattern {
	if s.patterns == nil {
		return nil
	}
	patterns, err := s.patterns.ListByDomain(ctx, domainID)
	if err != nil {
		logger.Warn("Pattern lookup degraded to miss: %v", err)
		return nil
	}
	logger.Debug("Matching against %d patterns", len(patterns))
	return domain.BestMatch(patterns, query)
}

// dispatch performs retrieval for the persona's data source and returns the
// assembled context text. It sets the result's Source and Documents.
func (s *QueryService) dispatch(
	ctx context.Context,
	cfg *domain.DomainConfig,
	persona domain.Persona,
	query string,
	result *domain.QueryResult,
) (string, error) {
	switch persona.DataSource {
	case domain.DataSourceLibrary:
		return s.dispatchLibrary(ctx, cfg, result)

	case domain.DataSourceInternet:
		return s.dispatchInternet(ctx, query, result), nil

	case domain.DataSourceNone:
		result.Source = domain.SourceNone
		return "", nil

	default:
		return "", fmt.Errorf("%w: persona %q has data source %q", domain.ErrConfiguration, persona.Name, persona.DataSource)
	}
}

// dispatchLibrary loads the domain's library into context.
func (s *QueryService) dispatchLibrary(
	ctx context.Context, cfg *domain.DomainConfig, result *domain.QueryResult,
) (string, error) {
	if cfg.LibraryPath == "" {
		return "", fmt.Errorf("%w: domain %q has no library_path", domain.ErrConfiguration, cfg.ID)
	}
	if s.loader == nil {
		return "", domain.ErrNotImplemented
	}

	docs, err := s.loader.Load(ctx, cfg.LibraryPath)
	if err != nil {
		return "", fmt.Errorf("domain %q library: %w", cfg.ID, err)
	}

	result.Source = domain.SourceLibrary
	result.Documents = make([]string, len(docs))
	for i := range docs {
		result.Documents[i] = docs[i].ID
	}
	logger.Debug("Library context: %d documents", len(docs))

	// An empty library is a valid outcome, not a failure.
	if len(docs) == 0 {
		return "", nil
	}
	return s.frameContext(driven.PromptLibraryContext, defaultLibraryContext, renderDocuments(docs)), nil
}

// dispatchInternet fetches web search context. Search is best-effort:
// any failure degrades to an empty context instead of failing the query.
func (s *QueryService) dispatchInternet(
	ctx context.Context, query string, result *domain.QueryResult,
) string {
	if s.searcher == nil {
		logger.Warn("Web search unavailable: no searcher configured")
		result.Source = domain.SourceNone
		return ""
	}

	text, err := s.searcher.Search(ctx, query)
	if err != nil {
		logger.Warn("Web search degraded to empty context: %v", err)
		result.Source = domain.SourceNone
		return ""
	}

	result.Source = domain.SourceInternet
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return s.frameContext(driven.PromptSearchContext, defaultSearchContext, text)
}

// frameContext renders retrieved text through the named prompt template.
func (s *QueryService) frameContext(promptName, fallback, text string) string {
	template := fallback
	if s.promptStore != nil {
		if loaded, err := s.promptStore.Load(promptName); err == nil && loaded != "" {
			template = loaded
		}
	}
	return fmt.Sprintf(template, text)
}

// recordUsage bumps the pattern usage count off the hot query path.
func (s *QueryService) recordUsage(patternID string) {
	if s.patterns == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), usageTimeout)
		defer cancel()
		if err := s.patterns.IncrementUsage(ctx, patternID); err != nil {
			logger.Warn("Usage count update failed for pattern %s: %v", patternID, err)
		}
	}()
}

// renderDocuments concatenates loaded documents in loader order.
func renderDocuments(docs []domain.LibraryDocument) string {
	var b strings.Builder
	for i := range docs {
		b.WriteString("## ")
		b.WriteString(docs[i].ID)
		if docs[i].Truncated {
			b.WriteString(" (truncated)")
		}
		b.WriteString("\n")
		b.WriteString(docs[i].Content)
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// resolveFlag applies a per-query override on top of a configured default.
func resolveFlag(override *bool, fallback bool) bool {
	if override != nil {
		return *override
	}
	return fallback
}
