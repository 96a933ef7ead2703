package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sage-labs/sage-cli/internal/core/domain"
)

var (
	askDomain     string
	askPatterns   bool
	askNoPatterns bool
	askThinking   bool
	askNoThinking bool
	askJSON       bool
)

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Ask a question within a domain",
	Long: `Routes a natural-language query through the domain's stored patterns
and, on a miss, its persona's data source (none, library or internet),
then hands the retrieved context to the model backend.

Examples:
  sage ask --domain physics "what is ohm's law"
  sage ask --domain physics --no-patterns "what is ohm's law"
  sage ask --domain research --thinking --json "compare raft and paxos"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askDomain, "domain", "d", "", "domain to ask within (required)")
	askCmd.Flags().BoolVar(&askPatterns, "patterns", false, "force pattern search on for this query")
	askCmd.Flags().BoolVar(&askNoPatterns, "no-patterns", false, "force pattern search off for this query")
	askCmd.Flags().BoolVar(&askThinking, "thinking", false, "include the model's reasoning trace")
	askCmd.Flags().BoolVar(&askNoThinking, "no-thinking", false, "suppress the reasoning trace")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the full result as JSON")
	_ = askCmd.MarkFlagRequired("domain")
	askCmd.MarkFlagsMutuallyExclusive("patterns", "no-patterns")
	askCmd.MarkFlagsMutuallyExclusive("thinking", "no-thinking")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	req := domain.QueryRequest{
		Text:           args[0],
		DomainID:       askDomain,
		SearchPatterns: flagOverride(askPatterns, askNoPatterns),
		ShowThinking:   flagOverride(askThinking, askNoThinking),
	}

	result, err := queryService.Ask(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return outputAskJSON(cmd, result)
	}
	return outputAskText(cmd, result)
}

// flagOverride folds a pair of on/off flags into the tri-state override:
// nil means use the domain default.
func flagOverride(on, off bool) *bool {
	switch {
	case on:
		v := true
		return &v
	case off:
		v := false
		return &v
	default:
		return nil
	}
}

// askJSONResult is the stable JSON shape of one answered query.
type askJSONResult struct {
	Answer    string   `json:"answer"`
	Reasoning string   `json:"reasoning,omitempty"`
	Source    string   `json:"source_used"`
	PatternID string   `json:"pattern_id,omitempty"`
	Documents []string `json:"documents,omitempty"`
	Trace     []string `json:"trace"`
	ElapsedMS int64    `json:"elapsed_ms"`
}

func outputAskJSON(cmd *cobra.Command, result *domain.QueryResult) error {
	out := askJSONResult{
		Answer:    result.Answer,
		Reasoning: result.Reasoning,
		Source:    string(result.Source),
		PatternID: result.PatternID,
		ElapsedMS: result.Elapsed.Milliseconds(),
	}
	out.Documents = append(out.Documents, result.Documents...)
	for _, state := range result.Trace {
		out.Trace = append(out.Trace, string(state))
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAskText(cmd *cobra.Command, result *domain.QueryResult) error {
	if result.Reasoning != "" {
		cmd.Println("Reasoning:")
		cmd.Println(result.Reasoning)
		cmd.Println()
	}

	cmd.Println(result.Answer)

	switch result.Source {
	case domain.SourcePattern:
		cmd.Println()
		cmd.Printf("(pattern %s)\n", result.PatternID)
	case domain.SourceLibrary:
		cmd.Println()
		cmd.Printf("(%d library documents)\n", len(result.Documents))
	}

	return nil
}
