package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sage-labs/sage-cli/internal/core/domain"
)

var (
	patternAddDomain string
	patternAddID     string
	patternListJSON  bool
)

var patternCmd = &cobra.Command{
	Use:   "pattern",
	Short: "Manage stored patterns",
	Long: `Commands for managing a domain's stored patterns. A pattern pairs a
matcher with a canned answer; when a query contains the matcher, the
canned answer is returned without invoking the model.`,
}

var patternAddCmd = &cobra.Command{
	Use:   "add [matcher] [answer]",
	Short: "Add a pattern to a domain",
	Long: `Adds a matcher/answer pair to a domain.

Matching is case-insensitive substring containment. When several patterns
match one query, the longest matcher wins.

Examples:
  sage pattern add --domain physics "ohm's law" "V = IR"
  sage pattern add --domain support "reset password" "Visit the account page."`,
	Args: cobra.ExactArgs(2),
	RunE: runPatternAdd,
}

var patternListCmd = &cobra.Command{
	Use:   "list [domain-id]",
	Short: "List a domain's patterns",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatternList,
}

var patternRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a pattern",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatternRemove,
}

func init() {
	patternAddCmd.Flags().StringVarP(&patternAddDomain, "domain", "d", "", "domain to add the pattern to (required)")
	patternAddCmd.Flags().StringVar(&patternAddID, "id", "", "pattern ID (default: generated)")
	_ = patternAddCmd.MarkFlagRequired("domain")
	patternListCmd.Flags().BoolVar(&patternListJSON, "json", false, "output patterns as JSON")

	patternCmd.AddCommand(patternAddCmd)
	patternCmd.AddCommand(patternListCmd)
	patternCmd.AddCommand(patternRemoveCmd)
	rootCmd.AddCommand(patternCmd)
}

func runPatternAdd(cmd *cobra.Command, args []string) error {
	if patternService == nil {
		return errors.New("pattern service not configured")
	}

	id := patternAddID
	if id == "" {
		id = uuid.NewString()
	}

	pattern := domain.Pattern{
		ID:       id,
		DomainID: patternAddDomain,
		Match:    args[0],
		Answer:   args[1],
	}

	if err := patternService.Add(cmd.Context(), pattern); err != nil {
		return fmt.Errorf("adding pattern: %w", err)
	}

	cmd.Printf("Added pattern %s to domain %q\n", id, patternAddDomain)
	return nil
}

func runPatternList(cmd *cobra.Command, args []string) error {
	if patternService == nil {
		return errors.New("pattern service not configured")
	}

	patterns, err := patternService.List(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("listing patterns: %w", err)
	}

	if patternListJSON {
		data, err := json.MarshalIndent(patterns, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal patterns: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(patterns) == 0 {
		cmd.Println("No patterns in this domain.")
		return nil
	}

	cmd.Println("Patterns:")
	for _, p := range patterns {
		cmd.Printf("  %-38s %-30q used %d times\n", p.ID, p.Match, p.UsageCount)
	}
	return nil
}

func runPatternRemove(cmd *cobra.Command, args []string) error {
	if patternService == nil {
		return errors.New("pattern service not configured")
	}

	if err := patternService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("removing pattern: %w", err)
	}

	cmd.Printf("Removed pattern %s\n", args[0])
	return nil
}
