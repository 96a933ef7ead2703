package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sage-labs/sage-cli/internal/core/domain"
)

var exclusionsCmd = &cobra.Command{
	Use:   "exclusions",
	Short: "Manage library exclusion rules",
	Long: `Commands for the security exclusion rules applied during library loading.

A file whose path or name contains any rule is never loaded into model
context. Rules live in a plain text document (one rule per line) and are
re-read on every query, so edits take effect immediately.`,
}

var exclusionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active exclusion rules",
	RunE:  runExclusionsList,
}

var exclusionsAddCmd = &cobra.Command{
	Use:   "add [rule]",
	Short: "Add an exclusion rule",
	Args:  cobra.ExactArgs(1),
	RunE:  runExclusionsAdd,
}

func init() {
	exclusionsCmd.AddCommand(exclusionsListCmd)
	exclusionsCmd.AddCommand(exclusionsAddCmd)
	rootCmd.AddCommand(exclusionsCmd)
}

func runExclusionsList(cmd *cobra.Command, _ []string) error {
	if exclusionRules == nil {
		return errors.New("exclusion rules not configured")
	}

	rules, err := exclusionRules.Rules(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading exclusion rules: %w", err)
	}

	if len(rules) == 0 {
		cmd.Println("No exclusion rules. Library loads are unfiltered.")
		return nil
	}

	cmd.Println("Exclusion rules:")
	for _, rule := range rules {
		cmd.Printf("  %s\n", rule)
	}
	return nil
}

func runExclusionsAdd(cmd *cobra.Command, args []string) error {
	if exclusionRules == nil {
		return errors.New("exclusion rules not configured")
	}

	rule := domain.ExclusionRule(args[0])
	if err := exclusionRules.Append(rule); err != nil {
		return fmt.Errorf("adding exclusion rule: %w", err)
	}

	cmd.Printf("Added exclusion rule %q\n", rule)
	return nil
}
