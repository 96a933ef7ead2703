package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sage-labs/sage-cli/internal/core/domain"
)

var (
	domainAddID          string
	domainAddPersona     string
	domainAddLibraryPath string
	domainAddNoPatterns  bool
	domainListJSON       bool
)

var domainCmd = &cobra.Command{
	Use:   "domain",
	Short: "Manage domains",
	Long: `Commands for managing domains. A domain scopes queries to a persona
and an optional library path, and owns its stored patterns.`,
}

var domainAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new domain",
	Long: `Creates a domain with the given display name.

The persona decides the fallback data source when no pattern matches:
  tutor      - answers from the model alone
  librarian  - loads documents from a local library directory
  researcher - retrieves web search results

Examples:
  sage domain add "Physics" --persona librarian --library ~/notes/physics
  sage domain add "General" --persona tutor`,
	Args: cobra.ExactArgs(1),
	RunE: runDomainAdd,
}

var domainListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured domains",
	RunE:  runDomainList,
}

var domainShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one domain in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runDomainShow,
}

var domainRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a domain and its patterns",
	Args:  cobra.ExactArgs(1),
	RunE:  runDomainRemove,
}

func init() {
	domainAddCmd.Flags().StringVar(&domainAddID, "id", "", "domain ID (default: derived from name)")
	domainAddCmd.Flags().StringVarP(&domainAddPersona, "persona", "p", "tutor", "persona: tutor, librarian or researcher")
	domainAddCmd.Flags().StringVarP(&domainAddLibraryPath, "library", "l", "", "library directory (required for librarian)")
	domainAddCmd.Flags().BoolVar(&domainAddNoPatterns, "no-patterns", false, "disable pattern search by default")
	domainListCmd.Flags().BoolVar(&domainListJSON, "json", false, "output domains as JSON")

	domainCmd.AddCommand(domainAddCmd)
	domainCmd.AddCommand(domainListCmd)
	domainCmd.AddCommand(domainShowCmd)
	domainCmd.AddCommand(domainRemoveCmd)
	rootCmd.AddCommand(domainCmd)
}

// deriveDomainID turns a display name into a stable, readable ID.
// Falls back to a UUID when the name yields nothing usable.
func deriveDomainID(name string) string {
	id := strings.ToLower(strings.TrimSpace(name))
	id = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, id)
	id = strings.Trim(id, "-")
	if id == "" {
		return uuid.NewString()
	}
	return id
}

func runDomainAdd(cmd *cobra.Command, args []string) error {
	if domainService == nil {
		return errors.New("domain service not configured")
	}

	id := domainAddID
	if id == "" {
		id = deriveDomainID(args[0])
	}

	cfg := domain.DomainConfig{
		ID:              id,
		Name:            args[0],
		Persona:         domainAddPersona,
		LibraryPath:     domainAddLibraryPath,
		PatternsEnabled: !domainAddNoPatterns,
	}

	if err := domainService.Add(cmd.Context(), cfg); err != nil {
		return fmt.Errorf("adding domain: %w", err)
	}

	cmd.Printf("Added domain %q (persona: %s)\n", id, domainAddPersona)
	return nil
}

func runDomainList(cmd *cobra.Command, _ []string) error {
	if domainService == nil {
		return errors.New("domain service not configured")
	}

	domains, err := domainService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing domains: %w", err)
	}

	if domainListJSON {
		data, err := json.MarshalIndent(domains, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal domains: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(domains) == 0 {
		cmd.Println("No domains configured. Add one with 'sage domain add'.")
		return nil
	}

	cmd.Println("Domains:")
	for _, d := range domains {
		patterns := "patterns on"
		if !d.PatternsEnabled {
			patterns = "patterns off"
		}
		cmd.Printf("  %-20s %-12s %s (%s)\n", d.ID, d.Persona, d.Name, patterns)
	}
	return nil
}

func runDomainShow(cmd *cobra.Command, args []string) error {
	if domainService == nil {
		return errors.New("domain service not configured")
	}

	d, err := domainService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("getting domain: %w", err)
	}

	persona, err := d.ResolvePersona()
	if err != nil {
		return err
	}

	cmd.Printf("ID:        %s\n", d.ID)
	cmd.Printf("Name:      %s\n", d.Name)
	cmd.Printf("Persona:   %s (%s)\n", persona.Name, persona.DataSource.Description())
	if d.LibraryPath != "" {
		cmd.Printf("Library:   %s\n", d.LibraryPath)
	}
	cmd.Printf("Patterns:  %v\n", d.PatternsEnabled)
	cmd.Printf("Created:   %s\n", d.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func runDomainRemove(cmd *cobra.Command, args []string) error {
	if domainService == nil {
		return errors.New("domain service not configured")
	}

	if err := domainService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("removing domain: %w", err)
	}

	cmd.Printf("Removed domain %q\n", args[0])
	return nil
}
