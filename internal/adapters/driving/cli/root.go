// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	configfile "github.com/sage-labs/sage-cli/internal/adapters/driven/config/file"
	"github.com/sage-labs/sage-cli/internal/adapters/driven/model"
	"github.com/sage-labs/sage-cli/internal/adapters/driven/storage/memory"
	"github.com/sage-labs/sage-cli/internal/adapters/driven/storage/sqlite"
	"github.com/sage-labs/sage-cli/internal/adapters/driven/websearch/searxng"
	"github.com/sage-labs/sage-cli/internal/core/ports/driven"
	"github.com/sage-labs/sage-cli/internal/core/ports/driving"
	"github.com/sage-labs/sage-cli/internal/core/services"
	"github.com/sage-labs/sage-cli/internal/library"
	"github.com/sage-labs/sage-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Shared services, wired once per invocation in initServices.
var (
	configStore    driven.ConfigStore
	promptStore    driven.PromptStore
	queryService   driving.QueryService
	domainService  driving.DomainService
	patternService driving.PatternService

	exclusionRules *library.FileRules
	modelClient    driven.ModelClient
	webSearcher    driven.WebSearcher
	sqliteStore    *sqlite.Store

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "sage",
	Short: "Sage is a query routing and retrieval CLI",
	Long: `Sage answers natural-language queries scoped to a domain.

Each domain carries a persona that decides where answers come from:
canned pattern answers, a local document library, or web search. The
retrieved context is handed to a configurable model backend.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		// Help and completion never need wired services.
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}
		return initServices()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		closeServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging to stderr")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeServices()
		os.Exit(1)
	}
}

// initServices wires stores, adapters and core services from configuration.
// Missing optional backends degrade: no model means pattern answers only,
// no searcher means internet personas answer without retrieved context.
func initServices() error {
	var err error
	configStore, err = configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	promptStore, err = configfile.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("opening prompt store: %w", err)
	}

	domainStore, patternStore, err := openStorage()
	if err != nil {
		return err
	}

	rules, err := openExclusionRules()
	if err != nil {
		return fmt.Errorf("opening exclusion rules: %w", err)
	}
	exclusionRules = rules

	loader := library.NewLoader(rules, library.Config{
		MaxDocuments:     configStore.GetInt(driven.ConfigKeyMaxDocuments),
		MaxDocumentChars: configStore.GetInt(driven.ConfigKeyMaxDocumentChars),
	})

	modelClient, err = model.CreateClient(&model.Settings{
		Provider:    configStore.GetString(driven.ConfigKeyModelProvider),
		BaseURL:     configStore.GetString(driven.ConfigKeyModelBaseURL),
		Model:       configStore.GetString(driven.ConfigKeyModelName),
		APIKey:      configStore.GetString(driven.ConfigKeyModelAPIKey),
		PromptStore: promptStore,
	})
	if err != nil {
		logger.Warn("Model backend unavailable: %v", err)
		modelClient = nil
	}

	if baseURL := configStore.GetString(driven.ConfigKeySearchBaseURL); baseURL != "" {
		webSearcher = searxng.NewSearcher(searxng.Config{BaseURL: baseURL})
	}

	qs := services.NewQueryService(domainStore, patternStore, loader, modelClient, webSearcher)
	qs.SetPromptStore(promptStore)
	queryService = qs
	domainService = services.NewDomainService(domainStore, patternStore)
	patternService = services.NewPatternService(patternStore, domainStore)

	return nil
}

// openStorage opens the configured storage backend.
// "memory" is for throwaway sessions and tests; everything else is SQLite.
func openStorage() (driven.DomainStore, driven.PatternStore, error) {
	if configStore.GetString(driven.ConfigKeyStorageBackend) == "memory" {
		return memory.NewDomainStore(), memory.NewPatternStore(), nil
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return nil, nil, fmt.Errorf("opening storage: %w", err)
	}
	sqliteStore = store
	return store.DomainStore(), store.PatternStore(), nil
}

// openExclusionRules locates the exclusion rule document, seeding it with
// the built-in rules when absent.
func openExclusionRules() (*library.FileRules, error) {
	path := configStore.GetString(driven.ConfigKeyExclusionsFile)
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".sage", "exclusions")
	}

	if err := library.WriteDefaultRules(path); err != nil {
		return nil, fmt.Errorf("seeding default rules: %w", err)
	}

	rules := library.NewFileRules(path)
	if err := rules.Watch(); err != nil {
		// Without a watcher the document is re-read per load instead.
		logger.Warn("Exclusion rule watcher unavailable: %v", err)
	}
	return rules, nil
}

// closeServices releases wired resources. Safe to call more than once.
func closeServices() {
	if modelClient != nil {
		modelClient.Close()
		modelClient = nil
	}
	if webSearcher != nil {
		webSearcher.Close()
		webSearcher = nil
	}
	if exclusionRules != nil {
		exclusionRules.Close()
		exclusionRules = nil
	}
	if sqliteStore != nil {
		sqliteStore.Close()
		sqliteStore = nil
	}
}
