package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/pagefeed/internal/config"
	"github.com/rshade/pagefeed/internal/logging"
)

// annotationOwnsTerminal marks commands that take over the terminal. Their
// logs go to the configured file or nowhere.
const annotationOwnsTerminal = "pagefeed/owns-terminal"

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger = zerolog.Nop() //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the pagefeed CLI.
// It resolves configuration, wires up logging and tracing, and registers
// the browse, fetch, list and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "pagefeed",
		Short:         "Browse a paginated JSON collection",
		Long:          "pagefeed: fetch, filter and sort a paginated item collection, with an infinite-scroll terminal view",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			config.SetGlobalConfig(cfg)

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("base-url", "", "collection endpoint (overrides config and PAGEFEED_BASE_URL)")
	cmd.PersistentFlags().Int("page-size", 0, "items per page (overrides config and PAGEFEED_PAGE_SIZE)")
	cmd.PersistentFlags().String("config", "", "path to a config file (default $PAGEFEED_HOME/config.yaml)")
	cmd.PersistentFlags().String("project-dir", "", "directory holding a .pagefeed/config.yaml overlay")

	cmd.AddCommand(NewBrowseCmd(), NewFetchCmd(), NewListCmd(), newConfigCmd())

	return cmd
}

// resolveConfig loads --config or the global config plus project overlay,
// then applies flag overrides.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		flagDir, _ := cmd.Flags().GetString("project-dir")
		cwd, _ := os.Getwd()
		cfg = config.NewWithProjectDir(cmd.Context(), config.ResolveProjectDir(cmd.Context(), flagDir, cwd))
	}

	if cmd.Flags().Changed("base-url") {
		cfg.API.BaseURL, _ = cmd.Flags().GetString("base-url")
	}
	if cmd.Flags().Changed("page-size") {
		cfg.API.PageSize, _ = cmd.Flags().GetInt("page-size")
	}
	return cfg, nil
}

const rootCmdExample = `  # Browse the default collection interactively
  pagefeed browse

  # Browse another endpoint with larger pages
  pagefeed browse --base-url http://localhost:3000/items --page-size 50

  # Fetch a single page as JSON
  pagefeed fetch --page 2 --limit 5 --output json

  # Load everything, keep titles containing "qui", newest id first
  pagefeed list --filter qui --sort desc

  # Write the default configuration
  pagefeed config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigGetCmd(), NewConfigShowCmd())
	return cmd
}
