package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/pagefeed/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
// It writes the built-in defaults to the global config file, or with --project
// to ./.pagefeed/config.yaml.
func NewConfigInitCmd() *cobra.Command {
	var (
		force   bool
		project bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Example: `  # Create $PAGEFEED_HOME/config.yaml (default ~/.pagefeed/config.yaml)
  pagefeed config init

  # Create a project overlay in the current directory
  pagefeed config init --project

  # Overwrite an existing file
  pagefeed config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := initTargetPath(project)
			if err != nil {
				return err
			}

			if !force {
				_, statErr := os.Stat(path)
				if statErr == nil {
					return errors.New("configuration file already exists, use --force to overwrite")
				}
				if !os.IsNotExist(statErr) {
					return fmt.Errorf("cannot access config path %s: %w", path, statErr)
				}
			}

			if err = config.Default().Save(path); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			cmd.Printf("Configuration initialized at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&project, "project", false, "write ./.pagefeed/config.yaml instead of the global file")

	return cmd
}

func initTargetPath(project bool) (string, error) {
	if !project {
		return config.DefaultConfigPath()
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return filepath.Join(cwd, ".pagefeed", "config.yaml"), nil
}

// NewConfigGetCmd creates the config get command.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one effective configuration value",
		Example: `  pagefeed config get api.page_size
  pagefeed config get view.reset_on_load`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			w := cmd.OutOrStdout()

			switch output {
			case "json":
				return renderJSON(w, cfg)
			case "yaml", "":
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("marshalling config: %w", err)
				}
				if p := cfg.Path(); p != "" {
					_, _ = fmt.Fprintf(w, "# source: %s\n", p)
				}
				_, err = w.Write(data)
				return err
			default:
				return fmt.Errorf("unsupported output format: %s (want yaml or json)", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format: yaml or json")

	return cmd
}
