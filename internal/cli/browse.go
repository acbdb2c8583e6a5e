package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/pagefeed/internal/config"
	"github.com/rshade/pagefeed/internal/logging"
	"github.com/rshade/pagefeed/internal/tui"
)

// NewBrowseCmd creates the interactive browse command.
func NewBrowseCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the collection with infinite scroll",
		Long: `Opens a full-screen list that loads the next page whenever the selection nears
the bottom. Press / to filter by title, s to toggle the id sort, r to retry a
failed load and q to quit.

When stdout is not a terminal the first pages are printed as a table instead.`,
		Annotations: map[string]string{annotationOwnsTerminal: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := config.GetGlobalConfig()

			mode := tui.DetectOutputMode(plain, false, false)
			if mode != tui.OutputModeInteractive {
				logging.FromContext(ctx).Debug().Ctx(ctx).
					Str("mode", mode.String()).
					Msg("stdout is not interactive, printing a table")
				return runList(ctx, cmd.OutOrStdout(), cfg, listOptions{
					maxPages: defaultMaxPages,
					format:   OutputTable,
				})
			}

			client, err := newClient(ctx, cfg)
			if err != nil {
				return err
			}
			ctrl, err := newController(ctx, client, cfg)
			if err != nil {
				return err
			}

			return runProgram(ctx, tui.NewBrowseModel(ctx, ctrl, client.BaseURL()), tea.WithAltScreen())
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print a table instead of opening the interactive view")

	return cmd
}

// runProgram runs a Bubble Tea program until it quits or ctx is cancelled.
// Cancellation asks the program to quit so the terminal is restored.
func runProgram(ctx context.Context, model tea.Model, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(model, opts...)
	done := make(chan struct{})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(done)
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
			p.Quit()
		case <-done:
		}
		return nil
	})

	return g.Wait()
}
