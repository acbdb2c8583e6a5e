package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/pagefeed/internal/config"
	"github.com/rshade/pagefeed/internal/logging"
	"github.com/rshade/pagefeed/internal/pagination"
)

// NewFetchCmd creates the fetch command, which requests exactly one page.
func NewFetchCmd() *cobra.Command {
	var (
		page   int
		limit  int
		output string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch a single page from the collection",
		Long: `Requests one page with GET <base-url>?page=N&limit=M and prints the decoded items.
No retry is attempted; a non-2xx status or malformed body is reported as an error.`,
		Example: `  # First page using the configured page size
  pagefeed fetch

  # Page 3 with five items, as JSON
  pagefeed fetch --page 3 --limit 5 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log := logging.FromContext(ctx)
			cfg := config.GetGlobalConfig()

			format, err := ParseOutputFormat(output)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = cfg.API.PageSize
			}

			client, err := newClient(ctx, cfg)
			if err != nil {
				return err
			}

			items, err := client.FetchPage(ctx, page, limit)
			if err != nil {
				log.Error().Ctx(ctx).Err(err).Int("page", page).Msg("fetch failed")
				return fmt.Errorf("fetching page %d: %w", page, err)
			}
			log.Debug().Ctx(ctx).Int("page", page).Int("items", len(items)).Msg("page fetched")

			return renderItems(cmd.OutOrStdout(), format, items)
		},
	}

	cmd.Flags().IntVar(&page, "page", pagination.DefaultPage, "1-based page number")
	cmd.Flags().IntVar(&limit, "limit", pagination.DefaultPageSize, "items per page (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", string(OutputTable), "output format: table, json or ndjson")

	return cmd
}
