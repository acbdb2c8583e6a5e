package cli

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/rshade/pagefeed/internal/config"
	"github.com/rshade/pagefeed/internal/controller"
	"github.com/rshade/pagefeed/internal/item"
	"github.com/rshade/pagefeed/internal/logging"
	"github.com/rshade/pagefeed/internal/pagination"
)

// defaultMaxPages bounds non-interactive loads. Endpoints that ignore the
// page parameter never return an empty page.
const defaultMaxPages = 10

// listOptions are the inputs of a non-interactive controller run.
type listOptions struct {
	filter    string
	sortOrder string
	sortField string
	maxPages  int
	format    OutputFormat
}

// NewListCmd creates the list command, which drives the view controller
// without a terminal UI.
func NewListCmd() *cobra.Command {
	var (
		opts   listOptions
		output string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Load pages until the collection is exhausted, then filter and sort",
		Long: `Loads pages one at a time until an empty page is returned, --max-pages is
reached or a page repeats the previous one, then applies the title filter and
sort and prints the displayed list.`,
		Example: `  # Up to 10 pages, in received order
  pagefeed list

  # Walk the whole collection
  pagefeed list --max-pages 0

  # Titles containing "est", largest id first, at most 3 pages
  pagefeed list --filter est --sort desc --max-pages 3

  # Alphabetical by title
  pagefeed list --sort asc --sort-field title`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := ParseOutputFormat(output)
			if err != nil {
				return err
			}
			opts.format = format
			return runList(cmd.Context(), cmd.OutOrStdout(), config.GetGlobalConfig(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.filter, "filter", "", "case-insensitive substring to match against titles")
	cmd.Flags().StringVar(&opts.sortOrder, "sort", "", "sort order: asc or desc (default: received order)")
	cmd.Flags().StringVar(&opts.sortField, "sort-field", pagination.FieldID, "field --sort orders by: id or title")
	cmd.Flags().IntVar(&opts.maxPages, "max-pages", defaultMaxPages, "stop after this many pages (0 = until exhausted)")
	cmd.Flags().StringVarP(&output, "output", "o", string(OutputTable), "output format: table, json or ndjson")

	return cmd
}

// runList loads pages through a controller, applies filter and sort, and
// renders the displayed list.
func runList(ctx context.Context, w io.Writer, cfg *config.Config, opts listOptions) error {
	log := logging.FromContext(ctx)

	var sorter pagination.Sorter = pagination.NewItemSorter()
	field := opts.sortField
	if field == "" {
		field = pagination.FieldID
	}
	if err := sorter.ValidateField(field); err != nil {
		return err
	}

	var direction pagination.SortDirection
	if opts.sortOrder != "" {
		dir, err := pagination.ParseSortDirection(opts.sortOrder)
		if err != nil {
			return err
		}
		direction = dir
	}
	if opts.maxPages < 0 {
		return fmt.Errorf("max-pages must be >= 0, got %d", opts.maxPages)
	}

	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}
	ctrl, err := newController(ctx, client, cfg)
	if err != nil {
		return err
	}

	if err = loadPages(ctx, ctrl, opts.maxPages); err != nil {
		return err
	}

	if opts.filter != "" {
		ctrl.ApplyFilter(opts.filter)
	}

	displayed := ctrl.FilteredItems()
	if opts.sortOrder != "" {
		if field == pagination.FieldID {
			// The first toggle sorts ascending; a second one flips to descending.
			if ctrl.ToggleSort() != direction {
				ctrl.ToggleSort()
			}
			displayed = ctrl.FilteredItems()
		} else {
			displayed = sorter.Sort(displayed, field, direction)
		}
	}

	meta := ctrl.Meta()
	log.Debug().Ctx(ctx).
		Int("pages", meta.PagesLoaded).
		Int("fetches", ctrl.FetchCount()).
		Int("total", meta.TotalItems).
		Int("shown", meta.ShownItems).
		Msg("list complete")

	switch opts.format {
	case OutputJSON:
		return renderJSON(w, listResult{Items: displayed, Meta: meta})
	case OutputNDJSON:
		return renderNDJSON(w, displayed)
	case OutputTable:
		if err = renderTable(w, displayed); err != nil {
			return err
		}
		renderSummary(w, meta)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", opts.format)
	}
}

// loadPages calls LoadItems until the controller reports exhaustion,
// maxPages pages have loaded, or a page returns the same ids as the one
// before it. maxPages of 0 means no limit.
func loadPages(ctx context.Context, ctrl *controller.Controller, maxPages int) error {
	log := logging.FromContext(ctx)

	var previous []int
	for loaded := 0; maxPages == 0 || loaded < maxPages; loaded++ {
		before := len(ctrl.Items())
		outcome, err := ctrl.LoadItems(ctx)
		if err != nil {
			return fmt.Errorf("loading page %d: %w", ctrl.Page(), err)
		}
		if outcome != controller.OutcomeLoaded {
			return nil
		}

		current := itemIDs(ctrl.Items()[before:])
		if previous != nil && slices.Equal(previous, current) {
			log.Warn().Ctx(ctx).
				Int("page", ctrl.Page()-1).
				Msg("page repeated the previous page, endpoint ignores paging; stopping")
			return nil
		}
		previous = current
	}
	return nil
}

func itemIDs(items []item.Item) []int {
	ids := make([]int, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
