package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/pagefeed/internal/item"
	"github.com/rshade/pagefeed/internal/pagination"
)

// tabPadding is the column gap for table output.
const tabPadding = 2

// OutputFormat selects how items are written.
type OutputFormat string

// Supported output formats.
const (
	OutputTable  OutputFormat = "table"
	OutputJSON   OutputFormat = "json"
	OutputNDJSON OutputFormat = "ndjson"
)

// ParseOutputFormat validates an --output value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputTable, OutputJSON, OutputNDJSON:
		return f, nil
	case "":
		return OutputTable, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (want table, json or ndjson)", s)
	}
}

// listResult is the JSON document written by `list --output json`.
type listResult struct {
	Items []item.Item         `json:"items"`
	Meta  pagination.PageMeta `json:"meta"`
}

// renderItems writes items in the given format.
func renderItems(w io.Writer, format OutputFormat, items []item.Item) error {
	switch format {
	case OutputJSON:
		return renderJSON(w, items)
	case OutputNDJSON:
		return renderNDJSON(w, items)
	case OutputTable:
		return renderTable(w, items)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func renderTable(w io.Writer, items []item.Item) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	fmt.Fprintln(tw, "ID\tTitle")
	fmt.Fprintln(tw, "--\t-----")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\n", it.ID, it.Title)
	}
	return tw.Flush()
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}

func renderNDJSON(w io.Writer, items []item.Item) error {
	enc := json.NewEncoder(w)
	for _, it := range items {
		if err := enc.Encode(it); err != nil {
			return fmt.Errorf("encoding NDJSON output: %w", err)
		}
	}
	return nil
}

// renderSummary writes a one-line progress summary with grouped counts.
func renderSummary(w io.Writer, meta pagination.PageMeta) {
	p := message.NewPrinter(language.English)
	more := "end of collection"
	if meta.HasMore {
		more = "more available"
	}
	_, _ = p.Fprintf(w, "Showing %d of %d items, %d page(s) of %d, %s\n",
		meta.ShownItems, meta.TotalItems, meta.PagesLoaded, meta.PageSize, more)
}
