// Package pagination provides page cursor validation, sort direction parsing,
// and item sorting shared by the fetch client, the view controller and the CLI.
//
// This package contains:
//   - Params: page / page-size validation against the endpoint's limits
//   - SortDirection: ascending or descending order with flag parsing
//   - ItemSorter: stable sorting of items by field and direction
//   - PageMeta: summary metadata describing what has been loaded so far
package pagination
