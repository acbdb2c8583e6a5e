package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Pagination defaults and validation limits.
const (
	DefaultPage     = 1
	MinPage         = 1
	DefaultPageSize = 10
	MinPageSize     = 1
	MaxPageSize     = 1000
)

// Common validation errors.
var (
	ErrInvalidPage      = errors.New("page must be >= 1")
	ErrInvalidPageSize  = errors.New("page size must be between 1 and 1000")
	ErrInvalidSortOrder = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortField = errors.New("invalid sort field")
)

// Params identifies one page request against the collection endpoint.
type Params struct {
	// Page is the 1-based page number.
	Page int

	// PageSize is the number of items requested per page (sent as "limit").
	PageSize int
}

// Validate checks that both page and page size are in range.
func (p Params) Validate() error {
	if err := ValidatePage(p.Page); err != nil {
		return err
	}
	return ValidatePageSize(p.PageSize)
}

// String renders the params as they appear on the wire.
func (p Params) String() string {
	return fmt.Sprintf("page=%d&limit=%d", p.Page, p.PageSize)
}

// ValidatePage returns ErrInvalidPage when page is below MinPage.
func ValidatePage(page int) error {
	if page < MinPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, page)
	}
	return nil
}

// ValidatePageSize returns ErrInvalidPageSize when size is outside [MinPageSize, MaxPageSize].
func ValidatePageSize(size int) error {
	if size < MinPageSize || size > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, size)
	}
	return nil
}

// SortDirection is the order items are sorted in.
type SortDirection int

const (
	// Ascending puts the smaller key first.
	Ascending SortDirection = iota
	// Descending puts the larger key first.
	Descending
)

// Sort order names as accepted on the command line.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// String returns "asc" or "desc".
func (d SortDirection) String() string {
	if d == Descending {
		return SortOrderDesc
	}
	return SortOrderAsc
}

// Toggle returns the opposite direction.
func (d SortDirection) Toggle() SortDirection {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// ParseSortDirection parses "asc"/"desc" (case-insensitive, surrounding space ignored).
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case SortOrderAsc, "ascending":
		return Ascending, nil
	case SortOrderDesc, "descending":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("%w: got %q", ErrInvalidSortOrder, s)
	}
}
