package pagination

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/rshade/pagefeed/internal/item"
)

// Sortable item fields.
const (
	FieldID    = "id"
	FieldTitle = "title"
)

// Sorter defines the interface for sorting items.
type Sorter interface {
	// Sort sorts a slice of items by the specified field and direction.
	Sort(items []item.Item, field string, dir SortDirection) []item.Item
	// IsValidField checks if the given field name is valid for sorting.
	IsValidField(field string) bool
	// GetValidFields returns a list of valid field names for sorting.
	GetValidFields() []string
	// ValidateField returns ErrInvalidSortField for an unknown field.
	ValidateField(field string) error
}

// ItemSorter implements Sorter for item.Item.
type ItemSorter struct {
	validFields map[string]bool
}

// NewItemSorter creates a new ItemSorter with valid sort fields.
func NewItemSorter() *ItemSorter {
	return &ItemSorter{
		validFields: map[string]bool{
			FieldID:    true,
			FieldTitle: true,
		},
	}
}

// IsValidField checks if the field is valid for sorting.
func (s *ItemSorter) IsValidField(field string) bool {
	return s.validFields[field]
}

// GetValidFields returns all valid sort fields.
func (s *ItemSorter) GetValidFields() []string {
	fields := lo.Keys(s.validFields)
	slices.Sort(fields)
	return fields
}

// ValidateField returns ErrInvalidSortField when field is not sortable.
func (s *ItemSorter) ValidateField(field string) error {
	if !s.IsValidField(field) {
		return fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field, strings.Join(s.GetValidFields(), ", "))
	}
	return nil
}

// Sort sorts items by the specified field and direction.
// Returns a new sorted slice; does not modify the original.
// If field is invalid, returns the original slice unchanged.
func (s *ItemSorter) Sort(items []item.Item, field string, dir SortDirection) []item.Item {
	if !s.IsValidField(field) {
		return items
	}

	sorted := make([]item.Item, len(items))
	copy(sorted, items)
	SortInPlace(sorted, field, dir)
	return sorted
}

// SortInPlace stable-sorts items by field and direction. Equal keys keep
// their relative order in both directions. Unknown fields leave items as-is.
func SortInPlace(items []item.Item, field string, dir SortDirection) {
	var compare func(a, b item.Item) int
	switch field {
	case FieldID:
		compare = CompareByID
	case FieldTitle:
		compare = compareByTitle
	default:
		return
	}

	slices.SortStableFunc(items, func(a, b item.Item) int {
		if dir == Descending {
			return compare(b, a)
		}
		return compare(a, b)
	})
}

// CompareByID is the id comparator: negative when a sorts before b ascending.
func CompareByID(a, b item.Item) int {
	return cmp.Compare(a.ID, b.ID)
}

func compareByTitle(a, b item.Item) int {
	return strings.Compare(a.Title, b.Title)
}
