// Package item defines the record type returned by the collection endpoint.
//
// An Item carries the two fields pagefeed logic depends on (ID and Title) and
// keeps every other field the backend sends as raw JSON, so records round-trip
// through the client without losing data.
package item

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Field names the decoder treats as structural.
const (
	fieldID    = "id"
	fieldTitle = "title"
)

// Decoding errors.
var (
	ErrMissingID = errors.New("item has no id")
	ErrInvalidID = errors.New("item id is not an integer")
)

// Item is a single record from the collection endpoint.
type Item struct {
	ID    int
	Title string

	// Extra holds every field other than id and title, keyed by JSON name.
	Extra map[string]json.RawMessage
}

// UnmarshalJSON decodes an item object. A missing or null title decodes as the
// empty string; a missing or non-integer id is an error.
func (it *Item) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding item: %w", err)
	}

	idRaw, ok := raw[fieldID]
	if !ok || isNull(idRaw) {
		return ErrMissingID
	}
	var id json.Number
	dec := json.NewDecoder(bytes.NewReader(idRaw))
	dec.UseNumber()
	if err := dec.Decode(&id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, string(idRaw))
	}
	n, err := id.Int64()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, string(idRaw))
	}

	var title string
	if titleRaw, found := raw[fieldTitle]; found && !isNull(titleRaw) {
		if err = json.Unmarshal(titleRaw, &title); err != nil {
			return fmt.Errorf("decoding item %d title: %w", n, err)
		}
	}

	delete(raw, fieldID)
	delete(raw, fieldTitle)
	if len(raw) == 0 {
		raw = nil
	}

	*it = Item{ID: int(n), Title: title, Extra: raw}
	return nil
}

// MarshalJSON encodes the item with its passthrough fields.
func (it Item) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(it.Extra)+2) //nolint:mnd // id + title
	for k, v := range it.Extra {
		out[k] = v
	}

	idBytes, err := json.Marshal(it.ID)
	if err != nil {
		return nil, err
	}
	titleBytes, err := json.Marshal(it.Title)
	if err != nil {
		return nil, err
	}
	out[fieldID] = idBytes
	out[fieldTitle] = titleBytes

	return json.Marshal(out)
}

// ExtraKeys returns the passthrough field names in sorted order.
func (it Item) ExtraKeys() []string {
	keys := make([]string, 0, len(it.Extra))
	for k := range it.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MatchesTitle reports whether the lowercased title contains the lowercased
// needle. An empty needle matches every item.
func (it Item) MatchesTitle(needle string) bool {
	return strings.Contains(strings.ToLower(it.Title), strings.ToLower(needle))
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
