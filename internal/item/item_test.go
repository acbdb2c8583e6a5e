package item_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pagefeed/internal/item"
)

func TestItem_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantID    int
		wantTitle string
		wantExtra []string
		wantErr   error
	}{
		{
			name:      "id and title only",
			input:     `{"id": 1, "title": "Anna"}`,
			wantID:    1,
			wantTitle: "Anna",
		},
		{
			name:      "passthrough fields kept",
			input:     `{"id": 7, "title": "qui est esse", "userId": 1, "body": "text"}`,
			wantID:    7,
			wantTitle: "qui est esse",
			wantExtra: []string{"body", "userId"},
		},
		{
			name:      "missing title decodes as empty",
			input:     `{"id": 3}`,
			wantID:    3,
			wantTitle: "",
		},
		{
			name:      "null title decodes as empty",
			input:     `{"id": 4, "title": null}`,
			wantID:    4,
			wantTitle: "",
		},
		{
			name:    "missing id",
			input:   `{"title": "orphan"}`,
			wantErr: item.ErrMissingID,
		},
		{
			name:    "string id",
			input:   `{"id": "abc", "title": "x"}`,
			wantErr: item.ErrInvalidID,
		},
		{
			name:    "fractional id",
			input:   `{"id": 1.5, "title": "x"}`,
			wantErr: item.ErrInvalidID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var it item.Item
			err := json.Unmarshal([]byte(tt.input), &it)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, it.ID)
			assert.Equal(t, tt.wantTitle, it.Title)
			if tt.wantExtra == nil {
				assert.Empty(t, it.ExtraKeys())
			} else {
				assert.Equal(t, tt.wantExtra, it.ExtraKeys())
			}
		})
	}
}

func TestItem_MarshalJSONKeepsExtraFields(t *testing.T) {
	var it item.Item
	require.NoError(t, json.Unmarshal([]byte(`{"id": 2, "title": "Bob", "userId": 9}`), &it))

	out, err := json.Marshal(it)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 2, "title": "Bob", "userId": 9}`, string(out))
}

func TestItem_DecodeArray(t *testing.T) {
	var items []item.Item
	require.NoError(t, json.Unmarshal([]byte(`[{"id":2,"title":"Bob"},{"id":1,"title":"Anna"}]`), &items))

	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].ID)
	assert.Equal(t, "Anna", items[1].Title)
}

func TestItem_MatchesTitle(t *testing.T) {
	it := item.Item{ID: 1, Title: "Anna"}

	assert.True(t, it.MatchesTitle("an"))
	assert.True(t, it.MatchesTitle("NN"))
	assert.True(t, it.MatchesTitle(""))
	assert.False(t, it.MatchesTitle("bob"))
	assert.True(t, item.Item{ID: 2}.MatchesTitle(""))
	assert.False(t, item.Item{ID: 2}.MatchesTitle("a"))
}
