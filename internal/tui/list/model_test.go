package listview_test

import (
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	listview "github.com/rshade/pagefeed/internal/tui/list"
)

func plainRender(item string, selected bool) string {
	if selected {
		return "> " + item
	}
	return "  " + item
}

func numbered(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = "item" + strconv.Itoa(i)
	}
	return items
}

func TestVirtualListModel_NewModel(t *testing.T) {
	model := listview.NewVirtualListModel(numbered(5), 20, 80, plainRender)

	assert.Equal(t, 5, model.ItemCount())
	assert.Equal(t, 20, model.Height())
	assert.Equal(t, 80, model.Width())
	assert.Equal(t, 0, model.Selected())
	assert.Equal(t, 0, model.VisibleFrom())
	assert.Equal(t, 5, model.VisibleTo())
}

func TestVirtualListModel_VisibleRangeCalculation(t *testing.T) {
	tests := []struct {
		name           string
		totalItems     int
		viewportHeight int
		selectedIndex  int
		expectFrom     int
		expectTo       int
	}{
		{name: "first page with 100 items", totalItems: 100, viewportHeight: 20, selectedIndex: 0, expectFrom: 0, expectTo: 20},
		{name: "middle page with 100 items", totalItems: 100, viewportHeight: 20, selectedIndex: 50, expectFrom: 40, expectTo: 60},
		{name: "last page with 100 items", totalItems: 100, viewportHeight: 20, selectedIndex: 99, expectFrom: 80, expectTo: 100},
		{name: "fewer items than viewport", totalItems: 10, viewportHeight: 20, selectedIndex: 5, expectFrom: 0, expectTo: 10},
		{name: "odd viewport height", totalItems: 100, viewportHeight: 5, selectedIndex: 10, expectFrom: 8, expectTo: 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := listview.NewVirtualListModel(numbered(tt.totalItems), tt.viewportHeight, 80, plainRender)
			model.SetSelected(tt.selectedIndex)

			assert.Equal(t, tt.expectFrom, model.VisibleFrom())
			assert.Equal(t, tt.expectTo, model.VisibleTo())
		})
	}
}

func TestVirtualListModel_Navigation(t *testing.T) {
	tests := []struct {
		name          string
		key           tea.KeyMsg
		initialIndex  int
		expectedIndex int
	}{
		{name: "down arrow moves forward", key: tea.KeyMsg{Type: tea.KeyDown}, initialIndex: 5, expectedIndex: 6},
		{name: "up arrow moves backward", key: tea.KeyMsg{Type: tea.KeyUp}, initialIndex: 10, expectedIndex: 9},
		{name: "up at start stays at 0", key: tea.KeyMsg{Type: tea.KeyUp}, initialIndex: 0, expectedIndex: 0},
		{name: "down at end stays at end", key: tea.KeyMsg{Type: tea.KeyDown}, initialIndex: 49, expectedIndex: 49},
		{name: "j key moves forward", key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, initialIndex: 5, expectedIndex: 6},
		{name: "k key moves backward", key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}, initialIndex: 10, expectedIndex: 9},
		{name: "home key goes to start", key: tea.KeyMsg{Type: tea.KeyHome}, initialIndex: 25, expectedIndex: 0},
		{name: "end key goes to last", key: tea.KeyMsg{Type: tea.KeyEnd}, initialIndex: 5, expectedIndex: 49},
		{name: "G goes to last", key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}}, initialIndex: 5, expectedIndex: 49},
		{name: "page down moves a viewport", key: tea.KeyMsg{Type: tea.KeyPgDown}, initialIndex: 0, expectedIndex: 20},
		{name: "page down clamps", key: tea.KeyMsg{Type: tea.KeyPgDown}, initialIndex: 40, expectedIndex: 49},
		{name: "page up clamps", key: tea.KeyMsg{Type: tea.KeyPgUp}, initialIndex: 3, expectedIndex: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := listview.NewVirtualListModel(numbered(50), 20, 80, plainRender)
			model.SetSelected(tt.initialIndex)

			_, cmd := model.Update(tt.key)
			assert.Nil(t, cmd)
			assert.Equal(t, tt.expectedIndex, model.Selected())
		})
	}
}

func TestVirtualListModel_EmptyList(t *testing.T) {
	model := listview.NewVirtualListModel[string](nil, 10, 80, plainRender)

	_, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, model.Selected())
	assert.Empty(t, model.View())
	assert.Nil(t, model.GetSelectedItem())
	assert.Equal(t, listview.Viewport{Top: 0, Total: 0, Height: 10}, model.Viewport())
}

func TestVirtualListModel_WindowResize(t *testing.T) {
	model := listview.NewVirtualListModel(numbered(100), 20, 80, plainRender)

	_, _ = model.Update(tea.WindowSizeMsg{Width: 120, Height: 10})

	assert.Equal(t, 120, model.Width())
	assert.Equal(t, 10, model.Height())
	assert.Equal(t, 10, model.VisibleTo())
}

func TestVirtualListModel_AppendKeepsSelection(t *testing.T) {
	model := listview.NewVirtualListModel(numbered(10), 5, 80, plainRender)
	model.SetSelected(9)

	model.AppendItems(numbered(10)...)

	assert.Equal(t, 20, model.ItemCount())
	assert.Equal(t, 9, model.Selected())
	got := model.GetSelectedItem()
	require.NotNil(t, got)
	assert.Equal(t, "item9", *got)
}

func TestVirtualListModel_SetItemsClampsSelection(t *testing.T) {
	model := listview.NewVirtualListModel(numbered(30), 5, 80, plainRender)
	model.SetSelected(25)

	model.SetItems(numbered(4))
	assert.Equal(t, 3, model.Selected())

	model.SetItems(nil)
	assert.Equal(t, 0, model.Selected())
	assert.Equal(t, 0, model.VisibleTo())
}

func TestVirtualListModel_Viewport(t *testing.T) {
	model := listview.NewVirtualListModel(numbered(100), 20, 80, plainRender)

	vp := model.Viewport()
	assert.Equal(t, listview.Viewport{Top: 0, Total: 100, Height: 20}, vp)
	assert.Equal(t, 80, vp.RowsBelow())

	model.SetSelected(99)
	assert.Equal(t, 0, model.Viewport().RowsBelow())

	short := listview.NewVirtualListModel(numbered(3), 10, 80, plainRender)
	assert.Equal(t, -7, short.Viewport().RowsBelow())
}

func TestVirtualListModel_ViewRendersOnlyVisibleRows(t *testing.T) {
	model := listview.NewVirtualListModel(numbered(1000), 20, 80, plainRender)

	lines := strings.Split(model.View(), "\n")

	assert.LessOrEqual(t, len(lines), 25, "should render ~20 rows plus buffer, not all 1000")
	assert.Equal(t, "> item0", lines[0])
}

func TestVirtualListModel_ViewVisibleHasExactHeight(t *testing.T) {
	model := listview.NewVirtualListModel(numbered(100), 20, 80, plainRender)
	model.SetSelected(50)

	lines := strings.Split(model.ViewVisible(), "\n")
	require.Len(t, lines, 20)
	assert.Equal(t, "  item40", lines[0])
	assert.Equal(t, "> item50", lines[10])
}

func TestVirtualListModel_ViewUpdatesWithScroll(t *testing.T) {
	model := listview.NewVirtualListModel(numbered(100), 20, 80, plainRender)

	before := model.View()
	model.SetSelected(50)

	assert.NotEqual(t, before, model.View())
}
