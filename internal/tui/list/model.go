package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// defaultBufferSize is the number of extra rows to render above/below viewport for smooth scrolling.
const defaultBufferSize = 5

// halfViewportDivisor is used to calculate half the viewport height for centering.
const halfViewportDivisor = 2

// RenderFunc is a function that renders an item at a given index.
// The selected parameter indicates whether this item is currently selected.
type RenderFunc[T any] func(item T, selected bool) string

// Viewport describes the scroll position in rows.
// Top is the first visible row, Total the number of rows and Height the
// number of rows the viewport can show.
type Viewport struct {
	Top    int
	Total  int
	Height int
}

// RowsBelow is the number of rows between the bottom of the viewport and
// the end of the list. It is negative when the list does not fill the viewport.
func (v Viewport) RowsBelow() int {
	return v.Total - (v.Top + v.Height)
}

// VirtualListModel implements virtual scrolling for large lists.
// It renders only the visible portion of the list plus a small buffer.
type VirtualListModel[T any] struct {
	items      []T
	renderFunc RenderFunc[T]

	// selected is the currently selected item index (0-based)
	selected int

	// visibleFrom is the first visible item index
	visibleFrom int

	// visibleTo is the last visible item index (exclusive)
	visibleTo int

	height     int
	width      int
	bufferSize int
}

// NewVirtualListModel creates a new virtual list model.
// items: the complete list of items to display.
// height: viewport height in rows.
// width: viewport width in columns.
// renderFunc: function to render each item.
func NewVirtualListModel[T any](items []T, height, width int, renderFunc RenderFunc[T]) *VirtualListModel[T] {
	m := &VirtualListModel[T]{
		items:      items,
		renderFunc: renderFunc,
		height:     height,
		width:      width,
		bufferSize: defaultBufferSize,
	}

	m.updateVisibleRange()
	return m
}

// Init initializes the model (required for tea.Model interface).
func (m *VirtualListModel[T]) Init() tea.Cmd {
	return nil
}

// Update handles keyboard and resize messages.
func (m *VirtualListModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg), nil
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	}

	return m, nil
}

// handleKeyMsg processes keyboard input for navigation.
//
//nolint:exhaustive // Only navigation keys are handled.
func (m *VirtualListModel[T]) handleKeyMsg(msg tea.KeyMsg) tea.Model {
	if len(m.items) == 0 {
		return m
	}

	switch msg.Type {
	case tea.KeyUp:
		m.SetSelected(m.selected - 1)
	case tea.KeyDown:
		m.SetSelected(m.selected + 1)
	case tea.KeyPgUp:
		m.SetSelected(m.selected - m.height)
	case tea.KeyPgDown:
		m.SetSelected(m.selected + m.height)
	case tea.KeyHome:
		m.SetSelected(0)
	case tea.KeyEnd:
		m.SetSelected(len(m.items) - 1)
	case tea.KeyRunes:
		if len(msg.Runes) > 0 {
			switch msg.Runes[0] {
			case 'j':
				m.SetSelected(m.selected + 1)
			case 'k':
				m.SetSelected(m.selected - 1)
			case 'g':
				m.SetSelected(0)
			case 'G':
				m.SetSelected(len(m.items) - 1)
			}
		}
	default:
	}

	return m
}

// updateVisibleRange keeps the selected item centered where possible.
func (m *VirtualListModel[T]) updateVisibleRange() {
	if len(m.items) == 0 {
		m.visibleFrom = 0
		m.visibleTo = 0
		return
	}

	halfViewport := m.height / halfViewportDivisor

	idealFrom := m.selected - halfViewport
	idealTo := idealFrom + m.height

	if idealFrom < 0 {
		idealFrom = 0
		idealTo = m.height
	}

	if idealTo > len(m.items) {
		idealTo = len(m.items)
		idealFrom = max(idealTo-m.height, 0)
	}

	m.visibleFrom = idealFrom
	m.visibleTo = idealTo
}

// View renders the visible portion of the list with buffer.
func (m *VirtualListModel[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}

	renderFrom := max(m.visibleFrom-m.bufferSize, 0)
	renderTo := min(m.visibleTo+m.bufferSize, len(m.items))

	lines := make([]string, 0, renderTo-renderFrom)
	for i := renderFrom; i < renderTo; i++ {
		lines = append(lines, m.renderFunc(m.items[i], i == m.selected))
	}

	return strings.Join(lines, "\n")
}

// ViewVisible renders only the rows inside the viewport, without buffer.
// Use it when the output height must not exceed Height().
func (m *VirtualListModel[T]) ViewVisible() string {
	if len(m.items) == 0 {
		return ""
	}

	lines := make([]string, 0, m.visibleTo-m.visibleFrom)
	for i := m.visibleFrom; i < m.visibleTo; i++ {
		lines = append(lines, m.renderFunc(m.items[i], i == m.selected))
	}
	return strings.Join(lines, "\n")
}

// SetItems replaces the list contents. The selection is kept when still in
// range and clamped otherwise.
func (m *VirtualListModel[T]) SetItems(items []T) {
	m.items = items
	m.SetSelected(m.selected)
}

// AppendItems adds items to the end of the list without moving the selection.
func (m *VirtualListModel[T]) AppendItems(items ...T) {
	m.items = append(m.items, items...)
	m.updateVisibleRange()
}

// SetSize updates the viewport dimensions.
func (m *VirtualListModel[T]) SetSize(width, height int) {
	m.width = width
	m.height = max(height, 0)
	m.updateVisibleRange()
}

// Viewport returns the current scroll position in rows.
func (m *VirtualListModel[T]) Viewport() Viewport {
	return Viewport{
		Top:    m.visibleFrom,
		Total:  len(m.items),
		Height: m.height,
	}
}

// ItemCount returns the total number of items in the list.
func (m *VirtualListModel[T]) ItemCount() int {
	return len(m.items)
}

// Selected returns the currently selected item index.
func (m *VirtualListModel[T]) Selected() int {
	return m.selected
}

// SetSelected sets the selected item index, capping to valid bounds.
func (m *VirtualListModel[T]) SetSelected(index int) {
	if len(m.items) == 0 {
		m.selected = 0
		m.updateVisibleRange()
		return
	}

	switch {
	case index < 0:
		m.selected = 0
	case index >= len(m.items):
		m.selected = len(m.items) - 1
	default:
		m.selected = index
	}

	m.updateVisibleRange()
}

// VisibleFrom returns the first visible item index (inclusive).
func (m *VirtualListModel[T]) VisibleFrom() int {
	return m.visibleFrom
}

// VisibleTo returns the last visible item index (exclusive).
func (m *VirtualListModel[T]) VisibleTo() int {
	return m.visibleTo
}

// Height returns the viewport height.
func (m *VirtualListModel[T]) Height() int {
	return m.height
}

// Width returns the viewport width.
func (m *VirtualListModel[T]) Width() int {
	return m.width
}

// GetSelectedItem returns the currently selected item.
// Returns nil if list is empty.
func (m *VirtualListModel[T]) GetSelectedItem() *T {
	if len(m.items) == 0 || m.selected < 0 || m.selected >= len(m.items) {
		return nil
	}
	return &m.items[m.selected]
}
