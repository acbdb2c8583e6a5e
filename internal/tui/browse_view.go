package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/pagefeed/internal/controller"
	"github.com/rshade/pagefeed/internal/item"
)

// View renders the current view (Bubble Tea interface).
func (m BrowseModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateLoading:
		return m.renderLoadingView()
	case ViewStateList:
		return m.renderListView()
	default:
		return ""
	}
}

func (m BrowseModel) renderLoadingView() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.loading.View()+" Loading first page...",
	)
}

func (m BrowseModel) renderListView() string {
	body := m.list.ViewVisible()
	if m.list.ItemCount() == 0 {
		body = m.renderEmpty()
	}
	body = lipgloss.NewStyle().
		MaxWidth(m.width).
		Height(m.listHeight()).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderFilterLine(),
		body,
		m.renderStatusBar(),
		m.renderHelp(),
	)
}

func (m BrowseModel) renderHeader() string {
	return HeaderStyle.Render("pagefeed") + " " + MutedStyle.Render(m.source)
}

func (m BrowseModel) renderFilterLine() string {
	if m.showFilter {
		return m.textInput.View()
	}
	if v := m.ctrl.FilterValue(); v != "" {
		return InfoStyle.Render(fmt.Sprintf("filter: %q", v))
	}
	return ""
}

func (m BrowseModel) renderEmpty() string {
	switch {
	case m.ctrl.FilterValue() != "":
		return InfoStyle.Render("No items match the filter.")
	case m.ctrl.State() == controller.StateExhausted:
		return InfoStyle.Render("No items.")
	default:
		return ""
	}
}

// renderStatusBar shows counts, page cursor, load state and sort.
func (m BrowseModel) renderStatusBar() string {
	snap := m.ctrl.Snapshot()

	parts := []string{
		m.printer.Sprintf("%d of %d items", len(snap.FilteredItems), len(snap.Items)),
		m.printer.Sprintf("next page %d", snap.Page),
		"sort " + sortLabel(snap),
	}

	switch snap.State {
	case controller.StateLoading:
		parts = append(parts, m.loading.View()+" loading")
	case controller.StateExhausted:
		parts = append(parts, OKStyle.Render("end of list"))
	case controller.StateFailed:
		parts = append(parts, ErrorStyle.Render(fmt.Sprintf("error: %v (r to retry)", snap.Err)))
	case controller.StateIdle:
	}

	return StatusBarStyle.Width(max(m.width, 0)).Render(strings.Join(parts, " | "))
}

func (m BrowseModel) renderHelp() string {
	if m.showFilter {
		return MutedStyle.Render("enter/esc: close filter")
	}
	return MutedStyle.Render("↑/↓ j/k pgup/pgdn home/end: move  /: filter  esc: clear  s: sort  q: quit")
}

func sortLabel(snap controller.Snapshot) string {
	if !snap.Sorted {
		return "received"
	}
	return "id " + snap.SortDirection.String()
}

// renderItemRow renders one list row.
func renderItemRow(it item.Item, selected bool) string {
	line := fmt.Sprintf("%6d  %s", it.ID, it.Title)
	if selected {
		return SelectedStyle.Render("> " + line)
	}
	return "  " + line
}
