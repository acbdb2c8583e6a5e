package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// LoadingState wraps the spinner shown while a page is in flight.
type LoadingState struct {
	spinner spinner.Model
}

// NewLoadingState creates a LoadingState with the dot spinner.
func NewLoadingState() *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SelectedStyle
	return &LoadingState{spinner: s}
}

// Init starts the spinner animation.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner on tick messages.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// View renders the current spinner frame.
func (l *LoadingState) View() string {
	return l.spinner.View()
}
