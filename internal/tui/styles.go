package tui

import "github.com/charmbracelet/lipgloss"

// Color palette shared by the browse view.
const (
	ColorHeader    = lipgloss.Color("63")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("252")
	ColorMuted     = lipgloss.Color("241")
	ColorHighlight = lipgloss.Color("212")
	ColorError     = lipgloss.Color("196")
	ColorOK        = lipgloss.Color("42")
)

// Layout defaults used before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24
	borderPadding = 2
)

// Shared styles.
//
//nolint:gochecknoglobals // Styles are immutable after init.
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorHeader).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorLabel)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorValue).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	OKStyle = lipgloss.NewStyle().
		Foreground(ColorOK)
)
