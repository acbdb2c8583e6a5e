package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how results are presented.
type OutputMode int

const (
	// OutputModeInteractive runs the Bubble Tea program.
	OutputModeInteractive OutputMode = iota
	// OutputModeStyled prints lipgloss-styled output without interaction.
	OutputModeStyled
	// OutputModePlain prints unstyled text.
	OutputModePlain
)

func (m OutputMode) String() string {
	switch m {
	case OutputModeInteractive:
		return "interactive"
	case OutputModeStyled:
		return "styled"
	case OutputModePlain:
		return "plain"
	default:
		return "unknown"
	}
}

// DetectOutputMode picks the output mode for stdout.
//
// forcePlain and noColor come from flags. ciMode marks a CI run, which is
// also detected from the CI environment variable. NO_COLOR and TERM=dumb
// disable styling.
func DetectOutputMode(forcePlain, noColor, ciMode bool) OutputMode {
	return detectOutputMode(forcePlain, noColor, ciMode, term.IsTerminal(int(os.Stdout.Fd())), os.LookupEnv)
}

func detectOutputMode(
	forcePlain, noColor, ciMode, isTTY bool,
	lookup func(string) (string, bool),
) OutputMode {
	if forcePlain || noColor {
		return OutputModePlain
	}
	if _, ok := lookup("NO_COLOR"); ok {
		return OutputModePlain
	}
	if v, ok := lookup("TERM"); ok && v == "dumb" {
		return OutputModePlain
	}
	if !isTTY {
		return OutputModePlain
	}
	if v, ok := lookup("CI"); ciMode || (ok && v != "" && v != "false") {
		return OutputModeStyled
	}
	return OutputModeInteractive
}

// TerminalWidth returns the width of stdout, or defaultWidth when it is not a terminal.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}
