package tui

// Key names as reported by tea.KeyMsg.String().
const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keyEnter = "enter"
	keyEsc   = "esc"
	keySlash = "/"
	keyS     = "s"
	keyR     = "r"
)
