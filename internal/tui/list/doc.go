// Package listview provides virtual scrolling components for Bubble Tea TUI applications.
//
// Only rows inside the viewport (plus a small buffer) are rendered, so the
// cost of a frame does not grow with the number of loaded items. Key features:
//   - Keyboard navigation (up/down, pgup/pgdn, home/end, j/k, g/G)
//   - Appending rows without moving the selection
//   - Viewport reporting in rows, used to decide when to load the next page
package listview
