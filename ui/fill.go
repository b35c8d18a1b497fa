package ui

import "strings"

// FillHeight pads s with blank lines up to height so the alt-screen renderer
// overwrites every row left over from a taller previous frame.
func FillHeight(s string, height int) string {
	lines := strings.Count(s, "\n") + 1
	if height <= 0 || lines >= height {
		return s
	}
	return s + strings.Repeat("\n", height-lines)
}
