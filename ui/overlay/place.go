package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/uvizhe/psh-gui/ui"
)

var shadowStyle = lipgloss.NewStyle().Foreground(ui.ColorSurface)

// PlaceOverlay draws fg on top of bg with its top-left corner at (x, y), or
// centered when center is set. ANSI styling on both sides of the overlay is
// kept intact. With shadow, a one-cell drop shadow is drawn right and below.
func PlaceOverlay(x, y int, fg, bg string, shadow, center bool) string {
	if shadow {
		fg = withShadow(fg)
	}
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	fgWidth := maxLineWidth(fgLines)
	bgWidth := maxLineWidth(bgLines)

	if fgWidth >= bgWidth && len(fgLines) >= len(bgLines) {
		return fg
	}
	if center {
		x = (bgWidth - fgWidth) / 2
		y = (len(bgLines) - len(fgLines)) / 2
	}
	x = clampInt(x, 0, max(0, bgWidth-fgWidth))
	y = clampInt(y, 0, max(0, len(bgLines)-len(fgLines)))

	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLine := bgLines[row]
		left := ansi.Truncate(bgLine, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ansi.TruncateLeft(bgLine, x+ansi.StringWidth(line), "")
		bgLines[row] = left + line + "\x1b[0m" + right
	}
	return strings.Join(bgLines, "\n")
}

func withShadow(fg string) string {
	lines := strings.Split(fg, "\n")
	width := maxLineWidth(lines)
	out := make([]string, 0, len(lines)+1)
	for i, line := range lines {
		pad := strings.Repeat(" ", width-ansi.StringWidth(line))
		if i == 0 {
			out = append(out, line+pad+" ")
			continue
		}
		out = append(out, line+pad+shadowStyle.Render("▒"))
	}
	out = append(out, " "+shadowStyle.Render(strings.Repeat("▒", width)))
	return strings.Join(out, "\n")
}

func maxLineWidth(lines []string) int {
	w := 0
	for _, l := range lines {
		w = max(w, ansi.StringWidth(l))
	}
	return w
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
