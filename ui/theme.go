package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Rosé Pine Moon palette
// https://rosepinetheme.com/palette/
var (
	// Base tones
	ColorBase    = lipgloss.Color("#232136")
	ColorSurface = lipgloss.Color("#2a273f")
	ColorOverlay = lipgloss.Color("#393552")
	ColorMuted   = lipgloss.Color("#6e6a86")
	ColorSubtle  = lipgloss.Color("#908caa")
	ColorText    = lipgloss.Color("#e0def4")

	// Semantic colors
	ColorLove = lipgloss.Color("#eb6f92") // error, danger
	ColorGold = lipgloss.Color("#f6c177") // warning
	ColorRose = lipgloss.Color("#ea9a97") // accent, secondary
	ColorPine = lipgloss.Color("#3e8fb0") // link
	ColorFoam = lipgloss.Color("#9ccfd8") // info, derived password
	ColorIris = lipgloss.Color("#c4a7e7") // highlight, primary

	// Gradient endpoints for the banner
	GradientStart = "#9ccfd8" // foam
	GradientEnd   = "#c4a7e7" // iris
)

var (
	fieldStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorOverlay).
			Padding(0, 1)

	fieldFocusedStyle = fieldStyle.BorderForeground(ColorIris)

	fieldDisabledStyle = fieldStyle.
				BorderForeground(ColorSurface).
				Foreground(ColorMuted)

	buttonStyle = lipgloss.NewStyle().
			Foreground(ColorBase).
			Background(ColorIris).
			Bold(true).
			Padding(0, 2)

	buttonDisabledStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Background(ColorSurface).
				Padding(0, 2)

	dropdownStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, true, true).
			BorderForeground(ColorOverlay)

	dropdownItemStyle = lipgloss.NewStyle().
				Foreground(ColorSubtle).
				Padding(0, 1)

	dropdownSelectedStyle = dropdownItemStyle.
				Foreground(ColorBase).
				Background(ColorIris)

	keyStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorSurface)

	keyPendingStyle = keyStyle.
			Foreground(ColorBase).
			Background(ColorGold)

	switchOnStyle = lipgloss.NewStyle().
			Foreground(ColorIris).
			Bold(true)

	switchOffStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	switchDisabledStyle = lipgloss.NewStyle().
				Foreground(ColorOverlay).
				Strikethrough(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(ColorRose).
			Bold(true)
)

// ButtonView renders a button label in its enabled or disabled style.
func ButtonView(label string, enabled bool) string {
	if enabled {
		return buttonStyle.Render(label)
	}
	return buttonDisabledStyle.Render(label)
}

// FieldFrame wraps a rendered input in the field border for its state.
func FieldFrame(content string, width int, focused, disabled bool) string {
	style := fieldStyle
	switch {
	case disabled:
		style = fieldDisabledStyle
	case focused:
		style = fieldFocusedStyle
	}
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(content)
}

// GradientText colors each line of text with a left-to-right gradient.
func GradientText(text, startHex, endHex string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = gradientLine(line, startHex, endHex)
	}
	return strings.Join(lines, "\n")
}

func gradientLine(text, startHex, endHex string) string {
	if text == "" {
		return ""
	}
	r1, g1, b1 := parseHex(startHex)
	r2, g2, b2 := parseHex(endHex)
	runes := []rune(text)
	var sb strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		cr, cg, cb := lerpByte(r1, r2, t), lerpByte(g1, g2, t), lerpByte(b1, b2, t)
		sb.WriteString(fmt.Sprintf("\033[38;2;%d;%d;%dm%c", cr, cg, cb, r))
	}
	sb.WriteString("\033[0m")
	return sb.String()
}

func parseHex(hex string) (uint8, uint8, uint8) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0
	}
	var r, g, b uint8
	fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	return r, g, b
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}
