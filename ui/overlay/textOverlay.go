package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/uvizhe/psh-gui/log"
	"github.com/uvizhe/psh-gui/ui"
)

// TextOverlay is a dismissable panel of pre-rendered text.
type TextOverlay struct {
	content   string
	OnDismiss func()
	width     int
}

// NewTextOverlay creates an overlay showing content.
func NewTextOverlay(content string) *TextOverlay {
	return &TextOverlay{content: content, width: 60}
}

// MarkdownStyle picks the glamour style for the terminal background. It
// queries the terminal, so call it before the program takes over input.
func MarkdownStyle() string {
	if termenv.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

// NewMarkdownOverlay renders markdown with the named glamour style, wrapped
// to width. Rendering errors fall back to the raw markdown.
func NewMarkdownOverlay(markdown string, width int, style string) *TextOverlay {
	content := markdown
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		content, err = r.Render(markdown)
	}
	if err != nil {
		log.WarningLog.Printf("help: markdown render failed: %v", err)
		content = markdown
	}
	return &TextOverlay{content: content, width: width}
}

// HandleKeyPress reports whether the key closes the overlay. Any key does.
func (t *TextOverlay) HandleKeyPress(_ tea.KeyMsg) bool {
	if t.OnDismiss != nil {
		t.OnDismiss()
	}
	return true
}

// Render draws the overlay frame around the content.
func (t *TextOverlay) Render() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorIris).
		Padding(0, 1)
	hint := lipgloss.NewStyle().Foreground(ui.ColorMuted).Render("press any key to close")
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, t.content, hint))
}
