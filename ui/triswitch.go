package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// Triswitch is a three-way radio with per-option disabled flags.
type Triswitch struct {
	Name     string
	Title    string
	Labels   [3]string
	Checked  int
	Disabled [3]bool
}

// OptionAt returns the enabled option under a mouse press.
func (t *Triswitch) OptionAt(msg tea.MouseMsg) (int, bool) {
	for i := range t.Labels {
		if t.Disabled[i] {
			continue
		}
		if zone.Get(TriswitchZoneID(t.Name, i)).InBounds(msg) {
			return i, true
		}
	}
	return 0, false
}

// View renders the title and the three options.
func (t *Triswitch) View() string {
	opts := make([]string, 0, len(t.Labels))
	for i, label := range t.Labels {
		var s string
		switch {
		case t.Disabled[i]:
			s = switchDisabledStyle.Render("○ " + label)
		case i == t.Checked:
			s = switchOnStyle.Render("● " + label)
		default:
			s = switchOffStyle.Render("○ " + label)
		}
		opts = append(opts, zone.Mark(TriswitchZoneID(t.Name, i), s))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(t.Title),
		strings.Join(opts, "  "),
	)
}
