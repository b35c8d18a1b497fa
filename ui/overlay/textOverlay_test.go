package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestTextOverlay_AnyKeyDismisses(t *testing.T) {
	o := NewTextOverlay("hello")
	dismissed := false
	o.OnDismiss = func() { dismissed = true }

	assert.True(t, o.HandleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}))
	assert.True(t, dismissed)
	assert.Contains(t, o.Render(), "hello")
}

func TestMarkdownOverlay_RendersMarkdown(t *testing.T) {
	o := NewMarkdownOverlay("# Keys\n\n- **ctrl+l** lock the vault\n", 50, "dark")
	out := ansi.Strip(o.Render())
	assert.Contains(t, out, "Keys")
	assert.Contains(t, out, "ctrl+l")
	assert.NotContains(t, out, "**")
}

func TestMarkdownOverlay_UnknownStyleFallsBack(t *testing.T) {
	o := NewMarkdownOverlay("**raw**", 40, "no-such-style")
	assert.Contains(t, o.Render(), "**raw**")
}
