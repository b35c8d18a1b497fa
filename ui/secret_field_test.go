package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestSecretField_TypingAndMasking(t *testing.T) {
	f := NewSecretField("secret")
	f.Focus()

	changed, _ := f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("pin")})
	assert.True(t, changed)
	assert.Equal(t, "pin", f.Value())
	assert.NotContains(t, f.View(), "pin")

	changed, _ = f.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.False(t, changed)
}

func TestSecretField_DisabledClearsAndIgnoresInput(t *testing.T) {
	f := NewSecretField("secret")
	f.Focus()
	f.SetValue("pin")

	f.SetDisabled(true)
	assert.Empty(t, f.Value())
	assert.Nil(t, f.Focus())

	f.SetValue("x")
	changed, _ := f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	assert.False(t, changed)
	assert.Empty(t, f.Value())

	f.SetDisabled(false)
	f.SetValue("ok")
	assert.Equal(t, "ok", f.Value())
}
