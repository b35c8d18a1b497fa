package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SecretField is a masked text input that can be disabled. A disabled field
// holds no text.
type SecretField struct {
	input    textinput.Model
	disabled bool
}

// NewSecretField returns a masked input with the given placeholder.
func NewSecretField(placeholder string) *SecretField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 256
	return &SecretField{input: ti}
}

// SetWidth sets the visible width of the input.
func (f *SecretField) SetWidth(w int) {
	f.input.Width = max(1, w-1)
}

func (f *SecretField) Value() string {
	return f.input.Value()
}

// SetValue replaces the text. It is ignored while disabled.
func (f *SecretField) SetValue(s string) {
	if f.disabled {
		return
	}
	f.input.SetValue(s)
	f.input.CursorEnd()
}

// Clear empties the field.
func (f *SecretField) Clear() {
	f.input.SetValue("")
}

// Disabled reports whether the field is disabled.
func (f *SecretField) Disabled() bool {
	return f.disabled
}

// SetDisabled enables or disables the field; disabling clears it.
func (f *SecretField) SetDisabled(d bool) {
	f.disabled = d
	if d {
		f.input.SetValue("")
		f.input.Blur()
	}
}

// Focus focuses the input unless it is disabled.
func (f *SecretField) Focus() tea.Cmd {
	if f.disabled {
		return nil
	}
	return f.input.Focus()
}

// Focused reports whether the input has focus.
func (f *SecretField) Focused() bool {
	return f.input.Focused()
}

func (f *SecretField) Blur() {
	f.input.Blur()
}

// Update forwards a key to the input and reports whether the text changed.
func (f *SecretField) Update(msg tea.KeyMsg) (bool, tea.Cmd) {
	if f.disabled {
		return false, nil
	}
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f.input.Value() != before, cmd
}

func (f *SecretField) View() string {
	return f.input.View()
}
