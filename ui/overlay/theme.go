package overlay

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/uvizhe/psh-gui/ui"
)

// ThemeRosePine returns a huh theme matching the app palette. It styles the
// setup wizard and the reset confirmation.
func ThemeRosePine() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(ui.ColorIris)
	t.Focused.Card = t.Focused.Base
	t.Focused.Title = t.Focused.Title.Foreground(ui.ColorIris).Bold(true)
	t.Focused.NoteTitle = t.Focused.NoteTitle.Foreground(ui.ColorIris).Bold(true).MarginBottom(1)
	t.Focused.Description = t.Focused.Description.Foreground(ui.ColorMuted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(ui.ColorLove)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ui.ColorLove)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(ui.ColorIris)
	t.Focused.Option = t.Focused.Option.Foreground(ui.ColorText)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ui.ColorFoam)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(ui.ColorText)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(ui.ColorBase).Background(ui.ColorIris)
	t.Focused.Next = t.Focused.FocusedButton
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(ui.ColorSubtle).Background(ui.ColorOverlay)

	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(ui.ColorFoam)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(ui.ColorMuted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(ui.ColorIris)
	t.Focused.TextInput.Text = t.Focused.TextInput.Text.Foreground(ui.ColorText)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Card = t.Blurred.Base

	t.Group.Title = t.Focused.Title
	t.Group.Description = t.Focused.Description

	return t
}
