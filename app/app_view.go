package app

import (
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"

	"github.com/uvizhe/psh-gui/session"
	"github.com/uvizhe/psh-gui/ui"
	"github.com/uvizhe/psh-gui/ui/overlay"
)

const noVaultWarning = "Warning: if you forget your master password you won't be able to retrieve your passwords"

var (
	warningStyle = lipgloss.NewStyle().Foreground(ui.ColorGold)
	errorStyle   = lipgloss.NewStyle().Foreground(ui.ColorLove)
	derivedStyle = lipgloss.NewStyle().Foreground(ui.ColorFoam).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(ui.ColorMuted)
	textStyle    = lipgloss.NewStyle().Foreground(ui.ColorText)
)

func (m *home) View() string {
	mainView := lipgloss.PlaceHorizontal(max(m.termWidth, formWidth), lipgloss.Center, m.formView())
	mainView = ui.FillHeight(mainView, m.termHeight)

	result := mainView
	if m.helpOverlay != nil {
		result = overlay.PlaceOverlay(0, 0, m.helpOverlay.Render(), mainView, true, true)
	}

	if toastView := m.toastManager.View(); toastView != "" {
		x, y := m.toastManager.GetPosition()
		result = overlay.PlaceOverlay(x, y, toastView, result, false, false)
	}

	// Zone markers must be stripped before the frame is measured or drawn.
	result = zone.Scan(result)
	return ui.FillHeight(result, m.termHeight)
}

// formView renders the column for the current session state.
func (m *home) formView() string {
	frame := 0
	if m.state == session.StateUnlocking {
		frame = m.bannerTicks / 3
	}
	rows := []string{ui.Banner(frame), ""}

	switch m.state {
	case session.StateNew:
		rows = append(rows, m.entranceView()...)
	case session.StateUnlocking:
		rows = append(rows, m.spinner.View()+textStyle.Render(" Unlocking..."))
	case session.StateInitialized:
		rows = append(rows, m.unlockedView()...)
	}

	rows = append(rows, "", m.keyboardPanel.View())
	if m.keyboardPanel.Open {
		rows = append(rows, m.keyboard.View())
	}
	rows = append(rows, "", mutedStyle.Render(footerHelp()))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *home) fieldView(id ui.FieldID, content string, disabled bool) string {
	return zone.Mark(ui.FieldZoneIDs[id], ui.FieldFrame(content, formWidth-2, m.focus.Is(id), disabled))
}

func (m *home) entranceView() []string {
	var rows []string
	switch {
	case !m.vaultExists:
		rows = append(rows, warningStyle.Render(wordwrap.String(noVaultWarning, formWidth)))
	case m.wrongPassword:
		rows = append(rows, errorStyle.Render("Wrong master password"))
	default:
		rows = append(rows, "")
	}
	rows = append(rows, m.fieldView(ui.FieldMasterPassword, m.masterPassword.View(), false))
	if !m.vaultExists {
		rows = append(rows, m.fieldView(ui.FieldMasterPasswordRepeat, m.masterRepeat.View(), false))
	}
	rows = append(rows, zone.Mark(ui.ZoneUnlockButton, ui.ButtonView("Unlock", m.mpLooksValid())))
	return rows
}

func (m *home) unlockedView() []string {
	rows := []string{m.fieldView(ui.FieldAlias, m.alias.View(), false)}
	if dd := m.alias.DropdownView(); dd != "" {
		rows = append(rows, dd)
	}
	rows = append(rows, m.fieldView(ui.FieldSecret, m.secret.View(), m.secret.Disabled()))

	label := "Get password"
	if m.opts.Handle == session.HandleRemove {
		label = "Remove alias"
	}
	rows = append(rows, zone.Mark(ui.ZoneProcessButton, ui.ButtonView(label, m.canProcess())))

	derived := " "
	if m.derived != "" {
		derived = derivedStyle.Render(m.derived) + mutedStyle.Render("  ctrl+y copy")
	}
	rows = append(rows, "", zone.Mark(ui.ZoneDerived, derived), "", m.optionsPanel.View())

	if m.optionsPanel.Open {
		m.syncSwitches()
		rows = append(rows, m.handleSwitch.View(), m.charsetSwitch.View())
	}
	return rows
}
