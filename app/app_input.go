package app

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/uvizhe/psh-gui/keys"
	"github.com/uvizhe/psh-gui/session"
	"github.com/uvizhe/psh-gui/ui"
	"github.com/uvizhe/psh-gui/vault"
)

func (m *home) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.helpOverlay != nil {
		if m.helpOverlay.HandleKeyPress(msg) {
			m.helpOverlay = nil
		}
		return m, nil
	}

	name, ok := keys.Lookup(msg.String())
	if !ok {
		return m, m.forwardKey(msg)
	}

	switch name {
	case keys.KeyQuit:
		return m.handleQuit()
	case keys.KeyHelp:
		m.showHelp()
		return m, nil
	case keys.KeyLock:
		m.lock()
		return m, m.applyFocus()
	case keys.KeyNextField:
		return m, m.cycleFocus(1)
	case keys.KeyPrevField:
		return m, m.cycleFocus(-1)
	case keys.KeySubmit:
		// The combobox decides between committing a highlighted entry and
		// submitting the form.
		if m.focus.Is(ui.FieldAlias) {
			return m, m.forwardKey(msg)
		}
		return m, m.submit()
	case keys.KeyCycleHandle:
		if m.state == session.StateInitialized {
			m.opts.NextHandle()
		}
		return m, nil
	case keys.KeyCycleCharset:
		if m.state == session.StateInitialized {
			m.opts.NextCharset()
		}
		return m, nil
	case keys.KeyToggleOptions:
		m.optionsPanel.Toggle()
		return m, nil
	case keys.KeyToggleKeyboard:
		m.toggleKeyboard()
		return m, nil
	case keys.KeyCopy:
		return m, m.copyDerived()
	}
	return m, nil
}

// forwardKey hands a key to the focused field.
func (m *home) forwardKey(msg tea.KeyMsg) tea.Cmd {
	switch m.focus.Current() {
	case ui.FieldMasterPassword:
		changed, cmd := m.masterPassword.Update(msg)
		if changed {
			m.wrongPassword = false
		}
		return cmd
	case ui.FieldMasterPasswordRepeat:
		_, cmd := m.masterRepeat.Update(msg)
		return cmd
	case ui.FieldAlias:
		ev, cmd := m.alias.Update(msg)
		return tea.Batch(cmd, m.onAliasEvent(ev))
	case ui.FieldSecret:
		_, cmd := m.secret.Update(msg)
		return cmd
	}
	return nil
}

func (m *home) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.helpOverlay != nil {
		return m, nil
	}
	if msg.Action == tea.MouseActionMotion {
		m.handleHover(msg)
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	return m, m.handleClick(msg)
}

// handleHover keeps the dropdown highlight under the pointer. Leaving the
// dropdown clears the highlight once, so keyboard selection survives
// unrelated pointer motion.
func (m *home) handleHover(msg tea.MouseMsg) {
	if m.state != session.StateInitialized || !m.alias.IsOpen() {
		m.dropdownHover = false
		return
	}
	idx, in := m.alias.DropdownIndexAt(msg)
	switch {
	case idx >= 0:
		m.alias.Hover(idx)
	case !in && m.dropdownHover:
		m.alias.LeaveDropdown()
	}
	m.dropdownHover = in
}

func (m *home) handleClick(msg tea.MouseMsg) tea.Cmd {
	if m.keyboardPanel.Open {
		if pos, ok := m.keyboard.HandleClick(msg); ok {
			return m.pressKey(pos)
		}
	}
	if m.keyboardPanel.Clicked(msg) {
		m.toggleKeyboard()
		return nil
	}

	switch m.state {
	case session.StateNew:
		if zone.Get(ui.ZoneUnlockButton).InBounds(msg) {
			return m.login()
		}
	case session.StateInitialized:
		if cmd, ok := m.handleFormClick(msg); ok {
			return cmd
		}
	}

	for _, id := range m.visibleFields() {
		if id == ui.FieldSecret && m.secret.Disabled() {
			continue
		}
		if zone.Get(ui.FieldZoneIDs[id]).InBounds(msg) {
			m.focus.Set(id)
			return m.applyFocus()
		}
	}

	// Nothing focusable was hit.
	return tea.Batch(m.focus.FocusOut(ui.FieldNone), m.applyFocus())
}

// handleFormClick handles clicks on the unlocked form's controls.
func (m *home) handleFormClick(msg tea.MouseMsg) (tea.Cmd, bool) {
	if m.alias.IsOpen() {
		idx, in := m.alias.DropdownIndexAt(msg)
		if idx >= 0 {
			return m.onAliasEvent(m.alias.Click(idx)), true
		}
		if in {
			return nil, true
		}
	}
	if zone.Get(ui.ZoneProcessButton).InBounds(msg) {
		return m.process(), true
	}
	if m.derived != "" && zone.Get(ui.ZoneDerived).InBounds(msg) {
		return m.copyDerived(), true
	}
	if m.optionsPanel.Clicked(msg) {
		m.optionsPanel.Toggle()
		return nil, true
	}
	if m.optionsPanel.Open {
		m.syncSwitches()
		if i, ok := m.handleSwitch.OptionAt(msg); ok {
			m.setHandle(session.AliasHandles[i])
			return nil, true
		}
		if i, ok := m.charsetSwitch.OptionAt(msg); ok {
			m.setCharset(vault.CharSets[i])
			return nil, true
		}
	}
	return nil, false
}

// syncSwitches copies the options into the triswitch widgets.
func (m *home) syncSwitches() {
	for i, h := range session.AliasHandles {
		if h == m.opts.Handle {
			m.handleSwitch.Checked = i
		}
		m.handleSwitch.Disabled[i] = !m.opts.HandleAllowed(h)
	}
	for i, cs := range vault.CharSets {
		if cs == m.opts.Charset {
			m.charsetSwitch.Checked = i
		}
		m.charsetSwitch.Disabled[i] = m.opts.CharsetLocked()
	}
}
