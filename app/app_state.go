package app

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/uvizhe/psh-gui/log"
	"github.com/uvizhe/psh-gui/session"
	"github.com/uvizhe/psh-gui/ui"
	"github.com/uvizhe/psh-gui/vault"
)

// transition applies ev to the session state. Invalid transitions are logged
// and leave the state unchanged.
func (m *home) transition(ev session.Event) bool {
	next, err := session.ApplyTransition(m.state, ev)
	if err != nil {
		log.WarningLog.Printf("session: %v", err)
		return false
	}
	m.state = next
	return true
}

// mpLooksValid guards Login: the password is long enough and, when a vault
// is being created, repeated correctly.
func (m *home) mpLooksValid() bool {
	return session.MasterPasswordLooksValid(m.masterPassword.Value(), m.masterRepeat.Value(), m.vaultExists)
}

// login moves New to Unlocking and yields once before the engine runs, so
// the unlocking indicator paints before the UI loop waits on key derivation.
func (m *home) login() tea.Cmd {
	if m.state != session.StateNew || !m.mpLooksValid() {
		return nil
	}
	if !m.transition(session.Login) {
		return nil
	}
	m.attempt++
	m.pendingPassword = m.masterPassword.Value()
	m.wrongPassword = false
	m.bannerTicks = 0
	m.keyboard.Reset()
	m.focus.Set(ui.FieldNone)

	attempt := m.attempt
	yield := tea.Tick(m.cfg.UnlockYield(), func(time.Time) tea.Msg {
		return unlockStartMsg{attempt: attempt}
	})
	return tea.Batch(m.applyFocus(), m.spinner.Tick, yield)
}

// startUnlock runs CreateSession for the live attempt in a command.
func (m *home) startUnlock(msg unlockStartMsg) tea.Cmd {
	if msg.attempt != m.attempt || m.state != session.StateUnlocking {
		return nil
	}
	engine, password := m.engine, m.pendingPassword
	return func() tea.Msg {
		s, err := engine.CreateSession(password)
		return unlockResultMsg{attempt: msg.attempt, session: s, err: err}
	}
}

// finishUnlock applies an unlock result. Results for abandoned attempts are
// dropped and their sessions closed.
func (m *home) finishUnlock(msg unlockResultMsg) tea.Cmd {
	if msg.attempt != m.attempt || m.state != session.StateUnlocking {
		if msg.session != nil {
			if err := msg.session.Close(); err != nil {
				log.WarningLog.Printf("close abandoned session: %v", err)
			}
		}
		return nil
	}
	m.pendingPassword = ""

	if msg.err != nil {
		m.transition(session.UnlockFailed)
		m.wrongPassword = true
		m.masterPassword.Clear()
		var cmd tea.Cmd
		if !errors.Is(msg.err, vault.ErrInvalidPassword) {
			log.ErrorLog.Printf("unlock failed: %v", msg.err)
			m.toastManager.Error("Could not open the vault")
			cmd = m.toastTickCmd()
		}
		m.focus.Set(ui.FieldMasterPassword)
		return tea.Batch(cmd, m.applyFocus())
	}

	m.transition(session.Unlocked)
	m.vs = msg.session
	m.vaultExists = true
	m.masterPassword.Clear()
	m.masterRepeat.Clear()
	m.refreshAliases()
	m.resetForm()
	m.focus.Set(ui.FieldAlias)
	return m.applyFocus()
}

// armLock starts the lock timer when the terminal loses focus. Arming
// replaces any live arming, so repeated blurs never stack.
func (m *home) armLock() tea.Cmd {
	if !m.state.Protected() {
		return nil
	}
	return m.lockTimer.Arm()
}

// lock returns to New, discarding the session and every credential. An
// in-flight unlock is abandoned.
func (m *home) lock() {
	if !m.state.Protected() || !m.transition(session.Lock) {
		return
	}
	m.lockTimer.Cancel()
	m.attempt++
	m.pendingPassword = ""
	if m.vs != nil {
		if err := m.vs.Close(); err != nil {
			log.WarningLog.Printf("close session: %v", err)
		}
		m.vs = nil
	}
	m.masterPassword.Clear()
	m.masterRepeat.Clear()
	m.alias.SetCandidates(nil)
	m.resetForm()
	m.derived = ""
	m.wrongPassword = false
	m.keyboard.Reset()
	m.toastManager.Clear()
	m.vaultExists = m.engine.VaultExists()
	m.focus.Set(ui.FieldMasterPassword)
}

// refreshAliases hands the combobox a fresh snapshot of the known aliases.
func (m *home) refreshAliases() {
	if m.vs == nil {
		m.alias.SetCandidates(nil)
		return
	}
	m.alias.SetCandidates(m.vs.ListAliases())
}

// resetForm clears the alias and secret and restores the default options.
func (m *home) resetForm() {
	m.alias.Clear()
	m.secret.SetDisabled(false)
	m.secret.Clear()
	m.opts.Reset()
}

// reconcile recomputes the options after the alias text changed.
func (m *home) reconcile(text string, known bool) {
	if m.vs == nil {
		known = false
	}
	m.opts.Reconcile(text, known, m.vs)
	m.secret.SetDisabled(!m.opts.UsesSecret)
	m.derived = ""
}

// onAliasEvent applies a combobox event within the same update.
func (m *home) onAliasEvent(ev ui.ComboEvent) tea.Cmd {
	if ev.TextChanged() {
		m.reconcile(ev.Text, ev.Known)
	}
	if ev.Kind == ui.ComboSubmit {
		return m.submit()
	}
	return nil
}

// submit is the form's Enter action.
func (m *home) submit() tea.Cmd {
	switch m.state {
	case session.StateNew:
		return m.login()
	case session.StateInitialized:
		return m.process()
	}
	return nil
}

// visibleFields lists the fields of the current form in tab order.
func (m *home) visibleFields() []ui.FieldID {
	switch m.state {
	case session.StateNew:
		if m.vaultExists {
			return []ui.FieldID{ui.FieldMasterPassword}
		}
		return []ui.FieldID{ui.FieldMasterPassword, ui.FieldMasterPasswordRepeat}
	case session.StateInitialized:
		if m.secret.Disabled() {
			return []ui.FieldID{ui.FieldAlias}
		}
		return []ui.FieldID{ui.FieldAlias, ui.FieldSecret}
	}
	return nil
}

// cycleFocus moves focus delta steps through the visible fields.
func (m *home) cycleFocus(delta int) tea.Cmd {
	fields := m.visibleFields()
	if len(fields) == 0 {
		return nil
	}
	idx := -1
	for i, id := range fields {
		if m.focus.Is(id) {
			idx = i
		}
	}
	switch {
	case idx < 0 && delta < 0:
		idx = len(fields) - 1
	case idx < 0:
		idx = 0
	default:
		idx = (idx + delta + len(fields)) % len(fields)
	}
	m.focus.Set(fields[idx])
	return m.applyFocus()
}

func (m *home) secretFields() map[ui.FieldID]*ui.SecretField {
	return map[ui.FieldID]*ui.SecretField{
		ui.FieldMasterPassword:       m.masterPassword,
		ui.FieldMasterPasswordRepeat: m.masterRepeat,
		ui.FieldSecret:               m.secret,
	}
}

// applyFocus syncs the widgets with the coordinator.
func (m *home) applyFocus() tea.Cmd {
	cur := m.focus.Current()
	var cmds []tea.Cmd
	for id, f := range m.secretFields() {
		if id != cur {
			f.Blur()
			continue
		}
		if !f.Focused() {
			cmds = append(cmds, f.Focus())
		}
	}
	switch {
	case cur == ui.FieldAlias && !m.alias.Focused():
		cmds = append(cmds, m.alias.Focus())
	case cur != ui.FieldAlias && m.alias.Focused():
		m.alias.Blur()
		m.dropdownHover = false
	}
	return tea.Batch(cmds...)
}
