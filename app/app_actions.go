package app

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/uvizhe/psh-gui/log"
	"github.com/uvizhe/psh-gui/session"
	"github.com/uvizhe/psh-gui/ui"
	"github.com/uvizhe/psh-gui/vault"
)

// Clipboard access is swappable so tests never touch the real clipboard.
var (
	clipboardWrite = clipboard.WriteAll
	clipboardRead  = clipboard.ReadAll
)

// A missing clipboard fails on every copy; one log line a minute is enough.
var clipboardErrLog = log.NewEvery(time.Minute)

// canProcess reports whether the Process button is enabled.
func (m *home) canProcess() bool {
	return m.state == session.StateInitialized && m.vs != nil &&
		m.opts.CanProcess(m.alias.Value(), m.secret.Value())
}

// process commits the current alias: it removes it, or derives its password
// and stores it when it is new. Either way the form is reset and focus is
// parked on the anchor.
func (m *home) process() tea.Cmd {
	if !m.canProcess() {
		return nil
	}
	alias := strings.TrimSpace(m.alias.Value())

	if m.opts.Handle == session.HandleRemove {
		if err := m.vs.RemoveAlias(alias); err != nil {
			log.ErrorLog.Printf("remove alias: %v", err)
			m.toastManager.Error("Failed to remove alias")
			return m.toastTickCmd()
		}
		m.refreshAliases()
		m.derived = ""
		m.toastManager.Success("Alias removed")
	} else {
		secret := m.opts.SecretArgument(m.secret.Value())
		m.derived = m.vs.DeriveSecret(alias, secret, m.opts.Charset)
		if !m.alias.Known(alias) && m.opts.Handle == session.HandleStore {
			if err := m.vs.AppendAlias(alias, secret != "", m.opts.Charset); err != nil {
				log.ErrorLog.Printf("append alias: %v", err)
				m.toastManager.Error("Failed to save alias")
			} else {
				m.refreshAliases()
			}
		}
	}

	m.resetForm()
	m.keyboard.Reset()
	m.focus.Set(ui.FieldAnchor)
	return tea.Batch(m.applyFocus(), m.toastTickCmd())
}

// applyEdits routes on-screen keyboard edits to the field that owns keyboard
// input, then runs the same derived-state updates as typed text.
func (m *home) applyEdits(edits []ui.Edit) tea.Cmd {
	if len(edits) == 0 {
		return nil
	}
	target := m.focus.EditTarget()
	var cmds []tea.Cmd
	for _, e := range edits {
		switch target {
		case ui.FieldMasterPassword:
			m.masterPassword.SetValue(e.Apply(m.masterPassword.Value()))
			m.wrongPassword = false
		case ui.FieldMasterPasswordRepeat:
			m.masterRepeat.SetValue(e.Apply(m.masterRepeat.Value()))
		case ui.FieldAlias:
			ev := m.alias.SetValue(e.Apply(m.alias.Value()))
			cmds = append(cmds, m.onAliasEvent(ev))
		case ui.FieldSecret:
			m.secret.SetValue(e.Apply(m.secret.Value()))
		}
	}
	return tea.Batch(cmds...)
}

// pressKey handles a tap on the on-screen keyboard. The keyboard cannot hold
// focus, so the previously focused field reclaims it.
func (m *home) pressKey(pos ui.SlotPos) tea.Cmd {
	edits, timerCmd := m.keyboard.Press(pos)
	reclaim := m.focus.FocusOut(ui.FieldNone)
	return tea.Batch(m.applyEdits(edits), timerCmd, reclaim, m.applyFocus())
}

// setHandle applies a manual alias handle pick.
func (m *home) setHandle(h session.AliasHandle) {
	if m.state != session.StateInitialized {
		return
	}
	m.opts.SetHandle(h)
}

// setCharset applies a manual charset pick.
func (m *home) setCharset(cs vault.CharSet) {
	if m.state != session.StateInitialized {
		return
	}
	m.opts.SetCharset(cs)
}

// toggleKeyboard shows or hides the on-screen keyboard. Hiding it drops any
// pending glyph.
func (m *home) toggleKeyboard() {
	if !m.keyboardPanel.Toggle() {
		m.keyboard.Reset()
	}
}

// copyDerived puts the derived password on the clipboard and arms the
// clipboard clear timer.
func (m *home) copyDerived() tea.Cmd {
	if m.derived == "" {
		m.toastManager.Info("Nothing to copy")
		return m.toastTickCmd()
	}
	value := m.derived
	m.copied = value
	var clearCmd tea.Cmd
	if m.cfg.ClipboardClear() > 0 {
		clearCmd = m.clipTimer.Arm()
	}
	write := func() tea.Msg {
		return clipboardMsg{err: clipboardWrite(value)}
	}
	return tea.Batch(write, clearCmd)
}

// clearClipboardCmd empties the clipboard if it still holds our value.
func (m *home) clearClipboardCmd() tea.Cmd {
	value := m.copied
	if value == "" {
		return nil
	}
	m.copied = ""
	return func() tea.Msg {
		current, err := clipboardRead()
		if err != nil {
			return clipboardMsg{cleared: true, err: err}
		}
		if current != value {
			return nil
		}
		return clipboardMsg{cleared: true, err: clipboardWrite("")}
	}
}

func (m *home) handleClipboard(msg clipboardMsg) tea.Cmd {
	switch {
	case msg.err != nil:
		if clipboardErrLog.ShouldLog() {
			log.ErrorLog.Printf("clipboard: %v", msg.err)
		}
		m.toastManager.Error("Clipboard unavailable")
	case msg.cleared:
		m.toastManager.Info("Clipboard cleared")
	default:
		m.toastManager.Success("Password copied")
	}
	return m.toastTickCmd()
}

// clearClipboardNow is the synchronous variant used on quit, when no
// command can run anymore.
func (m *home) clearClipboardNow() {
	if m.copied == "" {
		return
	}
	m.clipTimer.Cancel()
	if current, err := clipboardRead(); err == nil && current == m.copied {
		if err := clipboardWrite(""); err != nil {
			log.WarningLog.Printf("clipboard: %v", err)
		}
	}
	m.copied = ""
}
