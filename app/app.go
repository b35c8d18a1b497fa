package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/uvizhe/psh-gui/config"
	"github.com/uvizhe/psh-gui/session"
	"github.com/uvizhe/psh-gui/ui"
	"github.com/uvizhe/psh-gui/ui/overlay"
	"github.com/uvizhe/psh-gui/vault"
)

// formWidth is the width of the centered form column.
const formWidth = 44

// Run is the main entrypoint into the application.
func Run(ctx context.Context, cfg *config.Config, engine vault.Engine) error {
	// Paint the terminal's default background with the theme base color so
	// ANSI resets fall back to it instead of black.
	restore := ui.SetTerminalBackground(string(ui.ColorBase))
	defer restore()

	zone.NewGlobal()
	m := newHome(ctx, cfg, engine)
	// Ask the terminal before the program owns stdin.
	m.markdownStyle = overlay.MarkdownStyle()
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(), // hover for the dropdown, clicks everywhere
		tea.WithReportFocus(),    // blur arms the lock timer
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}

type home struct {
	ctx context.Context

	// -- Configuration and engine --

	cfg    *config.Config
	engine vault.Engine

	// -- Session --

	// state is the session lifecycle state.
	state session.State
	// vs is the live vault session. It is non-nil only in StateInitialized.
	vs vault.Session
	// attempt identifies the in-flight unlock; results for older attempts
	// are discarded.
	attempt int
	// pendingPassword is the credential being verified while unlocking.
	pendingPassword string
	vaultExists     bool
	wrongPassword   bool

	// -- Form --

	masterPassword *ui.SecretField
	masterRepeat   *ui.SecretField
	alias          *ui.Combobox
	secret         *ui.SecretField
	opts           session.Options
	// derived is the last derived password shown under the form.
	derived string

	focus    *ui.FocusCoordinator
	keyboard *ui.Keyboard

	// -- Timers --

	lockTimer *ui.Timer
	clipTimer *ui.Timer
	// copied is the value this program last put on the clipboard.
	copied string

	// -- UI Components --

	toastManager *overlay.ToastManager
	toastTicking bool
	// global spinner instance, shown while unlocking
	spinner     spinner.Model
	bannerTicks int
	helpOverlay *overlay.TextOverlay
	// markdownStyle is the glamour style for the help overlay.
	markdownStyle string

	optionsPanel  ui.Collapsible
	keyboardPanel ui.Collapsible
	handleSwitch  ui.Triswitch
	charsetSwitch ui.Triswitch

	// dropdownHover is true while the pointer is over the alias dropdown.
	dropdownHover bool

	termWidth  int
	termHeight int
}

func newHome(ctx context.Context, cfg *config.Config, engine vault.Engine) *home {
	m := &home{
		ctx:            ctx,
		cfg:            cfg,
		engine:         engine,
		state:          session.StateNew,
		vaultExists:    engine.VaultExists(),
		masterPassword: ui.NewSecretField("Enter master password..."),
		masterRepeat:   ui.NewSecretField("Repeat master password..."),
		alias:          ui.NewCombobox("Enter alias..."),
		secret:         ui.NewSecretField("Enter secret..."),
		opts:           session.DefaultOptions(),
		focus:          ui.NewFocusCoordinator(cfg.Touch),
		keyboard:       ui.NewKeyboard(cfg.Debounce()),
		lockTimer:      ui.NewTimer(cfg.LockTimeout()),
		clipTimer:      ui.NewTimer(cfg.ClipboardClear()),
		spinner:        spinner.New(spinner.WithSpinner(spinner.Dot)),
		markdownStyle:  "dark",
		optionsPanel: ui.Collapsible{
			ZoneID: ui.ZoneOptionsToggle,
			Title:  "Options",
		},
		keyboardPanel: ui.Collapsible{
			ZoneID: ui.ZoneKeyboardToggle,
			Title:  "Keyboard",
			Open:   cfg.KeyboardVisible(),
		},
		handleSwitch: ui.Triswitch{
			Name:  "alias-handle",
			Title: "How to handle alias",
		},
		charsetSwitch: ui.Triswitch{
			Name:  "charset",
			Title: "Character set to use",
		},
	}
	for i, h := range session.AliasHandles {
		m.handleSwitch.Labels[i] = h.String()
	}
	for i, cs := range vault.CharSets {
		m.charsetSwitch.Labels[i] = cs.String()
	}
	m.toastManager = overlay.NewToastManager()
	m.focus.OnChange(m.onFocusChange)
	m.resize(formWidth)
	return m
}

// onFocusChange clears the derived password once the user moves on to
// another input. Parking focus on the anchor keeps it visible.
func (m *home) onFocusChange(_, next ui.FieldID) {
	if next.Editable() {
		m.derived = ""
	}
}

func (m *home) resize(width int) {
	inner := width - 4
	m.masterPassword.SetWidth(inner)
	m.masterRepeat.SetWidth(inner)
	m.alias.SetWidth(inner)
	m.secret.SetWidth(inner)
}

func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) {
	m.termWidth = msg.Width
	m.termHeight = msg.Height
	m.toastManager.SetSize(msg.Width, msg.Height)
	m.resize(min(formWidth, max(16, msg.Width-2)))
}

func (m *home) Init() tea.Cmd {
	m.focus.Set(ui.FieldMasterPassword)
	return m.applyFocus()
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.updateHandleWindowSizeEvent(msg)
		return m, nil
	case tea.BlurMsg:
		return m, m.armLock()
	case tea.FocusMsg:
		// Unconditional: cancelling a disarmed timer is a no-op.
		m.lockTimer.Cancel()
		return m, nil
	case ui.TimerFiredMsg:
		return m, m.handleTimer(msg)
	case ui.FocusReclaimMsg:
		if m.focus.Reclaim(msg) {
			return m, m.applyFocus()
		}
		return m, nil
	case unlockStartMsg:
		return m, m.startUnlock(msg)
	case unlockResultMsg:
		return m, m.finishUnlock(msg)
	case clipboardMsg:
		return m, m.handleClipboard(msg)
	case spinner.TickMsg:
		if m.state != session.StateUnlocking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.bannerTicks++
		return m, cmd
	case overlay.ToastTickMsg:
		m.toastTicking = false
		m.toastManager.Tick()
		return m, m.toastTickCmd()
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m *home) handleQuit() (tea.Model, tea.Cmd) {
	m.clearClipboardNow()
	m.lock()
	return m, tea.Quit
}

// handleTimer routes a timer message to the timer that armed it.
func (m *home) handleTimer(msg ui.TimerFiredMsg) tea.Cmd {
	switch {
	case m.lockTimer.Fired(msg):
		m.lock()
		return m.applyFocus()
	case m.clipTimer.Fired(msg):
		return m.clearClipboardCmd()
	default:
		return m.applyEdits(m.keyboard.Fire(msg))
	}
}

// unlockStartMsg is delivered after the unlock yield so the spinner has
// painted before the key derivation starts.
type unlockStartMsg struct {
	attempt int
}

// unlockResultMsg carries the outcome of Engine.CreateSession.
type unlockResultMsg struct {
	attempt int
	session vault.Session
	err     error
}

// clipboardMsg reports a finished clipboard write.
type clipboardMsg struct {
	cleared bool
	err     error
}

// toastTickCmd starts the toast animation ticker unless it is running.
func (m *home) toastTickCmd() tea.Cmd {
	if m.toastTicking || !m.toastManager.HasActiveToasts() {
		return nil
	}
	m.toastTicking = true
	return tea.Tick(overlay.TickInterval, func(time.Time) tea.Msg {
		return overlay.ToastTickMsg{}
	})
}
