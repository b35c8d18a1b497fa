package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FieldID identifies a focusable element of the form.
type FieldID int

const (
	// FieldNone means nothing holds focus.
	FieldNone FieldID = iota
	FieldMasterPassword
	FieldMasterPasswordRepeat
	FieldAlias
	FieldSecret
	// FieldAnchor is a neutral, non-editable resting place for focus.
	FieldAnchor
)

func (f FieldID) String() string {
	switch f {
	case FieldNone:
		return "none"
	case FieldMasterPassword:
		return "master-password"
	case FieldMasterPasswordRepeat:
		return "master-password-repeat"
	case FieldAlias:
		return "alias"
	case FieldSecret:
		return "secret"
	case FieldAnchor:
		return "anchor"
	default:
		return "unknown"
	}
}

// Editable reports whether the field accepts text edits.
func (f FieldID) Editable() bool {
	switch f {
	case FieldMasterPassword, FieldMasterPasswordRepeat, FieldAlias, FieldSecret:
		return true
	}
	return false
}

// reclaimDelay is one render frame: long enough for the platform's own
// focus pass to finish first.
const reclaimDelay = time.Second / 60

// FocusReclaimMsg asks the coordinator to hand focus back to a field.
type FocusReclaimMsg struct {
	tag int
}

// FocusCoordinator tracks which field holds input focus. It only deals in
// FieldID values; the owner maps them to widgets.
type FocusCoordinator struct {
	current  FieldID
	pending  FieldID
	lastEdit FieldID
	tag      int
	touch    bool
	onChange func(prev, next FieldID)
}

// NewFocusCoordinator returns a coordinator with nothing focused. On touch
// platforms focus is reclaimed after one frame instead of immediately.
func NewFocusCoordinator(touch bool) *FocusCoordinator {
	return &FocusCoordinator{touch: touch}
}

// OnChange registers fn to run whenever focus moves to a different field.
func (f *FocusCoordinator) OnChange(fn func(prev, next FieldID)) {
	f.onChange = fn
}

// Set moves focus to id and drops any pending reclaim.
func (f *FocusCoordinator) Set(id FieldID) {
	f.pending = FieldNone
	f.tag++
	if id == f.current {
		return
	}
	prev := f.current
	f.current = id
	if id.Editable() {
		f.lastEdit = id
	}
	if f.onChange != nil {
		f.onChange(prev, id)
	}
}

// Current returns the focused field.
func (f *FocusCoordinator) Current() FieldID {
	return f.current
}

// Is reports whether id holds focus.
func (f *FocusCoordinator) Is(id FieldID) bool {
	return f.current == id
}

// FocusOut handles focus leaving the current field towards target. An
// editable or anchor target simply takes focus. Any other target (a key of
// the on-screen keyboard, blank space) cannot hold focus, so the previous
// field reclaims it: immediately on desktop, after one frame on touch.
func (f *FocusCoordinator) FocusOut(target FieldID) tea.Cmd {
	if target != FieldNone {
		f.Set(target)
		return nil
	}
	if !f.current.Editable() || !f.touch {
		return nil
	}
	prev := f.current
	f.current = FieldNone
	f.pending = prev
	f.tag++
	tag := f.tag
	return tea.Tick(reclaimDelay, func(time.Time) tea.Msg {
		return FocusReclaimMsg{tag: tag}
	})
}

// Reclaim restores the pending field if msg is the live reclaim request.
func (f *FocusCoordinator) Reclaim(msg FocusReclaimMsg) bool {
	if msg.tag != f.tag || f.pending == FieldNone {
		return false
	}
	target := f.pending
	f.pending = FieldNone
	f.current = target
	return true
}

// EditTarget returns the field on-screen keyboard edits go to: the focused
// field, or the field about to reclaim focus. While the anchor holds focus,
// edits keep going to the last edited field.
func (f *FocusCoordinator) EditTarget() FieldID {
	switch {
	case f.pending != FieldNone:
		return f.pending
	case f.current == FieldAnchor:
		return f.lastEdit
	}
	return f.current
}

// Reset clears focus without firing OnChange.
func (f *FocusCoordinator) Reset() {
	f.current = FieldNone
	f.pending = FieldNone
	f.lastEdit = FieldNone
	f.tag++
}
