package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyQuit KeyName = iota
	KeyHelp         // Key for showing the help overlay
	KeyLock         // Key for locking the vault immediately

	KeyNextField // Tab cycles focus through the form fields
	KeyPrevField

	KeySubmit // Enter unlocks or processes, depending on the form

	KeyCycleHandle  // Cycles the alias handle: store / don't store / remove
	KeyCycleCharset // Cycles the charset of an unknown alias

	KeyToggleOptions  // Shows or hides the options panel
	KeyToggleKeyboard // Shows or hides the on-screen keyboard

	KeyCopy // Copies the derived password to the clipboard
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
// Form fields consume printable keys and the arrows, so every global binding
// is a control or function key.
var GlobalKeyStringsMap = map[string]KeyName{
	"ctrl+c":    KeyQuit,
	"f1":        KeyHelp,
	"ctrl+l":    KeyLock,
	"tab":       KeyNextField,
	"shift+tab": KeyPrevField,
	"enter":     KeySubmit,
	"ctrl+t":    KeyCycleHandle,
	"ctrl+g":    KeyCycleCharset,
	"ctrl+o":    KeyToggleOptions,
	"ctrl+k":    KeyToggleKeyboard,
	"ctrl+y":    KeyCopy,
}

// GlobalkeyBindings is a global, immutable map of KeyName tot keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	KeyHelp: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "help"),
	),
	KeyLock: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "lock"),
	),
	KeyNextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	KeyPrevField: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
	KeySubmit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("↵", "submit"),
	),
	KeyCycleHandle: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "alias handling"),
	),
	KeyCycleCharset: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "charset"),
	),
	KeyToggleOptions: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "options"),
	),
	KeyToggleKeyboard: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "keyboard"),
	),
	KeyCopy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy password"),
	),
}

// Lookup returns the KeyName bound to the key string s.
func Lookup(s string) (KeyName, bool) {
	name, ok := GlobalKeyStringsMap[s]
	return name, ok
}
