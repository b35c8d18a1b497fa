package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
)

// ComboEventKind says what an input did to the combobox.
type ComboEventKind int

const (
	// ComboNone: navigation only, the text is unchanged.
	ComboNone ComboEventKind = iota
	// ComboChanged: the text was edited.
	ComboChanged
	// ComboCommitted: a dropdown candidate became the text.
	ComboCommitted
	// ComboSubmit: Enter with nothing selected; the form should submit.
	ComboSubmit
)

// ComboEvent is returned synchronously from every combobox input so the owner
// can recompute derived state within the same update.
type ComboEvent struct {
	Kind  ComboEventKind
	Text  string
	Known bool
}

// TextChanged reports whether the event changed the text.
func (e ComboEvent) TextChanged() bool {
	return e.Kind == ComboChanged || e.Kind == ComboCommitted
}

// maxDropdownRows caps how many matches are rendered.
const maxDropdownRows = 6

// Combobox is a text input with a filtered, navigable dropdown of candidates.
type Combobox struct {
	input              textinput.Model
	candidates         []string
	matches            []string
	selected           int
	open               bool
	suppressReopenOnce bool
	width              int
}

// NewCombobox returns an empty, unfocused combobox.
func NewCombobox(placeholder string) *Combobox {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	c := &Combobox{input: ti, selected: -1}
	c.refilter()
	return c
}

// SetWidth sets the rendered width of the field and dropdown.
func (c *Combobox) SetWidth(w int) {
	c.width = w
	c.input.Width = max(1, w-1)
}

// SetCandidates replaces the candidate list with a copy of list.
func (c *Combobox) SetCandidates(list []string) {
	c.candidates = slices.Clone(list)
	c.refilter()
}

// Value returns the current text.
func (c *Combobox) Value() string {
	return c.input.Value()
}

// Known reports whether text is one of the candidates.
func (c *Combobox) Known(text string) bool {
	return slices.Contains(c.candidates, text)
}

// Matches returns the candidates containing the current text.
func (c *Combobox) Matches() []string {
	return c.matches
}

// Selected returns the highlighted match index, or -1.
func (c *Combobox) Selected() int {
	return c.selected
}

// IsOpen reports whether the dropdown is shown.
func (c *Combobox) IsOpen() bool {
	return c.open
}

// Focused reports whether the input has focus.
func (c *Combobox) Focused() bool {
	return c.input.Focused()
}

// Focus focuses the input and opens the dropdown.
func (c *Combobox) Focus() tea.Cmd {
	c.open = true
	return c.input.Focus()
}

// Blur removes focus and closes the dropdown.
func (c *Combobox) Blur() {
	c.input.Blur()
	c.open = false
	c.selected = -1
}

// Clear empties the text without reopening the dropdown.
func (c *Combobox) Clear() {
	c.input.SetValue("")
	c.selected = -1
	c.suppressReopenOnce = false
	c.refilter()
}

// SetValue replaces the text as if the user had typed it.
func (c *Combobox) SetValue(text string) ComboEvent {
	c.input.SetValue(text)
	c.input.CursorEnd()
	c.selected = -1
	return c.textChanged(ComboChanged)
}

// refilter recomputes matches, keeping the selection only while the selected
// entry is still present.
func (c *Combobox) refilter() {
	var prev string
	hadSelection := c.selected >= 0 && c.selected < len(c.matches)
	if hadSelection {
		prev = c.matches[c.selected]
	}

	text := c.input.Value()
	matches := make([]string, 0, len(c.candidates))
	for _, cand := range c.candidates {
		if strings.Contains(cand, text) {
			matches = append(matches, cand)
		}
	}
	c.matches = matches

	c.selected = -1
	if hadSelection {
		c.selected = slices.Index(c.matches, prev)
	}
}

// textChanged runs after every text change: refilter, then reopen unless the
// change came from a selection commit.
func (c *Combobox) textChanged(kind ComboEventKind) ComboEvent {
	c.refilter()
	if c.suppressReopenOnce {
		c.suppressReopenOnce = false
	} else {
		c.open = true
	}
	text := c.input.Value()
	return ComboEvent{Kind: kind, Text: text, Known: c.Known(text)}
}

func (c *Combobox) commit(idx int) ComboEvent {
	if idx < 0 || idx >= len(c.matches) {
		return ComboEvent{Kind: ComboNone, Text: c.Value(), Known: c.Known(c.Value())}
	}
	c.input.SetValue(c.matches[idx])
	c.input.CursorEnd()
	c.open = false
	c.suppressReopenOnce = true
	c.selected = -1
	return c.textChanged(ComboCommitted)
}

// ArrowDown moves the selection down, wrapping to the first match.
func (c *Combobox) ArrowDown() {
	if len(c.matches) == 0 {
		return
	}
	c.open = true
	if c.selected < 0 {
		c.selected = 0
		return
	}
	c.selected = (c.selected + 1) % len(c.matches)
}

// ArrowUp moves the selection up, wrapping to the last match.
func (c *Combobox) ArrowUp() {
	if len(c.matches) == 0 {
		return
	}
	c.open = true
	if c.selected <= 0 {
		c.selected = len(c.matches) - 1
		return
	}
	c.selected--
}

// Escape clears the selection if there is one, otherwise closes the dropdown.
func (c *Combobox) Escape() {
	if c.selected >= 0 {
		c.selected = -1
		return
	}
	c.open = false
}

// Enter commits the selected match, or asks the form to submit.
func (c *Combobox) Enter() ComboEvent {
	if c.selected >= 0 {
		return c.commit(c.selected)
	}
	text := c.Value()
	return ComboEvent{Kind: ComboSubmit, Text: text, Known: c.Known(text)}
}

// Hover highlights the match under the pointer.
func (c *Combobox) Hover(idx int) {
	if idx < 0 || idx >= len(c.matches) {
		return
	}
	c.selected = idx
}

// LeaveDropdown clears a pointer highlight.
func (c *Combobox) LeaveDropdown() {
	c.selected = -1
}

// Click commits the match at idx exactly like Enter.
func (c *Combobox) Click(idx int) ComboEvent {
	return c.commit(idx)
}

// Update handles a key press while the combobox is focused.
func (c *Combobox) Update(msg tea.KeyMsg) (ComboEvent, tea.Cmd) {
	switch msg.Type {
	case tea.KeyDown:
		c.ArrowDown()
		return ComboEvent{Kind: ComboNone, Text: c.Value(), Known: c.Known(c.Value())}, nil
	case tea.KeyUp:
		c.ArrowUp()
		return ComboEvent{Kind: ComboNone, Text: c.Value(), Known: c.Known(c.Value())}, nil
	case tea.KeyEsc:
		c.Escape()
		return ComboEvent{Kind: ComboNone, Text: c.Value(), Known: c.Known(c.Value())}, nil
	case tea.KeyEnter:
		return c.Enter(), nil
	}

	before := c.input.Value()
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	c.selected = -1
	c.open = true
	if c.input.Value() == before {
		return ComboEvent{Kind: ComboNone, Text: before, Known: c.Known(before)}, cmd
	}
	return c.textChanged(ComboChanged), cmd
}

// DropdownIndexAt returns the match index under a mouse event and whether the
// pointer is over the dropdown at all.
func (c *Combobox) DropdownIndexAt(msg tea.MouseMsg) (idx int, inDropdown bool) {
	if !c.open {
		return -1, false
	}
	start, end := c.visibleRange()
	for i := start; i < end; i++ {
		if zone.Get(DropdownItemZoneID(i)).InBounds(msg) {
			return i, true
		}
	}
	return -1, zone.Get(ZoneAliasDropdown).InBounds(msg)
}

// visibleRange returns the window of matches to render, scrolled so the
// selection is always shown.
func (c *Combobox) visibleRange() (start, end int) {
	n := len(c.matches)
	if n <= maxDropdownRows {
		return 0, n
	}
	if c.selected >= maxDropdownRows {
		start = c.selected - maxDropdownRows + 1
	}
	return start, start + maxDropdownRows
}

// View renders the input field.
func (c *Combobox) View() string {
	return c.input.View()
}

// DropdownView renders the open dropdown, or "" when closed or empty.
func (c *Combobox) DropdownView() string {
	start, end := c.visibleRange()
	if !c.open || start == end {
		return ""
	}
	inner := max(4, c.width)
	rows := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		style := dropdownItemStyle
		if i == c.selected {
			style = dropdownSelectedStyle
		}
		label := ansi.Truncate(c.matches[i], inner-2, "…")
		rows = append(rows, zone.Mark(DropdownItemZoneID(i), style.Width(inner).Render(label)))
	}
	if hidden := len(c.matches) - (end - start); hidden > 0 {
		rows = append(rows, dropdownItemStyle.Foreground(ColorMuted).Render(
			fmt.Sprintf("%d more", hidden)))
	}
	return zone.Mark(ZoneAliasDropdown, dropdownStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
}
