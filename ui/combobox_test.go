package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(t *testing.T, c *Combobox, s string) ComboEvent {
	t.Helper()
	var ev ComboEvent
	for _, r := range s {
		ev, _ = c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return ev
}

func newFocusedCombobox(candidates ...string) *Combobox {
	c := NewCombobox("alias")
	c.SetCandidates(candidates)
	c.Focus()
	return c
}

func TestCombobox_FiltersBySubstring(t *testing.T) {
	c := newFocusedCombobox("work", "home", "network")
	assert.Equal(t, []string{"work", "home", "network"}, c.Matches())

	ev := typeText(t, c, "wo")
	assert.Equal(t, ComboChanged, ev.Kind)
	assert.Equal(t, "wo", ev.Text)
	assert.False(t, ev.Known)
	assert.Equal(t, []string{"work", "network"}, c.Matches())
}

func TestCombobox_FilterIsCaseSensitive(t *testing.T) {
	c := newFocusedCombobox("Work")
	typeText(t, c, "wo")
	assert.Empty(t, c.Matches())
	assert.Equal(t, -1, c.Selected())
}

func TestCombobox_CyclicNavigation(t *testing.T) {
	c := newFocusedCombobox("a1", "a2", "a3", "a4")
	n := len(c.Matches())

	var seen []int
	for i := 0; i < n+1; i++ {
		c.Update(tea.KeyMsg{Type: tea.KeyDown})
		seen = append(seen, c.Selected())
	}
	assert.Equal(t, []int{0, 1, 2, 3, 0}, seen)
}

func TestCombobox_ArrowUpWraps(t *testing.T) {
	c := newFocusedCombobox("a1", "a2", "a3")

	c.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 2, c.Selected())
	c.Update(tea.KeyMsg{Type: tea.KeyUp})
	c.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, c.Selected())
	c.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 2, c.Selected())
}

func TestCombobox_NavigationWithoutMatchesIsNoop(t *testing.T) {
	c := newFocusedCombobox("work")
	typeText(t, c, "zzz")
	c.Update(tea.KeyMsg{Type: tea.KeyDown})
	c.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, -1, c.Selected())
}

func TestCombobox_RoundTrip(t *testing.T) {
	c := newFocusedCombobox("work", "home")
	typeText(t, c, "wo")
	require.Equal(t, []string{"work"}, c.Matches())

	c.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, c.Selected())

	ev, _ := c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ComboCommitted, ev.Kind)
	assert.Equal(t, "work", ev.Text)
	assert.True(t, ev.Known)
	assert.Equal(t, "work", c.Value())
	assert.False(t, c.IsOpen())
	assert.Equal(t, -1, c.Selected())
	assert.False(t, c.suppressReopenOnce)
}

func TestCombobox_EnterWithoutSelectionSubmits(t *testing.T) {
	c := newFocusedCombobox("work")
	typeText(t, c, "new")
	ev, _ := c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ComboSubmit, ev.Kind)
	assert.Equal(t, "new", c.Value())
}

func TestCombobox_EscapeClearsSelectionThenCloses(t *testing.T) {
	c := newFocusedCombobox("work", "home")
	c.Update(tea.KeyMsg{Type: tea.KeyDown})

	c.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, -1, c.Selected())
	assert.True(t, c.IsOpen())

	c.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, c.IsOpen())
}

func TestCombobox_TypingClearsSelectionAndReopens(t *testing.T) {
	c := newFocusedCombobox("work", "worker")
	c.Update(tea.KeyMsg{Type: tea.KeyDown})
	c.Update(tea.KeyMsg{Type: tea.KeyEsc})
	c.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, c.IsOpen())

	typeText(t, c, "w")
	assert.True(t, c.IsOpen())
	assert.Equal(t, -1, c.Selected())
}

func TestCombobox_NoReopenAfterCommitUntilNextEdit(t *testing.T) {
	c := newFocusedCombobox("work")
	ev := c.Click(0)
	assert.Equal(t, ComboCommitted, ev.Kind)
	assert.False(t, c.IsOpen())

	ev = typeText(t, c, "s")
	assert.Equal(t, "works", ev.Text)
	assert.True(t, c.IsOpen())
}

func TestCombobox_HoverAndLeave(t *testing.T) {
	c := newFocusedCombobox("work", "home")
	c.Hover(1)
	assert.Equal(t, 1, c.Selected())
	c.Hover(5)
	assert.Equal(t, 1, c.Selected())

	c.LeaveDropdown()
	assert.Equal(t, -1, c.Selected())

	c.Hover(1)
	ev, _ := c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "home", ev.Text)
}

func TestCombobox_SelectionSurvivesRefilterOnlyIfPresent(t *testing.T) {
	c := newFocusedCombobox("work", "home")
	c.Hover(1)

	c.SetCandidates([]string{"alpha", "home"})
	assert.Equal(t, 1, c.Selected())

	c.SetCandidates([]string{"alpha"})
	assert.Equal(t, -1, c.Selected())
}

func TestCombobox_SetCandidatesCopies(t *testing.T) {
	list := []string{"work"}
	c := newFocusedCombobox()
	c.SetCandidates(list)
	list[0] = "mutated"
	assert.True(t, c.Known("work"))
	assert.False(t, c.Known("mutated"))
}

func TestCombobox_BlurCloses(t *testing.T) {
	c := newFocusedCombobox("work")
	assert.True(t, c.IsOpen())
	c.Blur()
	assert.False(t, c.IsOpen())
	assert.False(t, c.Focused())
}

func TestCombobox_SetValueReportsKnown(t *testing.T) {
	c := newFocusedCombobox("work")
	ev := c.SetValue("work")
	assert.Equal(t, ComboChanged, ev.Kind)
	assert.True(t, ev.Known)
}

func TestCombobox_SetValueClearsSelection(t *testing.T) {
	c := newFocusedCombobox("work", "workshop")
	c.SetValue("wo")
	c.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 0, c.Selected())

	c.SetValue("wor")
	assert.Equal(t, -1, c.Selected(), "edits behave like typed keys")
	assert.Equal(t, []string{"work", "workshop"}, c.Matches())
	assert.True(t, c.IsOpen())
}

func TestCombobox_DropdownViewMarksSelection(t *testing.T) {
	c := newFocusedCombobox("work", "home")
	c.SetWidth(20)
	assert.Contains(t, c.DropdownView(), "home")

	c.Escape()
	c.Escape()
	assert.Empty(t, c.DropdownView())
}
