package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	keyQ     = SlotPos{Row: 2, Col: 0}
	keyW     = SlotPos{Row: 2, Col: 1}
	keySpace = SlotPos{Row: 0, Col: 7}
	keyBack  = SlotPos{Row: 0, Col: 8}
	keyEmpty = SlotPos{Row: 0, Col: 9}
)

// fire delivers the keyboard's live debounce tick.
func fire(k *Keyboard) []Edit {
	return k.Fire(TimerFiredMsg{ID: k.timer.ID(), Tag: k.timer.tag})
}

func applyAll(s string, edits []Edit) string {
	for _, e := range edits {
		s = e.Apply(s)
	}
	return s
}

func TestKeyboard_LayoutHasSpecialKeys(t *testing.T) {
	assert.Equal(t, SlotSpace, SlotAt(keySpace).Kind)
	assert.Equal(t, SlotBackspace, SlotAt(keyBack).Kind)
	assert.Equal(t, SlotEmpty, SlotAt(keyEmpty).Kind)
	assert.Equal(t, SlotEmpty, SlotAt(SlotPos{Row: 9, Col: 0}).Kind)
}

func TestKeyboard_DebounceCommitPrimary(t *testing.T) {
	k := NewKeyboard(time.Second)

	edits, cmd := k.Press(keyQ)
	assert.Empty(t, edits)
	require.NotNil(t, cmd)

	edits = fire(k)
	assert.Equal(t, []Edit{{Op: EditAppend, Char: 'q'}}, edits)
	_, pending := k.Pending()
	assert.False(t, pending)
}

func TestKeyboard_DebounceCommitSecondary(t *testing.T) {
	k := NewKeyboard(time.Second)
	k.Press(keyQ)
	edits, cmd := k.Press(keyQ)
	assert.Empty(t, edits)
	require.NotNil(t, cmd)

	assert.Equal(t, []Edit{{Op: EditAppend, Char: 'Q'}}, fire(k))
}

func TestKeyboard_ThirdTapCyclesBack(t *testing.T) {
	k := NewKeyboard(time.Second)
	k.Press(keyQ)
	k.Press(keyQ)
	k.Press(keyQ)
	r, ok := k.Pending()
	require.True(t, ok)
	assert.Equal(t, 'q', r)
}

func TestKeyboard_CommitOnSwitch(t *testing.T) {
	k := NewKeyboard(time.Second)
	k.Press(keyQ)
	k.Press(keyQ)

	edits, _ := k.Press(keyW)
	assert.Equal(t, []Edit{{Op: EditAppend, Char: 'Q'}}, edits)
	r, ok := k.Pending()
	require.True(t, ok)
	assert.Equal(t, 'w', r)
}

func TestKeyboard_StaleTickAfterSwitchIsIgnored(t *testing.T) {
	k := NewKeyboard(time.Second)
	k.Press(keyQ)
	stale := TimerFiredMsg{ID: k.timer.ID(), Tag: k.timer.tag}
	k.Press(keyW)

	assert.Nil(t, k.Fire(stale))
	assert.Equal(t, []Edit{{Op: EditAppend, Char: 'w'}}, fire(k))
}

func TestKeyboard_SpaceCommitsImmediately(t *testing.T) {
	k := NewKeyboard(time.Second)

	edits, cmd := k.Press(keySpace)
	assert.Nil(t, cmd)
	assert.Equal(t, []Edit{{Op: EditAppend, Char: ' '}}, edits)

	k.Press(keyQ)
	edits, _ = k.Press(keySpace)
	assert.Equal(t, "q ", applyAll("", edits))
	_, pending := k.Pending()
	assert.False(t, pending)
	assert.False(t, k.timer.Armed())
}

func TestKeyboard_BackspaceDropsPending(t *testing.T) {
	k := NewKeyboard(time.Second)
	k.Press(keyQ)
	edits, cmd := k.Press(keyBack)
	assert.Nil(t, cmd)
	assert.Equal(t, []Edit{{Op: EditDeleteLast}}, edits)
	assert.False(t, k.timer.Armed())
	assert.Nil(t, fire(k))
}

func TestKeyboard_EmptySlotIsNoop(t *testing.T) {
	k := NewKeyboard(time.Second)
	k.Press(keyQ)
	edits, cmd := k.Press(keyEmpty)
	assert.Nil(t, edits)
	assert.Nil(t, cmd)
	_, pending := k.Pending()
	assert.True(t, pending)
}

func TestEdit_Apply(t *testing.T) {
	assert.Equal(t, "ab", Edit{Op: EditAppend, Char: 'b'}.Apply("a"))
	assert.Equal(t, "pâ", Edit{Op: EditDeleteLast}.Apply("pât"))
	assert.Equal(t, "", Edit{Op: EditDeleteLast}.Apply(""))
}

func TestKeyboard_ViewShowsPendingGlyph(t *testing.T) {
	k := NewKeyboard(time.Second)
	k.Press(keyQ)
	k.Press(keyQ)
	assert.Contains(t, k.View(), "Q")
}
