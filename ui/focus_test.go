package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFocusCoordinator_SetAndQuery(t *testing.T) {
	f := NewFocusCoordinator(false)
	assert.Equal(t, FieldNone, f.Current())

	var changes [][2]FieldID
	f.OnChange(func(prev, next FieldID) { changes = append(changes, [2]FieldID{prev, next}) })

	f.Set(FieldAlias)
	f.Set(FieldAlias)
	f.Set(FieldSecret)

	assert.True(t, f.Is(FieldSecret))
	assert.False(t, f.Is(FieldAlias))
	assert.Equal(t, [][2]FieldID{{FieldNone, FieldAlias}, {FieldAlias, FieldSecret}}, changes)
}

func TestFocusCoordinator_FocusOutDesktopKeepsField(t *testing.T) {
	f := NewFocusCoordinator(false)
	f.Set(FieldSecret)

	cmd := f.FocusOut(FieldNone)
	assert.Nil(t, cmd)
	assert.Equal(t, FieldSecret, f.Current())
	assert.Equal(t, FieldSecret, f.EditTarget())
}

func TestFocusCoordinator_FocusOutTouchReclaimsAfterDelay(t *testing.T) {
	f := NewFocusCoordinator(true)
	f.Set(FieldAlias)
	changed := 0
	f.OnChange(func(prev, next FieldID) { changed++ })

	cmd := f.FocusOut(FieldNone)
	require.NotNil(t, cmd)
	assert.Equal(t, FieldNone, f.Current())
	assert.Equal(t, FieldAlias, f.EditTarget())

	assert.True(t, f.Reclaim(FocusReclaimMsg{tag: f.tag}))
	assert.Equal(t, FieldAlias, f.Current())
	assert.Zero(t, changed)
}

func TestFocusCoordinator_SetCancelsPendingReclaim(t *testing.T) {
	f := NewFocusCoordinator(true)
	f.Set(FieldAlias)
	f.FocusOut(FieldNone)
	msg := FocusReclaimMsg{tag: f.tag}

	f.Set(FieldSecret)
	assert.False(t, f.Reclaim(msg))
	assert.Equal(t, FieldSecret, f.Current())
}

func TestFocusCoordinator_FocusOutToField(t *testing.T) {
	f := NewFocusCoordinator(true)
	f.Set(FieldAlias)
	assert.Nil(t, f.FocusOut(FieldSecret))
	assert.Equal(t, FieldSecret, f.Current())
}

func TestFieldID_Editable(t *testing.T) {
	assert.True(t, FieldAlias.Editable())
	assert.True(t, FieldMasterPasswordRepeat.Editable())
	assert.False(t, FieldAnchor.Editable())
	assert.False(t, FieldNone.Editable())
	assert.Equal(t, "anchor", FieldAnchor.String())
}

func TestFocusCoordinator_AnchorKeepsLastEditTarget(t *testing.T) {
	f := NewFocusCoordinator(false)
	f.Set(FieldAlias)
	f.Set(FieldSecret)
	f.Set(FieldAnchor)

	assert.True(t, f.Is(FieldAnchor))
	assert.Equal(t, FieldSecret, f.EditTarget())

	f.Reset()
	assert.Equal(t, FieldNone, f.EditTarget())
}

func TestFocusCoordinator_NoEditTargetBeforeAnyField(t *testing.T) {
	f := NewFocusCoordinator(false)
	f.Set(FieldAnchor)
	assert.Equal(t, FieldNone, f.EditTarget())
}
