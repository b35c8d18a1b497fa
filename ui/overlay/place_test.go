package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestPlaceOverlay_AtPosition(t *testing.T) {
	bg := strings.Join([]string{"..........", "..........", ".........."}, "\n")
	out := PlaceOverlay(2, 1, "AB", bg, false, false)
	lines := strings.Split(ansi.Strip(out), "\n")
	assert.Equal(t, "..........", lines[0])
	assert.Equal(t, "..AB......", lines[1])
	assert.Equal(t, "..........", lines[2])
}

func TestPlaceOverlay_Centered(t *testing.T) {
	bg := strings.Join([]string{"......", "......", "......"}, "\n")
	out := PlaceOverlay(0, 0, "XX", bg, false, true)
	lines := strings.Split(ansi.Strip(out), "\n")
	assert.Equal(t, "..XX..", lines[1])
}

func TestPlaceOverlay_ClampsAndPadsShortLines(t *testing.T) {
	bg := "....\n.."
	out := PlaceOverlay(10, 10, "X", bg, false, false)
	lines := strings.Split(ansi.Strip(out), "\n")
	assert.Equal(t, "....", lines[0])
	assert.Equal(t, ".. X", lines[1])
}

func TestPlaceOverlay_ForegroundLargerThanBackground(t *testing.T) {
	assert.Equal(t, "big\nbig", PlaceOverlay(0, 0, "big\nbig", "x", false, false))
}

func TestPlaceOverlay_Shadow(t *testing.T) {
	bg := strings.Repeat(strings.Repeat(".", 10)+"\n", 5)
	out := ansi.Strip(PlaceOverlay(1, 1, "AB\nCD", bg, true, false))
	assert.Contains(t, out, "CD▒")
	assert.Contains(t, out, " ▒▒")
}

func TestPlaceOverlay_NegativePositionClampsToOrigin(t *testing.T) {
	out := PlaceOverlay(-3, -2, "X", "....\n....", false, false)
	lines := strings.Split(ansi.Strip(out), "\n")
	assert.Equal(t, "X...", lines[0])
	assert.Equal(t, "....", lines[1])
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 0, clampInt(-5, 0, 10))
	assert.Equal(t, 10, clampInt(15, 0, 10))
	assert.Equal(t, 7, clampInt(7, 0, 10))
}
