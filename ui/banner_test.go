package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestBanner_RowCount(t *testing.T) {
	for i := 0; i < 8; i++ {
		assert.Len(t, strings.Split(Banner(i), "\n"), bannerRows, "frame %d", i)
	}
}

func TestBanner_FramesGrowAndLoop(t *testing.T) {
	first := func(frame int) string { return strings.Split(Banner(frame), "\n")[0] }
	w0 := ansi.StringWidth(first(0))
	w3 := ansi.StringWidth(first(maxDots))
	assert.Equal(t, w0+maxDots*4, w3)
	assert.Equal(t, Banner(0), Banner(maxDots+1))
}

func TestGradientText_KeepsText(t *testing.T) {
	out := GradientText("ab\ncd", GradientStart, GradientEnd)
	assert.Equal(t, "ab\ncd", ansi.Strip(out))
	assert.Empty(t, GradientText("", GradientStart, GradientEnd))
}
