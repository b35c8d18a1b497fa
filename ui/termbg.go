package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
)

// resetBackgroundSeq is OSC 111: restore the configured default background.
const resetBackgroundSeq = termenv.OSC + "111" + string(termenv.BEL)

// SetTerminalBackground paints the terminal's default background with
// hexColor (OSC 11) so unstyled cells match the theme. The returned func
// restores the user's own default.
func SetTerminalBackground(hexColor string) func() {
	return setTermBg(os.Stdout, hexColor)
}

func setTermBg(w io.Writer, hexColor string) func() {
	if hexColor == "" {
		return func() {}
	}
	out := termenv.NewOutput(w)
	out.SetBackgroundColor(termenv.RGBColor(hexColor))
	return func() {
		fmt.Fprint(w, resetBackgroundSeq)
	}
}
