package overlay

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uvizhe/psh-gui/ui"
)

func TestThemeRosePine(t *testing.T) {
	th := ThemeRosePine()
	require.NotNil(t, th)
	assert.Equal(t, lipgloss.TerminalColor(ui.ColorIris), th.Focused.Title.GetForeground())
	assert.Equal(t, lipgloss.TerminalColor(ui.ColorLove), th.Focused.ErrorMessage.GetForeground())
	assert.Equal(t, th.Focused.Title, th.Group.Title)
}
