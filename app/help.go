package app

import (
	"fmt"
	"strings"

	"github.com/uvizhe/psh-gui/keys"
	"github.com/uvizhe/psh-gui/ui/overlay"
)

// helpKeyOrder is the order keys are listed in the help screen and footer.
var helpKeyOrder = []keys.KeyName{
	keys.KeySubmit,
	keys.KeyNextField,
	keys.KeyPrevField,
	keys.KeyCycleHandle,
	keys.KeyCycleCharset,
	keys.KeyToggleOptions,
	keys.KeyToggleKeyboard,
	keys.KeyCopy,
	keys.KeyLock,
	keys.KeyHelp,
	keys.KeyQuit,
}

const helpIntro = `# psh

Derives a password for every alias from your master password.
Nothing but the alias list is stored, and it is encrypted.

`

const helpOutro = `
## Alias handling

- **Store** derives the password and remembers a new alias.
- **Don't store** derives the password only.
- **Remove** forgets a known alias.

Known aliases keep the charset and secret setting they were stored with.
The vault locks itself after the terminal has been in the background for a while.
`

// helpMarkdown renders the key table and usage notes as markdown.
func helpMarkdown() string {
	var sb strings.Builder
	sb.WriteString(helpIntro)
	sb.WriteString("## Keys\n\n")
	for _, name := range helpKeyOrder {
		h := keys.GlobalkeyBindings[name].Help()
		fmt.Fprintf(&sb, "- **%s** %s\n", h.Key, h.Desc)
	}
	sb.WriteString("- **↑/↓** move through matching aliases, **esc** closes the list\n")
	sb.WriteString(helpOutro)
	return sb.String()
}

// helpWidth is the wrap width of the help overlay.
const helpWidth = 60

func (m *home) showHelp() {
	m.helpOverlay = overlay.NewMarkdownOverlay(helpMarkdown(), helpWidth, m.markdownStyle)
}

// footerHelp is the one-line key hint under the form.
func footerHelp() string {
	parts := make([]string, 0, 3)
	for _, name := range []keys.KeyName{keys.KeyHelp, keys.KeyLock, keys.KeyQuit} {
		h := keys.GlobalkeyBindings[name].Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
