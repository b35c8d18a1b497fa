package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// SlotKind is the kind of an on-screen keyboard slot.
type SlotKind int

const (
	SlotEmpty SlotKind = iota
	SlotPair
	SlotSpace
	SlotBackspace
)

// Slot is one on-screen keyboard key. Pair slots carry two glyphs.
type Slot struct {
	Kind      SlotKind
	Primary   rune
	Secondary rune
}

// SlotPos addresses a slot in KeyboardLayout.
type SlotPos struct {
	Row, Col int
}

const (
	KeyboardRows = 5
	KeyboardCols = 10
)

func pair(a, b rune) Slot { return Slot{Kind: SlotPair, Primary: a, Secondary: b} }

var (
	space     = Slot{Kind: SlotSpace}
	backspace = Slot{Kind: SlotBackspace}
	empty     = Slot{}
)

// KeyboardLayout is the multi-tap layout: tapping a key once types its first
// glyph, tapping it again within the debounce window switches to the second.
var KeyboardLayout = [KeyboardRows][KeyboardCols]Slot{
	{pair('`', '~'), pair('\'', '"'), pair('-', '_'), pair('=', '+'), pair('[', '{'), pair(']', '}'), pair('\\', '|'), space, backspace, empty},
	{pair('1', '!'), pair('2', '@'), pair('3', '#'), pair('4', '$'), pair('5', '%'), pair('6', '^'), pair('7', '&'), pair('8', '*'), pair('9', '('), pair('0', ')')},
	{pair('q', 'Q'), pair('w', 'W'), pair('e', 'E'), pair('r', 'R'), pair('t', 'T'), pair('y', 'Y'), pair('u', 'U'), pair('i', 'I'), pair('o', 'O'), pair('p', 'P')},
	{pair('a', 'A'), pair('s', 'S'), pair('d', 'D'), pair('f', 'F'), pair('g', 'G'), pair('h', 'H'), pair('j', 'J'), pair('k', 'K'), pair('l', 'L'), pair(';', ':')},
	{pair('z', 'Z'), pair('x', 'X'), pair('c', 'C'), pair('v', 'V'), pair('b', 'B'), pair('n', 'N'), pair('m', 'M'), pair(',', '<'), pair('.', '>'), pair('/', '?')},
}

// SlotAt returns the slot at pos, or an empty slot when pos is out of range.
func SlotAt(pos SlotPos) Slot {
	if pos.Row < 0 || pos.Row >= KeyboardRows || pos.Col < 0 || pos.Col >= KeyboardCols {
		return empty
	}
	return KeyboardLayout[pos.Row][pos.Col]
}

// EditOp is the kind of an Edit.
type EditOp int

const (
	EditAppend EditOp = iota
	EditDeleteLast
)

// Edit is a text operation the keyboard asks the focused field to apply.
type Edit struct {
	Op   EditOp
	Char rune
}

// Apply returns s with the edit applied.
func (e Edit) Apply(s string) string {
	switch e.Op {
	case EditAppend:
		return s + string(e.Char)
	case EditDeleteLast:
		r := []rune(s)
		if len(r) == 0 {
			return s
		}
		return string(r[:len(r)-1])
	default:
		return s
	}
}

// Keyboard is the multi-tap input state machine. It never owns field text:
// presses produce Edits for whichever field is focused.
type Keyboard struct {
	pending    SlotPos
	hasPending bool
	primary    bool
	timer      *Timer
}

// NewKeyboard returns a keyboard that commits a pending glyph after debounce.
func NewKeyboard(debounce time.Duration) *Keyboard {
	return &Keyboard{timer: NewTimer(debounce)}
}

// Pending returns the uncommitted glyph, if any.
func (k *Keyboard) Pending() (rune, bool) {
	if !k.hasPending {
		return 0, false
	}
	return k.glyph(), true
}

// PendingPos returns the slot of the uncommitted glyph, if any.
func (k *Keyboard) PendingPos() (SlotPos, bool) {
	return k.pending, k.hasPending
}

func (k *Keyboard) glyph() rune {
	s := SlotAt(k.pending)
	if k.primary {
		return s.Primary
	}
	return s.Secondary
}

// commit emits the pending glyph and clears the pending slot.
func (k *Keyboard) commit() []Edit {
	if !k.hasPending {
		return nil
	}
	e := Edit{Op: EditAppend, Char: k.glyph()}
	k.hasPending = false
	return []Edit{e}
}

// Press handles a tap on the slot at pos. It returns the edits committed by
// the tap and a command re-arming the debounce timer when a glyph is pending.
func (k *Keyboard) Press(pos SlotPos) ([]Edit, tea.Cmd) {
	slot := SlotAt(pos)
	switch slot.Kind {
	case SlotEmpty:
		return nil, nil
	case SlotBackspace:
		k.timer.Cancel()
		k.hasPending = false
		return []Edit{{Op: EditDeleteLast}}, nil
	case SlotSpace:
		k.timer.Cancel()
		edits := k.commit()
		return append(edits, Edit{Op: EditAppend, Char: ' '}), nil
	}

	if k.hasPending && k.pending == pos {
		k.primary = !k.primary
		return nil, k.timer.Arm()
	}

	k.timer.Cancel()
	edits := k.commit()
	k.pending = pos
	k.hasPending = true
	k.primary = true
	return edits, k.timer.Arm()
}

// Fire commits the pending glyph when msg is this keyboard's live debounce
// tick. Stale or foreign ticks return nil.
func (k *Keyboard) Fire(msg TimerFiredMsg) []Edit {
	if !k.timer.Fired(msg) {
		return nil
	}
	return k.commit()
}

// Reset drops any pending glyph without committing it.
func (k *Keyboard) Reset() {
	k.timer.Cancel()
	k.hasPending = false
}

// HandleClick returns the position of the key under a mouse press.
func (k *Keyboard) HandleClick(msg tea.MouseMsg) (SlotPos, bool) {
	for r := 0; r < KeyboardRows; r++ {
		for c := 0; c < KeyboardCols; c++ {
			if KeyboardLayout[r][c].Kind == SlotEmpty {
				continue
			}
			if zone.Get(KeyboardKeyZoneID(r, c)).InBounds(msg) {
				return SlotPos{Row: r, Col: c}, true
			}
		}
	}
	return SlotPos{}, false
}

// keyWidth is the cell width of one key, including padding.
const keyWidth = 4

func (k *Keyboard) keyLabel(pos SlotPos) string {
	slot := SlotAt(pos)
	switch slot.Kind {
	case SlotPair:
		if k.hasPending && k.pending == pos {
			return string(k.glyph())
		}
		return string(slot.Primary) + string(slot.Secondary)
	case SlotSpace:
		return "⎵"
	case SlotBackspace:
		return "⌫"
	default:
		return ""
	}
}

// View renders the key grid with a zone around every usable key.
func (k *Keyboard) View() string {
	rows := make([]string, 0, KeyboardRows)
	for r := 0; r < KeyboardRows; r++ {
		cells := make([]string, 0, KeyboardCols)
		for c := 0; c < KeyboardCols; c++ {
			pos := SlotPos{Row: r, Col: c}
			if SlotAt(pos).Kind == SlotEmpty {
				cells = append(cells, strings.Repeat(" ", keyWidth))
				continue
			}
			style := keyStyle
			if k.hasPending && k.pending == pos {
				style = keyPendingStyle
			}
			cell := style.Width(keyWidth - 1).Align(lipgloss.Center).Render(k.keyLabel(pos))
			cells = append(cells, zone.Mark(KeyboardKeyZoneID(r, c), cell)+" ")
		}
		rows = append(rows, strings.Join(cells, ""))
	}
	return strings.Join(rows, "\n")
}
