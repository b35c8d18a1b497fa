package overlay

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/uvizhe/psh-gui/ui"
)

// ToastType identifies the kind of toast notification.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastSuccess
	ToastError
)

// AnimPhase is where a toast is in its short life.
type AnimPhase int

const (
	PhaseSlidingIn AnimPhase = iota
	PhaseVisible
	PhaseDone
)

const (
	SlideInDuration = 250 * time.Millisecond

	// Errors stay up longer: they usually mean a change was not saved.
	NoticeDismissAfter = 3 * time.Second
	ErrorDismissAfter  = 6 * time.Second

	MinToastWidth = 24
	MaxToastWidth = 56
	MaxToasts     = 4

	// TickInterval is how often the app delivers ToastTickMsg while toasts
	// are on screen.
	TickInterval = 50 * time.Millisecond
)

type toast struct {
	kind  ToastType
	text  string
	phase AnimPhase
	since time.Time
	width int
}

// lifetime is how long the toast stays once it has slid in.
func (t *toast) lifetime() time.Duration {
	if t.kind == ToastError {
		return ErrorDismissAfter
	}
	return NoticeDismissAfter
}

// toastWidth fits the icon, a space, the text, padding and border.
func toastWidth(text string) int {
	w := 1 + 1 + runewidth.StringWidth(text) + 4
	return clampInt(w, MinToastWidth, MaxToastWidth)
}

// ToastManager keeps the notifications stacked in the top-right corner:
// persistence failures and clipboard notices. They never take focus.
type ToastManager struct {
	toasts []*toast
	width  int
	now    func() time.Time
}

func NewToastManager() *ToastManager {
	return &ToastManager{now: time.Now}
}

// SetSize updates the viewport width used for positioning.
func (tm *ToastManager) SetSize(width, _ int) {
	tm.width = width
}

func (tm *ToastManager) Info(msg string)    { tm.push(ToastInfo, msg) }
func (tm *ToastManager) Success(msg string) { tm.push(ToastSuccess, msg) }
func (tm *ToastManager) Error(msg string)   { tm.push(ToastError, msg) }

// Clear drops every toast. Locking calls it so nothing outlives the session.
func (tm *ToastManager) Clear() {
	tm.toasts = nil
}

// HasActiveToasts reports whether any toast still needs ticks.
func (tm *ToastManager) HasActiveToasts() bool {
	return len(tm.toasts) > 0
}

func (tm *ToastManager) push(kind ToastType, msg string) {
	now := tm.now()

	// Repeating a visible toast restarts its clock instead of stacking a copy.
	for _, t := range tm.toasts {
		if t.kind == kind && t.text == msg {
			if t.phase == PhaseVisible {
				t.since = now
			}
			return
		}
	}

	if len(tm.toasts) >= MaxToasts {
		tm.toasts = tm.toasts[len(tm.toasts)-MaxToasts+1:]
	}
	tm.toasts = append(tm.toasts, &toast{
		kind:  kind,
		text:  msg,
		phase: PhaseSlidingIn,
		since: now,
		width: toastWidth(msg),
	})
}

// ToastTickMsg drives toast animation while toasts are active.
type ToastTickMsg struct{}

// Tick advances animation phases and drops expired toasts.
func (tm *ToastManager) Tick() {
	now := tm.now()
	kept := tm.toasts[:0]
	for _, t := range tm.toasts {
		switch elapsed := now.Sub(t.since); t.phase {
		case PhaseSlidingIn:
			if elapsed >= SlideInDuration {
				t.phase, t.since = PhaseVisible, now
			}
		case PhaseVisible:
			if elapsed >= t.lifetime() {
				t.phase = PhaseDone
			}
		}
		if t.phase != PhaseDone {
			kept = append(kept, t)
		}
	}
	tm.toasts = kept
}

var toastIcons = map[ToastType]string{
	ToastInfo:    "▸",
	ToastSuccess: "✓",
	ToastError:   "✗",
}

func toastColor(kind ToastType) lipgloss.Color {
	if kind == ToastError {
		return ui.ColorLove
	}
	return ui.ColorFoam
}

// slideOffset is how far right of its resting column a toast is drawn.
// The slide eases out quadratically.
func (tm *ToastManager) slideOffset(t *toast) int {
	if t.phase != PhaseSlidingIn {
		return 0
	}
	p := min(float64(tm.now().Sub(t.since))/float64(SlideInDuration), 1)
	p = 1 - (1-p)*(1-p)
	return int(float64(t.width+4) * (1 - p))
}

// View renders all active toasts stacked vertically.
func (tm *ToastManager) View() string {
	if len(tm.toasts) == 0 {
		return ""
	}
	boxes := make([]string, 0, len(tm.toasts))
	for _, t := range tm.toasts {
		color := toastColor(t.kind)
		icon := lipgloss.NewStyle().Foreground(color).Render(toastIcons[t.kind])
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color).
			Padding(0, 1).
			Width(t.width)
		boxes = append(boxes, box.Render(icon+" "+t.text))
	}
	return lipgloss.JoinVertical(lipgloss.Right, boxes...)
}

// GetPosition returns where the toast stack is placed over the view.
func (tm *ToastManager) GetPosition() (int, int) {
	widest, offset := MinToastWidth, 0
	for _, t := range tm.toasts {
		widest = max(widest, t.width)
		offset = max(offset, tm.slideOffset(t))
	}
	return max(0, tm.width-widest-4) + offset, 1
}
