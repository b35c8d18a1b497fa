package ui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastTimerID int64

func nextTimerID() int {
	return int(atomic.AddInt64(&lastTimerID, 1))
}

// TimerFiredMsg is delivered when an armed Timer's delay elapses. Tag
// identifies the arming it belongs to; messages from cancelled or replaced
// armings are stale.
type TimerFiredMsg struct {
	ID  int
	Tag int
}

// Timer is a single cancellable one-shot timer driven by tea.Tick. Arming
// always supersedes the previous arming, so at most one is ever live.
type Timer struct {
	id    int
	tag   int
	armed bool
	delay time.Duration
}

// NewTimer returns a disarmed timer with the given delay.
func NewTimer(delay time.Duration) *Timer {
	return &Timer{id: nextTimerID(), delay: delay}
}

// ID returns the timer's identifier.
func (t *Timer) ID() int {
	return t.id
}

// Delay returns the configured delay.
func (t *Timer) Delay() time.Duration {
	return t.delay
}

// Armed reports whether a live arming exists.
func (t *Timer) Armed() bool {
	return t.armed
}

// Arm cancels any live arming and starts a new one.
func (t *Timer) Arm() tea.Cmd {
	t.Cancel()
	t.armed = true
	id, tag := t.id, t.tag
	return tea.Tick(t.delay, func(time.Time) tea.Msg {
		return TimerFiredMsg{ID: id, Tag: tag}
	})
}

// Cancel disarms the timer. Calling it on a disarmed timer is a no-op.
func (t *Timer) Cancel() {
	t.tag++
	t.armed = false
}

// Fired reports whether msg is the live arming of this timer firing. The
// timer is disarmed when it returns true.
func (t *Timer) Fired(msg TimerFiredMsg) bool {
	if msg.ID != t.id || msg.Tag != t.tag || !t.armed {
		return false
	}
	t.armed = false
	return true
}
