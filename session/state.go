package session

import "fmt"

// State represents the lifecycle state of a vault session.
type State string

const (
	// StateNew means no session: the entrance form is shown.
	StateNew State = "new"
	// StateUnlocking means a master password is being verified.
	StateUnlocking State = "unlocking"
	// StateInitialized means a live session handle is held.
	StateInitialized State = "initialized"
)

// Event represents a session lifecycle transition trigger.
type Event string

const (
	Login        Event = "login"
	Unlocked     Event = "unlocked"
	UnlockFailed Event = "unlock_failed"
	Lock         Event = "lock"
)

// transitionTable defines all valid state transitions.
// Key: current state → event → new state.
var transitionTable = map[State]map[Event]State{
	StateNew: {
		Login: StateUnlocking,
	},
	StateUnlocking: {
		Unlocked:     StateInitialized,
		UnlockFailed: StateNew,
		Lock:         StateNew,
	},
	StateInitialized: {
		Lock: StateNew,
	},
}

// ApplyTransition returns the new state for the given current state and event.
// Returns an error if the transition is not valid.
func ApplyTransition(current State, event Event) (State, error) {
	events, ok := transitionTable[current]
	if !ok {
		return "", fmt.Errorf("no transitions defined for state %q", current)
	}
	next, ok := events[event]
	if !ok {
		return "", fmt.Errorf("invalid transition: %q + %q", current, event)
	}
	return next, nil
}

// Protected reports whether the state holds something worth locking.
func (s State) Protected() bool {
	return s == StateUnlocking || s == StateInitialized
}
