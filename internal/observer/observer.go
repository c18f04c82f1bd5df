// Package observer defines the referee's event fan-out contract (spec
// §4.6, "Observer fan-out") and ships two concrete observers: an in-memory
// Recorder for tests and a terminal CLI observer for cmd/fish.
package observer

import (
	"github.com/janpfeifer/fish/internal/board"
	"github.com/janpfeifer/fish/internal/state"
)

// EventKind discriminates the five observer events of spec §4.6.
type EventKind int

const (
	RegisterEvent EventKind = iota
	PenguinPlacementEvent
	TurnActionEvent
	DisqualifyEvent
	EndOfGameEvent
)

// Event is the single value type delivered to observers; only the fields
// relevant to Kind are populated.
type Event struct {
	Kind   EventKind
	State  *state.GameState // Register
	Pos    board.Position   // PenguinPlacement
	Action state.Action     // TurnAction
	Color  state.Color      // Disqualify
	Result *Result          // EndOfGame
}

// Result mirrors referee.GameResult without importing the referee package,
// to avoid a dependency cycle (referee imports observer, not vice versa).
type Result struct {
	Winners, NonWinners, Failed, Cheaters []state.Color
}

// Observer receives the event stream of a single match. Each event
// delivery is itself time-bounded by the caller (the referee); an observer
// that exceeds its budget is dropped from the list for the rest of the
// match. Observer failures never affect match state.
type Observer interface {
	Notify(Event) error
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(Event) error

func (f ObserverFunc) Notify(e Event) error { return f(e) }
