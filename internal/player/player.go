// Package player defines the capability-record contract the referee
// invokes on external agents (spec §4.5) and ships a reference in-process
// implementation built from a placer/actor strategy pair.
package player

import (
	"github.com/janpfeifer/fish/internal/board"
	"github.com/janpfeifer/fish/internal/gametree"
	"github.com/janpfeifer/fish/internal/state"
)

// Player is the four-operation contract an external agent exposes. No
// transport is prescribed: implementations may be in-process function
// bundles (as here), a trait bound to a network endpoint, or a
// message-passing actor — all equivalent to this interface.
type Player interface {
	// AssignColor informs the agent of the color assigned for this match.
	AssignColor(color state.Color) error

	// PlacePenguin asks the agent for the position of its next penguin.
	PlacePenguin(gs *state.GameState) (board.Position, error)

	// TakeTurn asks the agent for an action (Move or Skip) given the
	// current game tree.
	TakeTurn(tree *gametree.GameTree) (state.Action, error)

	// InformDisqualified is a one-way notification that the agent has
	// been removed from the match.
	InformDisqualified()
}

// Placer is the pure placement half of a strategy (spec §4.4).
type Placer interface {
	PlacePenguin(gs *state.GameState, color state.Color) (board.Position, error)
}

// Actor is the pure turn-taking half of a strategy (spec §4.4).
type Actor interface {
	TakeTurn(tree *gametree.GameTree) (state.Action, error)
}

// Strategic wraps a Placer and an Actor into a Player: a reference
// in-process agent used by cmd/fish and by the referee's own test suite,
// analogous to the teacher's Player implementations wrapping a Searcher.
type Strategic struct {
	placer Placer
	actor  Actor
	color  state.Color
}

// NewStrategic builds a Strategic agent from a placer and actor pair.
func NewStrategic(placer Placer, actor Actor) *Strategic {
	return &Strategic{placer: placer, actor: actor}
}

func (s *Strategic) AssignColor(color state.Color) error {
	s.color = color
	return nil
}

func (s *Strategic) PlacePenguin(gs *state.GameState) (board.Position, error) {
	return s.placer.PlacePenguin(gs, s.color)
}

func (s *Strategic) TakeTurn(tree *gametree.GameTree) (state.Action, error) {
	return s.actor.TakeTurn(tree)
}

func (s *Strategic) InformDisqualified() {}
