package state

import "github.com/pkg/errors"

// Sentinel rule-violation errors, identifiable with errors.Is. The referee
// does not inspect them: it classifies a bad agent response as Cheat or Fail
// by phase and by whether the action is among the game tree's children.
var (
	ErrUnknownColor = errors.New("color is not a seated player")
	ErrOutOfBounds  = errors.New("position is out of bounds")
	ErrHole         = errors.New("target tile is a hole")
	ErrOccupied     = errors.New("position is already occupied")
	ErrNoPenguinAt  = errors.New("no penguin of the current player at source")
	ErrUnreachable  = errors.New("target is not reachable from source")
	ErrWrongPhase   = errors.New("action is not legal in this phase")
)
