package state

import (
	"fmt"

	"github.com/janpfeifer/fish/internal/board"
)

// Kind discriminates the three Action variants of the data model.
type Kind int

const (
	// PlaceKind places a new penguin at TargetPos. Phase 2 only.
	PlaceKind Kind = iota
	// MoveKind moves the penguin at SourcePos to TargetPos. Phase 3 only.
	MoveKind
	// SkipKind is played when the current player has no legal move.
	SkipKind
)

// Action is the sum type of spec §3: Place(pos), Move(src, dst), Skip.
// SourcePos is the zero Position for PlaceKind and SkipKind.
type Action struct {
	Kind                 Kind
	SourcePos, TargetPos board.Position
}

// Place constructs a placement action.
func Place(pos board.Position) Action {
	return Action{Kind: PlaceKind, TargetPos: pos}
}

// Move constructs a movement action.
func Move(src, dst board.Position) Action {
	return Action{Kind: MoveKind, SourcePos: src, TargetPos: dst}
}

// Skip is the canonical skip action.
var Skip = Action{Kind: SkipKind}

func (a Action) String() string {
	switch a.Kind {
	case PlaceKind:
		return fmt.Sprintf("Place at %s", a.TargetPos)
	case MoveKind:
		return fmt.Sprintf("Move %s->%s", a.SourcePos, a.TargetPos)
	default:
		return "Skip"
	}
}

// Equal implements the structural equality the data model requires of
// GameTree edges.
func (a Action) Equal(other Action) bool {
	return a == other
}
