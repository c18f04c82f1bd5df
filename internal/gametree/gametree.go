// Package gametree implements the lazy tree of reachable GameStates used
// both by the referee (to validate an agent's chosen action) and by the
// minimax actor strategy.
package gametree

import "github.com/janpfeifer/fish/internal/state"

// Child is one edge of a GameTree: the Action that produced it and the
// GameTree rooted at the resulting state.
type Child struct {
	Action state.Action
	Tree   *GameTree
}

// GameTree is a lazily-computed node wrapping a GameState. Children are
// generated on first access and memoized, so bounded-depth search never
// forces the whole tree (spec §4.3 / §9 "Lazy game tree").
type GameTree struct {
	state    *state.GameState
	children []Child
	expanded bool
}

// New wraps a GameState as the root of a (lazy) GameTree.
func New(gs *state.GameState) *GameTree {
	return &GameTree{state: gs}
}

// State returns the GameState this node wraps.
func (t *GameTree) State() *state.GameState {
	return t.state
}

// Children returns every (Action, GameTree) pair reachable from this node
// in one ply, generated and memoized on first call:
//
//  1. If the current player has at least one legal move, children are
//     every (Move(src,dst), child) for every legal (src,dst); no Skip is
//     emitted.
//  2. Else, if any other still-seated player has a legal move, the only
//     child is (Skip, child-after-rotation).
//  3. Else there are no children and the node is terminal.
func (t *GameTree) Children() ([]Child, error) {
	if t.expanded {
		return t.children, nil
	}
	t.expanded = true

	moves, err := t.state.LegalMoves()
	if err != nil {
		return nil, err
	}
	if len(moves) > 0 {
		children := make([]Child, len(moves))
		for i, action := range moves {
			next, err := t.state.MovePenguin(action.SourcePos, action.TargetPos)
			if err != nil {
				return nil, err
			}
			children[i] = Child{Action: action, Tree: New(next)}
		}
		t.children = children
		return t.children, nil
	}

	if anyOtherPlayerHasLegalMove(t.state) {
		next := t.state.RotateToNextPlayer()
		t.children = []Child{{Action: state.Skip, Tree: New(next)}}
		return t.children, nil
	}

	// No legal moves for anyone: terminal node.
	return nil, nil
}

// IsTerminal reports whether this node has no children.
func (t *GameTree) IsTerminal() (bool, error) {
	children, err := t.Children()
	if err != nil {
		return false, err
	}
	return len(children) == 0, nil
}

// anyOtherPlayerHasLegalMove checks every seated player other than the
// current one for a legal move, rotating a scratch copy of the state to
// check each in turn. The real cursor is not advanced until a Skip child is
// actually taken.
func anyOtherPlayerHasLegalMove(gs *state.GameState) bool {
	scratch := gs
	for range gs.Players() {
		scratch = scratch.RotateToNextPlayer()
		if scratch.CurrentColor() == gs.CurrentColor() {
			break
		}
		has, err := scratch.HasLegalMove()
		if err == nil && has {
			return true
		}
	}
	return false
}
