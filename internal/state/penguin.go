package state

import "github.com/janpfeifer/fish/internal/board"

// Penguin owns a position; it is otherwise opaque, per the data model.
type Penguin struct {
	Pos board.Position
}

// PlayerState is the tuple (color, score, penguins) the data model requires.
// Penguins are kept in insertion (placement) order.
type PlayerState struct {
	Color    Color
	Score    int
	Penguins []Penguin
}

// clone returns a deep-enough copy for GameState's copy-on-write updates:
// the Penguins slice is freshly allocated so appending to one PlayerState
// never aliases another.
func (p PlayerState) clone() PlayerState {
	penguins := make([]Penguin, len(p.Penguins))
	copy(penguins, p.Penguins)
	return PlayerState{Color: p.Color, Score: p.Score, Penguins: penguins}
}

// hasPenguinAt reports whether this player has a penguin at pos.
func (p PlayerState) hasPenguinAt(pos board.Position) (int, bool) {
	for i, pg := range p.Penguins {
		if pg.Pos == pos {
			return i, true
		}
	}
	return -1, false
}
