// Package strategy implements the pure placer and actor functions of spec
// §4.4: a deterministic scanning placer and a depth-bounded minimax actor.
// Both are reference implementations a test suite can depend on, not an
// adaptive or learning strategy (explicit Non-goal).
package strategy

import (
	"github.com/janpfeifer/fish/internal/board"
	"github.com/janpfeifer/fish/internal/state"
	"github.com/pkg/errors"
)

// ScanningPlacer scans positions in row-major order (row ascending, col
// ascending within a row) and returns the first in-bounds non-hole
// unoccupied position. It is deterministic.
type ScanningPlacer struct{}

// NewScanningPlacer returns the reference placement strategy.
func NewScanningPlacer() ScanningPlacer {
	return ScanningPlacer{}
}

// PlacePenguin returns the first open position for the given color to
// place a penguin on, per the board's row-major scan order.
func (ScanningPlacer) PlacePenguin(gs *state.GameState, color state.Color) (board.Position, error) {
	occupied := make(map[board.Position]bool)
	for _, p := range gs.Players() {
		for _, pg := range p.Penguins {
			occupied[pg.Pos] = true
		}
	}
	for _, pos := range gs.Board().Positions() {
		tile, err := gs.Board().TileAt(pos)
		if err != nil {
			continue
		}
		if tile.IsHole() || occupied[pos] {
			continue
		}
		return pos, nil
	}
	return board.Position{}, errors.New("no open position available for placement")
}
