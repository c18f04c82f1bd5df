// Package state implements the immutable game-state layer of a Fish match:
// players, penguins, and the GameState snapshot that enforces placement and
// movement legality. Every mutating operation returns a new GameState; the
// receiver is never modified.
package state

import (
	"sort"

	"github.com/janpfeifer/fish/internal/board"
	"github.com/janpfeifer/fish/internal/collections"
	"github.com/pkg/errors"
)

// GameState is the immutable triple (board, ordered player list,
// current-player cursor) of the data model.
type GameState struct {
	board   *board.Board
	players []PlayerState
	cursor  int
}

// New constructs the initial GameState for the given seated colors (in
// seating order) and board. Every player starts with score 0 and no
// penguins, cursor at the first player.
func New(b *board.Board, colors []Color) (*GameState, error) {
	if len(b.Positions()) == 0 {
		return nil, errors.New("board must have at least one cell")
	}
	seen := make(map[Color]bool, len(colors))
	players := make([]PlayerState, len(colors))
	for i, c := range colors {
		if seen[c] {
			return nil, errors.Errorf("duplicate color %s in player list", c)
		}
		seen[c] = true
		players[i] = PlayerState{Color: c}
	}
	return &GameState{board: b, players: players, cursor: 0}, nil
}

// Board returns the current board.
func (gs *GameState) Board() *board.Board {
	return gs.board
}

// Players returns the seated players, in seating order. The returned slice
// must not be mutated by callers.
func (gs *GameState) Players() []PlayerState {
	return gs.players
}

// CurrentPlayer returns the player whose turn it is.
func (gs *GameState) CurrentPlayer() PlayerState {
	return gs.players[gs.cursor]
}

// CurrentColor is a convenience accessor for CurrentPlayer().Color.
func (gs *GameState) CurrentColor() Color {
	return gs.players[gs.cursor].Color
}

func (gs *GameState) playerIndex(c Color) (int, bool) {
	for i, p := range gs.players {
		if p.Color == c {
			return i, true
		}
	}
	return -1, false
}

// occupants returns the position of every penguin on the board, across all
// players.
func (gs *GameState) occupants() collections.Set[board.Position] {
	occ := collections.MakeSet[board.Position]()
	for _, p := range gs.players {
		for _, pg := range p.Penguins {
			occ.Insert(pg.Pos)
		}
	}
	return occ
}

// BoardMinusPenguins returns a view of the board where every tile currently
// occupied by any penguin is a hole, as used by movement reachability.
func (gs *GameState) BoardMinusPenguins() (*board.Board, error) {
	b := gs.board
	for _, pos := range gs.occupants().Slice() {
		var err error
		b, err = b.RemoveTile(pos)
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (gs *GameState) clonePlayers() []PlayerState {
	players := make([]PlayerState, len(gs.players))
	for i, p := range gs.players {
		players[i] = p.clone()
	}
	return players
}

// PlacePenguin places a new penguin for color at pos. It fails if color is
// not seated, pos is out of bounds, the target tile is a hole, or any
// penguin already occupies pos.
func (gs *GameState) PlacePenguin(color Color, pos board.Position) (*GameState, error) {
	idx, ok := gs.playerIndex(color)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownColor, "%s", color)
	}
	tile, err := gs.board.TileAt(pos)
	if err != nil {
		return nil, errors.Wrapf(ErrOutOfBounds, "%s", pos)
	}
	if tile.IsHole() {
		return nil, errors.Wrapf(ErrHole, "%s", pos)
	}
	if gs.occupants().Has(pos) {
		return nil, errors.Wrapf(ErrOccupied, "%s", pos)
	}

	players := gs.clonePlayers()
	players[idx].Penguins = append(players[idx].Penguins, Penguin{Pos: pos})
	return &GameState{board: gs.board, players: players, cursor: gs.cursor}, nil
}

// MovePenguin moves the current player's penguin at src to dst. It fails if
// either endpoint is out of bounds, no penguin of the current player sits
// at src, or dst is occupied or unreachable from src on the current board
// (with other penguins treated as holes). On success the moving player's
// score increases by the fish count of the vacated tile, that tile becomes
// a hole, the penguin moves to dst, and the turn cursor advances.
func (gs *GameState) MovePenguin(src, dst board.Position) (*GameState, error) {
	if _, err := gs.board.TileAt(src); err != nil {
		return nil, errors.Wrapf(ErrOutOfBounds, "source %s", src)
	}
	if _, err := gs.board.TileAt(dst); err != nil {
		return nil, errors.Wrapf(ErrOutOfBounds, "destination %s", dst)
	}

	current := gs.CurrentPlayer()
	penguinIdx, ok := current.hasPenguinAt(src)
	if !ok {
		return nil, errors.Wrapf(ErrNoPenguinAt, "%s has no penguin at %s", current.Color, src)
	}

	maskedBoard, err := gs.BoardMinusPenguins()
	if err != nil {
		return nil, err
	}
	reachable := maskedBoard.ReachableFrom(src)
	found := false
	for _, p := range reachable {
		if p == dst {
			found = true
			break
		}
	}
	if !found {
		if gs.occupants().Has(dst) {
			return nil, errors.Wrapf(ErrOccupied, "%s", dst)
		}
		return nil, errors.Wrapf(ErrUnreachable, "%s -> %s", src, dst)
	}

	srcTile, err := gs.board.TileAt(src)
	if err != nil {
		return nil, err
	}
	newBoard, err := gs.board.RemoveTile(src)
	if err != nil {
		return nil, err
	}

	players := gs.clonePlayers()
	currentIdx, _ := gs.playerIndex(current.Color)
	players[currentIdx].Score += int(srcTile.FishCount)
	players[currentIdx].Penguins[penguinIdx].Pos = dst

	next := &GameState{board: newBoard, players: players, cursor: gs.cursor}
	return next.RotateToNextPlayer(), nil
}

// RotateToNextPlayer advances the cursor modulo the current player list
// length.
func (gs *GameState) RotateToNextPlayer() *GameState {
	next := *gs
	next.players = gs.players // share: rotation does not mutate player data
	if len(gs.players) > 0 {
		next.cursor = (gs.cursor + 1) % len(gs.players)
	}
	return &next
}

// RemoveCurrentPlayer drops the current player (and its penguins) from the
// player list. The vacated penguin tiles become holes: a disqualified
// player's penguins are forfeit and must not remain standable-on ghosts
// (see DESIGN.md for the Open Question this resolves). The cursor lands on
// whichever seated player was next in rotation.
func (gs *GameState) RemoveCurrentPlayer() (*GameState, error) {
	current := gs.CurrentPlayer()
	newBoard := gs.board
	for _, pg := range current.Penguins {
		var err error
		newBoard, err = newBoard.RemoveTile(pg.Pos)
		if err != nil {
			return nil, err
		}
	}

	players := make([]PlayerState, 0, len(gs.players)-1)
	for i, p := range gs.players {
		if i == gs.cursor {
			continue
		}
		players = append(players, p.clone())
	}

	cursor := 0
	if len(players) > 0 {
		cursor = gs.cursor % len(players)
	}
	return &GameState{board: newBoard, players: players, cursor: cursor}, nil
}

// HasLegalMove reports whether the current player has at least one legal
// Move available.
func (gs *GameState) HasLegalMove() (bool, error) {
	maskedBoard, err := gs.BoardMinusPenguins()
	if err != nil {
		return false, err
	}
	for _, pg := range gs.CurrentPlayer().Penguins {
		if len(maskedBoard.ReachableFrom(pg.Pos)) > 0 {
			return true, nil
		}
	}
	return false, nil
}

// LegalMoves enumerates every legal (src, dst) pair for the current player,
// in row-major source order and, for a fixed source, row-major destination
// order (the same order as the minimax tie-break).
func (gs *GameState) LegalMoves() ([]Action, error) {
	maskedBoard, err := gs.BoardMinusPenguins()
	if err != nil {
		return nil, err
	}
	penguins := append([]Penguin(nil), gs.CurrentPlayer().Penguins...)
	sort.Slice(penguins, func(i, j int) bool { return penguins[i].Pos.Less(penguins[j].Pos) })

	var actions []Action
	for _, pg := range penguins {
		dests := maskedBoard.ReachableFrom(pg.Pos)
		sort.Slice(dests, func(i, j int) bool { return dests[i].Less(dests[j]) })
		for _, d := range dests {
			actions = append(actions, Move(pg.Pos, d))
		}
	}
	return actions, nil
}
