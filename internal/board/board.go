package board

import "github.com/pkg/errors"

// Tile is either a hole (eaten, impassable) or a fish-tile carrying a
// positive fish count. FishCount == 0 means the tile is a hole.
type Tile struct {
	FishCount uint8
}

// IsHole reports whether the tile has been eaten.
func (t Tile) IsHole() bool {
	return t.FishCount == 0
}

// Hole is the canonical eaten tile.
var Hole = Tile{FishCount: 0}

// Board is a rectangular grid of tiles with a fixed width and height.
// Board is immutable: every mutating operation (RemoveTile) returns a new
// Board sharing no mutable state with the receiver.
type Board struct {
	height, width int
	tiles         []Tile // row-major, length height*width
}

// New constructs a board of the given dimensions, filled with tiles from
// fill. fill is called once per position in row-major order (row ascending,
// col ascending within a row).
func New(height, width int, fill func(pos Position) Tile) (*Board, error) {
	if height <= 0 || width <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "height and width must be positive, got %dx%d", height, width)
	}
	b := &Board{
		height: height,
		width:  width,
		tiles:  make([]Tile, height*width),
	}
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			pos := NewPosition(uint16(row), uint16(col))
			b.tiles[b.index(pos)] = fill(pos)
		}
	}
	return b, nil
}

// NewUniform constructs a board where every tile carries the same fish
// count (the "uniform fish count" board config variant).
func NewUniform(height, width int, fishCount uint8) (*Board, error) {
	return New(height, width, func(Position) Tile { return Tile{FishCount: fishCount} })
}

// NewFromLayout constructs a board from an explicit row-major layout of
// fish counts; a 0 entry is a hole (the "explicit per-cell contents" board
// config variant).
func NewFromLayout(layout [][]uint8) (*Board, error) {
	if len(layout) == 0 || len(layout[0]) == 0 {
		return nil, errors.Wrap(ErrInvalidConfig, "layout must be non-empty")
	}
	height, width := len(layout), len(layout[0])
	for _, row := range layout {
		if len(row) != width {
			return nil, errors.Wrap(ErrInvalidConfig, "layout rows must all have the same width")
		}
	}
	return New(height, width, func(pos Position) Tile {
		return Tile{FishCount: layout[pos.Row][pos.Col]}
	})
}

func (b *Board) index(pos Position) int {
	return int(pos.Row)*b.width + int(pos.Col)
}

// Height and Width report the board dimensions.
func (b *Board) Height() int { return b.height }
func (b *Board) Width() int  { return b.width }

// InBounds reports whether pos addresses a cell of the board.
func (b *Board) InBounds(pos Position) bool {
	return int(pos.Row) < b.height && int(pos.Col) < b.width
}

// TileAt returns the tile at pos, or an error if pos is out of bounds.
func (b *Board) TileAt(pos Position) (Tile, error) {
	if !b.InBounds(pos) {
		return Tile{}, errors.Wrapf(ErrOutOfBounds, "position %s is outside %dx%d board", pos, b.height, b.width)
	}
	return b.tiles[b.index(pos)], nil
}

// RemoveTile returns a new Board with the tile at pos replaced by a hole.
// Removing an already-hole tile is idempotent: the returned board equals
// (by Equal) the receiver. RemoveTile never mutates the receiver.
func (b *Board) RemoveTile(pos Position) (*Board, error) {
	if !b.InBounds(pos) {
		return nil, errors.Wrapf(ErrOutOfBounds, "position %s is outside %dx%d board", pos, b.height, b.width)
	}
	idx := b.index(pos)
	if b.tiles[idx].IsHole() {
		return b, nil
	}
	newBoard := &Board{
		height: b.height,
		width:  b.width,
		tiles:  make([]Tile, len(b.tiles)),
	}
	copy(newBoard.tiles, b.tiles)
	newBoard.tiles[idx] = Hole
	return newBoard, nil
}

// CountFishTiles returns the number of non-hole tiles on the board.
func (b *Board) CountFishTiles() int {
	count := 0
	for _, t := range b.tiles {
		if !t.IsHole() {
			count++
		}
	}
	return count
}

// Equal reports whether two boards have identical dimensions and contents.
func (b *Board) Equal(other *Board) bool {
	if b == other {
		return true
	}
	if b == nil || other == nil {
		return false
	}
	if b.height != other.height || b.width != other.width {
		return false
	}
	for i := range b.tiles {
		if b.tiles[i] != other.tiles[i] {
			return false
		}
	}
	return true
}

// Positions returns every position on the board in row-major order (row
// ascending, col ascending within a row) -- the order the scanning placer
// relies on.
func (b *Board) Positions() []Position {
	positions := make([]Position, 0, len(b.tiles))
	for row := 0; row < b.height; row++ {
		for col := 0; col < b.width; col++ {
			positions = append(positions, NewPosition(uint16(row), uint16(col)))
		}
	}
	return positions
}

// ReachableFrom returns the set of distinct non-hole positions reachable
// from src by uninterrupted straight-line movement along any of the six
// directions, excluding src itself. A ray stops at the first hole or the
// board edge, whichever comes first.
//
// ReachableFrom is a pure board-level query: it knows nothing about
// penguins. Callers that need to stop rays at occupied tiles (every caller
// in this game) pass the board returned by GameState.BoardMinusPenguins,
// which turns every occupied tile into a hole first.
func (b *Board) ReachableFrom(src Position) []Position {
	var reachable []Position
	for _, dir := range Directions {
		pos := src
		for {
			next, ok := neighbor(pos, dir)
			if !ok || !b.InBounds(next) {
				break
			}
			tile, err := b.TileAt(next)
			if err != nil || tile.IsHole() {
				break
			}
			reachable = append(reachable, next)
			pos = next
		}
	}
	return reachable
}
