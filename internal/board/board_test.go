package board_test

import (
	"testing"

	"github.com/janpfeifer/fish/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUniform(t *testing.T) {
	b, err := board.NewUniform(3, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, 9, b.CountFishTiles())
	assert.Equal(t, 3, b.Height())
	assert.Equal(t, 3, b.Width())
}

func TestNewRejectsBadDimensions(t *testing.T) {
	_, err := board.NewUniform(0, 3, 1)
	assert.Error(t, err)
}

func TestNewFromLayout(t *testing.T) {
	b, err := board.NewFromLayout([][]uint8{
		{1, 2, 0},
		{3, 0, 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, b.CountFishTiles())
	tile, err := b.TileAt(board.NewPosition(0, 2))
	require.NoError(t, err)
	assert.True(t, tile.IsHole())
	tile, err = b.TileAt(board.NewPosition(1, 0))
	require.NoError(t, err)
	assert.EqualValues(t, 3, tile.FishCount)
}

func TestNewFromLayoutRejectsRaggedRows(t *testing.T) {
	_, err := board.NewFromLayout([][]uint8{{1, 2}, {1}})
	assert.Error(t, err)
}

func TestTileAtOutOfBounds(t *testing.T) {
	b, err := board.NewUniform(2, 2, 1)
	require.NoError(t, err)
	_, err = b.TileAt(board.NewPosition(5, 5))
	assert.ErrorIs(t, err, board.ErrOutOfBounds)
}

func TestRemoveTileIsIdempotent(t *testing.T) {
	b, err := board.NewUniform(2, 2, 1)
	require.NoError(t, err)
	pos := board.NewPosition(0, 0)

	once, err := b.RemoveTile(pos)
	require.NoError(t, err)
	twice, err := once.RemoveTile(pos)
	require.NoError(t, err)

	assert.True(t, once.Equal(twice))
	assert.Equal(t, 3, once.CountFishTiles())

	tile, err := b.TileAt(pos)
	require.NoError(t, err)
	assert.False(t, tile.IsHole(), "original board must be untouched")
}

func TestRemoveTileSharesNoMutableState(t *testing.T) {
	b, err := board.NewUniform(2, 2, 2)
	require.NoError(t, err)
	pos := board.NewPosition(0, 0)

	removed, err := b.RemoveTile(pos)
	require.NoError(t, err)
	removedTile, err := removed.TileAt(pos)
	require.NoError(t, err)
	assert.True(t, removedTile.IsHole())

	original, err := b.TileAt(pos)
	require.NoError(t, err)
	assert.False(t, original.IsHole())
}

func TestPositionsRowMajorOrder(t *testing.T) {
	b, err := board.NewUniform(2, 3, 1)
	require.NoError(t, err)
	positions := b.Positions()
	want := []board.Position{
		board.NewPosition(0, 0), board.NewPosition(0, 1), board.NewPosition(0, 2),
		board.NewPosition(1, 0), board.NewPosition(1, 1), board.NewPosition(1, 2),
	}
	assert.Equal(t, want, positions)
}

func TestReachableFromStopsAtHole(t *testing.T) {
	// A column of tiles along North/South from (4,0): holes punched in at (0,0) and (6,0).
	layout := make([][]uint8, 7)
	for i := range layout {
		layout[i] = []uint8{1}
	}
	layout[0][0] = 0
	layout[6][0] = 0
	b, err := board.NewFromLayout(layout)
	require.NoError(t, err)

	reachable := b.ReachableFrom(board.NewPosition(4, 0))
	assert.Contains(t, reachable, board.NewPosition(2, 0))
	assert.NotContains(t, reachable, board.NewPosition(0, 0))
	assert.NotContains(t, reachable, board.NewPosition(6, 0))
}

func TestReachableFromStopsAtEdge(t *testing.T) {
	b, err := board.NewUniform(3, 3, 1)
	require.NoError(t, err)
	reachable := b.ReachableFrom(board.NewPosition(0, 0))
	for _, p := range reachable {
		assert.True(t, b.InBounds(p))
	}
}

func TestReachableFromExcludesSource(t *testing.T) {
	b, err := board.NewUniform(5, 5, 1)
	require.NoError(t, err)
	src := board.NewPosition(2, 2)
	reachable := b.ReachableFrom(src)
	assert.NotContains(t, reachable, src)
}
