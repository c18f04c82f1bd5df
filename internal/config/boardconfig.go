// Package config holds the structured board configuration value referees
// accept to build a match's board (spec §6, "Board config").
package config

import (
	"github.com/janpfeifer/fish/internal/board"
	"github.com/pkg/errors"
)

// BoardConfig describes how to build a board. Exactly one of UniformFish,
// Layout, or MinOneFishTiles selects the construction strategy; Height and
// Width are required for the UniformFish and MinOneFishTiles variants and
// are derived from Layout when it is set.
type BoardConfig struct {
	Height, Width int

	// UniformFish, if non-zero, builds a board where every tile carries
	// this many fish.
	UniformFish uint8

	// Layout, if non-nil, builds a board from an explicit row-major grid
	// of fish counts; 0 means hole.
	Layout [][]uint8

	// MinOneFishTiles, if non-zero, builds a board with at least this many
	// one-fish tiles, the remaining tiles carrying DefaultFish.
	MinOneFishTiles int
	DefaultFish     uint8
}

// Build validates the config and constructs the corresponding Board.
func (c BoardConfig) Build() (*board.Board, error) {
	switch {
	case c.Layout != nil:
		return board.NewFromLayout(c.Layout)

	case c.MinOneFishTiles > 0:
		if c.Height <= 0 || c.Width <= 0 {
			return nil, errors.Wrap(board.ErrInvalidConfig, "height and width are required for MinOneFishTiles boards")
		}
		if c.MinOneFishTiles > c.Height*c.Width {
			return nil, errors.Wrapf(board.ErrInvalidConfig,
				"MinOneFishTiles=%d exceeds board capacity %dx%d", c.MinOneFishTiles, c.Height, c.Width)
		}
		defaultFish := c.DefaultFish
		if defaultFish == 0 {
			defaultFish = 1
		}
		placed := 0
		return board.New(c.Height, c.Width, func(pos board.Position) board.Tile {
			if placed < c.MinOneFishTiles {
				placed++
				return board.Tile{FishCount: 1}
			}
			return board.Tile{FishCount: defaultFish}
		})

	case c.UniformFish > 0:
		return board.NewUniform(c.Height, c.Width, c.UniformFish)

	default:
		return nil, errors.Wrap(board.ErrInvalidConfig, "one of UniformFish, Layout, or MinOneFishTiles must be set")
	}
}

// MinPenguinCapacity returns the number of non-hole tiles a board config
// must yield to seat n players: (6-n) penguins each, per the placement
// quota rule.
func MinPenguinCapacity(numPlayers int) int {
	return (6 - numPlayers) * numPlayers
}
