package board

import "github.com/pkg/errors"

// Sentinel errors returned wrapped with context via errors.Wrapf, so callers
// can identify them with errors.Is instead of parsing error strings.
var (
	ErrOutOfBounds   = errors.New("position is out of bounds")
	ErrHole          = errors.New("tile is a hole")
	ErrInvalidConfig = errors.New("invalid board configuration")
)
