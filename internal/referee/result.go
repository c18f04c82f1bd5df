package referee

import "github.com/janpfeifer/fish/internal/state"

// GameResult is the Go form of spec §3's (winners, non-winners, failed,
// cheaters) tuple, each a list of seated-or-disqualified colors.
type GameResult struct {
	Winners    []state.Color
	NonWinners []state.Color
	Failed     []state.Color
	Cheaters   []state.Color
}
