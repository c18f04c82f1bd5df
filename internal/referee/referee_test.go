package referee

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/janpfeifer/fish/internal/board"
	"github.com/janpfeifer/fish/internal/config"
	"github.com/janpfeifer/fish/internal/gametree"
	"github.com/janpfeifer/fish/internal/observer"
	"github.com/janpfeifer/fish/internal/player"
	"github.com/janpfeifer/fish/internal/state"
	"github.com/janpfeifer/fish/internal/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAgent is a configurable player.Player test double. A nil hook falls
// back to the reference scanning/minimax strategy pair, so tests only wire
// the single hook whose behavior they want to exercise.
type fakeAgent struct {
	color        state.Color
	assignColor  func(state.Color) error
	placePenguin func(*state.GameState) (board.Position, error)
	takeTurn     func(*gametree.GameTree) (state.Action, error)
	disqualified int32
	assigned     int32
}

func (f *fakeAgent) AssignColor(c state.Color) error {
	atomic.AddInt32(&f.assigned, 1)
	f.color = c
	if f.assignColor != nil {
		return f.assignColor(c)
	}
	return nil
}

func (f *fakeAgent) PlacePenguin(gs *state.GameState) (board.Position, error) {
	if f.placePenguin != nil {
		return f.placePenguin(gs)
	}
	return strategy.NewScanningPlacer().PlacePenguin(gs, f.color)
}

func (f *fakeAgent) TakeTurn(tree *gametree.GameTree) (state.Action, error) {
	if f.takeTurn != nil {
		return f.takeTurn(tree)
	}
	return strategy.NewMinimaxActor(2).TakeTurn(tree)
}

func (f *fakeAgent) InformDisqualified() {
	atomic.AddInt32(&f.disqualified, 1)
}

func strategicAgent() *fakeAgent {
	return &fakeAgent{}
}

// fastTimeouts keeps hang-driven tests from taking 10 real seconds each.
func fastTimeouts() Timeouts {
	return Timeouts{
		AssignColor:        50 * time.Millisecond,
		Placement:          50 * time.Millisecond,
		Turn:               50 * time.Millisecond,
		InformDisqualified: 50 * time.Millisecond,
		ObserverDelivery:   50 * time.Millisecond,
	}
}

func uniformBoardConfig(height, width int, fish uint8) config.BoardConfig {
	return config.BoardConfig{Height: height, Width: width, UniformFish: fish}
}

// S1: 2 players, 3x3 board of uniform 1-fish tiles, both scanning placers.
func TestRunMatch_S1_PlacementFillsBoard(t *testing.T) {
	red := strategicAgent()
	white := strategicAgent()
	observers := observer.NewRecorder()

	r := New(WithTimeouts(fastTimeouts()))
	r.RegisterObserver(observers)

	result, err := r.RunMatch([]player.Player{red, white}, uniformBoardConfig(3, 3, 1))
	require.NoError(t, err)

	assert.Empty(t, result.Cheaters)
	assert.Empty(t, result.Failed)
	assert.Equal(t, 2, len(result.Winners)+len(result.NonWinners), "both players stay seated to the end")
	assert.NotEmpty(t, result.Winners)

	var placements []board.Position
	for _, e := range observers.Snapshot() {
		if e.Kind == observer.PenguinPlacementEvent {
			placements = append(placements, e.Pos)
		}
	}
	require.Len(t, placements, 8, "6-2=4 penguins per player, 2 players")

	// Single-step round-robin placement over a row-major scan leaves (2,2)
	// as the only open tile, split between the two colors in alternating
	// scan order: Red takes every tile the scan reaches on its turn, White
	// the rest.
	seen := map[board.Position]bool{}
	for _, p := range placements {
		assert.False(t, seen[p], "position %s placed twice", p)
		seen[p] = true
	}
	assert.False(t, seen[board.NewPosition(2, 2)], "(2,2) must remain the sole open tile")
}

// S2: one player always returns an illegal move; it is classified Cheat and
// the other player wins.
func TestRunMatch_S2_IllegalMoveIsCheat(t *testing.T) {
	cheater := &fakeAgent{
		takeTurn: func(*gametree.GameTree) (state.Action, error) {
			return state.Move(board.NewPosition(99, 99), board.NewPosition(98, 98)), nil
		},
	}
	honest := strategicAgent()

	r := New(WithTimeouts(fastTimeouts()))
	result, err := r.RunMatch([]player.Player{cheater, honest}, uniformBoardConfig(3, 3, 1))
	require.NoError(t, err)

	require.Len(t, result.Cheaters, 1)
	assert.Equal(t, cheater.color, result.Cheaters[0])
	assert.Equal(t, int32(1), atomic.LoadInt32(&cheater.disqualified))
	assert.Contains(t, result.Winners, honest.color)
	assert.NotContains(t, result.Winners, cheater.color)
}

// S3: player 2 of 3 never returns from place_penguin; it is classified Fail
// and the placement quota stays frozen at 6-3=3 for the survivors.
func TestRunMatch_S3_HungPlacementIsFailWithFrozenQuota(t *testing.T) {
	p1 := strategicAgent()
	hung := &fakeAgent{
		placePenguin: func(*state.GameState) (board.Position, error) {
			select {}
		},
	}
	p3 := strategicAgent()
	rec := observer.NewRecorder()

	r := New(WithTimeouts(fastTimeouts()))
	r.RegisterObserver(rec)

	result, err := r.RunMatch([]player.Player{p1, hung, p3}, uniformBoardConfig(4, 4, 1))
	require.NoError(t, err)

	require.Len(t, result.Failed, 1)
	assert.Equal(t, hung.color, result.Failed[0])
	assert.Empty(t, result.Cheaters)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hung.disqualified))

	var placements int
	for _, e := range rec.Snapshot() {
		if e.Kind == observer.PenguinPlacementEvent {
			placements++
		}
	}
	assert.Equal(t, 6, placements, "quota frozen at 6-3=3 per surviving player, not recomputed to 6-2=4")
}

// S4: 4 players on a board with exactly (6-4)*4=8 non-hole tiles; placement
// consumes every tile, so no move is ever legal.
func TestRunMatch_S4_NoLegalMovesTiesEveryoneAtZero(t *testing.T) {
	players := []player.Player{strategicAgent(), strategicAgent(), strategicAgent(), strategicAgent()}
	rec := observer.NewRecorder()

	r := New(WithTimeouts(fastTimeouts()))
	r.RegisterObserver(rec)

	result, err := r.RunMatch(players, uniformBoardConfig(2, 4, 1))
	require.NoError(t, err)

	assert.Empty(t, result.Cheaters)
	assert.Empty(t, result.Failed)
	assert.Len(t, result.Winners, 4, "every player is tied at score 0")
	assert.Empty(t, result.NonWinners)

	for _, e := range rec.Snapshot() {
		assert.NotEqual(t, observer.TurnActionEvent, e.Kind, "no move is legal once the board is fully occupied")
	}
}

// S5: an observer hangs on its first event; it is dropped, and every
// surviving observer still receives every event including EndOfGame last.
func TestRunMatch_S5_HungObserverIsDropped(t *testing.T) {
	hungObs := &observer.Recorder{Hang: true}
	liveObs := observer.NewRecorder()

	r := New(WithTimeouts(fastTimeouts()))
	r.RegisterObserver(hungObs)
	r.RegisterObserver(liveObs)

	result, err := r.RunMatch([]player.Player{strategicAgent(), strategicAgent()}, uniformBoardConfig(3, 3, 1))
	require.NoError(t, err)
	assert.Empty(t, result.Cheaters)
	assert.Empty(t, result.Failed)

	events := liveObs.Snapshot()
	require.NotEmpty(t, events)
	assert.Equal(t, observer.EndOfGameEvent, events[len(events)-1].Kind, "EndOfGame must be the last event delivered to a surviving observer")

	// The hung observer only ever recorded (at most) its first, blocked call.
	assert.LessOrEqual(t, len(hungObs.Snapshot()), 1)
}

// S6: fewer than 2 or more than 4 players is rejected before any agent is
// contacted.
func TestRunMatch_S6_RejectsBadPlayerCount(t *testing.T) {
	for _, n := range []int{0, 1, 5, 6} {
		players := make([]player.Player, n)
		agents := make([]*fakeAgent, n)
		for i := range players {
			agents[i] = strategicAgent()
			players[i] = agents[i]
		}

		r := New(WithTimeouts(fastTimeouts()))
		_, err := r.RunMatch(players, uniformBoardConfig(3, 3, 1))
		require.Error(t, err)
		for _, a := range agents {
			assert.Equal(t, int32(0), atomic.LoadInt32(&a.assigned), "no agent may be contacted when the player count is rejected")
		}
	}
}

// A RunMatch instance is single-use (spec §4.7).
func TestRunMatch_SecondCallRejected(t *testing.T) {
	r := New(WithTimeouts(fastTimeouts()))
	_, err := r.RunMatch([]player.Player{strategicAgent(), strategicAgent()}, uniformBoardConfig(3, 3, 1))
	require.NoError(t, err)

	_, err = r.RunMatch([]player.Player{strategicAgent(), strategicAgent()}, uniformBoardConfig(3, 3, 1))
	require.Error(t, err)
}

// A hung assign_color call disqualifies that agent as Fail before placement
// even begins (invariant 9: bounded disqualification on any of the four
// agent-facing calls).
func TestRunMatch_HungAssignColorIsFail(t *testing.T) {
	hung := &fakeAgent{assignColor: func(state.Color) error { select {} }}
	honest := strategicAgent()

	r := New(WithTimeouts(fastTimeouts()))
	result, err := r.RunMatch([]player.Player{hung, honest}, uniformBoardConfig(3, 3, 1))
	require.NoError(t, err)

	assert.Contains(t, result.Failed, state.Red, "the first seat is Red and never acknowledges assignment")
	assert.NotContains(t, result.Cheaters, state.Red)
}

// RegisterObserver delivers a synchronous Register event carrying the
// in-progress state when registered mid-match.
func TestRegisterObserver_MidMatchDeliversRegisterEvent(t *testing.T) {
	r := New(WithTimeouts(fastTimeouts()))
	type outcome struct {
		result GameResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := r.RunMatch([]player.Player{strategicAgent(), strategicAgent()}, uniformBoardConfig(3, 3, 1))
		done <- outcome{result, err}
	}()

	late := observer.NewRecorder()
	// Give the match a moment to start before registering; the assertion
	// below only depends on late-registration being handled, not on timing.
	time.Sleep(5 * time.Millisecond)
	r.RegisterObserver(late)

	out := <-done
	require.NoError(t, out.err)

	var kinds []observer.EventKind
	for _, e := range late.Snapshot() {
		kinds = append(kinds, e.Kind)
	}
	assert.Contains(t, kinds, observer.RegisterEvent)
}
