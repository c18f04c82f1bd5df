// Package referee implements the trusted arbiter of spec §4.6: it drives
// color assignment, placement and movement through the pure state/gametree
// layer, enforces the four agent-facing timeouts of §5, disqualifies
// misbehaving agents, fans events out to observers, and computes the final
// GameResult.
package referee

import (
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/janpfeifer/fish/internal/board"
	"github.com/janpfeifer/fish/internal/config"
	"github.com/janpfeifer/fish/internal/gametree"
	"github.com/janpfeifer/fish/internal/observer"
	"github.com/janpfeifer/fish/internal/player"
	"github.com/janpfeifer/fish/internal/state"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// Referee manages exactly one match per instance (spec §1). Construct one
// with New, register observers with RegisterObserver, then call RunMatch
// once.
type Referee struct {
	timeouts Timeouts
	matchID  uuid.UUID

	mu        sync.Mutex
	observers []observer.Observer
	current   *state.GameState // non-nil once a match is in progress

	cheaters, failed []state.Color
	used             bool
}

// Option configures a Referee at construction time.
type Option func(*Referee)

// WithTimeouts overrides the spec's default 10-second timeouts.
func WithTimeouts(t Timeouts) Option {
	return func(r *Referee) { r.timeouts = t }
}

// New constructs an empty, unused Referee.
func New(opts ...Option) *Referee {
	r := &Referee{timeouts: DefaultTimeouts(), matchID: uuid.New()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterObserver adds obs to the fan-out list. If a match is already in
// progress, a Register event carrying the current state is delivered to
// obs synchronously (spec §4.6), subject to the same observer-delivery
// timeout as any other event.
func (r *Referee) RegisterObserver(obs observer.Observer) {
	r.mu.Lock()
	r.observers = append(r.observers, obs)
	current := r.current
	r.mu.Unlock()

	if current != nil {
		if err := callVoidWithTimeout(r.timeouts.ObserverDelivery, func() error {
			return obs.Notify(observer.Event{Kind: observer.RegisterEvent, State: current})
		}); err != nil {
			r.dropObserver(obs)
		}
	}
}

func (r *Referee) dropObserver(dead observer.Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.observers[:0:0]
	for _, o := range r.observers {
		if o != dead {
			kept = append(kept, o)
		}
	}
	r.observers = kept
}

// broadcast delivers e to every currently-registered observer concurrently,
// bounded by the observer-delivery timeout, and drops any observer that
// fails or times out. broadcast blocks until every observer has either
// answered or been abandoned, which is what guarantees per-observer event
// ordering: the next broadcast call cannot start until this one is done.
func (r *Referee) broadcast(e observer.Event) {
	r.mu.Lock()
	obs := append([]observer.Observer(nil), r.observers...)
	r.mu.Unlock()
	if len(obs) == 0 {
		return
	}

	survives := make([]bool, len(obs))
	var g errgroup.Group
	for i, o := range obs {
		i, o := i, o
		g.Go(func() error {
			err := callVoidWithTimeout(r.timeouts.ObserverDelivery, func() error {
				return o.Notify(e)
			})
			survives[i] = err == nil
			return nil // observer failures never propagate (spec §7)
		})
	}
	_ = g.Wait()

	r.mu.Lock()
	defer r.mu.Unlock()
	kept := make([]observer.Observer, 0, len(r.observers))
	aliveSet := make(map[observer.Observer]bool, len(obs))
	for i, o := range obs {
		if survives[i] {
			aliveSet[o] = true
		}
	}
	for _, o := range r.observers {
		if aliveSet[o] {
			kept = append(kept, o)
		}
	}
	r.observers = kept
}

// RunMatch drives one match for players (one agent per seat, in seating
// order) using the given board configuration, and returns the final
// GameResult. RunMatch must be called at most once per Referee.
func (r *Referee) RunMatch(players []player.Player, boardConfig config.BoardConfig) (GameResult, error) {
	if r.used {
		return GameResult{}, errors.New("referee instance already ran a match")
	}
	r.used = true

	if len(players) < 2 || len(players) > 4 {
		return GameResult{}, errors.Errorf("run_match requires 2-4 players, got %d", len(players))
	}

	b, err := boardConfig.Build()
	if err != nil {
		return GameResult{}, errors.Wrap(err, "invalid board configuration")
	}
	if needed := config.MinPenguinCapacity(len(players)); b.CountFishTiles() < needed {
		return GameResult{}, errors.Errorf(
			"board has %d non-hole tiles, need at least %d for %d players", b.CountFishTiles(), needed, len(players))
	}

	klog.V(1).Infof("[match %s] starting with %d players", r.matchID, len(players))

	seatedColors, agents, disqualifiedAtAssignment := r.assignColors(players)
	r.failed = append(r.failed, disqualifiedAtAssignment...)
	if len(seatedColors) == 0 {
		return r.finish(nil, nil), nil
	}

	gs, err := state.New(b, seatedColors)
	if err != nil {
		return GameResult{}, errors.Wrap(err, "referee invariant violated building initial state")
	}
	r.mu.Lock()
	r.current = gs
	r.mu.Unlock()
	r.broadcast(observer.Event{Kind: observer.RegisterEvent, State: gs})

	gs, err = r.runPlacementPhase(gs, agents, len(players))
	if err != nil {
		return GameResult{}, err
	}
	if len(gs.Players()) == 0 {
		return r.finish(nil, gs), nil
	}

	finalState, err := r.runTurnPhase(gs, agents)
	if err != nil {
		return GameResult{}, err
	}

	result := r.finish(finalState.Players(), finalState)
	r.broadcast(observer.Event{Kind: observer.EndOfGameEvent, Result: &observer.Result{
		Winners: result.Winners, NonWinners: result.NonWinners,
		Failed: result.Failed, Cheaters: result.Cheaters,
	}})
	return result, nil
}

// assignColors runs phase 1 (spec §4.6). It returns the colors/agents that
// survived and the colors disqualified as Fail during assignment.
func (r *Referee) assignColors(players []player.Player) (seated []state.Color, agents map[state.Color]player.Player, failed []state.Color) {
	agents = make(map[state.Color]player.Player, len(players))
	for i, p := range players {
		color := state.ColorOrder[i]
		err := callVoidWithTimeout(r.timeouts.AssignColor, func() error {
			return p.AssignColor(color)
		})
		if err != nil {
			klog.Warningf("[match %s] %s failed color assignment: %v", r.matchID, color, err)
			failed = append(failed, color)
			continue
		}
		seated = append(seated, color)
		agents[color] = p
	}
	return seated, agents, failed
}

// runPlacementPhase drives phase 2. The placement quota (6 - originalCount)
// is frozen at the number of players passed to RunMatch, not recomputed as
// players are disqualified mid-phase (spec §8 scenario S3).
func (r *Referee) runPlacementPhase(gs *state.GameState, agents map[state.Color]player.Player, originalCount int) (*state.GameState, error) {
	quota := 6 - originalCount
	remaining := make(map[state.Color]int, len(gs.Players()))
	for _, p := range gs.Players() {
		remaining[p.Color] = quota
	}

	for len(gs.Players()) > 0 {
		anyLeft := false
		for _, p := range gs.Players() {
			if remaining[p.Color] > 0 {
				anyLeft = true
				break
			}
		}
		if !anyLeft {
			break
		}

		color := gs.CurrentColor()
		if remaining[color] <= 0 {
			gs = gs.RotateToNextPlayer()
			continue
		}

		agent := agents[color]
		pos, err := callWithTimeout(r.timeouts.Placement, func() (board.Position, error) {
			return agent.PlacePenguin(gs)
		})
		var next *state.GameState
		if err == nil {
			next, err = gs.PlacePenguin(color, pos)
		}
		if err != nil {
			// spec §4.2 design rationale: placement-phase bad responses are
			// uniformly Fail, cheat/fail is not distinguishable here.
			gs = r.disqualify(gs, color, agent, fail)
			delete(remaining, color)
			r.mu.Lock()
			r.current = gs
			r.mu.Unlock()
			continue
		}

		gs = next
		remaining[color]--
		r.mu.Lock()
		r.current = gs
		r.mu.Unlock()
		r.broadcast(observer.Event{Kind: observer.PenguinPlacementEvent, Pos: pos})
		gs = gs.RotateToNextPlayer()
	}
	return gs, nil
}

// runTurnPhase drives phase 3 over the lazy GameTree until terminal.
func (r *Referee) runTurnPhase(gs *state.GameState, agents map[state.Color]player.Player) (*state.GameState, error) {
	tree := gametree.New(gs)
	for {
		if len(tree.State().Players()) == 0 {
			return tree.State(), nil
		}
		children, err := tree.Children()
		if err != nil {
			return nil, errors.Wrap(err, "referee invariant violated expanding game tree")
		}
		if len(children) == 0 {
			return tree.State(), nil
		}
		if len(children) == 1 && children[0].Action.Kind == state.SkipKind {
			r.broadcast(observer.Event{Kind: observer.TurnActionEvent, Action: state.Skip})
			tree = children[0].Tree
			r.mu.Lock()
			r.current = tree.State()
			r.mu.Unlock()
			continue
		}

		color := tree.State().CurrentColor()
		agent := agents[color]
		action, err := callWithTimeout(r.timeouts.Turn, func() (state.Action, error) {
			return agent.TakeTurn(tree)
		})
		if err != nil {
			next, rmErr := tree.State().RemoveCurrentPlayer()
			if rmErr != nil {
				return nil, errors.Wrap(rmErr, "referee invariant violated removing failed player")
			}
			r.recordDisqualification(color, fail)
			r.broadcast(observer.Event{Kind: observer.DisqualifyEvent, Color: color})
			_ = callVoidWithTimeout(r.timeouts.InformDisqualified, func() error { agent.InformDisqualified(); return nil })
			tree = gametree.New(next)
			r.mu.Lock()
			r.current = next
			r.mu.Unlock()
			continue
		}

		child, ok := findChild(children, action)
		if !ok {
			next, rmErr := tree.State().RemoveCurrentPlayer()
			if rmErr != nil {
				return nil, errors.Wrap(rmErr, "referee invariant violated removing cheater")
			}
			r.recordDisqualification(color, cheat)
			r.broadcast(observer.Event{Kind: observer.DisqualifyEvent, Color: color})
			_ = callVoidWithTimeout(r.timeouts.InformDisqualified, func() error { agent.InformDisqualified(); return nil })
			tree = gametree.New(next)
			r.mu.Lock()
			r.current = next
			r.mu.Unlock()
			continue
		}

		r.broadcast(observer.Event{Kind: observer.TurnActionEvent, Action: action})
		tree = child.Tree
		r.mu.Lock()
		r.current = tree.State()
		r.mu.Unlock()
	}
}

type disqualificationKind int

const (
	fail disqualificationKind = iota
	cheat
)

// disqualify removes the current player from gs for a placement-phase
// failure, records the disqualification, notifies observers, and notifies
// the agent -- all uniformly Fail, per spec §4.2.
func (r *Referee) disqualify(gs *state.GameState, color state.Color, agent player.Player, kind disqualificationKind) *state.GameState {
	next, err := gs.RemoveCurrentPlayer()
	if err != nil {
		klog.Errorf("[match %s] invariant violated removing %s: %v", r.matchID, color, err)
		return gs
	}
	r.recordDisqualification(color, kind)
	r.broadcast(observer.Event{Kind: observer.DisqualifyEvent, Color: color})
	_ = callVoidWithTimeout(r.timeouts.InformDisqualified, func() error { agent.InformDisqualified(); return nil })
	return next
}

func (r *Referee) recordDisqualification(color state.Color, kind disqualificationKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if slices.Contains(r.cheaters, color) || slices.Contains(r.failed, color) {
		return
	}
	switch kind {
	case cheat:
		r.cheaters = append(r.cheaters, color)
	default:
		r.failed = append(r.failed, color)
	}
	klog.Warningf("[match %s] disqualified %s (%v)", r.matchID, color, kind)
}

// finish computes phase 4's GameResult from the final seated players.
func (r *Referee) finish(seated []state.PlayerState, finalState *state.GameState) GameResult {
	result := GameResult{Failed: append([]state.Color(nil), r.failed...), Cheaters: append([]state.Color(nil), r.cheaters...)}
	if len(seated) == 0 {
		return result
	}
	max := seated[0].Score
	for _, p := range seated {
		if p.Score > max {
			max = p.Score
		}
	}
	for _, p := range seated {
		if p.Score == max {
			result.Winners = append(result.Winners, p.Color)
		} else {
			result.NonWinners = append(result.NonWinners, p.Color)
		}
	}
	return result
}

func findChild(children []gametree.Child, action state.Action) (gametree.Child, bool) {
	for _, c := range children {
		if c.Action.Equal(action) {
			return c, true
		}
	}
	return gametree.Child{}, false
}

func (k disqualificationKind) String() string {
	if k == cheat {
		return "cheat"
	}
	return "fail"
}
