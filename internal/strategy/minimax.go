package strategy

import (
	"math"
	"runtime"

	"github.com/janpfeifer/fish/internal/gametree"
	"github.com/janpfeifer/fish/internal/state"
	"golang.org/x/sync/errgroup"
)

// MinimaxActor is the depth-bounded minimax actor of spec §4.4: the acting
// player is the maximizer, every other seated player minimizes the
// maximizer's eventual score. Depth counts only plies where the maximizer
// moves; minimizer plies in between do not decrement it.
type MinimaxActor struct {
	depth    int
	parallel bool
}

// Option configures a MinimaxActor.
type Option func(*MinimaxActor)

// Parallel enables evaluating the top-ply's sibling actions concurrently,
// bounded by GOMAXPROCS workers. It never changes which action is chosen:
// ties are still broken lexicographically after every sibling's value is
// known, never by goroutine completion order.
func Parallel(enabled bool) Option {
	return func(m *MinimaxActor) { m.parallel = enabled }
}

// NewMinimaxActor returns a minimax actor searching to the given depth
// (must be >= 1).
func NewMinimaxActor(depth int, opts ...Option) *MinimaxActor {
	m := &MinimaxActor{depth: depth}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TakeTurn returns the Action the maximizer (the current player of tree's
// root state) should take.
func (m *MinimaxActor) TakeTurn(tree *gametree.GameTree) (state.Action, error) {
	maximizer := tree.State().CurrentColor()
	action, _, err := m.best(tree, maximizer, m.depth, true)
	return action, err
}

// best evaluates tree's children and returns the best action for the
// maximizer along with its minimax value. topLevel gates the optional
// parallel fan-out (only ever applied once, at the root).
func (m *MinimaxActor) best(tree *gametree.GameTree, maximizer state.Color, remainingDepth int, topLevel bool) (state.Action, float64, error) {
	children, err := tree.Children()
	if err != nil {
		return state.Action{}, 0, err
	}
	if len(children) == 0 {
		// Terminal: the maximizer's branch value is the score it holds
		// right now (spec's "eliminated before depth D exhausted" case
		// collapses to this when the whole game has ended).
		return state.Skip, maximizerScore(tree.State(), maximizer), nil
	}

	current := tree.State().CurrentColor()
	if current != maximizer {
		return m.worstOfChildren(children, maximizer, remainingDepth)
	}
	if remainingDepth == 0 {
		return state.Skip, maximizerScore(tree.State(), maximizer), nil
	}

	values := make([]float64, len(children))
	if m.parallel && topLevel && len(children) > 1 {
		var g errgroup.Group
		g.SetLimit(max(1, runtime.GOMAXPROCS(0)))
		for i, child := range children {
			i, child := i, child
			g.Go(func() error {
				_, v, err := m.best(child.Tree, maximizer, remainingDepth-1, false)
				values[i] = v
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return state.Action{}, 0, err
		}
	} else {
		for i, child := range children {
			_, v, err := m.best(child.Tree, maximizer, remainingDepth-1, false)
			if err != nil {
				return state.Action{}, 0, err
			}
			values[i] = v
		}
	}

	bestIdx := 0
	for i := 1; i < len(children); i++ {
		if values[i] > values[bestIdx] ||
			(values[i] == values[bestIdx] && actionLess(children[i].Action, children[bestIdx].Action)) {
			bestIdx = i
		}
	}
	return children[bestIdx].Action, values[bestIdx], nil
}

// worstOfChildren implements the minimizing ply: every non-maximizer
// player picks the action worst for the maximizer's eventual score.
func (m *MinimaxActor) worstOfChildren(children []gametree.Child, maximizer state.Color, remainingDepth int) (state.Action, float64, error) {
	worst := math.Inf(1)
	worstIdx := -1
	for i, child := range children {
		_, v, err := m.best(child.Tree, maximizer, remainingDepth, false)
		if err != nil {
			return state.Action{}, 0, err
		}
		if v < worst {
			worst = v
			worstIdx = i
		}
	}
	return children[worstIdx].Action, worst, nil
}

func maximizerScore(gs *state.GameState, maximizer state.Color) float64 {
	for _, p := range gs.Players() {
		if p.Color == maximizer {
			return float64(p.Score)
		}
	}
	// The maximizer is no longer seated in this branch (eliminated): the
	// caller only reaches here from states derived from the root, and the
	// referee never feeds the GameTree a state missing the maximizer, so
	// this is unreachable in practice; 0 is the only sane fallback value.
	return 0
}

// actionLess implements the tie-break order of spec §4.4: lexicographic on
// (src.row, src.col, dst.row, dst.col) ascending; Skip compares greater
// than every move.
func actionLess(a, b state.Action) bool {
	if a.Kind == state.SkipKind {
		return false
	}
	if b.Kind == state.SkipKind {
		return true
	}
	if a.SourcePos != b.SourcePos {
		return a.SourcePos.Less(b.SourcePos)
	}
	return a.TargetPos.Less(b.TargetPos)
}
