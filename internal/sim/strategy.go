package sim

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/objective"
)

// Strategy picks the next move of an autoplayer.
type Strategy interface {
	Name() string
	// Pick returns the move to play, or false when the board has none.
	Pick(s *match3.Session, rng *rand.Rand) (core.Move, bool)
}

var strategies = map[string]func() Strategy{
	"first":  func() Strategy { return First{} },
	"random": func() Strategy { return Random{} },
	"greedy": func() Strategy { return Greedy{} },
}

// StrategyNames returns the known strategy names, sorted.
func StrategyNames() []string {
	names := make([]string, 0, len(strategies))
	for n := range strategies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NewStrategy looks a strategy up by name.
func NewStrategy(name string) (Strategy, error) {
	f, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("sim: unknown strategy %q (want one of %v)", name, StrategyNames())
	}
	return f(), nil
}

// First always plays the hint.
type First struct{}

func (First) Name() string { return "first" }

func (First) Pick(s *match3.Session, _ *rand.Rand) (core.Move, bool) {
	return s.Hint()
}

// Random plays a uniformly chosen valid move.
type Random struct{}

func (Random) Name() string { return "random" }

func (Random) Pick(s *match3.Session, rng *rand.Rand) (core.Move, bool) {
	moves := s.Board().ValidMoves()
	if len(moves) == 0 {
		return core.Move{}, false
	}
	return moves[rng.Intn(len(moves))], true
}

// Greedy plays the move whose first clear is worth the most to the open
// objectives. Later cascade steps depend on the refill and are ignored.
type Greedy struct{}

func (Greedy) Name() string { return "greedy" }

func (Greedy) Pick(s *match3.Session, _ *rand.Rand) (core.Move, bool) {
	broken, target := s.Tracker().Stones()
	return bestMove(s.Board().Grid(), s.Board().Rules().MinRun, s.Tracker().Goals(), broken < target)
}

// bestMove scores every valid move on a copy of g. Ties keep the earliest
// move in scan order.
func bestMove(g *core.Grid, minRun int, goals []objective.Goal, wantStones bool) (core.Move, bool) {
	moves := core.ValidMoves(g, minRun)
	if len(moves) == 0 {
		return core.Move{}, false
	}

	best, bestValue := moves[0], -1
	for _, m := range moves {
		if v := moveValue(g, m, minRun, goals, wantStones); v > bestValue {
			best, bestValue = m, v
		}
	}
	return best, true
}

func moveValue(g *core.Grid, m core.Move, minRun int, goals []objective.Goal, wantStones bool) int {
	trial := g.Clone()
	res, err := core.TrySwap(trial, m.A, m.B, minRun)
	if err != nil || !res.Valid() {
		return -1
	}

	matches := core.FindAllMatches(trial, minRun)
	counts := matches.ColorCounts(trial)
	value := matches.Len()
	for _, goal := range goals {
		if need := goal.Target - goal.Current; need > 0 {
			value += 3 * min(counts[goal.Tile], need)
		}
	}
	if wantStones {
		dmg := core.ApplyAdjacentStoneDamage(trial, matches.Sorted())
		value += 2*len(dmg.Hit) + 5*len(dmg.Broken)
	}
	return value
}
