// Package objective tracks the move budget and level goals of a match-3 run.
package objective

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// Goal asks the player to clear Target tiles of one color.
type Goal struct {
	Tile    core.Tile
	Target  int
	Current int
}

// Done reports whether the goal is met.
func (g Goal) Done() bool {
	return g.Current >= g.Target
}

func (g Goal) String() string {
	return fmt.Sprintf("%s %d/%d", g.Tile, g.Current, g.Target)
}

// Observer is notified of tracker changes. All methods are optional through
// the Funcs adapter.
type Observer interface {
	ObjectivesReset()
	ObjectiveProgress(index int, goal Goal)
	StoneProgress(current, target int)
	GameOver(won bool)
}

// Funcs adapts plain functions to Observer. Nil fields are skipped.
type Funcs struct {
	OnReset         func()
	OnProgress      func(index int, goal Goal)
	OnStoneProgress func(current, target int)
	OnGameOver      func(won bool)
}

func (f Funcs) ObjectivesReset() {
	if f.OnReset != nil {
		f.OnReset()
	}
}

func (f Funcs) ObjectiveProgress(index int, goal Goal) {
	if f.OnProgress != nil {
		f.OnProgress(index, goal)
	}
}

func (f Funcs) StoneProgress(current, target int) {
	if f.OnStoneProgress != nil {
		f.OnStoneProgress(current, target)
	}
}

func (f Funcs) GameOver(won bool) {
	if f.OnGameOver != nil {
		f.OnGameOver(won)
	}
}

// Tracker owns the move budget, the color goals and the optional stone goal.
// It implements core.ObjectiveSink.
type Tracker struct {
	movesLeft   int
	startMoves  int
	goals       []Goal
	stoneTarget int
	stonesDone  int
	stonesTotal int
	score       int
	over        bool
	observer    Observer
}

var _ core.ObjectiveSink = (*Tracker)(nil)

// New creates a tracker. A stoneTarget of zero disables the stone goal.
func New(moves int, goals []Goal, stoneTarget int) *Tracker {
	t := &Tracker{}
	t.Reset(moves, goals, stoneTarget)
	return t
}

// SetObserver installs the change observer.
func (t *Tracker) SetObserver(o Observer) { t.observer = o }

// Reset starts a new run with fresh progress.
func (t *Tracker) Reset(moves int, goals []Goal, stoneTarget int) {
	t.movesLeft = moves
	t.startMoves = moves
	t.goals = make([]Goal, len(goals))
	for i, g := range goals {
		t.goals[i] = Goal{Tile: g.Tile, Target: g.Target}
	}
	if stoneTarget < 0 {
		stoneTarget = 0
	}
	t.stoneTarget = stoneTarget
	t.stonesDone = 0
	t.stonesTotal = 0
	t.score = 0
	t.over = false
	if t.observer != nil {
		t.observer.ObjectivesReset()
	}
}

// OnTilesCleared credits cleared tiles to the goals of their color in
// order: a goal is filled to its target before the next goal of the same
// color receives anything.
func (t *Tracker) OnTilesCleared(counts map[core.Tile]int) {
	left := make(map[core.Tile]int, len(counts))
	for tile, n := range counts {
		left[tile] = n
	}
	for i := range t.goals {
		g := &t.goals[i]
		n := left[g.Tile]
		if n <= 0 || g.Done() {
			continue
		}
		take := min(n, g.Target-g.Current)
		g.Current += take
		left[g.Tile] = n - take
		if t.observer != nil {
			t.observer.ObjectiveProgress(i, *g)
		}
	}
}

// OnStonesBroken advances the stone goal, capped at target.
func (t *Tracker) OnStonesBroken(count int) {
	if count <= 0 {
		return
	}
	t.stonesTotal += count
	if t.stoneTarget > 0 && t.stonesDone < t.stoneTarget {
		t.stonesDone += count
		if t.stonesDone > t.stoneTarget {
			t.stonesDone = t.stoneTarget
		}
		if t.observer != nil {
			t.observer.StoneProgress(t.stonesDone, t.stoneTarget)
		}
	}
}

// OnMoveSpent uses one move. The budget never drops below zero. The board
// spends the move before it resolves the cascade, so the outcome is only
// decided by Settle.
func (t *Tracker) OnMoveSpent() {
	if t.movesLeft > 0 {
		t.movesLeft--
	}
}

// SpendMove is OnMoveSpent for callers outside the board.
func (t *Tracker) SpendMove() { t.OnMoveSpent() }

// Settle is called once a move is fully resolved. It fires GameOver the
// first time the run is over and reports whether it is.
func (t *Tracker) Settle() bool {
	if !t.Done() {
		return false
	}
	if !t.over {
		t.over = true
		if t.observer != nil {
			t.observer.GameOver(t.IsWin())
		}
	}
	return true
}

// IsWin reports whether every goal is met. A tracker with no goals never wins.
func (t *Tracker) IsWin() bool {
	if len(t.goals) == 0 && t.stoneTarget == 0 {
		return false
	}
	for _, g := range t.goals {
		if !g.Done() {
			return false
		}
	}
	return t.stoneTarget == 0 || t.stonesDone >= t.stoneTarget
}

// IsLose reports whether the moves ran out before the goals were met.
func (t *Tracker) IsLose() bool {
	return t.movesLeft <= 0 && !t.IsWin()
}

// Done reports whether the run is over.
func (t *Tracker) Done() bool {
	return t.IsWin() || t.IsLose()
}

// CanSpendMove reports whether the player may still move.
func (t *Tracker) CanSpendMove() bool {
	return t.movesLeft > 0 && !t.IsWin()
}

// MovesLeft returns the remaining move budget.
func (t *Tracker) MovesLeft() int { return t.movesLeft }

// MovesUsed returns the number of moves spent so far.
func (t *Tracker) MovesUsed() int { return t.startMoves - t.movesLeft }

// Goals returns a copy of the color goals.
func (t *Tracker) Goals() []Goal {
	out := make([]Goal, len(t.goals))
	copy(out, t.goals)
	return out
}

// Stones returns the stone goal progress. target is zero when disabled.
func (t *Tracker) Stones() (current, target int) {
	return t.stonesDone, t.stoneTarget
}

// StonesBroken returns every stone broken in this run, goal or not.
func (t *Tracker) StonesBroken() int { return t.stonesTotal }

// AddScore adds points to the run score.
func (t *Tracker) AddScore(points int) { t.score += points }

// Score returns the run score.
func (t *Tracker) Score() int { return t.score }

// Summary renders the goals on one line, e.g. "red 3/10  stones 1/2".
func (t *Tracker) Summary() string {
	parts := make([]string, 0, len(t.goals)+1)
	for _, g := range t.goals {
		parts = append(parts, g.String())
	}
	if t.stoneTarget > 0 {
		parts = append(parts, fmt.Sprintf("stones %d/%d", t.stonesDone, t.stoneTarget))
	}
	return strings.Join(parts, "  ")
}
