package match3

import (
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// frame is one picture of a resolving move.
type frame struct {
	grid  *core.Grid
	marks map[core.Coord]bool // cells about to clear
	label string
}

// animation plays the captured cascade frames, each for delay ticks.
type animation struct {
	frames []frame
	index  int
	ticks  int
	delay  int
}

// load builds the frames of a move: the swapped board with the first
// matches marked, then clear, gravity and refill for every step.
func (a *animation) load(before *core.Grid, swap core.Move, steps []core.Step, delay int) {
	a.reset()
	if delay <= 0 || len(steps) == 0 {
		return
	}

	prev := before.Clone()
	ta, tb := prev.TileAt(swap.A), prev.TileAt(swap.B)
	_ = prev.SetTile(swap.A, tb)
	_ = prev.SetTile(swap.B, ta)

	for _, st := range steps {
		marks := make(map[core.Coord]bool, len(st.Cleared))
		for _, c := range st.Cleared {
			marks[c] = true
		}
		label := fmt.Sprintf("Cascade x%d", st.Index)
		a.frames = append(a.frames, frame{grid: prev, marks: marks, label: label})
		for _, g := range []*core.Grid{st.AfterClear, st.AfterGravity, st.AfterRefill} {
			if g != nil {
				a.frames = append(a.frames, frame{grid: g, label: label})
			}
		}
		if st.AfterRefill != nil {
			prev = st.AfterRefill
		}
	}
	a.delay = delay
}

func (a *animation) playing() bool {
	return a.index < len(a.frames)
}

func (a *animation) current() (frame, bool) {
	if !a.playing() {
		return frame{}, false
	}
	return a.frames[a.index], true
}

// advance moves the animation forward by one tick.
func (a *animation) advance() {
	if !a.playing() {
		return
	}
	a.ticks++
	if a.ticks >= a.delay {
		a.ticks = 0
		a.index++
	}
}

func (a *animation) reset() {
	*a = animation{}
}
