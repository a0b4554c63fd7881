package core_test

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// patternGrid fills a grid with a four-color pattern that contains no match
// and no two equal neighbors: tile = palette[(x + 2y) mod 4].
func patternGrid(t *testing.T, w, h int) *core.Grid {
	t.Helper()
	g, err := core.NewGrid(w, h)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	p := core.Palette(4)
	for _, c := range g.AllCoords() {
		if err := g.SetTile(c, p[(c.X+2*c.Y)%4]); err != nil {
			t.Fatalf("SetTile: %v", err)
		}
	}
	return g
}

// randomGrid builds a noisy grid with empties and stones for property tests.
func randomGrid(rng *rand.Rand, w, h int) *core.Grid {
	g, _ := core.NewGrid(w, h)
	for _, c := range g.AllCoords() {
		switch r := rng.Intn(10); {
		case r == 0:
			_ = g.PlaceStone(c, 1+rng.Intn(3))
		case r == 1:
			_ = g.SetTile(c, core.Empty)
		default:
			_ = g.SetTile(c, core.Tile(1+rng.Intn(3)))
		}
	}
	return g
}

func mustSet(t *testing.T, g *core.Grid, c core.Coord, tile core.Tile) {
	t.Helper()
	if err := g.SetTile(c, tile); err != nil {
		t.Fatalf("SetTile(%v): %v", c, err)
	}
}

// fixedRand replays vals in a loop.
type fixedRand struct {
	vals []int
	i    int
}

func (r *fixedRand) Intn(n int) int {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

// recordingSink captures objective notifications.
type recordingSink struct {
	cleared map[core.Tile]int
	broken  int
	moves   int
	calls   []string
}

func newRecordingSink() *recordingSink {
	return &recordingSink{cleared: make(map[core.Tile]int)}
}

func (s *recordingSink) OnTilesCleared(counts map[core.Tile]int) {
	for t, n := range counts {
		s.cleared[t] += n
	}
	s.calls = append(s.calls, "tiles")
}

func (s *recordingSink) OnStonesBroken(n int) {
	s.broken += n
	s.calls = append(s.calls, "stones")
}

func (s *recordingSink) OnMoveSpent() {
	s.moves++
	s.calls = append(s.calls, "move")
}

func coordsEqual(a, b []core.Coord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
