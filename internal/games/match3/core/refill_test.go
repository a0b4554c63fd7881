package core_test

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func TestRefillEmptiesFillsOpenCells(t *testing.T) {
	g := core.MustParseGrid(`
		. . . .
		. 2 . .
		R . B G`)
	rng := rand.New(rand.NewSource(42))

	res := core.RefillEmpties(g, rng, core.Palette(4), 20, 3)

	if g.OpenCount() != 0 {
		t.Fatalf("expected no open cells, got %d\n%s", g.OpenCount(), core.RenderASCII(g))
	}
	if res.Count() != 8 {
		t.Errorf("expected 8 spawns, got %d", res.Count())
	}
	cell := g.Get(core.C(1, 1))
	if !cell.Stone || cell.Tile != core.Empty {
		t.Errorf("stone cell must stay a stone, got %+v", cell)
	}
	for _, s := range res.Spawned {
		if g.TileAt(s.At) != s.Tile || !s.Tile.IsColor() {
			t.Errorf("spawn %+v does not match grid", s)
		}
	}
}

func TestRefillAvoidsMatches(t *testing.T) {
	for seed := int64(1); seed <= 100; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g, _ := core.NewGrid(8, 8)
		res := core.FillRandomNoImmediateMatches(g, rng, core.Palette(4), 20, 3)

		// every run includes its last spawned cell, so without exhaustion
		// the board cannot hold a match
		if len(res.Exhausted) == 0 && core.FindAllMatches(g, 3).Len() != 0 {
			t.Fatalf("seed %d: unexpected match\n%s", seed, core.RenderASCII(g))
		}
	}
}

func TestRefillBudgetExhaustedKeepsLastColor(t *testing.T) {
	g := core.MustParseGrid("R R .")
	rng := &fixedRand{vals: []int{0}} // always red

	res := core.RefillEmpties(g, rng, core.Palette(4), 20, 3)

	if !coordsEqual(res.Exhausted, []core.Coord{core.C(2, 0)}) {
		t.Fatalf("expected (2,0) exhausted, got %v", res.Exhausted)
	}
	if g.TileAt(core.C(2, 0)) != core.Red {
		t.Errorf("expected best-effort red tile, got %v", g.TileAt(core.C(2, 0)))
	}
	if rng.i != 20 {
		t.Errorf("expected 20 tries, got %d", rng.i)
	}
}

func TestRefillRetriesUntilNoMatch(t *testing.T) {
	g := core.MustParseGrid("R R .")
	rng := &fixedRand{vals: []int{0, 0, 1}} // red, red, blue

	res := core.RefillEmpties(g, rng, core.Palette(4), 20, 3)

	if len(res.Exhausted) != 0 {
		t.Errorf("expected no exhaustion, got %v", res.Exhausted)
	}
	if g.TileAt(core.C(2, 0)) != core.Blue {
		t.Errorf("expected blue after retries, got %v", g.TileAt(core.C(2, 0)))
	}
}

func TestFillKeepsStones(t *testing.T) {
	g := core.MustParseGrid(`
		R 2 B
		B G 1`)
	core.FillRandomNoImmediateMatches(g, rand.New(rand.NewSource(1)), core.Palette(4), 20, 3)

	want := []core.Coord{core.C(2, 0), core.C(1, 1)}
	if got := g.Stones(); !coordsEqual(got, want) {
		t.Errorf("expected stones %v, got %v", want, got)
	}
	if g.Get(core.C(1, 1)).StoneHP != 2 || g.Get(core.C(2, 0)).StoneHP != 1 {
		t.Error("fill must not touch stone hit points")
	}
}

func TestRefillIsDeterministic(t *testing.T) {
	a, _ := core.NewGrid(6, 6)
	b, _ := core.NewGrid(6, 6)
	core.FillRandomNoImmediateMatches(a, rand.New(rand.NewSource(9)), core.Palette(5), 20, 3)
	core.FillRandomNoImmediateMatches(b, rand.New(rand.NewSource(9)), core.Palette(5), 20, 3)
	if !a.Equal(b) {
		t.Error("same seed should produce the same board")
	}
}
