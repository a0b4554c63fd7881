package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func TestNewGrid(t *testing.T) {
	g, err := core.NewGrid(8, 6)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if g.W != 8 || g.H != 6 {
		t.Errorf("expected 8x6 grid, got %dx%d", g.W, g.H)
	}
	if len(g.Cells) != 48 {
		t.Errorf("expected 48 cells, got %d", len(g.Cells))
	}
	if g.OpenCount() != 48 {
		t.Errorf("expected all cells open, got %d", g.OpenCount())
	}
}

func TestNewGridInvalidDimensions(t *testing.T) {
	testCases := []struct{ w, h int }{{0, 5}, {5, 0}, {-1, 3}}
	for _, tc := range testCases {
		if _, err := core.NewGrid(tc.w, tc.h); !errors.Is(err, core.ErrInvalidDimensions) {
			t.Errorf("NewGrid(%d,%d): expected ErrInvalidDimensions, got %v", tc.w, tc.h, err)
		}
	}
}

func TestGridInBounds(t *testing.T) {
	g, _ := core.NewGrid(5, 5)

	testCases := []struct {
		coord    core.Coord
		expected bool
	}{
		{core.C(0, 0), true},
		{core.C(4, 4), true},
		{core.C(2, 2), true},
		{core.C(-1, 0), false},
		{core.C(0, -1), false},
		{core.C(5, 0), false},
		{core.C(0, 5), false},
	}

	for _, tc := range testCases {
		if got := g.InBounds(tc.coord); got != tc.expected {
			t.Errorf("InBounds(%v): expected %v, got %v", tc.coord, tc.expected, got)
		}
	}
}

func TestGridOutOfBoundsWrites(t *testing.T) {
	g, _ := core.NewGrid(3, 3)
	before := g.Clone()

	if err := g.SetTile(core.C(3, 0), core.Red); !errors.Is(err, core.ErrOutOfBounds) {
		t.Errorf("SetTile: expected ErrOutOfBounds, got %v", err)
	}
	if err := g.PlaceStone(core.C(0, -1), 2); !errors.Is(err, core.ErrOutOfBounds) {
		t.Errorf("PlaceStone: expected ErrOutOfBounds, got %v", err)
	}
	if !g.Equal(before) {
		t.Error("out-of-bounds writes must not mutate the grid")
	}
}

func TestPlaceStoneClearsTile(t *testing.T) {
	g, _ := core.NewGrid(3, 3)
	mustSet(t, g, core.C(1, 1), core.Blue)

	if err := g.PlaceStone(core.C(1, 1), 2); err != nil {
		t.Fatalf("PlaceStone: %v", err)
	}
	cell := g.Get(core.C(1, 1))
	if !cell.Stone || cell.StoneHP != 2 || cell.Tile != core.Empty {
		t.Errorf("expected stone with 2 HP and empty tile, got %+v", cell)
	}
	if cell.Open() {
		t.Error("stone cell must not be open")
	}

	if err := g.PlaceStone(core.C(1, 1), 0); !errors.Is(err, core.ErrInvalidHitPoints) {
		t.Errorf("expected ErrInvalidHitPoints, got %v", err)
	}
}

func TestGridCloneIsDeep(t *testing.T) {
	g := patternGrid(t, 4, 4)
	clone := g.Clone()
	if !g.Equal(clone) {
		t.Fatal("clone should equal original")
	}
	mustSet(t, clone, core.C(0, 0), core.Empty)
	if g.Equal(clone) {
		t.Error("mutating clone should not affect original")
	}
}

func TestCountByTileAndStones(t *testing.T) {
	g := core.MustParseGrid(`
		R R 2
		B . 1
	`)
	counts := g.CountByTile()
	if counts[core.Red] != 2 || counts[core.Blue] != 1 {
		t.Errorf("unexpected counts %v", counts)
	}
	want := []core.Coord{core.C(2, 0), core.C(2, 1)}
	if got := g.Stones(); !coordsEqual(got, want) {
		t.Errorf("Stones: expected %v, got %v", want, got)
	}
}

func TestTileParseAndPalette(t *testing.T) {
	for _, tile := range core.Palette(core.MaxPaletteSize) {
		parsed, ok := core.ParseTile(tile.String())
		if !ok || parsed != tile {
			t.Errorf("ParseTile(%q) = %v,%v", tile.String(), parsed, ok)
		}
		parsed, ok = core.ParseTile(string(tile.Char()))
		if !ok || parsed != tile {
			t.Errorf("ParseTile(%q) = %v,%v", string(tile.Char()), parsed, ok)
		}
	}
	if _, ok := core.ParseTile("magenta"); ok {
		t.Error("unknown color should not parse")
	}
	if n := len(core.Palette(1)); n != core.MinPaletteSize {
		t.Errorf("palette should clamp to %d, got %d", core.MinPaletteSize, n)
	}
	if n := len(core.Palette(99)); n != core.MaxPaletteSize {
		t.Errorf("palette should clamp to %d, got %d", core.MaxPaletteSize, n)
	}
}
