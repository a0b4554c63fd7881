package core_test

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func TestRenderASCIIGolden(t *testing.T) {
	g := patternGrid(t, 4, 3)
	if err := g.PlaceStone(core.C(1, 1), 2); err != nil {
		t.Fatalf("PlaceStone: %v", err)
	}

	gold := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	gold.Assert(t, "pattern_with_stone", []byte(core.RenderASCII(g)))
}

func TestRenderASCIITopRowFirst(t *testing.T) {
	g, _ := core.NewGrid(2, 2)
	mustSet(t, g, core.C(0, 0), core.Red)
	mustSet(t, g, core.C(1, 1), core.Yellow)

	expected := ". Y\nR .\n"
	if got := core.RenderASCII(g); got != expected {
		t.Errorf("expected:\n%s\ngot:\n%s", expected, got)
	}
}

func TestParseGridRoundTrip(t *testing.T) {
	text := strings.TrimLeft(`
R B G Y
P 2 . O
1 R B G
`, "\n")
	g, err := core.ParseGrid(text)
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	if g.W != 4 || g.H != 3 {
		t.Fatalf("expected 4x3, got %dx%d", g.W, g.H)
	}
	if got := core.RenderASCII(g); got != text {
		t.Errorf("round trip mismatch:\nexpected:\n%s\ngot:\n%s", text, got)
	}
	if cell := g.Get(core.C(0, 0)); !cell.Stone || cell.StoneHP != 1 {
		t.Errorf("expected 1 HP stone at bottom left, got %+v", cell)
	}
	if cell := g.Get(core.C(1, 1)); !cell.Stone || cell.StoneHP != 2 || cell.Tile != core.Empty {
		t.Errorf("expected bare 2 HP stone at (1,1), got %+v", cell)
	}
	if cell := g.Get(core.C(0, 2)); cell.Stone || cell.Tile != core.Red {
		t.Errorf("expected red tile at top left, got %+v", cell)
	}
}

func TestParseGridErrors(t *testing.T) {
	testCases := []struct {
		name string
		text string
	}{
		{"empty", "  \n \n"},
		{"ragged", "R B\nR"},
		{"unknown cell", "R X"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := core.ParseGrid(tc.text); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestBoardDebugRender(t *testing.T) {
	b := core.NewBoardFromGrid(core.MustParseGrid("R B\nG Y"), core.DefaultRules(), nil)
	if got := b.DebugRender(); got != "R B\nG Y\n" {
		t.Errorf("unexpected render %q", got)
	}
}
