package core_test

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func TestApplyGravity(t *testing.T) {
	testCases := []struct {
		name  string
		board string
		want  string
		moves int
	}{
		{
			name:  "column compacts down",
			board: "R\n.\nB\n.",
			want:  ".\n.\nR\nB\n",
			moves: 2,
		},
		{
			name:  "stone splits the column",
			board: "R\n.\n2\nB\n.\nG",
			want:  ".\nR\n2\n.\nB\nG\n",
			moves: 2,
		},
		{
			name:  "nothing to do",
			board: ".\nR\nB",
			want:  ".\nR\nB\n",
			moves: 0,
		},
		{
			name:  "empty below stone stays empty",
			board: "Y\n2\n.",
			want:  "Y\n2\n.\n",
			moves: 0,
		},
		{
			name:  "columns are independent",
			board: "R B\n. G\nY .",
			want:  ". .\nR B\nY G\n",
			moves: 3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := core.MustParseGrid(tc.board)
			res := core.ApplyGravity(g)

			if got := core.RenderASCII(g); got != tc.want {
				t.Errorf("expected:\n%s\ngot:\n%s", tc.want, got)
			}
			if len(res.Moves) != tc.moves || res.Moved != (tc.moves > 0) {
				t.Errorf("expected %d moves, got %v (moved=%v)", tc.moves, res.Moves, res.Moved)
			}
		})
	}
}

func TestApplyGravityReportsMoves(t *testing.T) {
	g := core.MustParseGrid("R\n.\nB\n.")
	res := core.ApplyGravity(g)

	want := []core.TileMove{
		{From: core.C(0, 1), To: core.C(0, 0), Tile: core.Blue},
		{From: core.C(0, 3), To: core.C(0, 1), Tile: core.Red},
	}
	if len(res.Moves) != len(want) {
		t.Fatalf("expected %v, got %v", want, res.Moves)
	}
	for i := range want {
		if res.Moves[i] != want[i] {
			t.Errorf("move %d: expected %+v, got %+v", i, want[i], res.Moves[i])
		}
	}
}

// segments returns the tiles of each stone-free segment of column x, bottom up.
func segments(g *core.Grid, x int) [][]core.Tile {
	var segs [][]core.Tile
	var cur []core.Tile
	for y := 0; y < g.H; y++ {
		cell := g.Get(core.C(x, y))
		if cell.Stone {
			segs = append(segs, cur)
			cur = nil
			continue
		}
		if cell.Tile != core.Empty {
			cur = append(cur, cell.Tile)
		}
	}
	return append(segs, cur)
}

func TestApplyGravityProperties(t *testing.T) {
	for seed := int64(1); seed <= 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g := randomGrid(rng, 2+rng.Intn(6), 2+rng.Intn(8))
		// punch extra holes so gravity has work to do
		for _, c := range g.AllCoords() {
			if !g.Get(c).Stone && rng.Intn(3) == 0 {
				mustSet(t, g, c, core.Empty)
			}
		}
		before := g.Clone()

		core.ApplyGravity(g)

		if got := g.Stones(); !coordsEqual(got, before.Stones()) {
			t.Fatalf("seed %d: stones moved: %v -> %v", seed, before.Stones(), got)
		}
		for x := 0; x < g.W; x++ {
			want, got := segments(before, x), segments(g, x)
			for i := range want {
				if len(want[i]) != len(got[i]) {
					t.Fatalf("seed %d col %d: segment %d changed size", seed, x, i)
				}
				for j := range want[i] {
					if want[i][j] != got[i][j] {
						t.Fatalf("seed %d col %d: segment %d order changed", seed, x, i)
					}
				}
			}
			// fixed point: no empty below a tile inside a segment
			seenEmpty := false
			for y := 0; y < g.H; y++ {
				cell := g.Get(core.C(x, y))
				switch {
				case cell.Stone:
					seenEmpty = false
				case cell.Tile == core.Empty:
					seenEmpty = true
				case seenEmpty:
					t.Fatalf("seed %d: tile above a hole at %v\n%s", seed, core.C(x, y), core.RenderASCII(g))
				}
			}
		}
		if core.ApplyGravity(g).Moved {
			t.Fatalf("seed %d: second gravity pass moved tiles", seed)
		}
	}
}
