package core

// DefaultRefillTries is the per-cell retry budget when spawning tiles.
const DefaultRefillTries = 20

// Rand is the random source used for spawning tiles. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Spawn records a tile created by a refill.
type Spawn struct {
	At   Coord
	Tile Tile
}

// RefillResult describes one refill pass.
type RefillResult struct {
	Spawned []Spawn
	// Exhausted lists cells where every try completed a match and the last
	// color was kept anyway.
	Exhausted []Coord
}

// Count returns the number of tiles spawned.
func (r RefillResult) Count() int {
	return len(r.Spawned)
}

// RefillEmpties gives every open cell a random palette color, retrying up to
// maxTries times per cell to avoid completing a match. Cells are visited column
// by column, bottom to top. Stone cells are never filled.
func RefillEmpties(g *Grid, rng Rand, palette []Tile, maxTries, minRun int) RefillResult {
	var res RefillResult
	if len(palette) == 0 {
		return res
	}
	if maxTries < 1 {
		maxTries = 1
	}
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			c := C(x, y)
			cell := g.at(c)
			if !cell.Open() {
				continue
			}
			matched := true
			for try := 0; try < maxTries && matched; try++ {
				cell.Tile = palette[rng.Intn(len(palette))]
				matched = CreatesMatchAt(g, c, minRun)
			}
			if matched {
				res.Exhausted = append(res.Exhausted, c)
			}
			res.Spawned = append(res.Spawned, Spawn{At: c, Tile: cell.Tile})
		}
	}
	return res
}

// FillRandomNoImmediateMatches clears every stone-free cell and refills the
// whole grid with RefillEmpties.
func FillRandomNoImmediateMatches(g *Grid, rng Rand, palette []Tile, maxTries, minRun int) RefillResult {
	for i := range g.Cells {
		if !g.Cells[i].Stone {
			g.Cells[i].Tile = Empty
		}
	}
	return RefillEmpties(g, rng, palette, maxTries, minRun)
}
