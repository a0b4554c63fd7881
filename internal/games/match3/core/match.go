package core

import "sort"

// DefaultMinRun is the shortest run of equal tiles that counts as a match.
const DefaultMinRun = 3

// MatchSet is an unordered, deduplicated set of matched coordinates.
type MatchSet map[Coord]struct{}

// Add inserts c into the set.
func (m MatchSet) Add(c Coord) {
	m[c] = struct{}{}
}

// Contains reports whether c is in the set.
func (m MatchSet) Contains(c Coord) bool {
	_, ok := m[c]
	return ok
}

// Len returns the number of coordinates in the set.
func (m MatchSet) Len() int {
	return len(m)
}

// Sorted returns the coordinates ordered by row then column.
func (m MatchSet) Sorted() []Coord {
	out := make([]Coord, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// ColorCounts tallies the tiles under the set on g.
func (m MatchSet) ColorCounts(g *Grid) map[Tile]int {
	counts := make(map[Tile]int)
	for c := range m {
		if t := g.TileAt(c); t.IsColor() {
			counts[t]++
		}
	}
	return counts
}

// FindAllMatches returns every cell that belongs to a horizontal or vertical
// run of at least minRun equal, non-Empty tiles.
func FindAllMatches(g *Grid, minRun int) MatchSet {
	if minRun < 1 {
		minRun = DefaultMinRun
	}
	result := make(MatchSet)

	for y := 0; y < g.H; y++ {
		start := 0
		for x := 1; x < g.W; x++ {
			if g.TileAt(C(x, y)) != g.TileAt(C(start, y)) {
				addRun(g, result, C(start, y), 1, 0, x-start, minRun)
				start = x
			}
		}
		// last run of the row
		addRun(g, result, C(start, y), 1, 0, g.W-start, minRun)
	}

	for x := 0; x < g.W; x++ {
		start := 0
		for y := 1; y < g.H; y++ {
			if g.TileAt(C(x, y)) != g.TileAt(C(x, start)) {
				addRun(g, result, C(x, start), 0, 1, y-start, minRun)
				start = y
			}
		}
		addRun(g, result, C(x, start), 0, 1, g.H-start, minRun)
	}

	return result
}

// addRun records a run of length n starting at from when it is long enough
// and holds a real color.
func addRun(g *Grid, set MatchSet, from Coord, dx, dy, n, minRun int) {
	if n < minRun || !g.TileAt(from).IsColor() {
		return
	}
	for i := 0; i < n; i++ {
		set.Add(from.Add(dx*i, dy*i))
	}
}

// CreatesMatchAt reports whether the tile at pos is part of a run of at least
// minRun along either axis. Empty or stone cells never match.
func CreatesMatchAt(g *Grid, pos Coord, minRun int) bool {
	if minRun < 1 {
		minRun = DefaultMinRun
	}
	t := g.TileAt(pos)
	if !t.IsColor() {
		return false
	}
	if 1+countDir(g, pos, t, -1, 0)+countDir(g, pos, t, 1, 0) >= minRun {
		return true
	}
	return 1+countDir(g, pos, t, 0, -1)+countDir(g, pos, t, 0, 1) >= minRun
}

func countDir(g *Grid, pos Coord, t Tile, dx, dy int) int {
	n := 0
	for c := pos.Add(dx, dy); g.InBounds(c) && g.TileAt(c) == t; c = c.Add(dx, dy) {
		n++
	}
	return n
}
