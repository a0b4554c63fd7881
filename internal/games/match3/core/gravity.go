package core

// TileMove records a tile falling from one cell to another.
type TileMove struct {
	From Coord
	To   Coord
	Tile Tile
}

// GravityResult describes one gravity pass.
type GravityResult struct {
	Moved bool
	Moves []TileMove
}

// ApplyGravity compacts tiles toward row 0 inside every column segment.
// Stones split columns into segments and never move; no tile crosses a stone.
// Relative order within a segment is preserved and empties end on top.
func ApplyGravity(g *Grid) GravityResult {
	var res GravityResult
	for x := 0; x < g.W; x++ {
		write := 0 // lowest open slot of the current segment
		for y := 0; y < g.H; y++ {
			c := C(x, y)
			cell := g.at(c)
			if cell.Stone {
				write = y + 1
				continue
			}
			if cell.Tile == Empty {
				continue
			}
			if y != write {
				dst := C(x, write)
				g.at(dst).Tile = cell.Tile
				res.Moves = append(res.Moves, TileMove{From: c, To: dst, Tile: cell.Tile})
				cell.Tile = Empty
			}
			write++
		}
	}
	res.Moved = len(res.Moves) > 0
	return res
}
