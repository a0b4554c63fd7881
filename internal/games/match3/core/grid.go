package core

import "fmt"

// Cell is one board position. A cell holds a tile, a stone, or nothing.
// A cell with a stone always has an Empty tile.
type Cell struct {
	Tile    Tile
	Stone   bool
	StoneHP int
}

// Open reports whether the cell is Empty and stone-free, i.e. refillable.
func (c Cell) Open() bool {
	return !c.Stone && c.Tile == Empty
}

// Grid represents the board as a rectangular grid of cells.
// Cells are stored in row-major order: index = y*W + x, with row 0 at the bottom.
// Dimensions never change after construction.
type Grid struct {
	W     int
	H     int
	Cells []Cell
}

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(w, h int) (*Grid, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("new grid %dx%d: %w", w, h, ErrInvalidDimensions)
	}
	return &Grid{
		W:     w,
		H:     h,
		Cells: make([]Cell, w*h),
	}, nil
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.W + c.X
}

func (g *Grid) at(c Coord) *Cell {
	return &g.Cells[g.index(c)]
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// Get returns the cell at the given coordinate.
// Returns a zero cell if out of bounds.
func (g *Grid) Get(c Coord) Cell {
	if !g.InBounds(c) {
		return Cell{}
	}
	return g.Cells[g.index(c)]
}

// TileAt returns the tile at c, or Empty when c is out of bounds.
func (g *Grid) TileAt(c Coord) Tile {
	return g.Get(c).Tile
}

// SetTile places a tile at c, removing any stone there.
func (g *Grid) SetTile(c Coord, t Tile) error {
	if !g.InBounds(c) {
		return fmt.Errorf("set tile %s: %w", c, ErrOutOfBounds)
	}
	*g.at(c) = Cell{Tile: t}
	return nil
}

// PlaceStone puts a stone with the given hit points at c.
// Any tile there is removed. Placing onto an existing stone resets its hit points.
func (g *Grid) PlaceStone(c Coord, hp int) error {
	if !g.InBounds(c) {
		return fmt.Errorf("place stone %s: %w", c, ErrOutOfBounds)
	}
	if hp < 1 {
		return fmt.Errorf("place stone %s hp=%d: %w", c, hp, ErrInvalidHitPoints)
	}
	*g.at(c) = Cell{Stone: true, StoneHP: hp}
	return nil
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{
		W:     g.W,
		H:     g.H,
		Cells: cells,
	}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, cell := range g.Cells {
		if cell != other.Cells[i] {
			return false
		}
	}
	return true
}

// AllCoords returns every coordinate, ordered by row then column.
func (g *Grid) AllCoords() []Coord {
	coords := make([]Coord, 0, g.W*g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			coords = append(coords, C(x, y))
		}
	}
	return coords
}

// Stones returns the coordinates of all stones, ordered by row then column.
func (g *Grid) Stones() []Coord {
	var out []Coord
	for _, c := range g.AllCoords() {
		if g.Get(c).Stone {
			out = append(out, c)
		}
	}
	return out
}

// CountByTile returns how many cells hold each color.
func (g *Grid) CountByTile() map[Tile]int {
	counts := make(map[Tile]int)
	for _, cell := range g.Cells {
		if cell.Tile.IsColor() {
			counts[cell.Tile]++
		}
	}
	return counts
}

// OpenCount returns the number of Empty, stone-free cells.
func (g *Grid) OpenCount() int {
	n := 0
	for _, cell := range g.Cells {
		if cell.Open() {
			n++
		}
	}
	return n
}
