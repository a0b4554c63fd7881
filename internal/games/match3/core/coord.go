package core

import "fmt"

// Coord represents a 2D coordinate on the board.
// X increases to the right, Y increases upward: row 0 is the bottom row.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(other Coord) int {
	dx := c.X - other.X
	dy := c.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Adjacent reports whether other is one orthogonal step away.
func (c Coord) Adjacent(other Coord) bool {
	return c.Manhattan(other) == 1
}

// Neighbors returns the four orthogonal neighbors (left, right, down, up).
// Bounds are not checked.
func (c Coord) Neighbors() [4]Coord {
	return [4]Coord{c.Add(-1, 0), c.Add(1, 0), c.Add(0, -1), c.Add(0, 1)}
}

// Less orders coordinates by row, then column.
func (c Coord) Less(other Coord) bool {
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.X < other.X
}
