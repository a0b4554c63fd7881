package core

import "strings"

// Tile is the color held by a cell. The zero value is Empty.
type Tile uint8

const (
	Empty Tile = iota
	Red
	Blue
	Green
	Yellow
	Purple
	Orange
	TileCount // Sentinel value for iteration
)

// MinPaletteSize and MaxPaletteSize bound the number of colors a board may use.
const (
	MinPaletteSize = 3
	MaxPaletteSize = int(TileCount) - 1
)

// String returns the lowercase name of the tile.
func (t Tile) String() string {
	switch t {
	case Empty:
		return "empty"
	case Red:
		return "red"
	case Blue:
		return "blue"
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	case Purple:
		return "purple"
	case Orange:
		return "orange"
	default:
		return "unknown"
	}
}

// Char returns a single character representation for ASCII rendering.
func (t Tile) Char() rune {
	switch t {
	case Empty:
		return '.'
	case Red:
		return 'R'
	case Blue:
		return 'B'
	case Green:
		return 'G'
	case Yellow:
		return 'Y'
	case Purple:
		return 'P'
	case Orange:
		return 'O'
	default:
		return '?'
	}
}

// IsColor reports whether t is a real color (not Empty, not out of range).
func (t Tile) IsColor() bool {
	return t > Empty && t < TileCount
}

// ParseTile converts a name or single letter to a Tile.
// Returns Empty and false if the string is not recognized.
func ParseTile(s string) (Tile, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "r":
		return Red, true
	case "blue", "b":
		return Blue, true
	case "green", "g":
		return Green, true
	case "yellow", "y":
		return Yellow, true
	case "purple", "p":
		return Purple, true
	case "orange", "o":
		return Orange, true
	case "empty", ".":
		return Empty, true
	default:
		return Empty, false
	}
}

// Palette returns the first n colors. n is clamped to the valid palette range.
func Palette(n int) []Tile {
	if n < MinPaletteSize {
		n = MinPaletteSize
	}
	if n > MaxPaletteSize {
		n = MaxPaletteSize
	}
	p := make([]Tile, n)
	for i := range p {
		p[i] = Tile(i + 1)
	}
	return p
}
