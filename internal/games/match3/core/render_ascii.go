package core

import (
	"fmt"
	"strings"
)

// RenderASCII creates a text picture of the grid for debugging and golden tests.
//
// Format:
//   - top row first, one line per row, cells separated by a space
//   - empty='.', colors=R/B/G/Y/P/O, stones show their hit points (capped at 9)
func RenderASCII(g *Grid) string {
	var sb strings.Builder
	for y := g.H - 1; y >= 0; y-- {
		for x := 0; x < g.W; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteRune(cellChar(g.Get(C(x, y))))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func cellChar(c Cell) rune {
	if c.Stone {
		hp := c.StoneHP
		if hp > 9 {
			hp = 9
		}
		return rune('0' + hp)
	}
	return c.Tile.Char()
}

// ParseGrid reads the RenderASCII format back into a grid. Blank lines are
// skipped and spaces between cells are optional. The first line is the top row.
func ParseGrid(text string) (*Grid, error) {
	var rows [][]rune
	for _, line := range strings.Split(text, "\n") {
		line = strings.ReplaceAll(strings.TrimSpace(line), " ", "")
		if line == "" {
			continue
		}
		rows = append(rows, []rune(line))
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse grid: %w", ErrInvalidDimensions)
	}

	w, h := len(rows[0]), len(rows)
	g, err := NewGrid(w, h)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("parse grid: line %d has %d cells, want %d", i+1, len(row), w)
		}
		y := h - 1 - i
		for x, r := range row {
			if r >= '1' && r <= '9' {
				*g.at(C(x, y)) = Cell{Stone: true, StoneHP: int(r - '0')}
				continue
			}
			t, ok := ParseTile(string(r))
			if !ok {
				return nil, fmt.Errorf("parse grid: unknown cell %q at %s", r, C(x, y))
			}
			*g.at(C(x, y)) = Cell{Tile: t}
		}
	}
	return g, nil
}

// MustParseGrid is ParseGrid for fixtures; it panics on malformed input.
func MustParseGrid(text string) *Grid {
	g, err := ParseGrid(text)
	if err != nil {
		panic(err)
	}
	return g
}
