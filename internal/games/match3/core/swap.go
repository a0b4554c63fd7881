package core

import "fmt"

// SwapOutcome is the result class of a swap attempt.
type SwapOutcome uint8

const (
	SwapInvalid SwapOutcome = iota
	SwapValid
)

func (o SwapOutcome) String() string {
	if o == SwapValid {
		return "valid"
	}
	return "invalid"
}

// SwapReason explains why a swap was rejected.
type SwapReason uint8

const (
	ReasonNone SwapReason = iota
	ReasonNotAdjacent
	ReasonStoneEndpoint
	ReasonSameColor
	ReasonNoMatch
)

func (r SwapReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonNotAdjacent:
		return "not_adjacent"
	case ReasonStoneEndpoint:
		return "stone_endpoint"
	case ReasonSameColor:
		return "same_color"
	case ReasonNoMatch:
		return "no_match"
	default:
		return "unknown"
	}
}

// SwapResult describes a swap attempt.
type SwapResult struct {
	A, B    Coord
	Outcome SwapOutcome
	Reason  SwapReason
}

// Valid reports whether the swap was applied.
func (r SwapResult) Valid() bool {
	return r.Outcome == SwapValid
}

// TrySwap exchanges the tiles at a and b if the swap is legal and creates a
// match at either endpoint. An invalid swap leaves the grid unchanged.
// Out-of-bounds coordinates return ErrOutOfBounds before any mutation.
func TrySwap(g *Grid, a, b Coord, minRun int) (SwapResult, error) {
	res := SwapResult{A: a, B: b}
	if !g.InBounds(a) {
		return res, fmt.Errorf("swap %s: %w", a, ErrOutOfBounds)
	}
	if !g.InBounds(b) {
		return res, fmt.Errorf("swap %s: %w", b, ErrOutOfBounds)
	}

	ca, cb := g.at(a), g.at(b)
	switch {
	case !a.Adjacent(b):
		res.Reason = ReasonNotAdjacent
		return res, nil
	case ca.Stone || cb.Stone:
		res.Reason = ReasonStoneEndpoint
		return res, nil
	case ca.Tile == cb.Tile:
		res.Reason = ReasonSameColor
		return res, nil
	}

	ca.Tile, cb.Tile = cb.Tile, ca.Tile
	if CreatesMatchAt(g, a, minRun) || CreatesMatchAt(g, b, minRun) {
		res.Outcome = SwapValid
		return res, nil
	}
	ca.Tile, cb.Tile = cb.Tile, ca.Tile
	res.Reason = ReasonNoMatch
	return res, nil
}

// Move is a candidate swap between two adjacent cells.
type Move struct {
	A, B Coord
}

func (m Move) String() string {
	return m.A.String() + "<->" + m.B.String()
}

// ValidMoves lists every productive swap on g, scanning right and up
// neighbors from each cell in row order. g is left unchanged.
func ValidMoves(g *Grid, minRun int) []Move {
	return scanMoves(g, minRun, -1)
}

// HasValidMove reports whether at least one productive swap exists.
func HasValidMove(g *Grid, minRun int) bool {
	return len(scanMoves(g, minRun, 1)) > 0
}

// scanMoves collects up to limit valid moves; limit < 0 means all.
func scanMoves(g *Grid, minRun, limit int) []Move {
	var moves []Move
	for _, a := range g.AllCoords() {
		for _, b := range []Coord{a.Add(1, 0), a.Add(0, 1)} {
			if !g.InBounds(b) {
				continue
			}
			res, err := TrySwap(g, a, b, minRun)
			if err != nil || !res.Valid() {
				continue
			}
			// undo: the scan must not disturb the board
			ca, cb := g.at(a), g.at(b)
			ca.Tile, cb.Tile = cb.Tile, ca.Tile
			moves = append(moves, Move{A: a, B: b})
			if limit > 0 && len(moves) >= limit {
				return moves
			}
		}
	}
	return moves
}
