package levels

import (
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// ValidationError contains details about a level problem.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks a level against the palette it will be played with and
// returns every problem found. An empty result means the level is playable.
func Validate(l Level, palette []core.Tile) []ValidationError {
	var problems []ValidationError
	add := func(code, format string, args ...any) {
		problems = append(problems, ValidationError{Code: code, Message: fmt.Sprintf(format, args...)})
	}

	if l.Width < 3 || l.Height < 3 {
		add("BAD_SIZE", "board %dx%d is smaller than 3x3", l.Width, l.Height)
	}
	if l.Moves <= 0 {
		add("BAD_MOVES", "moves must be positive, got %d", l.Moves)
	}
	if len(l.Objectives) == 0 && l.StoneTarget <= 0 {
		add("NO_OBJECTIVES", "level has no objectives")
	}

	inPalette := make(map[core.Tile]bool, len(palette))
	for _, t := range palette {
		inPalette[t] = true
	}
	for _, o := range l.Objectives {
		if !o.Known || !inPalette[o.Tile] {
			add("BAD_TILE", "objective tile %q is not in the palette", o.Name)
		}
		if o.Target <= 0 {
			add("BAD_TARGET", "objective %s target must be positive, got %d", o.Name, o.Target)
		}
	}

	seen := make(map[core.Coord]bool, len(l.Stones))
	valid := 0
	for _, s := range l.Stones {
		if s.X < 0 || s.X >= l.Width || s.Y < 0 || s.Y >= l.Height {
			add("STONE_OUT_OF_BOUNDS", "stone %s is outside %dx%d", s, l.Width, l.Height)
			continue
		}
		if seen[s] {
			add("DUPLICATE_STONE", "stone %s listed twice", s)
			continue
		}
		seen[s] = true
		valid++
	}
	if l.StoneTarget > valid {
		add("STONE_TARGET_TOO_HIGH", "stone target %d exceeds %d placed stones", l.StoneTarget, valid)
	}

	return problems
}
