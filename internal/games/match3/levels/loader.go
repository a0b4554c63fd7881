// Package levels provides level loading and campaign progression for match3.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels/formats"
	"github.com/vovakirdan/tui-match3/internal/games/match3/objective"
)

//go:embed data/*.yaml
var builtin embed.FS

// ErrNotFound is returned when no level has the requested id.
var ErrNotFound = errors.New("level not found")

// Level represents a complete level definition.
type Level struct {
	ID          string
	Number      int
	Name        string
	Width       int
	Height      int
	Moves       int
	Objectives  []formats.Objective
	Stones      []core.Coord
	StoneTarget int
	StoneHP     int
	Seed        int64
	FilePath    string
}

// Goals converts the objectives for the tracker. Unknown tiles are skipped.
func (l *Level) Goals() []objective.Goal {
	goals := make([]objective.Goal, 0, len(l.Objectives))
	for _, o := range l.Objectives {
		if o.Known {
			goals = append(goals, objective.Goal{Tile: o.Tile, Target: o.Target})
		}
	}
	return goals
}

// Title returns "N. Name" for menus.
func (l *Level) Title() string {
	return fmt.Sprintf("%d. %s", l.Number, l.Name)
}

// Loader reads level files from a file system.
type Loader struct {
	FS   fs.FS
	Root string
}

// NewLoader creates a loader over a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{FS: os.DirFS(root), Root: "."}
}

// Embedded returns a loader over the built-in campaign.
func Embedded() *Loader {
	return &Loader{FS: builtin, Root: "data"}
}

// LoadAll recursively scans and loads all level files.
// Levels are sorted by number, then ID.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.FS, l.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}
		level, err := l.LoadFile(p)
		if err != nil {
			return err
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		if levels[i].Number != levels[j].Number {
			return levels[i].Number < levels[j].Number
		}
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading %s: %w", p, err)
	}

	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing %s: %w", p, err)
	}

	return Level{
		ID:          parsed.ID,
		Number:      parsed.Number,
		Name:        parsed.Name,
		Width:       parsed.Width,
		Height:      parsed.Height,
		Moves:       parsed.Moves,
		Objectives:  parsed.Objectives,
		Stones:      parsed.Stones,
		StoneTarget: parsed.StoneTarget,
		StoneHP:     parsed.StoneHP,
		Seed:        parsed.Seed,
		FilePath:    p,
	}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("levels: %s: %w", id, ErrNotFound)
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
