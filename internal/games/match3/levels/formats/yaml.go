// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID          string          `yaml:"id"`
	Number      int             `yaml:"number"`
	Name        string          `yaml:"name"`
	Size        YAMLSize        `yaml:"size"`
	Moves       int             `yaml:"moves"`
	Objectives  []YAMLObjective `yaml:"objectives"`
	Stones      []YAMLCoord     `yaml:"stones,omitempty"`
	StoneTarget int             `yaml:"stone_target,omitempty"`
	StoneHP     int             `yaml:"stone_hp,omitempty"`
	Seed        int64           `yaml:"seed,omitempty"`
}

// YAMLSize represents board dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLObjective is one color goal.
type YAMLObjective struct {
	Tile   string `yaml:"tile"`
	Target int    `yaml:"target"`
}

// YAMLCoord is a board position. y=0 is the bottom row.
type YAMLCoord struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Objective is a parsed color goal. Name keeps the raw spelling for
// validation messages when the tile is unknown.
type Objective struct {
	Tile   core.Tile
	Name   string
	Target int
	Known  bool
}

// Level represents a parsed level ready for use.
type Level struct {
	ID          string
	Number      int
	Name        string
	Width       int
	Height      int
	Moves       int
	Objectives  []Objective
	Stones      []core.Coord
	StoneTarget int
	StoneHP     int
	Seed        int64
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("level has no id")
	}

	level := Level{
		ID:          yl.ID,
		Number:      yl.Number,
		Name:        yl.Name,
		Width:       yl.Size.W,
		Height:      yl.Size.H,
		Moves:       yl.Moves,
		StoneTarget: yl.StoneTarget,
		StoneHP:     yl.StoneHP,
		Seed:        yl.Seed,
	}
	if level.Name == "" {
		level.Name = yl.ID
	}

	for _, o := range yl.Objectives {
		tile, ok := core.ParseTile(o.Tile)
		level.Objectives = append(level.Objectives, Objective{
			Tile:   tile,
			Name:   o.Tile,
			Target: o.Target,
			Known:  ok && tile.IsColor(),
		})
	}
	for _, s := range yl.Stones {
		level.Stones = append(level.Stones, core.C(s.X, s.Y))
	}

	return level, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
