// Package config provides YAML-based configuration loading and difficulty
// presets for the match3 platform.
package config

// Config contains all configuration for match3.
type Config struct {
	Rules      RulesConfig      `yaml:"rules"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Endless    EndlessConfig    `yaml:"endless"`
	Display    DisplayConfig    `yaml:"display"`
	Difficulty DifficultyPreset `yaml:"difficulty"`
}

// RulesConfig defines the board rules.
type RulesConfig struct {
	MinRun      int `yaml:"min_run"`
	StoneHP     int `yaml:"stone_hp"`
	RefillTries int `yaml:"refill_tries"`
	CascadeCap  int `yaml:"cascade_cap"`
	PaletteSize int `yaml:"palette_size"`
}

// ScoringConfig defines how points are awarded.
type ScoringConfig struct {
	TilePoints  int `yaml:"tile_points"`  // Per tile, multiplied by the cascade step
	StonePoints int `yaml:"stone_points"` // Per broken stone
	MoveBonus   int `yaml:"move_bonus"`   // Per unused move on a win
}

// EndlessConfig defines the score attack mode.
type EndlessConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Moves  int `yaml:"moves"`
	Stones int `yaml:"stones"`
}

// DisplayConfig defines presentation.
type DisplayConfig struct {
	StepDelayTicks int    `yaml:"step_delay_ticks"` // Ticks each cascade frame stays on screen
	Theme          string `yaml:"theme"`            // Terminal color theme
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a flag value to a preset. Unknown names are normal.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return DifficultyNormal
	}
}
