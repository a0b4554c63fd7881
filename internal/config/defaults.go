package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultConfig returns the default match3 configuration.
func DefaultConfig() Config {
	return Config{
		Rules: RulesConfig{
			MinRun:      3,
			StoneHP:     2,
			RefillTries: 20,
			CascadeCap:  50,
			PaletteSize: 4,
		},
		Scoring: ScoringConfig{
			TilePoints:  10,
			StonePoints: 50,
			MoveBonus:   100,
		},
		Endless: EndlessConfig{
			Width:  8,
			Height: 8,
			Moves:  30,
			Stones: 0,
		},
		Display: DisplayConfig{
			StepDelayTicks: 6,
			Theme:          "default",
		},
		Difficulty: DifficultyNormal,
	}
}

// normalize replaces missing or out-of-range values with defaults.
func (c *Config) normalize() {
	d := DefaultConfig()
	if c.Rules.MinRun < 2 {
		c.Rules.MinRun = d.Rules.MinRun
	}
	if c.Rules.StoneHP < 1 {
		c.Rules.StoneHP = d.Rules.StoneHP
	}
	if c.Rules.RefillTries < 1 {
		c.Rules.RefillTries = d.Rules.RefillTries
	}
	if c.Rules.CascadeCap < 1 {
		c.Rules.CascadeCap = d.Rules.CascadeCap
	}
	if c.Rules.PaletteSize < 3 || c.Rules.PaletteSize > 6 {
		c.Rules.PaletteSize = d.Rules.PaletteSize
	}
	if c.Endless.Width < 3 || c.Endless.Height < 3 {
		c.Endless.Width, c.Endless.Height = d.Endless.Width, d.Endless.Height
	}
	if c.Endless.Moves < 1 {
		c.Endless.Moves = d.Endless.Moves
	}
	if c.Endless.Stones < 0 {
		c.Endless.Stones = 0
	}
	if c.Display.StepDelayTicks < 0 {
		c.Display.StepDelayTicks = 0
	}
	if c.Display.Theme == "" {
		c.Display.Theme = d.Display.Theme
	}
	c.Difficulty = ParsePreset(string(c.Difficulty))
}
