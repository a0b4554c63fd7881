package config

// PresetAdjustment is the change a difficulty preset applies to a level.
type PresetAdjustment struct {
	ExtraMoves  int
	PaletteSize int // zero keeps the configured palette
}

// AdjustmentFor returns the adjustment for a preset.
func AdjustmentFor(preset DifficultyPreset) PresetAdjustment {
	switch preset {
	case DifficultyEasy:
		return PresetAdjustment{ExtraMoves: 5, PaletteSize: 4}
	case DifficultyHard:
		return PresetAdjustment{ExtraMoves: -3, PaletteSize: 5}
	default:
		return PresetAdjustment{}
	}
}

// ApplyPreset applies a difficulty preset to the config rules and endless mode.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	cfg.Difficulty = preset
	adj := AdjustmentFor(preset)
	if adj.PaletteSize > 0 {
		cfg.Rules.PaletteSize = adj.PaletteSize
	}
	cfg.Endless.Moves = AdjustMoves(cfg.Endless.Moves, preset)
}

// AdjustMoves applies a preset to a level's move budget. At least one move remains.
func AdjustMoves(moves int, preset DifficultyPreset) int {
	moves += AdjustmentFor(preset).ExtraMoves
	if moves < 1 {
		moves = 1
	}
	return moves
}
