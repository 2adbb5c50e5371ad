package config

import "math"

// presetTuning holds the curator adjustments of a difficulty preset.
type presetTuning struct {
	seedGroupDelta   int     // Added to minimum_seed_group_count
	spawnProbability float64 // Added to spawn_group_probability
	colorCap         int     // Upper bound on color_count; 0 = unchanged
}

var presets = map[DifficultyPreset]presetTuning{
	DifficultyEasy:   {seedGroupDelta: 2, spawnProbability: 0.2, colorCap: 4},
	DifficultyNormal: {},
	DifficultyHard:   {seedGroupDelta: -2, spawnProbability: -0.25},
}

// ApplyBlastPreset modifies the config based on a difficulty preset.
// Easy boards start with more matchable groups and refill toward groups more
// often; hard boards get fewer of both. Unknown presets leave cfg unchanged.
func ApplyBlastPreset(cfg *BlastConfig, preset DifficultyPreset) {
	tuning, ok := presets[preset]
	if !ok {
		return
	}

	cfg.Curator.MinimumSeedGroupCount += tuning.seedGroupDelta
	if cfg.Curator.MinimumSeedGroupCount < 0 {
		cfg.Curator.MinimumSeedGroupCount = 0
	}
	cfg.Curator.SpawnGroupProbability = clampF(cfg.Curator.SpawnGroupProbability+tuning.spawnProbability, 0.0, 1.0)

	if tuning.colorCap > 0 && cfg.Board.ColorCount > tuning.colorCap {
		cfg.Board.ColorCount = tuning.colorCap
	}
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
