// Package config provides YAML-based board configuration loading,
// validation and difficulty presets for the blast game.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-blast/internal/engine"
)

// BlastConfig contains all configuration for a blast board.
type BlastConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Rules   RulesConfig   `yaml:"rules"`
	Curator CuratorConfig `yaml:"curator"`
	Pacing  PacingConfig  `yaml:"pacing"`
	Pool    PoolConfig    `yaml:"pool"`
}

// BoardConfig defines the board dimensions and palette.
type BoardConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	ColorCount int `yaml:"color_count"` // First N palette colors, 2-6
}

// RulesConfig defines click rules.
type RulesConfig struct {
	MinimumMatchSize int `yaml:"minimum_match_size"`
}

// CuratorConfig defines how new cell colors are biased toward groups.
type CuratorConfig struct {
	MinimumSeedGroupSize  int     `yaml:"minimum_seed_group_size"`
	MinimumSeedGroupCount int     `yaml:"minimum_seed_group_count"`
	SpawnGroupProbability float64 `yaml:"spawn_group_probability"` // 0.0 - 1.0
}

// PacingConfig defines how fast a resolution plays out on screen.
type PacingConfig struct {
	SettleStepDelay time.Duration `yaml:"settle_step_delay"` // Delay between cascade steps
}

// PoolConfig sizes the cell handle pool.
type PoolConfig struct {
	Prewarm int `yaml:"prewarm"`
	MaxLive int `yaml:"max_live"` // 0 = 2*width*height
}

// Engine converts the configuration to engine settings.
func (c BlastConfig) Engine() engine.Settings {
	return engine.Settings{
		Width:                 c.Board.Width,
		Height:                c.Board.Height,
		ColorCount:            c.Board.ColorCount,
		MinMatchSize:          c.Rules.MinimumMatchSize,
		MinSeedGroupSize:      c.Curator.MinimumSeedGroupSize,
		MinSeedGroupCount:     c.Curator.MinimumSeedGroupCount,
		SpawnGroupProbability: c.Curator.SpawnGroupProbability,
	}
}

// PoolMaxLive returns the effective live handle cap: room for the board
// plus a full staging area unless configured otherwise.
func (c BlastConfig) PoolMaxLive() int {
	if c.Pool.MaxLive > 0 {
		return c.Pool.MaxLive
	}
	return 2 * c.Board.Width * c.Board.Height
}

// Validate checks the configuration for values the engine cannot run with.
func (c BlastConfig) Validate() error {
	if err := c.Engine().Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Pacing.SettleStepDelay < 0 {
		return fmt.Errorf("invalid config: settle_step_delay %v is negative", c.Pacing.SettleStepDelay)
	}
	if c.Pool.Prewarm < 0 || c.Pool.MaxLive < 0 {
		return fmt.Errorf("invalid config: pool sizes must not be negative")
	}
	if cells := c.Board.Width * c.Board.Height; c.Pool.MaxLive > 0 && c.Pool.MaxLive < cells {
		return fmt.Errorf("invalid config: pool max_live %d cannot hold %d cells", c.Pool.MaxLive, cells)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficultyPreset validates a preset name. Empty means normal.
func ParseDifficultyPreset(name string) (DifficultyPreset, error) {
	switch DifficultyPreset(name) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(name), nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (expected easy, normal or hard)", name)
	}
}
