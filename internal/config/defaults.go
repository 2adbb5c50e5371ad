package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/blast.yaml
var defaultBlastYAML []byte

// DefaultBlastConfig returns the default 10x10 five color configuration.
func DefaultBlastConfig() BlastConfig {
	return BlastConfig{
		Board: BoardConfig{
			Width:      10,
			Height:     10,
			ColorCount: 5,
		},
		Rules: RulesConfig{
			MinimumMatchSize: 2,
		},
		Curator: CuratorConfig{
			MinimumSeedGroupSize:  3,
			MinimumSeedGroupCount: 3,
			SpawnGroupProbability: 0.4,
		},
		Pacing: PacingConfig{
			SettleStepDelay: 50 * time.Millisecond,
		},
		Pool: PoolConfig{
			Prewarm: 50,
			MaxLive: 0,
		},
	}
}
