package engine

import "fmt"

// Board size limits recognized by Settings.Validate.
const (
	MinBoardSize = 2
	MaxBoardSize = 20
	MinColors    = 2
)

// Settings holds the rule parameters shared by the curator and the controller.
type Settings struct {
	Width                 int     // Columns
	Height                int     // Rows
	ColorCount            int     // Palette size in use (2-6)
	MinMatchSize          int     // Smallest group a click may clear
	MinSeedGroupSize      int     // Size a curated group must reach
	MinSeedGroupCount     int     // Seed groups to place per population
	SpawnGroupProbability float64 // Chance a refill cell seeks a group (0.0-1.0)
}

// DefaultSettings returns the default 10x10, five color rules.
func DefaultSettings() Settings {
	return Settings{
		Width:                 10,
		Height:                10,
		ColorCount:            5,
		MinMatchSize:          2,
		MinSeedGroupSize:      3,
		MinSeedGroupCount:     3,
		SpawnGroupProbability: 0.4,
	}
}

// Validate checks every field against its recognized range.
func (s Settings) Validate() error {
	switch {
	case s.Width < MinBoardSize || s.Width > MaxBoardSize:
		return fmt.Errorf("%w: width %d not in [%d,%d]", ErrInvalidSettings, s.Width, MinBoardSize, MaxBoardSize)
	case s.Height < MinBoardSize || s.Height > MaxBoardSize:
		return fmt.Errorf("%w: height %d not in [%d,%d]", ErrInvalidSettings, s.Height, MinBoardSize, MaxBoardSize)
	case s.ColorCount < MinColors || s.ColorCount > MaxColors:
		return fmt.Errorf("%w: color count %d not in [%d,%d]", ErrInvalidSettings, s.ColorCount, MinColors, MaxColors)
	case s.MinMatchSize < 1:
		return fmt.Errorf("%w: minimum match size %d < 1", ErrInvalidSettings, s.MinMatchSize)
	case s.MinSeedGroupSize < 1:
		return fmt.Errorf("%w: minimum seed group size %d < 1", ErrInvalidSettings, s.MinSeedGroupSize)
	case s.MinSeedGroupCount < 0:
		return fmt.Errorf("%w: minimum seed group count %d < 0", ErrInvalidSettings, s.MinSeedGroupCount)
	case s.SpawnGroupProbability < 0 || s.SpawnGroupProbability > 1:
		return fmt.Errorf("%w: spawn group probability %v not in [0,1]", ErrInvalidSettings, s.SpawnGroupProbability)
	}
	return nil
}
