package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast"
	"github.com/vovakirdan/tui-blast/internal/platform/tui"
	"github.com/vovakirdan/tui-blast/internal/registry"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a board variant",
	Long: `Start playing the specified variant. Without a variant an
interactive menu lets you pick one and returns after each game.

Controls:
  Mouse click     - Blast the group under the pointer
  Arrows/WASD     - Move the cursor
  Enter/Space     - Blast the group under the cursor
  P/Esc           - Pause
  R               - New board
  Tab             - Journal
  Ctrl+S          - Save a screenshot
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - More seeded groups, more matching refills, at most 4 colors
  normal - Configured values
  hard   - Fewer seeded groups, more random refills

Examples:
  blast play
  blast play blast_mini
  blast play blast --difficulty hard
  blast play blast_grand --config ./my-blast.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom blast config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

// session bundles what every screen of a play session shares.
type session struct {
	cfg    core.RuntimeConfig
	store  *storage.Store
	logger *log.Logger
}

func runPlay(cmd *cobra.Command, args []string) error {
	if len(args) == 1 && !registry.Exists(args[0]) {
		return fmt.Errorf("unknown variant %q (run 'blast list' to see available variants)", args[0])
	}
	if _, err := config.ParseDifficultyPreset(flagDifficulty); err != nil {
		return err
	}

	logger, closer, err := openLogger(flagLogFile, flagLogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	blast.SetConfigPath(flagConfig)
	blast.SetDifficultyPreset(flagDifficulty)
	blast.SetLogger(logger)

	// Get terminal size
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	s := session{
		cfg: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		logger: logger,
	}

	// The game still works without a journal
	s.store, err = storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open journal: %v\n", err)
		logger.Warn("journal disabled", "err", err)
	} else {
		defer s.store.Close()
	}

	if len(args) == 1 {
		return s.play(args[0])
	}
	return s.menu()
}

// play runs one variant until the player quits.
func (s *session) play(variant string) error {
	game, err := registry.Create(variant)
	if err != nil {
		return err
	}
	if err := tui.Run(game, s.store, s.cfg, s.logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// menu loops between the variant picker, games and the journal screen.
func (s *session) menu() error {
	for {
		result, err := tui.RunMenu(s.cfg)
		if err != nil {
			return err
		}
		s.cfg = result.Config

		switch {
		case result.Quit:
			return nil

		case result.WantStats:
			goBack, err := tui.RunStats(s.store, "", s.cfg.ScreenW, s.cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			if err := s.play(result.Variant); err != nil {
				return err
			}
		}
	}
}
