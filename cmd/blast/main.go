// blast is a terminal tile-blast puzzle: click a group of same-colored
// cells to clear it and watch the board settle and refill.
//
// Usage:
//
//	blast list               - List available board variants
//	blast play [variant]     - Play a variant (menu when omitted)
//	blast stats [variant]    - Show journal statistics
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible boards
//	--db <path>          - Set journal path (default: ~/.blast/journal.db)
//	--log-file <path>    - Set log file (default: ~/.blast/blast.log)
//	--log-level <level>  - Set log level: debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import variants to register them
	_ "github.com/vovakirdan/tui-blast/internal/games/blast"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blast",
	Short: "Blast - a tile-clearing puzzle in your terminal",
	Long: `Blast is a terminal match-grid puzzle. Click a group of two or more
touching cells of one color to clear it; the cells above fall into the gap
and new cells drop in from the top.

Available commands:
  list     - Show all board variants
  play     - Play a variant, or pick one from a menu
  stats    - View the resolution journal

Examples:
  blast list
  blast play
  blast play blast_mini --difficulty easy
  blast stats blast`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blast/journal.db", "Path to journal database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.blast/blast.log", "Path to log file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
}
