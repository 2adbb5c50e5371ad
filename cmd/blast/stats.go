package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blast/internal/platform/tui"
	"github.com/vovakirdan/tui-blast/internal/registry"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

var (
	flagClear       bool
	flagInteractive bool
	flagTop         int
)

var statsCmd = &cobra.Command{
	Use:   "stats [variant]",
	Short: "Show journal statistics",
	Long: `Display statistics from the resolution journal. With a variant the
largest cleared groups are listed as well; without one every variant with
records is summarized.

Examples:
  blast stats
  blast stats blast_mini --top 5
  blast stats blast --clear
  blast stats -i`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the journal of the given variant")
	statsCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the journal in the terminal UI")
	statsCmd.Flags().IntVar(&flagTop, "top", 10, "Number of largest groups to show")
}

func runStats(cmd *cobra.Command, args []string) error {
	variant := ""
	if len(args) == 1 {
		variant = args[0]
		if !registry.Exists(variant) {
			return fmt.Errorf("unknown variant %q (run 'blast list' to see available variants)", variant)
		}
	}
	if flagClear && variant == "" {
		return fmt.Errorf("--clear needs a variant")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearVariant(variant); err != nil {
			return err
		}
		fmt.Printf("Journal for %s cleared.\n", variant)
		return nil

	case flagInteractive:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		_, err := tui.RunStats(store, variant, width, height)
		return err

	case variant != "":
		return printVariantStats(store, variant)
	}
	return printAllStats(store)
}

// printVariantStats prints the summary and largest groups of one variant.
func printVariantStats(store *storage.Store, variant string) error {
	stats, err := store.VariantStats(variant)
	if err != nil {
		return err
	}

	fmt.Printf("Journal - %s\n", variant)
	fmt.Println()

	if stats.Resolutions == 0 {
		fmt.Println("No blasts recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'blast play %s' to start the journal!\n", variant)
		return nil
	}

	fmt.Printf("  Blasts:        %s in %s sessions\n", humanize.Comma(int64(stats.Resolutions)), humanize.Comma(int64(stats.Sessions)))
	fmt.Printf("  Largest group: %d\n", stats.LargestGroup)
	fmt.Printf("  Average group: %.1f\n", stats.AvgGroup)
	fmt.Printf("  Cells cleared: %s\n", humanize.Comma(stats.TotalCleared))
	fmt.Printf("  Cells spawned: %s\n", humanize.Comma(stats.TotalSpawned))
	fmt.Printf("  Exhaustions:   %d\n", stats.Exhaustions)
	fmt.Printf("  Last played:   %s\n", humanize.Time(stats.LastPlayed))

	groups, err := store.LargestGroups(variant, flagTop)
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Printf("  %-4s  %-5s  %-7s  %-6s  %s\n", "Rank", "Group", "Color", "Refill", "When")
	fmt.Printf("  %-4s  %-5s  %-7s  %-6s  %s\n", "----", "-----", "-----", "------", "----")
	for i, r := range groups {
		fmt.Printf("  %-4d  %-5d  %-7s  %-6d  %s\n", i+1, r.GroupSize, r.Color, r.Spawned, humanize.Time(r.CreatedAt))
	}
	return nil
}

// printAllStats prints one summary line per variant with records.
func printAllStats(store *storage.Store) error {
	all, err := store.AllVariantStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No blasts recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-12s  %8s  %8s  %7s  %7s  %s\n", "Variant", "Blasts", "Sessions", "Largest", "Average", "Last played")
	fmt.Printf("  %-12s  %8s  %8s  %7s  %7s  %s\n", "-------", "------", "--------", "-------", "-------", "-----------")
	for _, id := range ids {
		s := all[id]
		fmt.Printf("  %-12s  %8s  %8s  %7d  %7.1f  %s\n", id,
			humanize.Comma(int64(s.Resolutions)), humanize.Comma(int64(s.Sessions)),
			s.LargestGroup, s.AvgGroup, humanize.Time(s.LastPlayed))
	}
	return nil
}
