package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lab2048/internal/platform/tui"
	"github.com/vovakirdan/lab2048/internal/registry"
)

var flagInteractive bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the leaderboard and best score for the selected variant.

Examples:
  lab2048 scores
  lab2048 scores --variant 2048_5x5
  lab2048 scores -i`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse all boards in a table view")
}

func runScores(cmd *cobra.Command, _ []string) error {
	variant := appCfg.Game.Variant

	// Check if variant exists
	if !registry.Exists(variant) {
		return fmt.Errorf("unknown variant %q, run 'lab2048 variants' to see available boards", variant)
	}

	// Get variant title
	game, err := registry.Create(variant)
	if err != nil {
		return err
	}
	title := game.Title()

	store, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(store)

	if flagInteractive {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		return tui.RunLeaderboard(store, variant, appCfg.Leaderboard.Size, width, height)
	}

	leaders, err := store.Leaders(variant, appCfg.Leaderboard.Size)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Leaders - %s\n", title)
	fmt.Fprintln(out)

	if len(leaders) == 0 {
		fmt.Fprintln(out, "No leaders yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'lab2048 play --variant %s' to set the first score!\n", variant)
		return nil
	}

	// Print header
	fmt.Fprintf(out, "  %-4s  %-16s  %-10s  %s\n", "Rank", "Name", "Score", "Date")
	fmt.Fprintf(out, "  %-4s  %-16s  %-10s  %s\n", "----", "----", "-----", "----")

	for i, e := range leaders {
		fmt.Fprintf(out, "  %-4d  %-16s  %-10d  %s\n", i+1, e.Name, e.Score, e.Date())
	}

	best, err := store.BestScore(variant)
	if err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Best: %d\n", best)
	}
	return nil
}
