package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lab2048/internal/registry"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List all available boards",
	Long:  `Shows every board variant that can be passed to --variant.`,
	Args:  cobra.NoArgs,
	RunE:  runVariants,
}

func runVariants(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	variants := registry.List()

	if len(variants) == 0 {
		fmt.Fprintln(out, "No boards available.")
		return nil
	}

	fmt.Fprintln(out, "Available boards:")
	fmt.Fprintln(out)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, v := range variants {
		if len(v.ID) > maxIDLen {
			maxIDLen = len(v.ID)
		}
	}

	// Print header
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, v := range variants {
		marker := ""
		if v.ID == appCfg.Game.Variant {
			marker = "  (default)"
		}
		fmt.Fprintf(out, "  %-*s  %s%s\n", maxIDLen, v.ID, v.Title, marker)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'lab2048 play --variant <id>' to play a board.")
	return nil
}
