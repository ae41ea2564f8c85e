package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-racer/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available tracks",
	Long:  `Shows every track bundled with racer plus any loaded with --tracks.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	tracks := registry.List()

	if len(tracks) == 0 {
		fmt.Println("No tracks available.")
		return
	}

	fmt.Println("Available tracks:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, t := range tracks {
		maxIDLen = max(maxIDLen, len(t.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Name")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "----")
	for _, t := range tracks {
		fmt.Printf("  %-*s  %s\n", maxIDLen, t.ID, t.Title)
	}

	fmt.Println()
	fmt.Println("Run 'racer play <id>' to race on a track.")
}
