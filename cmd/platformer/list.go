package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-platformer/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all built-in campaigns",
	Long:  `Shows a list of all campaigns registered in the binary.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	campaigns := registry.List()
	out := cmd.OutOrStdout()

	if len(campaigns) == 0 {
		fmt.Fprintln(out, "No campaigns available.")
		return
	}

	fmt.Fprintln(out, "Available campaigns:")
	fmt.Fprintln(out)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, c := range campaigns {
		if len(c.ID) > maxIDLen {
			maxIDLen = len(c.ID)
		}
	}

	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, c := range campaigns {
		fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, c.ID, c.Title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'platformer run <id>' to simulate a campaign.")
}
