package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/go2048/internal/registry"
	"github.com/vovakirdan/go2048/internal/solver"
)

var solversCmd = &cobra.Command{
	Use:   "solvers",
	Short: "List all available solvers",
	Long:  `Shows a list of all solvers registered with go2048.`,
	Args:  cobra.NoArgs,
	Run:   runSolvers,
}

func runSolvers(cmd *cobra.Command, args []string) {
	solvers := registry.List()

	if len(solvers) == 0 {
		fmt.Println("No solvers available.")
		return
	}

	fmt.Println("Available solvers:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range solvers {
		maxIDLen = max(maxIDLen, len(s.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, s := range solvers {
		title := s.Title
		if s.ID == solver.DefaultID {
			title += " (default)"
		}
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, title)
	}

	fmt.Println()
	fmt.Println("Run 'go2048 solve --solver <id>' to use one.")
}
