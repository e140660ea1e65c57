package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/go2048/internal/config"
	"github.com/vovakirdan/go2048/internal/platform/tui"
	"github.com/vovakirdan/go2048/internal/solver"
	"github.com/vovakirdan/go2048/internal/storage"
)

var (
	flagRunsSolver string
	flagRunsLimit  int
	flagRunsTUI    bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs",
	Long: `Display runs recorded with 'go2048 solve --record', newest first.

With --tui the runs are shown in an interactive table; pressing enter on
a run replays it on the board.

Examples:
  go2048 runs
  go2048 runs --solver cycle --limit 5
  go2048 runs --tui`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().StringVar(&flagRunsSolver, "solver", "", "Only show runs of this solver")
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Maximum number of runs to list")
	runsCmd.Flags().BoolVar(&flagRunsTUI, "tui", false, "Browse runs in the terminal UI")
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening run journal: %w", err)
	}
	defer store.Close()

	if flagRunsTUI {
		return browseRuns(cfg, store)
	}

	runs, err := store.ListRuns(flagRunsSolver, flagRunsLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'go2048 solve --record' to record some!")
		return nil
	}

	fmt.Printf("  %-8s  %-10s  %-20s  %-8s  %-6s  %-6s  %s\n", "Run", "Solver", "Seed", "Score", "Moves", "Max", "Date")
	fmt.Printf("  %-8s  %-10s  %-20s  %-8s  %-6s  %-6s  %s\n", "---", "------", "----", "-----", "-----", "---", "----")

	for _, r := range runs {
		fmt.Printf("  %-8s  %-10s  %-20d  %-8d  %-6d  %-6d  %s\n",
			shortID(r.RunID), r.Solver, r.Seed, r.Score, r.Moves, r.MaxTile, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// browseRuns shows the runs table and replays the picked run on the board.
func browseRuns(cfg config.Config, store *storage.Store) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}

	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	run, err := tui.RunRuns(store, flagRunsSolver, width, height)
	if err != nil || run == nil {
		return err
	}
	return watchRun(cfg, *run)
}

// watchRun replays run on the board screen.
func watchRun(cfg config.Config, run storage.Run) error {
	g, err := solver.ReplayGame(run)
	if err != nil {
		return err
	}
	return tui.RunPlay(g, tui.PlayConfig{
		Solver:   solver.NewScripted(run.Actions),
		TickRate: cfg.UI.TickRate,
		Title:    fmt.Sprintf("2048 - replay %s (%s)", shortID(run.RunID), run.Solver),
	})
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
