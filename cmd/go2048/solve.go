package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/go2048/internal/registry"
	"github.com/vovakirdan/go2048/internal/solver"
	"github.com/vovakirdan/go2048/internal/storage"
)

var (
	flagSolver     string
	flagIterations int
	flagMaxMoves   int
	flagDelay      time.Duration
	flagRecord     bool
	flagBoard      string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Let a solver play in the console",
	Long: `Run a solver for one or more games and report the scores.

Game i of a batch is seeded with seed+i, so any game can be replayed on
its own with --seed. With --record every game is written to the run
journal and can be checked later with 'go2048 replay'.

Examples:
  go2048 solve
  go2048 solve --solver cycle -i 100
  go2048 solve --seed 42 --max-moves 500 -v 4
  go2048 solve -i 10 --record
  go2048 solve --board "1,1,0,0/0,0,0,0/0,0,2,0/0,0,0,0"`,
	Args: cobra.NoArgs,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&flagSolver, "solver", "", "Solver id (see 'go2048 solvers')")
	solveCmd.Flags().IntVarP(&flagIterations, "iterations", "i", 1, "Number of games to play")
	solveCmd.Flags().IntVar(&flagMaxMoves, "max-moves", 0, "Stop each game after this many moves (0 = until game over)")
	solveCmd.Flags().DurationVar(&flagDelay, "delay", 0, "Pause between moves")
	solveCmd.Flags().BoolVar(&flagRecord, "record", false, "Record games in the run journal")
	solveCmd.Flags().StringVar(&flagBoard, "board", "", "Start every game from these ranks, rows split by '/' (e.g. 1,1,0,0/0,0,0,0/0,0,2,0/0,0,0,0)")
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("solver") {
		cfg.Solver.Name = flagSolver
	}
	if flags.Changed("iterations") {
		cfg.Solver.Iterations = flagIterations
	}
	if flags.Changed("max-moves") {
		cfg.Solver.MaxMoves = flagMaxMoves
	}
	if flags.Changed("delay") {
		cfg.Solver.Delay = flagDelay
	}
	if flags.Changed("record") {
		cfg.Storage.Enabled = flagRecord
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	board, err := parseBoardFlag(flagBoard)
	if err != nil {
		return err
	}

	if !registry.Exists(cfg.Solver.Name) {
		return fmt.Errorf("unknown solver %q (run 'go2048 solvers' to see available solvers)", cfg.Solver.Name)
	}

	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runCfg := solver.RunConfig{
		Solver:      cfg.Solver.Name,
		Iterations:  cfg.Solver.Iterations,
		Seed:        cfg.Game.Seed,
		Board:       board,
		KeepHistory: cfg.Game.KeepHistory,
		Play: solver.PlayOptions{
			MaxMoves: cfg.Solver.MaxMoves,
			Delay:    cfg.Solver.Delay,
			Logger:   logger,
		},
	}

	if cfg.Storage.Enabled {
		store, err := storage.Open(cfg.Storage.Path)
		if err != nil {
			return fmt.Errorf("opening run journal: %w", err)
		}
		defer store.Close()
		runCfg.Journal = store
	}

	logger.Info("Solving", "solver", cfg.Solver.Name, "games", max(cfg.Solver.Iterations, 1), "seed", cfg.Game.Seed)

	results, err := solver.RunMany(ctx, runCfg)
	if errors.Is(err, context.Canceled) {
		logger.Warn("interrupted", "finished", len(results))
	} else if err != nil {
		return err
	}

	printResults(results)
	return nil
}

// printResults prints one line per game and a summary.
func printResults(results []solver.Result) {
	if len(results) == 0 {
		return
	}

	fmt.Printf("  %-4s  %-20s  %-8s  %-6s  %-6s  %s\n", "Game", "Seed", "Score", "Moves", "Max", "Run")
	fmt.Printf("  %-4s  %-20s  %-8s  %-6s  %-6s  %s\n", "----", "----", "-----", "-----", "---", "---")

	var total, best, bestTile int
	for i, r := range results {
		runID := r.RunID
		if runID == "" {
			runID = "-"
		}
		fmt.Printf("  %-4d  %-20d  %-8d  %-6d  %-6d  %s\n", i+1, r.Seed, r.Score, r.Moves, r.MaxTile, runID)

		total += r.Score
		best = max(best, r.Score)
		bestTile = max(bestTile, r.MaxTile)
	}

	if len(results) > 1 {
		fmt.Println()
		fmt.Printf("Games: %d  Mean score: %.1f  Best score: %d  Best tile: %d\n",
			len(results), float64(total)/float64(len(results)), best, bestTile)
	}
}
