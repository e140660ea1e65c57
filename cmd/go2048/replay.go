package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/go2048/internal/solver"
	"github.com/vovakirdan/go2048/internal/storage"
)

var flagReplayWatch bool

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Verify or watch a recorded run",
	Long: `Re-play a recorded run from its seed and check that it reproduces the
recorded score and move count. Any unique prefix of the run id works.

Examples:
  go2048 replay 3f2a
  go2048 replay 3f2a --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayWatch, "watch", false, "Show the replay in the terminal UI")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening run journal: %w", err)
	}
	defer store.Close()

	run, err := store.GetRun(args[0])
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("no run matches %q (run 'go2048 runs' to list them)", args[0])
	}

	if flagReplayWatch {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errNoTerminal
		}
		return watchRun(cfg, *run)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := solver.Replay(ctx, *run)
	if err != nil {
		return err
	}

	logger.Info("replay verified", "run", run.RunID, "solver", run.Solver, "seed", run.Seed)
	fmt.Printf("Run %s verified: score %d in %d moves, max tile %d\n", run.RunID, res.Score, res.Moves, res.MaxTile)
	return nil
}
