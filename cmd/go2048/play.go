package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/go2048/internal/game"
	"github.com/vovakirdan/go2048/internal/platform/tui"
	"github.com/vovakirdan/go2048/internal/registry"
)

var (
	flagWatch       bool
	flagWatchSolver string
	flagFPS         int
	flagPlayBoard   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal UI",
	Long: `Start a game in the terminal UI.

Controls:
  Arrows/WASD/HJKL - Slide tiles
  U                - Undo
  Y/Ctrl+R         - Redo
  N                - New game
  Space            - Pause (watch mode)
  ?                - Toggle help
  Q/Esc/Ctrl+C     - Quit

Examples:
  go2048 play
  go2048 play --seed 42
  go2048 play --board "1,1,0,0/0,0,0,0/0,0,2,0/0,0,0,0"
  go2048 play --watch --solver cycle --fps 20`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Let a solver play while you watch")
	playCmd.Flags().StringVar(&flagWatchSolver, "solver", "", "Solver id for --watch")
	playCmd.Flags().IntVar(&flagFPS, "fps", 0, "Solver moves per second for --watch")
	playCmd.Flags().StringVar(&flagPlayBoard, "board", "", "Start from these ranks, rows split by '/'")
}

// errNoTerminal is returned when a TUI command is not attached to a terminal.
var errNoTerminal = errors.New("the terminal UI needs an interactive terminal (try 'go2048 solve')")

func runPlay(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("solver") {
		cfg.Solver.Name = flagWatchSolver
	}
	if cmd.Flags().Changed("fps") {
		cfg.UI.TickRate = flagFPS
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	board, err := parseBoardFlag(flagPlayBoard)
	if err != nil {
		return err
	}

	opts := []game.Option{game.WithSeed(cfg.Game.Seed), game.WithHistory(cfg.Game.KeepHistory)}
	if board != nil {
		opts = append(opts, game.WithBoard(*board))
	}
	g, err := game.New(opts...)
	if err != nil {
		return err
	}

	playCfg := tui.PlayConfig{TickRate: cfg.UI.TickRate}
	if flagWatch {
		s, err := registry.Create(cfg.Solver.Name, registry.Options{Seed: cfg.Game.Seed})
		if err != nil {
			return fmt.Errorf("%w (run 'go2048 solvers' to see available solvers)", err)
		}
		playCfg.Solver = s
		playCfg.Title = "2048 - " + s.Title()
	}

	logger := newLogger(cfg)
	logger.Debug("starting game", "seed", cfg.Game.Seed, "watch", flagWatch)

	if err := tui.RunPlay(g, playCfg); err != nil {
		return err
	}

	logger.Info("Score", "score", g.Score(), "moves", g.MoveCount(), "max_tile", g.State().MaxTile(), "seed", cfg.Game.Seed)
	return nil
}
