// go2048 plays the 2048 sliding-tile game in the terminal, either by hand
// or by letting a registered solver play.
//
// Usage:
//
//	go2048 solve              - Let a solver play one or more games
//	go2048 play               - Play in the terminal UI
//	go2048 play --watch       - Watch a solver play in the terminal UI
//	go2048 solvers            - List available solvers
//	go2048 runs               - List recorded runs
//	go2048 replay <id>        - Verify or watch a recorded run
//
// Global flags:
//
//	--config <path>   - Config file (default: ~/.go2048/config.yaml)
//	--seed <value>    - RNG seed for reproducible games (0 = random)
//	--db <path>       - Run journal database (default: ~/.go2048/runs.db)
//	-v, --verbose <n> - Verbosity 0-5
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/go2048/internal/config"
	"github.com/vovakirdan/go2048/internal/game"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	// Global flags
	flagConfig      string
	flagSeed        int64
	flagKeepHistory bool
	flagVerbose     int
	flagDBPath      string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "go2048",
	Short: "2048 in your terminal, for humans and solvers",
	Long: `go2048 is the 2048 sliding-tile game with pluggable solvers.

Available commands:
  solve    - Let a solver play (console mode)
  play     - Play or watch in the terminal UI
  solvers  - Show all registered solvers
  runs     - Browse recorded runs
  replay   - Verify or watch a recorded run

Examples:
  go2048 solve --solver cycle -i 100
  go2048 solve --seed 42 --record
  go2048 play
  go2048 play --watch --solver random
  go2048 replay 3f2a`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("go2048", version)
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().BoolVar(&flagKeepHistory, "keep-history", true, "Keep undo/redo history")
	rootCmd.PersistentFlags().IntVarP(&flagVerbose, "verbose", "v", 3, "Verbosity 0-5 (0 fatal, 3 info, 4+ debug)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run journal database")

	// Add subcommands
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(solversCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadSettings loads the config file and applies any global flags the user set.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Game.Seed = flagSeed
	}
	if flags.Changed("keep-history") {
		cfg.Game.KeepHistory = flagKeepHistory
	}
	if flags.Changed("db") {
		cfg.Storage.Path = flagDBPath
	}
	if flags.Changed("verbose") {
		if flagVerbose < 0 || flagVerbose > 5 {
			return cfg, fmt.Errorf("--verbose must be between 0 and 5, got %d", flagVerbose)
		}
		cfg.Log.Level = config.VerbosityLevel(flagVerbose).String()
	}

	// A concrete seed keeps every game replayable.
	if cfg.Game.Seed == 0 {
		cfg.Game.Seed = time.Now().UnixNano()
	}
	return cfg, cfg.Validate()
}

// newLogger builds the stderr logger for cfg.
func newLogger(cfg config.Config) *log.Logger {
	level, err := cfg.LogLevel()
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: cfg.Log.Timestamps,
		Prefix:          "go2048",
		Level:           level,
	})
}

// parseBoardFlag reads a --board value; empty means no explicit board.
func parseBoardFlag(s string) (*game.Board, error) {
	if s == "" {
		return nil, nil
	}
	b, err := game.ParseBoard(s)
	if err != nil {
		return nil, fmt.Errorf("--board: %w", err)
	}
	return &b, nil
}
