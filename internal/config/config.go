// Package config provides YAML-based configuration loading for go2048.
package config

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Config is the complete application configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Solver  SolverConfig  `yaml:"solver"`
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	UI      UIConfig      `yaml:"ui"`
}

// GameConfig holds Game construction parameters.
type GameConfig struct {
	KeepHistory bool  `yaml:"keep_history"`
	Seed        int64 `yaml:"seed"` // 0 = random based on time
}

// SolverConfig selects and bounds the strategy used by `solve` and watch mode.
type SolverConfig struct {
	Name       string        `yaml:"name"`
	Iterations int           `yaml:"iterations"`
	MaxMoves   int           `yaml:"max_moves"` // 0 = until game over
	Delay      time.Duration `yaml:"delay"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level      string `yaml:"level"` // debug, info, warn, error, fatal
	Timestamps bool   `yaml:"timestamps"`
}

// StorageConfig configures the replay journal.
type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// UIConfig configures the terminal UI.
type UIConfig struct {
	TickRate int `yaml:"tick_rate"` // watch-mode moves per second
}

// Validate checks the configuration for values that cannot be used.
func (c Config) Validate() error {
	if c.Solver.Iterations < 0 {
		return fmt.Errorf("config: solver.iterations must be >= 0, got %d", c.Solver.Iterations)
	}
	if c.Solver.MaxMoves < 0 {
		return fmt.Errorf("config: solver.max_moves must be >= 0, got %d", c.Solver.MaxMoves)
	}
	if c.Solver.Delay < 0 {
		return fmt.Errorf("config: solver.delay must be >= 0, got %s", c.Solver.Delay)
	}
	if c.UI.TickRate <= 0 {
		return fmt.Errorf("config: ui.tick_rate must be > 0, got %d", c.UI.TickRate)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Log.Level.
func (c Config) LogLevel() (log.Level, error) {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("config: log.level: %w", err)
	}
	return lvl, nil
}

// VerbosityLevel maps a 0-5 verbosity count onto a log level:
// 0 fatal, 1 error, 2 warn, 3 info, 4 and above debug.
func VerbosityLevel(v int) log.Level {
	switch {
	case v <= 0:
		return log.FatalLevel
	case v == 1:
		return log.ErrorLevel
	case v == 2:
		return log.WarnLevel
	case v == 3:
		return log.InfoLevel
	default:
		return log.DebugLevel
	}
}
