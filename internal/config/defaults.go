package config

import (
	_ "embed"
)

//go:embed defaults/go2048.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			KeepHistory: true,
			Seed:        0,
		},
		Solver: SolverConfig{
			Name:       "random",
			Iterations: 1,
		},
		Log: LogConfig{
			Level: "info",
		},
		Storage: StorageConfig{
			Enabled: false,
			Path:    "~/.go2048/runs.db",
		},
		UI: UIConfig{
			TickRate: 10,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
