// Package registry provides a global registry for solver factories.
// Solvers register themselves in init() functions, so the CLI can select a
// strategy by name without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/go2048/internal/game"
)

// Solver picks the next action for a game. Solvers only read the game;
// the caller executes the returned action.
type Solver interface {
	// ID returns a unique identifier (e.g., "random", "cycle").
	// Used for CLI flags and the replay journal.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Next returns the action to play on g. Only called while the game
	// is not over.
	Next(g *game.Game) game.Action
}

// Options are passed to a factory when a solver is created.
type Options struct {
	// Seed seeds the solver's own random source, if it uses one.
	Seed int64
}

// SolverInfo contains metadata about a registered solver.
type SolverInfo struct {
	ID    string
	Title string
}

// Factory creates a new solver instance.
type Factory func(opts Options) Solver

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a solver factory to the registry.
// Typically called from an init() function.
// Panics if a solver with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: solver %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	titles[id] = f(Options{}).Title()
}

// List returns information about all registered solvers, sorted by ID.
func List() []SolverInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SolverInfo, 0, len(factories))
	for id := range factories {
		result = append(result, SolverInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a solver by its ID.
// Returns an error if the ID is not registered.
func Create(id string, opts Options) (Solver, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown solver %q", id)
	}

	return f(opts), nil
}

// Exists checks if a solver with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
