// Package solver provides the built-in strategies and the loops that drive
// a game with them.
package solver

import (
	"github.com/vovakirdan/go2048/internal/game"
	"github.com/vovakirdan/go2048/internal/registry"
	"github.com/vovakirdan/go2048/internal/rng"
)

// DefaultID is the solver used when none is configured.
const DefaultID = "random"

func init() {
	registry.Register("random", func(opts registry.Options) registry.Solver {
		return NewRandom(opts.Seed)
	})
	registry.Register("cycle", func(registry.Options) registry.Solver {
		return NewCycle()
	})
}

// Random plays a uniformly chosen available action.
// It owns its source so it never perturbs the game's spawn sequence.
type Random struct {
	src rng.Source
}

// NewRandom creates a random solver seeded with seed.
func NewRandom(seed int64) *Random {
	return &Random{src: rng.New(seed)}
}

func (s *Random) ID() string    { return "random" }
func (s *Random) Title() string { return "Random" }

// Next implements registry.Solver.
func (s *Random) Next(g *game.Game) game.Action {
	avail := g.AvailableActions()
	if len(avail) == 0 {
		return game.Left
	}
	return avail[s.src.Intn(len(avail))]
}

// Cycle keeps playing one action while it is available and otherwise moves
// on to the next action in canonical order. It advances at most once per
// call, so it may still return an unavailable action.
type Cycle struct {
	action game.Action
}

// NewCycle creates a cycle solver starting at Left.
func NewCycle() *Cycle {
	return &Cycle{action: game.Left}
}

func (s *Cycle) ID() string    { return "cycle" }
func (s *Cycle) Title() string { return "Cycle" }

// Next implements registry.Solver.
func (s *Cycle) Next(g *game.Game) game.Action {
	if ok, _ := g.IsActionAvailable(s.action); !ok {
		s.action = (s.action + 1) % game.Action(len(game.Actions))
	}
	return s.action
}

// Scripted replays a fixed action sequence. It is not registered; the
// replay command builds one from a journal entry.
type Scripted struct {
	actions []game.Action
	pos     int
}

// NewScripted creates a solver that returns actions in order.
func NewScripted(actions []game.Action) *Scripted {
	return &Scripted{actions: actions}
}

func (s *Scripted) ID() string    { return "scripted" }
func (s *Scripted) Title() string { return "Replay" }

// Next implements registry.Solver. After the script is exhausted it
// keeps returning Left; use Done to stop before that.
func (s *Scripted) Next(_ *game.Game) game.Action {
	if s.pos >= len(s.actions) {
		return game.Left
	}
	a := s.actions[s.pos]
	s.pos++
	return a
}

// Done reports whether every scripted action has been returned.
func (s *Scripted) Done() bool {
	return s.pos >= len(s.actions)
}
