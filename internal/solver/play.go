package solver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/go2048/internal/game"
	"github.com/vovakirdan/go2048/internal/registry"
	"github.com/vovakirdan/go2048/internal/storage"
)

// ErrReplayMismatch is returned when a replayed run does not reproduce the
// recorded score and move count.
var ErrReplayMismatch = errors.New("solver: replay mismatch")

// solverSeedSalt decorrelates a solver's stream from the game's when both
// derive from the same run seed.
const solverSeedSalt = 0x2048

// Step describes one executed action.
type Step struct {
	MoveCount int
	Action    game.Action
	Reward    int
	Score     int
}

// PlayOptions controls a Play loop.
type PlayOptions struct {
	MaxMoves int           // 0 = until game over
	Delay    time.Duration // pause between moves
	Logger   *log.Logger   // nil = discard
	OnStep   func(Step)
}

// Result summarizes a finished Play loop.
type Result struct {
	RunID    string // set when the run was journaled
	Seed     int64
	Score    int
	Moves    int
	MaxTile  int
	GameOver bool
	Actions  []game.Action
}

// Journal stores finished runs.
type Journal interface {
	SaveRun(run storage.Run) (string, error)
}

// Play lets s drive g until the game is over, the move cap is hit, the
// solver runs out of actions, or ctx is cancelled. The partial result is
// returned alongside a context error.
func Play(ctx context.Context, g *game.Game, s registry.Solver, opts PlayOptions) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	done, finite := s.(interface{ Done() bool })

	var actions []game.Action
	for !g.GameOver() {
		if err := ctx.Err(); err != nil {
			return summarize(g, actions), err
		}
		if opts.MaxMoves > 0 && len(actions) >= opts.MaxMoves {
			break
		}
		if finite && done.Done() {
			break
		}

		a := s.Next(g)
		reward, err := g.DoAction(a)
		if err != nil {
			return summarize(g, actions), fmt.Errorf("solver %s: %w", s.ID(), err)
		}
		actions = append(actions, a)

		logger.Debug("Move", "move", g.MoveCount(), "action", a, "reward", reward, "score", g.Score())
		if opts.OnStep != nil {
			opts.OnStep(Step{MoveCount: g.MoveCount(), Action: a, Reward: reward, Score: g.Score()})
		}

		if opts.Delay > 0 {
			select {
			case <-ctx.Done():
				return summarize(g, actions), ctx.Err()
			case <-time.After(opts.Delay):
			}
		}
	}

	return summarize(g, actions), nil
}

func summarize(g *game.Game, actions []game.Action) Result {
	seed, _ := g.Seed()
	return Result{
		Seed:     seed,
		Score:    g.Score(),
		Moves:    len(actions),
		MaxTile:  g.State().MaxTile(),
		GameOver: g.GameOver(),
		Actions:  actions,
	}
}

// RunConfig configures RunMany.
type RunConfig struct {
	Solver      string
	Iterations  int
	Seed        int64
	Board       *game.Board // nil = two random tiles; otherwise every game starts here
	KeepHistory bool
	Play        PlayOptions
	Journal     Journal // nil = don't record
}

// RunMany plays cfg.Iterations games on a single Game, resetting it between
// games. Game i is seeded with cfg.Seed+i so each one can be replayed alone.
// With cfg.Board set every game starts from that board instead.
func RunMany(ctx context.Context, cfg RunConfig) ([]Result, error) {
	solverID := cfg.Solver
	if solverID == "" {
		solverID = DefaultID
	}
	s, err := registry.Create(solverID, registry.Options{Seed: cfg.Seed ^ solverSeedSalt})
	if err != nil {
		return nil, err
	}

	logger := cfg.Play.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	g, err := newRunGame(cfg, cfg.Seed)
	if err != nil {
		return nil, err
	}

	n := max(cfg.Iterations, 1)
	results := make([]Result, 0, n)
	for i := range n {
		switch {
		case i > 0 && cfg.Board != nil:
			// Reset would drop the explicit board, so start over from it.
			if g, err = newRunGame(cfg, cfg.Seed+int64(i)); err != nil {
				return results, err
			}
		case i > 0:
			g.Reseed(cfg.Seed + int64(i))
			g.Reset()
		}

		res, err := Play(ctx, g, s, cfg.Play)
		if err != nil {
			return results, err
		}
		logger.Info("Score", "game", i+1, "score", res.Score, "moves", res.Moves, "max_tile", res.MaxTile)

		if cfg.Journal != nil {
			id, err := cfg.Journal.SaveRun(storage.Run{
				Solver:       s.ID(),
				Seed:         res.Seed,
				InitialBoard: cfg.Board,
				Actions:      res.Actions,
				Score:        res.Score,
				Moves:        res.Moves,
				MaxTile:      res.MaxTile,
			})
			if err != nil {
				logger.Warn("could not record run", "error", err)
			} else {
				res.RunID = id
			}
		}

		results = append(results, res)
	}

	return results, nil
}

// newRunGame creates the game for one RunMany iteration.
func newRunGame(cfg RunConfig, seed int64) (*game.Game, error) {
	opts := []game.Option{game.WithSeed(seed), game.WithHistory(cfg.KeepHistory)}
	if cfg.Board != nil {
		opts = append(opts, game.WithBoard(*cfg.Board))
	}
	return game.New(opts...)
}

// ReplayGame rebuilds the starting position of a recorded run.
func ReplayGame(run storage.Run) (*game.Game, error) {
	opts := []game.Option{game.WithSeed(run.Seed)}
	if run.InitialBoard != nil {
		opts = append(opts, game.WithBoard(*run.InitialBoard))
	}
	return game.New(opts...)
}

// Replay re-applies a recorded run's actions and checks that the final
// score and move count match the recording.
func Replay(ctx context.Context, run storage.Run) (Result, error) {
	g, err := ReplayGame(run)
	if err != nil {
		return Result{}, err
	}

	res, err := Play(ctx, g, NewScripted(run.Actions), PlayOptions{})
	res.RunID = run.RunID
	if err != nil {
		return res, err
	}

	if res.Score != run.Score || res.Moves != run.Moves {
		return res, fmt.Errorf("%w: run %s: got score %d in %d moves, recorded %d in %d",
			ErrReplayMismatch, run.RunID, res.Score, res.Moves, run.Score, run.Moves)
	}
	return res, nil
}
