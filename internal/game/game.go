package game

import (
	"fmt"

	"github.com/vovakirdan/go2048/internal/rng"
)

// Spawn draw: rank 1 (value 2) with probability 0.9, rank 2 (value 4) with 0.1.
var (
	spawnRanks   = [...]int{1, 2}
	spawnWeights = []float64{0.9, 0.1}
)

// Game is the 2048 state machine. It performs no I/O and is not safe for
// concurrent use; parallel playouts should each own a Game.
type Game struct {
	board     Board
	score     int
	moveCount int

	seed        int64
	seeded      bool
	src         rng.Source
	keepHistory bool
	history     map[int]Snapshot

	lastSpawn    Cell
	hasLastSpawn bool
}

// Option configures New.
type Option func(*options)

type options struct {
	board       *Board
	score       int
	seed        *int64
	source      rng.Source
	keepHistory bool
}

// WithBoard starts from b as-is; no initial tiles are spawned.
func WithBoard(b Board) Option {
	return func(o *options) { o.board = &b }
}

// WithScore sets the initial score.
func WithScore(score int) Option {
	return func(o *options) { o.score = score }
}

// WithSeed seeds the game's random source so spawns are reproducible.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = &seed }
}

// WithSource injects the random source used for spawning. It takes
// precedence over WithSeed, whose value is still reported by Seed.
func WithSource(src rng.Source) Option {
	return func(o *options) { o.source = src }
}

// WithHistory enables or disables undo/redo history (enabled by default).
func WithHistory(keep bool) Option {
	return func(o *options) { o.keepHistory = keep }
}

// New creates a game. Without WithBoard the board starts empty and two
// random tiles are spawned.
func New(opts ...Option) (*Game, error) {
	o := options{keepHistory: true}
	for _, opt := range opts {
		opt(&o)
	}

	if o.score < 0 {
		return nil, fmt.Errorf("game: negative initial score %d", o.score)
	}
	if o.board != nil {
		if err := o.board.Validate(); err != nil {
			return nil, err
		}
	}

	g := &Game{
		score:       o.score,
		keepHistory: o.keepHistory,
		history:     make(map[int]Snapshot),
	}

	// Seed before any spawn so fresh games under one seed start identically.
	switch {
	case o.source != nil:
		g.src = o.source
	case o.seed != nil:
		g.src = rng.New(*o.seed)
	default:
		g.src = rng.NewRandom()
	}
	if o.seed != nil {
		g.seed = *o.seed
		g.seeded = true
	}

	if o.board != nil {
		g.board = *o.board
	} else {
		g.AddRandomTile()
		g.AddRandomTile()
	}

	g.record()
	return g, nil
}

// MustNew is like New but panics on error. Intended for tests and fixed boards.
func MustNew(opts ...Option) *Game {
	g, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// State returns a copy of the current board.
func (g *Game) State() Board {
	return g.board
}

// Score returns the accumulated score.
func (g *Game) Score() int {
	return g.score
}

// MoveCount returns the number of executed actions.
func (g *Game) MoveCount() int {
	return g.moveCount
}

// Seed returns the seed the game was created (or reseeded) with, if any.
func (g *Game) Seed() (int64, bool) {
	return g.seed, g.seeded
}

// KeepHistory reports whether undo/redo history is tracked.
func (g *Game) KeepHistory() bool {
	return g.keepHistory
}

// LastSpawn returns the cell filled by the most recent spawn. It reports
// false when the last DoAction spawned nothing (full board) and after an
// undo or redo.
func (g *Game) LastSpawn() (Cell, bool) {
	return g.lastSpawn, g.hasLastSpawn
}

// IsActionAvailable reports whether executing a would change the board.
func (g *Game) IsActionAvailable(a Action) (bool, error) {
	return CanMove(g.board, a)
}

// AvailableActions returns the actions that would change the board, in
// canonical order.
func (g *Game) AvailableActions() []Action {
	var out []Action
	for _, a := range Actions {
		rotated := Rotate(g.board, int(a))
		if canSlideLeft(&rotated) {
			out = append(out, a)
		}
	}
	return out
}

// GameOver reports whether no action is available.
func (g *Game) GameOver() bool {
	for _, a := range Actions {
		rotated := Rotate(g.board, int(a))
		if canSlideLeft(&rotated) {
			return false
		}
	}
	return true
}

// DoAction executes a, adds the reward to the score, advances the move
// counter, spawns a tile and records history. An unavailable action leaves
// the tiles in place and earns nothing, but still spawns and records.
func (g *Game) DoAction(a Action) (int, error) {
	board, reward, err := Move(g.board, a)
	if err != nil {
		return 0, err
	}

	g.board = board
	g.score += reward
	g.moveCount++

	g.hasLastSpawn = false
	g.AddRandomTile()
	g.record()

	return reward, nil
}

// AddRandomTile fills a uniformly chosen empty cell with rank 1 or 2.
// It does nothing on a full board.
func (g *Game) AddRandomTile() {
	empty := g.board.EmptyCells()
	if len(empty) == 0 {
		return
	}

	cell := empty[g.src.Intn(len(empty))]
	g.board[cell.Row][cell.Col] = spawnRanks[g.src.Choice(spawnWeights)]

	g.lastSpawn = cell
	g.hasLastSpawn = true
}

// Reseed replaces the random source with a fresh one for seed.
func (g *Game) Reseed(seed int64) {
	g.src = rng.New(seed)
	g.seed = seed
	g.seeded = true
}

// Reset starts a fresh game: empty board plus two tiles, zero score and
// moves, and a history holding only the new initial state.
func (g *Game) Reset() {
	g.board = Board{}
	g.hasLastSpawn = false
	g.AddRandomTile()
	g.AddRandomTile()
	g.moveCount = 0
	g.score = 0
	g.history = make(map[int]Snapshot)
	g.record()
}

// Copy returns an independent game with the same board and score. The copy
// gets a fresh source from the seed (or the override); it does not continue
// this game's random stream. Without any seed the copy draws a random one.
func (g *Game) Copy(seed ...int64) (*Game, error) {
	opts := []Option{
		WithBoard(g.board),
		WithScore(g.score),
		WithHistory(g.keepHistory),
	}
	switch {
	case len(seed) > 0:
		opts = append(opts, WithSeed(seed[0]))
	case g.seeded:
		opts = append(opts, WithSeed(g.seed))
	}

	c, err := New(opts...)
	if err != nil {
		return nil, fmt.Errorf("game: copy: %w", err)
	}
	return c, nil
}
