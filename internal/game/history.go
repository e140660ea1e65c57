package game

import "maps"

// Snapshot is a recorded state. Board is an array, so a Snapshot never
// aliases the live board.
type Snapshot struct {
	Board     Board
	MoveCount int
	Score     int
}

// record stores the current state under the current move count.
func (g *Game) record() {
	if !g.keepHistory {
		return
	}
	g.history[g.moveCount] = Snapshot{
		Board:     g.board,
		MoveCount: g.moveCount,
		Score:     g.score,
	}
}

// History returns a copy of the recorded snapshots keyed by move count.
func (g *Game) History() map[int]Snapshot {
	return maps.Clone(g.history)
}

// Undo restores the snapshot step moves back. It does nothing if history
// is disabled, step < 1, or no snapshot exists at that move count.
func (g *Game) Undo(step int) bool {
	return g.restore(g.moveCount-step, step)
}

// Redo restores the snapshot step moves ahead, under the same rules as Undo.
// After an undo followed by a new move, entries beyond the new move count
// are whatever was recorded last under those keys.
func (g *Game) Redo(step int) bool {
	return g.restore(g.moveCount+step, step)
}

func (g *Game) restore(target, step int) bool {
	if !g.keepHistory || step < 1 {
		return false
	}
	snap, ok := g.history[target]
	if !ok {
		return false
	}
	g.board = snap.Board
	g.score = snap.Score
	g.moveCount = snap.MoveCount
	g.hasLastSpawn = false
	return true
}
