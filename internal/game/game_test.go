package game

import (
	"errors"
	"strings"
	"testing"
)

// scriptedSource replays fixed draws so spawn positions and ranks are exact.
type scriptedSource struct {
	ints    []int
	choices []int
}

func (s *scriptedSource) Intn(n int) int {
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedSource) Choice(_ []float64) int {
	v := s.choices[0]
	s.choices = s.choices[1:]
	return v
}

func TestNewSpawnsTwoTiles(t *testing.T) {
	g := MustNew(WithSeed(1))

	if g.State().TileCount() != 2 {
		t.Errorf("TileCount = %d, want 2", g.State().TileCount())
	}
	if g.Score() != 0 || g.MoveCount() != 0 {
		t.Errorf("Score, MoveCount = %d, %d, want 0, 0", g.Score(), g.MoveCount())
	}

	hist := g.History()
	if len(hist) != 1 {
		t.Fatalf("History length = %d, want 1", len(hist))
	}
	if hist[0].Board != g.State() {
		t.Error("initial snapshot should match the board")
	}
}

func TestNewWithBoardDoesNotSpawn(t *testing.T) {
	b := Board{{1, 0, 0, 0}}
	g := MustNew(WithBoard(b), WithScore(12))

	if g.State() != b {
		t.Errorf("State =\n%v\nwant\n%v", g.State(), b)
	}
	if g.Score() != 12 {
		t.Errorf("Score = %d, want 12", g.Score())
	}
}

func TestNewRejectsInvalidInput(t *testing.T) {
	if _, err := New(WithBoard(Board{{-1}})); !errors.Is(err, ErrInvalidBoard) {
		t.Errorf("negative rank: error = %v, want ErrInvalidBoard", err)
	}
	if _, err := New(WithScore(-5)); err == nil {
		t.Error("negative score should be rejected")
	}
}

func TestSeededSpawnIsReproducible(t *testing.T) {
	for range 5 {
		a := MustNew(WithSeed(42))
		b := MustNew(WithSeed(42))
		if a.State() != b.State() {
			t.Fatalf("same seed produced different boards:\n%v\nvs\n%v", a.State(), b.State())
		}

		a.AddRandomTile()
		b.AddRandomTile()
		if a.State() != b.State() {
			t.Fatalf("same seed produced different third spawn")
		}
	}
}

func TestSeedReported(t *testing.T) {
	g := MustNew(WithSeed(99))
	if seed, ok := g.Seed(); !ok || seed != 99 {
		t.Errorf("Seed() = %d, %v, want 99, true", seed, ok)
	}

	if _, ok := MustNew().Seed(); ok {
		t.Error("unseeded game should report no seed")
	}
}

func TestAddRandomTile(t *testing.T) {
	src := &scriptedSource{ints: []int{3}, choices: []int{1}}
	g := MustNew(WithBoard(Board{}), WithSource(src))

	g.AddRandomTile()

	want := Board{{0, 0, 0, 2}}
	if g.State() != want {
		t.Errorf("State =\n%v\nwant\n%v", g.State(), want)
	}
	cell, ok := g.LastSpawn()
	if !ok || cell != (Cell{Row: 0, Col: 3}) {
		t.Errorf("LastSpawn() = %v, %v, want {0 3}, true", cell, ok)
	}
}

func TestAddRandomTileFullBoard(t *testing.T) {
	full := Board{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}
	// An empty script panics if a draw is attempted.
	g := MustNew(WithBoard(full), WithSource(&scriptedSource{}))

	g.AddRandomTile()

	if g.State() != full {
		t.Error("AddRandomTile on a full board should be a no-op")
	}
}

func TestLastSpawnTracksMoves(t *testing.T) {
	src := &scriptedSource{ints: []int{0}, choices: []int{0}}
	g := MustNew(WithBoard(Board{{0, 0, 0, 0}, {}, {}, {1, 0, 0, 0}}), WithSource(src))

	if _, err := g.DoAction(Up); err != nil {
		t.Fatal(err)
	}
	if cell, ok := g.LastSpawn(); !ok || cell != (Cell{Row: 0, Col: 1}) {
		t.Errorf("LastSpawn() after move = %v, %v, want {0 1}, true", cell, ok)
	}

	g.Undo(1)
	if _, ok := g.LastSpawn(); ok {
		t.Error("LastSpawn() after undo should report false")
	}
}

func TestLastSpawnClearedWhenNothingSpawns(t *testing.T) {
	board := Board{
		{0, 2, 1, 2},
		{1, 2, 1, 2},
		{2, 1, 2, 1},
		{1, 2, 1, 2},
	}
	src := &scriptedSource{ints: []int{0}, choices: []int{0}}
	g := MustNew(WithBoard(board), WithSource(src))

	// Fills the last empty cell at (0,3).
	if _, err := g.DoAction(Left); err != nil {
		t.Fatal(err)
	}
	if cell, ok := g.LastSpawn(); !ok || cell != (Cell{Row: 0, Col: 3}) {
		t.Fatalf("LastSpawn() = %v, %v, want {0 3}, true", cell, ok)
	}

	// Left is now a wasted move on a full board: no spawn.
	if _, err := g.DoAction(Left); err != nil {
		t.Fatal(err)
	}
	if _, ok := g.LastSpawn(); ok {
		t.Error("LastSpawn() after a move that spawned nothing should report false")
	}
}

func TestDoAction(t *testing.T) {
	src := &scriptedSource{ints: []int{0}, choices: []int{0}}
	g := MustNew(WithBoard(Board{{1, 1, 0, 0}}), WithSource(src))

	reward, err := g.DoAction(Left)
	if err != nil {
		t.Fatalf("DoAction() error: %v", err)
	}

	if reward != 4 {
		t.Errorf("reward = %d, want 4", reward)
	}
	if g.Score() != 4 {
		t.Errorf("Score = %d, want 4", g.Score())
	}
	if g.MoveCount() != 1 {
		t.Errorf("MoveCount = %d, want 1", g.MoveCount())
	}
	// Merged tile at (0,0), spawn lands on the first empty cell (0,1).
	want := Board{{2, 1, 0, 0}}
	if g.State() != want {
		t.Errorf("State =\n%v\nwant\n%v", g.State(), want)
	}
	if snap, ok := g.History()[1]; !ok || snap.Board != want || snap.Score != 4 {
		t.Errorf("History[1] = %+v, %v, want recorded post-move state", snap, ok)
	}
}

func TestDoActionUnavailableStillAdvances(t *testing.T) {
	start := Board{{0, 0, 0, 1}}
	g := MustNew(WithBoard(start), WithSeed(3))

	if ok, _ := g.IsActionAvailable(Right); ok {
		t.Fatal("Right should not be available")
	}
	if ok, _ := g.IsActionAvailable(Left); !ok {
		t.Fatal("Left should be available")
	}

	reward, err := g.DoAction(Right)
	if err != nil {
		t.Fatalf("DoAction() error: %v", err)
	}

	if reward != 0 {
		t.Errorf("reward = %d, want 0", reward)
	}
	if g.MoveCount() != 1 {
		t.Errorf("MoveCount = %d, want 1", g.MoveCount())
	}
	if g.State()[0][3] != 1 {
		t.Error("existing tile should stay in place")
	}
	if g.State().TileCount() != 2 {
		t.Errorf("TileCount = %d, want 2 (a tile is still spawned)", g.State().TileCount())
	}
	if _, ok := g.History()[1]; !ok {
		t.Error("history should record the wasted move")
	}
}

func TestDoActionInvalid(t *testing.T) {
	g := MustNew(WithSeed(5))
	before := g.State()

	for _, a := range []Action{-1, 4} {
		if _, err := g.DoAction(a); !errors.Is(err, ErrInvalidAction) {
			t.Errorf("DoAction(%d) error = %v, want ErrInvalidAction", a, err)
		}
		if _, err := g.IsActionAvailable(a); !errors.Is(err, ErrInvalidAction) {
			t.Errorf("IsActionAvailable(%d) error = %v, want ErrInvalidAction", a, err)
		}
	}

	if g.State() != before || g.MoveCount() != 0 {
		t.Error("invalid actions must not change the game")
	}
}

func TestAvailableActions(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  []Action
	}{
		{
			name:  "single tile top right",
			board: Board{{0, 0, 0, 1}},
			want:  []Action{Left, Down},
		},
		{
			name:  "empty board",
			board: Board{},
			want:  nil,
		},
		{
			name: "stuck",
			board: Board{
				{1, 2, 1, 2},
				{2, 1, 2, 1},
				{1, 2, 1, 2},
				{2, 1, 2, 1},
			},
			want: nil,
		},
		{
			name: "full with vertical pair",
			board: Board{
				{1, 2, 1, 2},
				{1, 3, 2, 1},
				{2, 1, 3, 2},
				{3, 2, 1, 3},
			},
			want: []Action{Up, Down},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := MustNew(WithBoard(tt.board))
			got := g.AvailableActions()
			if len(got) != len(tt.want) {
				t.Fatalf("AvailableActions() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("AvailableActions() = %v, want %v", got, tt.want)
				}
			}
			if g.GameOver() != (len(tt.want) == 0) {
				t.Errorf("GameOver() = %v, want %v", g.GameOver(), len(tt.want) == 0)
			}
		})
	}
}

func TestSameSeedSameReplay(t *testing.T) {
	a := MustNew(WithSeed(2024))
	b := MustNew(WithSeed(2024))

	for i := 0; i < 200 && !a.GameOver(); i++ {
		act := Actions[i%len(Actions)]
		ra, _ := a.DoAction(act)
		rb, _ := b.DoAction(act)

		if ra != rb || a.State() != b.State() || a.Score() != b.Score() {
			t.Fatalf("step %d: games diverged", i)
		}
	}
}

func TestUndoRedo(t *testing.T) {
	g := MustNew(WithSeed(11))
	before := g.History()[0]

	act := g.AvailableActions()[0]
	if _, err := g.DoAction(act); err != nil {
		t.Fatalf("DoAction() error: %v", err)
	}
	after := Snapshot{Board: g.State(), MoveCount: g.MoveCount(), Score: g.Score()}

	if !g.Undo(1) {
		t.Fatal("Undo(1) should succeed")
	}
	if g.State() != before.Board || g.Score() != before.Score || g.MoveCount() != 0 {
		t.Error("Undo should restore the pre-move state")
	}

	if !g.Redo(1) {
		t.Fatal("Redo(1) should succeed")
	}
	if g.State() != after.Board || g.Score() != after.Score || g.MoveCount() != after.MoveCount {
		t.Error("Redo should restore the post-move state")
	}
}

func TestUndoRedoNoOps(t *testing.T) {
	g := MustNew(WithSeed(12))
	start := g.State()

	if g.Undo(1) {
		t.Error("Undo at move 0 should be a no-op")
	}
	if g.Redo(1) {
		t.Error("Redo without future moves should be a no-op")
	}
	if g.Undo(0) || g.Undo(-1) {
		t.Error("non-positive steps should be no-ops")
	}
	if g.State() != start || g.MoveCount() != 0 {
		t.Error("no-op undo/redo changed the game")
	}

	noHist := MustNew(WithSeed(12), WithHistory(false))
	noHist.DoAction(noHist.AvailableActions()[0])
	if noHist.Undo(1) {
		t.Error("Undo with history disabled should be a no-op")
	}
	if len(noHist.History()) != 0 {
		t.Errorf("History length = %d, want 0 with history disabled", len(noHist.History()))
	}
}

func TestUndoMultipleSteps(t *testing.T) {
	g := MustNew(WithSeed(13))
	start := g.State()

	for range 3 {
		g.DoAction(g.AvailableActions()[0])
	}

	if g.Undo(4) {
		t.Error("Undo past the first snapshot should be a no-op")
	}
	if !g.Undo(3) {
		t.Fatal("Undo(3) should succeed")
	}
	if g.State() != start || g.MoveCount() != 0 {
		t.Error("Undo(3) should restore the initial state")
	}
	if !g.Redo(2) || g.MoveCount() != 2 {
		t.Errorf("Redo(2) should land on move 2, got %d", g.MoveCount())
	}
}

func TestRedoAfterBranchUsesLatestEntries(t *testing.T) {
	g := MustNew(WithSeed(14))

	g.DoAction(g.AvailableActions()[0])
	g.DoAction(g.AvailableActions()[0])
	staleTwo := g.History()[2]

	g.Undo(2)
	g.DoAction(g.AvailableActions()[len(g.AvailableActions())-1])
	newOne := g.History()[1]

	// Move 1 was overwritten; move 2 still holds the old line.
	if g.State() != newOne.Board {
		t.Fatal("new move should overwrite snapshot 1")
	}
	if !g.Redo(1) {
		t.Fatal("Redo(1) should find the stale move-2 entry")
	}
	if g.State() != staleTwo.Board || g.Score() != staleTwo.Score {
		t.Error("Redo should restore whatever is stored under move 2")
	}
}

func TestHistoryIsIndependent(t *testing.T) {
	g := MustNew(WithSeed(15))
	hist := g.History()

	snap := hist[0]
	snap.Board[0][0] = 17
	hist[0] = snap
	delete(hist, 0)

	if _, ok := g.History()[0]; !ok {
		t.Fatal("mutating a returned history must not affect the game")
	}
	if g.History()[0].Board[0][0] == 17 {
		t.Error("snapshot board aliases external copy")
	}
}

func TestReset(t *testing.T) {
	g := MustNew(WithSeed(16))
	for range 10 {
		if g.GameOver() {
			break
		}
		g.DoAction(g.AvailableActions()[0])
	}

	g.Reset()

	if g.MoveCount() != 0 || g.Score() != 0 {
		t.Errorf("MoveCount, Score = %d, %d, want 0, 0", g.MoveCount(), g.Score())
	}
	if g.State().TileCount() != 2 {
		t.Errorf("TileCount = %d, want 2", g.State().TileCount())
	}
	hist := g.History()
	if len(hist) != 1 {
		t.Fatalf("History length = %d, want 1", len(hist))
	}
	if hist[0].Board != g.State() {
		t.Error("history should hold the fresh state at move 0")
	}
}

func TestResetAfterReseedMatchesNew(t *testing.T) {
	g := MustNew(WithSeed(1))
	g.DoAction(g.AvailableActions()[0])

	g.Reseed(77)
	g.Reset()

	fresh := MustNew(WithSeed(77))
	if g.State() != fresh.State() {
		t.Error("Reseed+Reset should start like New with the same seed")
	}
}

func TestCopy(t *testing.T) {
	g := MustNew(WithSeed(21), WithBoard(Board{{1, 1, 0, 0}}), WithScore(8))

	c, err := g.Copy()
	if err != nil {
		t.Fatalf("Copy() error: %v", err)
	}
	if c.State() != g.State() || c.Score() != g.Score() {
		t.Error("copy should share board and score")
	}
	if seed, ok := c.Seed(); !ok || seed != 21 {
		t.Errorf("copy Seed() = %d, %v, want 21, true", seed, ok)
	}

	c.DoAction(Left)
	if g.State() != (Board{{1, 1, 0, 0}}) || g.MoveCount() != 0 {
		t.Error("mutating the copy changed the original")
	}

	o, err := g.Copy(5)
	if err != nil {
		t.Fatalf("Copy(5) error: %v", err)
	}
	if seed, _ := o.Seed(); seed != 5 {
		t.Errorf("Copy(5) Seed() = %d, want 5", seed)
	}
}

func TestBoardFromRows(t *testing.T) {
	good := [][]int{{1, 0, 0, 0}, {0, 2, 0, 0}, {0, 0, 3, 0}, {0, 0, 0, 4}}
	b, err := BoardFromRows(good)
	if err != nil {
		t.Fatalf("BoardFromRows() error: %v", err)
	}
	if b[3][3] != 4 || b.MaxRank() != 4 || b.MaxTile() != 16 {
		t.Errorf("unexpected board %v", b)
	}

	bad := map[string][][]int{
		"three rows":    {{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
		"short row":     {{0, 0, 0, 0}, {0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
		"long row":      {{0, 0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
		"negative rank": {{0, 0, 0, 0}, {0, -1, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
	}
	for name, rows := range bad {
		t.Run(name, func(t *testing.T) {
			if _, err := BoardFromRows(rows); !errors.Is(err, ErrInvalidBoard) {
				t.Errorf("error = %v, want ErrInvalidBoard", err)
			}
		})
	}
}

func TestParseBoard(t *testing.T) {
	b := Board{{1, 0, 0, 0}, {0, 2, 0, 0}, {0, 0, 11, 0}, {0, 0, 0, 17}}
	s := b.Encode()
	if s != "1,0,0,0/0,2,0,0/0,0,11,0/0,0,0,17" {
		t.Errorf("Encode() = %q", s)
	}

	back, err := ParseBoard(s)
	if err != nil || back != b {
		t.Errorf("ParseBoard(Encode()) = %v, %v", back, err)
	}

	spaced, err := ParseBoard(" 1, 0,0,0 /0,2,0,0/0,0,11,0/0,0,0,17")
	if err != nil || spaced != b {
		t.Errorf("ParseBoard with spaces = %v, %v", spaced, err)
	}

	bad := []string{
		"",
		"1,2,3/4,5,6",
		strings.Repeat("a,b,c,d/", 3) + "a,b,c,d",
		"0,0,0,0/0,-1,0,0/0,0,0,0/0,0,0,0",
		"0,0,0,0/0,0,0,0/0,0,0,0/0,0,0,0/0,0,0,0",
	}
	for _, in := range bad {
		if _, err := ParseBoard(in); !errors.Is(err, ErrInvalidBoard) {
			t.Errorf("ParseBoard(%q) error = %v, want ErrInvalidBoard", in, err)
		}
	}
}

func TestBoardString(t *testing.T) {
	s := Board{{1, 0, 0, 11}}.String()
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")

	if len(lines) != 9 {
		t.Fatalf("String() has %d lines, want 9", len(lines))
	}
	if lines[1] != "|    2|     |     | 2048|" {
		t.Errorf("first row = %q", lines[1])
	}
	if len(lines[0]) != len(lines[1]) {
		t.Errorf("separator width %d != row width %d", len(lines[0]), len(lines[1]))
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in   string
		want Action
	}{
		{"left", Left},
		{"UP", Up},
		{"2", Right},
		{" down ", Down},
	}
	for _, tt := range tests {
		got, err := ParseAction(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseAction(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}

	if _, err := ParseAction("sideways"); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("ParseAction(sideways) error = %v, want ErrInvalidAction", err)
	}
}
