// Package storage provides an SQLite-backed replay journal for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/go2048/internal/game"
)

// ErrAmbiguousRun is returned when a run ID prefix matches several runs.
var ErrAmbiguousRun = errors.New("storage: ambiguous run id")

// ErrEmptyRunID is returned by GetRun for an empty id.
var ErrEmptyRunID = errors.New("storage: empty run id")

// Store manages the SQLite database connection for the journal.
type Store struct {
	db *sql.DB
}

// Run is one recorded play-through: everything needed to rebuild it
// deterministically, plus the final counters to verify the rebuild against.
type Run struct {
	ID     int64
	RunID  string // UUID, assigned by SaveRun when empty
	Solver string
	Seed   int64

	// InitialBoard is set when the game started from an explicit board
	// instead of two spawned tiles.
	InitialBoard *game.Board
	Actions      []game.Action

	Score     int
	Moves     int
	MaxTile   int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			solver TEXT NOT NULL,
			seed INTEGER NOT NULL,
			initial_board TEXT,
			actions TEXT NOT NULL,
			score INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			max_tile INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_solver ON runs(solver);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a run and returns its run ID.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}

	var board sql.NullString
	if run.InitialBoard != nil {
		board = sql.NullString{String: run.InitialBoard.Encode(), Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, solver, seed, initial_board, actions, score, moves, max_tile)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.Solver,
		run.Seed,
		board,
		encodeActions(run.Actions),
		run.Score,
		run.Moves,
		run.MaxTile,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return run.RunID, nil
}

const runColumns = `id, run_id, solver, seed, initial_board, actions, score, moves, max_tile, created_at`

// GetRun retrieves a run by its full run ID or a unique prefix of it.
// Returns nil, nil if nothing matches.
func (s *Store) GetRun(idPrefix string) (*Run, error) {
	if idPrefix == "" {
		return nil, ErrEmptyRunID
	}

	// Prefixes match literally; '%' and '_' are ordinary characters.
	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE substr(run_id, 1, length(?)) = ?
		 ORDER BY run_id = ? DESC
		 LIMIT 2`,
		idPrefix, idPrefix, idPrefix,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	defer rows.Close()

	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}

	switch {
	case len(runs) == 0:
		return nil, nil
	case runs[0].RunID == idPrefix:
		return &runs[0], nil
	case len(runs) > 1:
		return nil, fmt.Errorf("%w: %q", ErrAmbiguousRun, idPrefix)
	}
	return &runs[0], nil
}

// ListRuns retrieves the most recent runs, optionally filtered by solver.
func (s *Store) ListRuns(solver string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR solver = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		solver, solver, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// DeleteRun removes a run by its full run ID.
func (s *Store) DeleteRun(runID string) error {
	res, err := s.db.Exec("DELETE FROM runs WHERE run_id = ?", runID)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("storage: run %q not found", runID)
	}
	return nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var (
			run       Run
			board     sql.NullString
			actions   string
			createdAt any
		)
		if err := rows.Scan(
			&run.ID,
			&run.RunID,
			&run.Solver,
			&run.Seed,
			&board,
			&actions,
			&run.Score,
			&run.Moves,
			&run.MaxTile,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		if board.Valid {
			b, err := game.ParseBoard(board.String)
			if err != nil {
				return nil, fmt.Errorf("storage: run %s: %w", run.RunID, err)
			}
			run.InitialBoard = &b
		}

		acts, err := decodeActions(actions)
		if err != nil {
			return nil, fmt.Errorf("storage: run %s: %w", run.RunID, err)
		}
		run.Actions = acts
		run.CreatedAt = parseTime(createdAt)

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
