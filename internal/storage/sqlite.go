// Package storage provides SQLite-based persistence for recorded runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const timeLayout = "2006-01-02 15:04:05"

// ErrAmbiguousID is returned when a run ID prefix matches more than one run.
var ErrAmbiguousID = errors.New("storage: run id prefix is ambiguous")

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db *sql.DB
}

// Run is one recorded play session: everything needed to replay it, plus a
// summary of how it went.
type Run struct {
	ID          string
	TrackID     string
	TrackHash   uint64
	Seed        int64
	TickRate    int
	Config      []byte // Settings YAML
	Inputs      []byte // Encoded input log
	Ticks       uint64
	BestLevel   int
	Completions int
	Crashes     int
	Wins        int
	CreatedAt   time.Time
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

	// Create parent directories
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
			id TEXT PRIMARY KEY,
			track_id TEXT NOT NULL,
			track_hash TEXT NOT NULL,
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			config BLOB NOT NULL,
			inputs BLOB NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			best_level INTEGER NOT NULL DEFAULT 1,
			completions INTEGER NOT NULL DEFAULT 0,
			crashes INTEGER NOT NULL DEFAULT 0,
			wins INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_track_id ON runs(track_id);
		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);
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

// SaveRun records a run. A missing ID or creation time is filled in.
// Returns the run ID.
func (s *Store) SaveRun(r *Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	if r.Config == nil {
		r.Config = []byte{}
	}
	if r.Inputs == nil {
		r.Inputs = []byte{}
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, track_id, track_hash, seed, tick_rate, config, inputs, ticks, best_level, completions, crashes, wins, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.TrackID,
		strconv.FormatUint(r.TrackHash, 16),
		r.Seed,
		r.TickRate,
		r.Config,
		r.Inputs,
		int64(r.Ticks), //#nosec G115 -- tick counts never reach 2^63
		r.BestLevel,
		r.Completions,
		r.Crashes,
		r.Wins,
		r.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.ID, nil
}

const runColumns = `id, track_id, track_hash, seed, tick_rate, config, inputs,
	ticks, best_level, completions, crashes, wins, created_at`

// LoadRun retrieves a run by its ID or by a unique prefix of it.
// Returns nil, nil if no run matches.
func (s *Store) LoadRun(idPrefix string) (*Run, error) {
	if idPrefix == "" {
		return nil, nil
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE substr(id, 1, ?) = ?
		 LIMIT 2`,
		len(idPrefix), idPrefix,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	defer rows.Close()

	var found []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrAmbiguousID, idPrefix)
	}
}

// RecentRuns retrieves the most recent runs, newest first. An empty trackID
// lists runs on every track.
func (s *Store) RecentRuns(trackID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR track_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		trackID, trackID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// DeleteRun removes a run. Deleting a missing run is not an error.
func (s *Store) DeleteRun(id string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	return nil
}

func scanRun(rows *sql.Rows) (*Run, error) {
	var (
		r         Run
		trackHash string
		ticks     int64
		createdAt any
	)
	if err := rows.Scan(
		&r.ID,
		&r.TrackID,
		&trackHash,
		&r.Seed,
		&r.TickRate,
		&r.Config,
		&r.Inputs,
		&ticks,
		&r.BestLevel,
		&r.Completions,
		&r.Crashes,
		&r.Wins,
		&createdAt,
	); err != nil {
		return nil, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	hash, err := strconv.ParseUint(trackHash, 16, 64)
	if err != nil {
		return nil, fmt.Errorf("storage: bad track hash %q: %w", trackHash, err)
	}
	r.TrackHash = hash
	r.Ticks = uint64(ticks) //#nosec G115 -- stored from a uint64
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
