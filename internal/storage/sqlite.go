// Package storage provides SQLite-based persistence for run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished run of one track.
type RunRecord struct {
	ID         int64
	Track      string  // track title or file name
	Tier       string  // difficulty tier the run was played on
	Outcome    string  // how the run ended
	Completion float64 // percent of the track survived, 0..100
	Jumps      int
	CreatedAt  time.Time
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
			track TEXT NOT NULL,
			tier TEXT NOT NULL,
			outcome TEXT NOT NULL,
			completion REAL NOT NULL DEFAULT 0,
			jumps INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_track ON runs(track);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(track, tier, completion DESC);
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

// SaveRun records a finished run. Returns the ID of the inserted record.
func (s *Store) SaveRun(run RunRecord) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (track, tier, outcome, completion, jumps) VALUES (?, ?, ?, ?, ?)",
		run.Track, run.Tier, run.Outcome, run.Completion, run.Jumps,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the most recent runs across all tracks.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT id, track, tier, outcome, completion, jumps, created_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

// TrackRuns retrieves runs for one track, best completion first.
func (s *Store) TrackRuns(track string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT id, track, tier, outcome, completion, jumps, created_at
		 FROM runs
		 WHERE track = ?
		 ORDER BY completion DESC
		 LIMIT ?`,
		track, limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]RunRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Track, &r.Tier, &r.Outcome, &r.Completion, &r.Jumps, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseDateTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestCompletion returns the highest completion percentage recorded for
// the given track and tier. Returns 0 if no runs exist.
func (s *Store) BestCompletion(track, tier string) (float64, error) {
	var best sql.NullFloat64
	err := s.db.QueryRow(
		"SELECT MAX(completion) FROM runs WHERE track = ? AND tier = ?",
		track, tier,
	).Scan(&best)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best completion: %w", err)
	}

	if !best.Valid {
		return 0, nil
	}

	return best.Float64, nil
}

// ClearRuns deletes all runs for the given track.
func (s *Store) ClearRuns(track string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE track = ?", track)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// TrackStats contains aggregated statistics for one track.
type TrackStats struct {
	Track          string
	Plays          int
	Completions    int // runs that played the track to the end
	BestCompletion float64
	AvgCompletion  float64
	TotalJumps     int64
	LastPlayed     time.Time
}

// GetTrackStats retrieves aggregated statistics for a specific track.
func (s *Store) GetTrackStats(track string) (*TrackStats, error) {
	stats := &TrackStats{Track: track}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'completed' THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(completion), 0),
		        COALESCE(AVG(completion), 0),
		        COALESCE(SUM(jumps), 0)
		 FROM runs WHERE track = ?`,
		track,
	).Scan(&stats.Plays, &stats.Completions, &stats.BestCompletion, &stats.AvgCompletion, &stats.TotalJumps)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get track stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE track = ? ORDER BY id DESC LIMIT 1`,
		track,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseDateTime(lastPlayed)
	}

	return stats, nil
}

// GetAllTrackStats retrieves statistics for every track with at least one run.
func (s *Store) GetAllTrackStats() (map[string]*TrackStats, error) {
	rows, err := s.db.Query(
		`SELECT track,
		        COUNT(*),
		        SUM(CASE WHEN outcome = 'completed' THEN 1 ELSE 0 END),
		        MAX(completion),
		        AVG(completion),
		        SUM(jumps),
		        MAX(created_at)
		 FROM runs
		 GROUP BY track`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all track stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*TrackStats)
	for rows.Next() {
		var ts TrackStats
		var lastPlayed any
		if err := rows.Scan(&ts.Track, &ts.Plays, &ts.Completions, &ts.BestCompletion, &ts.AvgCompletion, &ts.TotalJumps, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ts.LastPlayed = parseDateTime(lastPlayed)
		stats[ts.Track] = &ts
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseDateTime handles the driver returning either time.Time or a string.
func parseDateTime(v any) time.Time {
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
