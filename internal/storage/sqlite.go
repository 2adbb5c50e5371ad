// Package storage provides a SQLite journal of board resolutions.
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
)

// Store manages the SQLite database connection for the resolution journal.
type Store struct {
	db *sql.DB
}

// Record is one journaled click resolution.
type Record struct {
	ID            int64
	SessionID     string
	Variant       string
	OriginX       int
	OriginY       int
	Color         string
	GroupSize     int // Cells cleared; 0 for a recovery refill
	Spawned       int
	SettlePasses  int
	PoolExhausted bool
	CreatedAt     time.Time
}

// VariantStats contains aggregated statistics for a variant.
type VariantStats struct {
	Variant      string
	Resolutions  int
	Sessions     int
	LargestGroup int
	AvgGroup     float64
	TotalCleared int64
	TotalSpawned int64
	Exhaustions  int
	LastPlayed   time.Time
}

// NewSessionID returns a fresh identifier for a play session.
func NewSessionID() string {
	return uuid.NewString()
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
		CREATE TABLE IF NOT EXISTS resolutions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			variant TEXT NOT NULL,
			origin_x INTEGER NOT NULL,
			origin_y INTEGER NOT NULL,
			color TEXT NOT NULL,
			group_size INTEGER NOT NULL,
			spawned INTEGER NOT NULL DEFAULT 0,
			settle_passes INTEGER NOT NULL DEFAULT 0,
			pool_exhausted INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_resolutions_variant ON resolutions(variant);
		CREATE INDEX IF NOT EXISTS idx_resolutions_session ON resolutions(session_id);
		CREATE INDEX IF NOT EXISTS idx_resolutions_group ON resolutions(variant, group_size DESC);
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

// SaveResolution appends a record to the journal.
// Returns the ID of the inserted record.
func (s *Store) SaveResolution(r Record) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO resolutions
		 (session_id, variant, origin_x, origin_y, color, group_size, spawned, settle_passes, pool_exhausted)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.Variant, r.OriginX, r.OriginY, r.Color,
		r.GroupSize, r.Spawned, r.SettlePasses, r.PoolExhausted,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save resolution: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const recordColumns = `id, session_id, variant, origin_x, origin_y, color,
	group_size, spawned, settle_passes, pool_exhausted, created_at`

// SessionRecords returns every record of a session in journal order.
func (s *Store) SessionRecords(sessionID string) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT `+recordColumns+`
		 FROM resolutions
		 WHERE session_id = ?
		 ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return scanRecords(rows)
}

// LargestGroups returns the biggest clears of a variant, largest first.
func (s *Store) LargestGroups(variant string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+recordColumns+`
		 FROM resolutions
		 WHERE variant = ? AND group_size > 0
		 ORDER BY group_size DESC, id
		 LIMIT ?`,
		variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query largest groups: %w", err)
	}
	return scanRecords(rows)
}

// scanRecords reads and closes rows.
func scanRecords(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.SessionID, &r.Variant, &r.OriginX, &r.OriginY, &r.Color,
			&r.GroupSize, &r.Spawned, &r.SettlePasses, &r.PoolExhausted, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// parseTime handles the driver returning either time.Time or text.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

const statsColumns = `COUNT(*), COUNT(DISTINCT session_id),
	COALESCE(MAX(group_size), 0),
	COALESCE(AVG(CASE WHEN group_size > 0 THEN group_size END), 0),
	COALESCE(SUM(group_size), 0), COALESCE(SUM(spawned), 0),
	COALESCE(SUM(pool_exhausted), 0), MAX(created_at)`

// VariantStats retrieves aggregated statistics for a variant.
// A variant without records yields zero stats.
func (s *Store) VariantStats(variant string) (*VariantStats, error) {
	stats := &VariantStats{Variant: variant}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT `+statsColumns+` FROM resolutions WHERE variant = ?`,
		variant,
	).Scan(
		&stats.Resolutions, &stats.Sessions, &stats.LargestGroup, &stats.AvgGroup,
		&stats.TotalCleared, &stats.TotalSpawned, &stats.Exhaustions, &lastPlayed,
	)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get variant stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllVariantStats retrieves statistics for every variant with records.
func (s *Store) AllVariantStats() (map[string]*VariantStats, error) {
	rows, err := s.db.Query(
		`SELECT variant, ` + statsColumns + `
		 FROM resolutions
		 GROUP BY variant`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all variant stats: %w", err)
	}
	defer rows.Close()

	all := make(map[string]*VariantStats)
	for rows.Next() {
		var vs VariantStats
		var lastPlayed any
		if err := rows.Scan(
			&vs.Variant, &vs.Resolutions, &vs.Sessions, &vs.LargestGroup, &vs.AvgGroup,
			&vs.TotalCleared, &vs.TotalSpawned, &vs.Exhaustions, &lastPlayed,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		vs.LastPlayed = parseTime(lastPlayed)
		all[vs.Variant] = &vs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return all, nil
}

// ClearVariant deletes all records for the given variant.
func (s *Store) ClearVariant(variant string) error {
	_, err := s.db.Exec("DELETE FROM resolutions WHERE variant = ?", variant)
	if err != nil {
		return fmt.Errorf("storage: cannot clear journal: %w", err)
	}
	return nil
}
