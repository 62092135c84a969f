// internal/store/store.go
// Package store keeps aggregated summary snapshots in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mwiater/salarydash/internal/salary"
)

// ErrSnapshotNotFound is returned when a snapshot id is unknown.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot describes one saved aggregation run.
type Snapshot struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Checksum  string    `json:"checksum"`
	RowCount  int       `json:"rowCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store wraps the snapshot database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id TEXT PRIMARY KEY,
	source TEXT,
	checksum TEXT,
	row_count INTEGER,
	created_at DATETIME
);
CREATE TABLE IF NOT EXISTS snapshot_rows (
	snapshot_id TEXT NOT NULL REFERENCES snapshots(id),
	position INTEGER NOT NULL,
	country TEXT,
	experience TEXT,
	measure TEXT,
	mean_salary_per_hour REAL,
	measure_mean REAL,
	PRIMARY KEY (snapshot_id, position)
);
`

// Open opens (or creates) the database at path and ensures the tables exist.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create snapshot tables: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSnapshot stores rows in their current order under a new snapshot id.
func (s *Store) SaveSnapshot(ctx context.Context, source, checksum string, rows []salary.SummaryRow) (Snapshot, error) {
	snap := Snapshot{
		ID:        uuid.NewString(),
		Source:    source,
		Checksum:  checksum,
		RowCount:  len(rows),
		CreatedAt: time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Snapshot{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, source, checksum, row_count, created_at) VALUES (?, ?, ?, ?, ?)`,
		snap.ID, snap.Source, snap.Checksum, snap.RowCount, snap.CreatedAt); err != nil {
		return Snapshot{}, fmt.Errorf("insert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO snapshot_rows (snapshot_id, position, country, experience, measure, mean_salary_per_hour, measure_mean)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Snapshot{}, err
	}
	defer stmt.Close()
	for i, r := range rows {
		if _, err := stmt.ExecContext(ctx, snap.ID, i, r.Country, r.Experience, r.Measure, r.MeanSalaryPerHour, r.MeasureMean); err != nil {
			return Snapshot{}, fmt.Errorf("insert snapshot row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// ListSnapshots returns every snapshot, newest first.
func (s *Store) ListSnapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, checksum, row_count, created_at FROM snapshots ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.Source, &snap.Checksum, &snap.RowCount, &snap.CreatedAt); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

// SnapshotRows returns the rows of one snapshot in the order they were saved.
func (s *Store) SnapshotRows(ctx context.Context, id string) ([]salary.SummaryRow, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM snapshots WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT country, experience, measure, mean_salary_per_hour, measure_mean
		 FROM snapshot_rows WHERE snapshot_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []salary.SummaryRow{}
	for rows.Next() {
		var r salary.SummaryRow
		if err := rows.Scan(&r.Country, &r.Experience, &r.Measure, &r.MeanSalaryPerHour, &r.MeasureMean); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
