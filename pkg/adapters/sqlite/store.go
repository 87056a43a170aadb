// Package sqlite persists sampled curves in a local SQLite database, as an
// export format and as a durable ports.CurveCache.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/solliq/pkg/domain"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// schema is executed on every open.
const schema = `
CREATE TABLE IF NOT EXISTS curves (
    id        TEXT PRIMARY KEY,
    curve_key TEXT NOT NULL,
    warnings  TEXT NOT NULL DEFAULT '[]',
    saved_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS points (
    curve_id    TEXT NOT NULL,
    idx         INTEGER NOT NULL,
    pressure    REAL NOT NULL,
    temperature REAL NOT NULL,
    PRIMARY KEY (curve_id, idx)
);
`

// Summary describes a stored curve without its points.
type Summary struct {
	ID       string
	CurveKey string
	Points   int
}

// Store implements ports.CurveCache on a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and creates the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open database: %w", err)
	}

	// SQLite has a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores curve under id, replacing any previous curve.
func (s *Store) Put(ctx context.Context, id string, curve domain.Curve) error {
	warnings := curve.Warnings
	if warnings == nil {
		warnings = []domain.Warning{}
	}
	ws, err := json.Marshal(warnings)
	if err != nil {
		return fmt.Errorf("sqlite: encode warnings of %q: %w", id, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	const upsert = `
		INSERT INTO curves (id, curve_key, warnings, saved_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET curve_key = excluded.curve_key, warnings = excluded.warnings, saved_at = CURRENT_TIMESTAMP`
	if _, err := tx.ExecContext(ctx, upsert, id, curve.Key, string(ws)); err != nil {
		return fmt.Errorf("sqlite: store curve %q: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM points WHERE curve_id = ?", id); err != nil {
		return fmt.Errorf("sqlite: clear points of %q: %w", id, err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO points (curve_id, idx, pressure, temperature) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("sqlite: prepare points: %w", err)
	}
	defer stmt.Close()
	for i, pt := range curve.Points {
		if _, err := stmt.ExecContext(ctx, id, i, pt.Pressure, pt.Temperature); err != nil {
			return fmt.Errorf("sqlite: store point %d of %q: %w", i, id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit curve %q: %w", id, err)
	}
	return nil
}

// Get loads the curve stored under id, or domain.ErrCacheMiss.
func (s *Store) Get(ctx context.Context, id string) (domain.Curve, error) {
	var curve domain.Curve
	var ws string
	err := s.db.QueryRowContext(ctx, "SELECT curve_key, warnings FROM curves WHERE id = ?", id).Scan(&curve.Key, &ws)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Curve{}, fmt.Errorf("%w: %s", domain.ErrCacheMiss, id)
	}
	if err != nil {
		return domain.Curve{}, fmt.Errorf("sqlite: load curve %q: %w", id, err)
	}
	if err := json.Unmarshal([]byte(ws), &curve.Warnings); err != nil {
		return domain.Curve{}, fmt.Errorf("sqlite: decode warnings of %q: %w", id, err)
	}
	if len(curve.Warnings) == 0 {
		curve.Warnings = nil
	}

	rows, err := s.db.QueryContext(ctx, "SELECT pressure, temperature FROM points WHERE curve_id = ? ORDER BY idx", id)
	if err != nil {
		return domain.Curve{}, fmt.Errorf("sqlite: load points of %q: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		var pt domain.Point
		if err := rows.Scan(&pt.Pressure, &pt.Temperature); err != nil {
			return domain.Curve{}, fmt.Errorf("sqlite: scan point of %q: %w", id, err)
		}
		curve.Points = append(curve.Points, pt)
	}
	if err := rows.Err(); err != nil {
		return domain.Curve{}, fmt.Errorf("sqlite: load points of %q: %w", id, err)
	}
	return curve, nil
}

// Delete removes the curve stored under id. Deleting a missing curve is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM points WHERE curve_id = ?", id); err != nil {
		return fmt.Errorf("sqlite: delete points of %q: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM curves WHERE id = ?", id); err != nil {
		return fmt.Errorf("sqlite: delete curve %q: %w", id, err)
	}
	return tx.Commit()
}

// List summarizes the stored curves ordered by id.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	const q = `
		SELECT c.id, c.curve_key, COUNT(p.idx)
		FROM curves c LEFT JOIN points p ON p.curve_id = c.id
		GROUP BY c.id, c.curve_key
		ORDER BY c.id`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list curves: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.CurveKey, &sum.Points); err != nil {
			return nil, fmt.Errorf("sqlite: scan curve summary: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}
