// Package store remembers the fractions views of an application were last
// sized to, in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ItsNotGoodName/x-scroller/internal/core"
	_ "modernc.org/sqlite"
)

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS fractions (
    app_id TEXT PRIMARY KEY,
    width REAL,
    height REAL,
    updated_at INTEGER NOT NULL
);
`

// Fractions are the remembered sizes of an application. Zero means unset.
type Fractions struct {
	AppID     string    `json:"app_id"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Store struct {
	db *sql.DB
}

// Open opens or creates the database at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := dbPath +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	slog.Debug("Opened fraction store", "package", "store", "path", dbPath)
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	var version int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version == schemaVersion {
		return nil
	}
	if version > schemaVersion {
		return fmt.Errorf("database schema %d is newer than %d", version, schemaVersion)
	}

	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

func nullFraction(v float64) sql.Null[float64] {
	if v <= 0 {
		return sql.Null[float64]{}
	}
	return core.NullToSQLNull(&v)
}

// Get returns the fractions remembered for appID.
func (s *Store) Get(ctx context.Context, appID string) (Fractions, bool, error) {
	var (
		width, height sql.Null[float64]
		updatedAt     int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT width, height, updated_at FROM fractions WHERE app_id = ?", appID,
	).Scan(&width, &height, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Fractions{}, false, nil
	}
	if err != nil {
		return Fractions{}, false, err
	}
	return Fractions{
		AppID:     appID,
		Width:     core.Optional(core.SQLNullToNull(width), 0),
		Height:    core.Optional(core.SQLNullToNull(height), 0),
		UpdatedAt: time.Unix(0, updatedAt),
	}, true, nil
}

// Save remembers f. An unset fraction keeps the one already stored.
func (s *Store) Save(ctx context.Context, f Fractions) error {
	if f.AppID == "" {
		return nil
	}
	if f.UpdatedAt.IsZero() {
		f.UpdatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO fractions (app_id, width, height, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(app_id) DO UPDATE SET
    width = COALESCE(excluded.width, fractions.width),
    height = COALESCE(excluded.height, fractions.height),
    updated_at = excluded.updated_at
`, f.AppID, nullFraction(f.Width), nullFraction(f.Height), f.UpdatedAt.UnixNano())
	return err
}

func (s *Store) Delete(ctx context.Context, appID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM fractions WHERE app_id = ?", appID)
	return err
}

// List returns every remembered application, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Fractions, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT app_id, width, height, updated_at FROM fractions ORDER BY updated_at DESC, app_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Fractions
	for rows.Next() {
		var (
			f             Fractions
			width, height sql.Null[float64]
			updatedAt     int64
		)
		if err := rows.Scan(&f.AppID, &width, &height, &updatedAt); err != nil {
			return nil, err
		}
		f.Width = core.Optional(core.SQLNullToNull(width), 0)
		f.Height = core.Optional(core.SQLNullToNull(height), 0)
		f.UpdatedAt = time.Unix(0, updatedAt)
		list = append(list, f)
	}
	return list, rows.Err()
}
