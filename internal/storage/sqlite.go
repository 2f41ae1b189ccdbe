package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps slots as rows of a single key-value table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if missing) the database at path and migrates it.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS slots (
			name TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, slot string) ([]byte, bool, error) {
	if err := checkSlot(slot); err != nil {
		return nil, false, err
	}
	row := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE name = ?`, slot)
	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("slot load %s: %w", slot, err)
	}
	return data, true, nil
}

func (s *SQLiteStore) Save(ctx context.Context, slot string, data []byte) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO slots (name, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, slot, data)
	if err != nil {
		return fmt.Errorf("slot save %s: %w", slot, err)
	}
	return nil
}

func (s *SQLiteStore) ClearAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM slots`); err != nil {
		return fmt.Errorf("slot clear: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
