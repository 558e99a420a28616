// Package store provides durable habit.Mirror implementations.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MihkelHunter/habitual/internal/habit"
	_ "modernc.org/sqlite" // pure-Go SQLite driver, no CGO required
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

// SQLiteStore implements habit.Mirror as a single row of a key-value table.
type SQLiteStore struct {
	db  *sql.DB
	key string
}

// NewSQLite opens (or creates) a SQLite database at the given path.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteStore{db: db, key: habit.StorageKey}, nil
}

func (s *SQLiteStore) Load() ([]byte, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key=?`, s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (s *SQLiteStore) Save(data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		s.key, string(data), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
