package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// SQL is a Store backed by a single kv table. It works against SQLite
// (the default, one local file per device) and PostgreSQL.
type SQL struct {
	db *sqlx.DB
}

// OpenSQLite opens (creating if needed) a SQLite-backed store at path.
func OpenSQLite(path string) (*SQL, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %v", err)
		}
	}
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}
	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return initSQL(db)
}

// OpenPostgres opens a PostgreSQL-backed store with the given DSN.
func OpenPostgres(dsn string) (*SQL, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}
	return initSQL(db)
}

func initSQL(db *sqlx.DB) (*SQL, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create kv table: %v", err)
	}
	return &SQL{db: db}, nil
}

// Close closes the underlying connection.
func (s *SQL) Close() error {
	return s.db.Close()
}

// Get returns the stored value for key.
func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	query := "SELECT value FROM kv WHERE key = ?"
	if s.db.DriverName() == "postgres" {
		query = "SELECT value FROM kv WHERE key = $1"
	}
	var value string
	err := s.db.GetContext(ctx, &value, query, key)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get key %s: %v", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *SQL) Set(ctx context.Context, key, value string) error {
	var query string
	if s.db.DriverName() == "postgres" {
		query = `
			INSERT INTO kv (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
		`
	} else {
		query = `
			INSERT INTO kv (key, value) VALUES (?, ?)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value
		`
	}
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set key %s: %v", key, err)
	}
	return nil
}

// Remove deletes key if present.
func (s *SQL) Remove(ctx context.Context, key string) error {
	query := "DELETE FROM kv WHERE key = ?"
	if s.db.DriverName() == "postgres" {
		query = "DELETE FROM kv WHERE key = $1"
	}
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to remove key %s: %v", key, err)
	}
	return nil
}
