// Package db is the SQLite-backed job store. It holds the placed-item
// document, the catalog hierarchy, and the persisted swap history, and it
// implements the collaborator interfaces the swap core consumes.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const dbFile = ".fabswap/job.db"

// DB wraps the database connection
type DB struct {
	conn    *sql.DB
	baseDir string
}

// Open opens an existing job database.
func Open(baseDir string) (*DB, error) {
	dbPath := filepath.Join(baseDir, dbFile)

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("job database not found: run 'fab init' first")
	}

	conn, err := openConn(dbPath)
	if err != nil {
		return nil, err
	}

	return &DB{conn: conn, baseDir: baseDir}, nil
}

// Initialize creates the job database and its schema.
func Initialize(baseDir string) (*DB, error) {
	dbPath := filepath.Join(baseDir, dbFile)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	conn, err := openConn(dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	if _, err := conn.Exec(
		"INSERT OR REPLACE INTO schema_info (key, value) VALUES ('version', ?)",
		fmt.Sprintf("%d", SchemaVersion)); err != nil {
		conn.Close()
		return nil, fmt.Errorf("record schema version: %w", err)
	}

	return &DB{conn: conn, baseDir: baseDir}, nil
}

func openConn(dbPath string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL allows concurrent reads while writes are serialized
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	// Slightly faster writes, still safe with WAL
	conn.Exec("PRAGMA synchronous=NORMAL")

	return conn, nil
}

// Close closes the database
func (db *DB) Close() error {
	return db.conn.Close()
}

// BaseDir returns the base directory for the database
func (db *DB) BaseDir() string {
	return db.baseDir
}
