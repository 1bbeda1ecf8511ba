package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Config selects the database backend
type Config struct {
	Driver string
	DSN    string
}

// Connect establishes a connection to the database and makes sure the schema exists
func Connect(cfg Config) (*sqlx.DB, error) {
	switch cfg.Driver {
	case DriverSQLite:
		if err := ensureDataDir(cfg.DSN); err != nil {
			return nil, err
		}
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sqlx.Connect(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		// Enable foreign keys
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set busy timeout: %w", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := initializeSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("Connected to %s database", cfg.Driver)
	return db, nil
}

// ensureDataDir creates the directory of a file based sqlite database
func ensureDataDir(dsn string) error {
	if dsn == "" || dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema(ctx context.Context, db *sqlx.DB) error {
	statements := sqliteSchema
	if db.DriverName() == DriverPostgres {
		statements = postgresSchema
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS tests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		test_name TEXT NOT NULL,
		language_from TEXT NOT NULL,
		language_to TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		test_id INTEGER NOT NULL,
		word_or_sentence_from TEXT NOT NULL,
		word_or_sentence_to TEXT NOT NULL,
		FOREIGN KEY (test_id) REFERENCES tests(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS test_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		test_id INTEGER NOT NULL,
		score INTEGER NOT NULL,
		total_questions INTEGER NOT NULL,
		percentage REAL NOT NULL,
		date_taken TIMESTAMP NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (test_id) REFERENCES tests(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tests_user ON tests(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_test ON entries(test_id)`,
	`CREATE INDEX IF NOT EXISTS idx_test_results_user_date ON test_results(user_id, date_taken DESC)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS tests (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		test_name TEXT NOT NULL,
		language_from TEXT NOT NULL,
		language_to TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS entries (
		id BIGSERIAL PRIMARY KEY,
		test_id BIGINT NOT NULL REFERENCES tests(id) ON DELETE CASCADE,
		word_or_sentence_from TEXT NOT NULL,
		word_or_sentence_to TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS test_results (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		test_id BIGINT NOT NULL REFERENCES tests(id) ON DELETE CASCADE,
		score INTEGER NOT NULL,
		total_questions INTEGER NOT NULL,
		percentage DOUBLE PRECISION NOT NULL,
		date_taken TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tests_user ON tests(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_test ON entries(test_id)`,
	`CREATE INDEX IF NOT EXISTS idx_test_results_user_date ON test_results(user_id, date_taken DESC)`,
}
