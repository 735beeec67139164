// Package sqlite implements the repository interfaces on top of SQLite using the
// pure-Go modernc.org/sqlite driver (no cgo).
//
// The default DSN is ":memory:", which keeps data for the lifetime of the process
// only. Pointing DB_PATH at a file makes the data survive restarts.
//
// ONE CONNECTION, ON PURPOSE:
// sql.DB is a pool, and normally you want several connections. Here the pool is
// capped at one. Two things depend on that:
//   - ":memory:" databases are per connection. A second connection would open a
//     second, empty database and half the queries would see no tables.
//   - The letter store relies on SQLite running one statement at a time. With a
//     single connection the UNIQUE index on letters.schedule_id is checked and
//     the row inserted before any other writer gets a turn.
//
// LISTING ORDER:
// Tables have no explicit sequence column. "ORDER BY rowid" gives insertion
// order, which is what the API promises for schedules and letters.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	// Registers the "sqlite" driver with database/sql in its init().
	_ "modernc.org/sqlite"
)

// DB wraps the connection and hands out one store per table.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and applies the schema.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// A single connection serialises writers, which is what makes the letter
	// check-and-insert and MarkRead atomic. It is also required for ":memory:",
	// where every new connection would otherwise see its own empty database.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	for _, pragma := range []string{"journal_mode=WAL", "foreign_keys=ON"} {
		if _, err := conn.Exec("PRAGMA " + pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("sqlite: PRAGMA %s: %w", pragma, err)
		}
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close releases the connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Users() *UserDB         { return &UserDB{conn: db.conn} }
func (db *DB) Schedules() *ScheduleDB { return &ScheduleDB{conn: db.conn} }
func (db *DB) Letters() *LetterDB     { return &LetterDB{conn: db.conn} }

// schema is applied in order on every start. Every statement is idempotent.
// Listings order by the implicit rowid, which is insertion order.
var schema = []struct {
	table string
	ddl   string
}{
	{"users", `
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE COLLATE NOCASE,
			password_hash TEXT NOT NULL DEFAULT '',
			github_id     INTEGER NOT NULL DEFAULT 0,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`},
	{"schedules", `
		CREATE TABLE IF NOT EXISTS schedules (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL,
			content     TEXT NOT NULL,
			date        TEXT NOT NULL,
			emotions    TEXT NOT NULL DEFAULT '[]',
			sender_type TEXT NOT NULL,
			sender_name TEXT NOT NULL DEFAULT '',
			detail      TEXT NOT NULL DEFAULT '',
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_schedules_user_id ON schedules(user_id);
		CREATE INDEX IF NOT EXISTS idx_schedules_date ON schedules(date);`},
	// One letter per schedule is enforced here, not by the callers.
	{"letters", `
		CREATE TABLE IF NOT EXISTS letters (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL,
			schedule_id TEXT NOT NULL,
			sender_type TEXT NOT NULL,
			sender_name TEXT NOT NULL DEFAULT '',
			content     TEXT NOT NULL,
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			read_at     DATETIME
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_letters_schedule_id ON letters(schedule_id);
		CREATE INDEX IF NOT EXISTS idx_letters_user_id ON letters(user_id);`},
}

func (db *DB) migrate() error {
	for _, step := range schema {
		if _, err := db.conn.Exec(step.ddl); err != nil {
			return fmt.Errorf("creating %s table: %w", step.table, err)
		}
	}
	return nil
}

// isUniqueViolation reports whether err came from a UNIQUE constraint.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
