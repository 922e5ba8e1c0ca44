// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY SQLITE?
// SQLite is an embedded database — it lives inside your Go binary as a single
// file. No separate database server to install, configure, or manage. Perfect
// for a single-server deployment like this one, and `:memory:` gives tests a
// fresh, fast database per test.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo (calls C code from Go), which means you need a C
// compiler installed and cross-compilation becomes painful. modernc.org/sqlite
// is a pure Go translation of the SQLite C code — no C compiler needed, works
// everywhere Go works.
//
// DATABASE/SQL OVERVIEW:
// Go's standard library provides "database/sql" — a generic interface for SQL
// databases. It works with any database through "drivers".
// Key types:
//   - sql.DB      — a connection pool (NOT a single connection!)
//   - sql.Row     — a single result row
//   - sql.Rows    — multiple result rows (must be closed!)
//
// The pattern is always:
//  1. sql.Open(driverName, dataSourceName) → creates a pool
//  2. db.QueryContext / db.ExecContext     → runs queries
//  3. rows.Scan(&field1, &field2)          → reads results into Go variables
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	// Imported for its error type AND its side effect: the package's init()
	// registers itself with database/sql as a driver named "sqlite", so
	// sql.Open("sqlite", ...) below knows how to talk to SQLite.
	sqlite3 "modernc.org/sqlite"
)

// SQLite extended result code for UNIQUE constraint violations
// (SQLITE_CONSTRAINT_UNIQUE = 19 | 8<<8). The primary code is the low byte.
const (
	sqliteConstraintUnique     = 2067
	sqliteConstraintPrimaryKey = 1555
)

// DB wraps a sql.DB connection pool and provides the repository methods.
//
// A single *DB implements all three repository interfaces (users, events,
// registrations) — the entity-specific methods live in user.go, event.go and
// registration.go of this package. The server wires the same *DB into each
// service; each service only sees the interface it asked for.
type DB struct {
	conn *sql.DB
}

// New creates a new SQLite database connection and runs migrations.
//
// dbPath examples:
//   - "data/events.db" → file-based database (persistent)
//   - ":memory:"       → in-memory database (great for tests, lost on close)
//
// CONNECTION POOL:
// sql.Open() does NOT actually open a connection — it just creates a pool
// manager. The first real connection happens when you run your first query.
// We call db.Ping() to force an immediate connection and verify it works.
func New(dbPath string) (*DB, error) {
	// PRAGMAs go in the DSN, not in an Exec call: sql.DB is a connection
	// POOL, and an Exec'd PRAGMA only configures whichever single connection
	// the pool happened to hand out. The driver applies _pragma parameters
	// to every connection it opens.
	//
	//   - journal_mode(WAL): default SQLite locks the whole database during
	//     writes; WAL allows concurrent reads while a write is happening.
	//   - foreign_keys(1): OFF by default in SQLite (backwards
	//     compatibility). Registrations reference users and events, so we
	//     want them enforced.
	//   - busy_timeout(5000): wait up to 5s for a write lock instead of
	//     failing immediately with SQLITE_BUSY.
	dsn := "file:" + dbPath +
		"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Every pool connection to ":memory:" would get its OWN empty database,
	// so only the migrated one would have the schema. A single connection
	// keeps everyone on the same database.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	// Ping verifies the connection actually works.
	// Without this, a bad path or permissions issue would only surface
	// on the first query — which is much harder to debug.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
//
// ALWAYS DEFER CLOSE:
// Wherever you call New(), immediately defer Close(). This ensures the WAL
// is flushed and the file lock released even if a panic occurs.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema.
//
// CREATE TABLE IF NOT EXISTS is idempotent — safe to run on every start.
// For a schema this small that beats carrying a migration framework; if the
// schema ever needs versioned changes, golang-migrate is the step up.
//
// THE UNIQUE INDEX ON (user_id, event_id) IS LOAD-BEARING:
// it is what guarantees "at most one registration per user per event", even
// when two requests race. Application-level checks alone cannot give that
// guarantee — both racers would pass the check, then both would insert.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS events (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			date        DATETIME NOT NULL,
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_events_date ON events(date);

		CREATE TABLE IF NOT EXISTS registrations (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id),
			event_id   TEXT NOT NULL REFERENCES events(id),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, event_id)
		);
		CREATE INDEX IF NOT EXISTS idx_registrations_user_id ON registrations(user_id);
		CREATE INDEX IF NOT EXISTS idx_registrations_created_at ON registrations(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure. This is how concurrent duplicate writes surface: both racers pass
// any prior existence check, the second INSERT trips the constraint, and the
// repository translates that into a domain-level duplicate error instead of
// letting it bubble up as a 500.
func isUniqueViolation(err error) bool {
	var serr *sqlite3.Error
	if !errors.As(err, &serr) {
		return false
	}
	return serr.Code() == sqliteConstraintUnique || serr.Code() == sqliteConstraintPrimaryKey
}
