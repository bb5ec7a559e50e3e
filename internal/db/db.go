package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// OpenDB opens a SQLite database at the given path.
// If path is ":memory:", uses an in-memory database.
// Sets WAL mode, enables foreign keys, and configures a busy timeout on
// every connection so writers waiting on the database write lock block
// instead of failing immediately. Transactions begin with an immediate
// lock (_txlock) so check-then-act sequences inside a unit of work are
// serialized. Runs migrations automatically.
func OpenDB(path string) (*sql.DB, error) {
	memory := path == ":memory:"
	if !memory {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	// Pragmas go in the DSN so every pooled connection gets them, not
	// just the one Exec happens to run on. WAL for concurrent reads,
	// foreign keys so segments cascade on session delete, busy_timeout
	// to bound lock waits (a timeout surfaces as SQLITE_BUSY, which
	// callers should treat as retryable).
	const params = "?_txlock=immediate" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=foreign_keys(1)" +
		"&_pragma=busy_timeout(5000)"
	dsn := "file:" + path + params
	if memory {
		dsn = "file::memory:" + params
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// An in-memory database exists per connection; pin the pool to a
	// single connection so every caller sees the same data.
	if memory {
		db.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}
