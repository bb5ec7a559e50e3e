package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS category (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS activity (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	// open_flag is 1 while the row is open and NULL once closed. The
	// unique index allows any number of NULLs but rejects a second
	// concurrently-open row, backstopping the lock discipline in the
	// service layer. start_date is the UTC calendar day used for report
	// bucketing.
	`CREATE TABLE IF NOT EXISTS work_session (
		id         TEXT PRIMARY KEY,
		start_time TEXT NOT NULL,
		end_time   TEXT,
		start_date TEXT    GENERATED ALWAYS AS (date(start_time)) STORED,
		open_flag  INTEGER GENERATED ALWAYS AS (CASE WHEN end_time IS NULL THEN 1 END) STORED,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS uk_work_session_one_open ON work_session(open_flag)`,
	`CREATE INDEX IF NOT EXISTS idx_work_session_start ON work_session(start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_work_session_end ON work_session(end_time)`,
	`CREATE INDEX IF NOT EXISTS idx_work_session_start_date ON work_session(start_date)`,

	`CREATE TABLE IF NOT EXISTS work_segment (
		id              TEXT PRIMARY KEY,
		work_session_id TEXT NOT NULL REFERENCES work_session(id) ON DELETE CASCADE,
		category_id     TEXT NOT NULL REFERENCES category(id),
		activity_id     TEXT NOT NULL REFERENCES activity(id),
		start_time      TEXT NOT NULL,
		end_time        TEXT,
		comment         TEXT,
		start_date      TEXT    GENERATED ALWAYS AS (date(start_time)) STORED,
		open_flag       INTEGER GENERATED ALWAYS AS (CASE WHEN end_time IS NULL THEN 1 END) STORED,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS uk_work_segment_one_open ON work_segment(open_flag)`,
	`CREATE INDEX IF NOT EXISTS idx_work_segment_session_start ON work_segment(work_session_id, start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_work_segment_start_date ON work_segment(start_date)`,
	`CREATE INDEX IF NOT EXISTS idx_work_segment_category_start ON work_segment(category_id, start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_work_segment_activity_start ON work_segment(activity_id, start_time)`,
}
