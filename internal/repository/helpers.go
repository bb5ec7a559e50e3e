package repository

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/mrfop/worktime/internal/domain"
)

// All instants are stored as RFC3339 UTC strings. With a fixed layout
// and zone, lexicographic comparison in SQL matches time order, and
// SQLite's date() yields the UTC calendar day for generated columns.
const timeLayout = time.RFC3339

// formatTime renders an instant for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseNullableTime parses a sql.NullString into a *time.Time.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(timeLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for
// SQLite storage. Returns nil (SQL NULL) if the pointer is nil.
func nullableTimeToString(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

// nullableString converts a *string to a value suitable for SQLite
// storage. Returns nil (SQL NULL) if the pointer is nil.
func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// stringPtr converts a scanned sql.NullString back to a *string.
func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// errorsIsNotFound reports whether err carries the not-found sentinel.
func errorsIsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure, e.g. a second open row hitting the open-flag backstop index.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
