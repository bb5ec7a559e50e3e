package domain

import "time"

// WorkSegment is a span of doing a specific category/activity inside a
// work session. EndTime nil means the segment is still running. At most
// one segment is open system-wide, and an open segment always belongs
// to the currently open session (enforced by the lifecycle managers,
// not by a stored constraint).
type WorkSegment struct {
	ID            string
	WorkSessionID string
	CategoryID    string
	ActivityID    string
	StartTime     time.Time
	EndTime       *time.Time
	Comment       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Open reports whether the segment is still running.
func (s *WorkSegment) Open() bool {
	return s.EndTime == nil
}
