package domain

import "time"

// WorkSession is a span of being on the clock. EndTime nil means the
// session is still running. At most one session is open at any time;
// the store backstops this with a uniqueness constraint on a generated
// open-flag column. All instants are UTC.
type WorkSession struct {
	ID        string
	StartTime time.Time
	EndTime   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open reports whether the session is still running.
func (s *WorkSession) Open() bool {
	return s.EndTime == nil
}

// StartDay returns the UTC calendar day of the session start, the key
// used for report bucketing.
func (s *WorkSession) StartDay() string {
	return s.StartTime.UTC().Format("2006-01-02")
}
