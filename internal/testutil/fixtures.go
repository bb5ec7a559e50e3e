package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/mrfop/worktime/internal/domain"
)

// Session options
type SessionOption func(*domain.WorkSession)

func WithSessionEnd(end time.Time) SessionOption {
	return func(s *domain.WorkSession) {
		e := end.UTC()
		s.EndTime = &e
	}
}

// NewTestSession builds a work session starting at the given instant.
// Without options the session is open.
func NewTestSession(start time.Time, opts ...SessionOption) *domain.WorkSession {
	s := &domain.WorkSession{
		ID:        uuid.New().String(),
		StartTime: start.UTC(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Segment options
type SegmentOption func(*domain.WorkSegment)

func WithSegmentEnd(end time.Time) SegmentOption {
	return func(s *domain.WorkSegment) {
		e := end.UTC()
		s.EndTime = &e
	}
}

func WithComment(comment string) SegmentOption {
	return func(s *domain.WorkSegment) {
		s.Comment = &comment
	}
}

// NewTestSegment builds a work segment owned by the given session.
// Without options the segment is open.
func NewTestSegment(sessionID, categoryID, activityID string, start time.Time, opts ...SegmentOption) *domain.WorkSegment {
	s := &domain.WorkSegment{
		ID:            uuid.New().String(),
		WorkSessionID: sessionID,
		CategoryID:    categoryID,
		ActivityID:    activityID,
		StartTime:     start.UTC(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewTestCategory builds a category reference row.
func NewTestCategory(name string) *domain.Category {
	return &domain.Category{ID: uuid.New().String(), Name: name}
}

// NewTestActivity builds an activity reference row.
func NewTestActivity(name string) *domain.Activity {
	return &domain.Activity{ID: uuid.New().String(), Name: name}
}
