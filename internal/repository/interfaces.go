package repository

import (
	"context"
	"time"

	"github.com/mrfop/worktime/internal/domain"
)

// SegmentWithRefs is a joined view of a work segment with the display
// names of its category and activity, used by the report aggregator.
type SegmentWithRefs struct {
	Segment      domain.WorkSegment
	CategoryName string
	ActivityName string
}

// SessionWithSegments is a joined view of a work session with its
// segments eagerly loaded, ordered by segment start time ascending.
type SessionWithSegments struct {
	Session  domain.WorkSession
	Segments []SegmentWithRefs
}

// SessionRepo stores work sessions. The Lock* methods must be called
// from a repository created over a unit-of-work transaction: the
// transaction's immediate write lock makes the read exclusive until
// commit or rollback. FindCurrent and LockCurrentForUpdate return
// (nil, nil) when no session is open.
type SessionRepo interface {
	Create(ctx context.Context, s *domain.WorkSession) error
	Update(ctx context.Context, s *domain.WorkSession) error
	GetByID(ctx context.Context, id string) (*domain.WorkSession, error)
	FindAll(ctx context.Context) ([]*domain.WorkSession, error)
	FindCurrent(ctx context.Context) (*domain.WorkSession, error)
	LockCurrentForUpdate(ctx context.Context) (*domain.WorkSession, error)
	LockByIDForUpdate(ctx context.Context, id string) (*domain.WorkSession, error)
	Delete(ctx context.Context, id string) error
	// FindOverlappingWithSegments returns every session whose effective
	// interval [start, end-or-now) intersects [from, to), newest start
	// first, with segments and their category/activity names attached.
	// A nil bound leaves that side of the window open.
	FindOverlappingWithSegments(ctx context.Context, now time.Time, from, to *time.Time) ([]*SessionWithSegments, error)
}

// SegmentRepo stores work segments. Locking semantics match
// SessionRepo.
type SegmentRepo interface {
	Create(ctx context.Context, s *domain.WorkSegment) error
	Update(ctx context.Context, s *domain.WorkSegment) error
	GetByID(ctx context.Context, id string) (*domain.WorkSegment, error)
	FindAll(ctx context.Context) ([]*domain.WorkSegment, error)
	FindCurrent(ctx context.Context) (*domain.WorkSegment, error)
	LockCurrentForUpdate(ctx context.Context) (*domain.WorkSegment, error)
	LockByIDForUpdate(ctx context.Context, id string) (*domain.WorkSegment, error)
	Delete(ctx context.Context, id string) error
}

type CategoryRepo interface {
	Create(ctx context.Context, c *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	FindAll(ctx context.Context) ([]*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type ActivityRepo interface {
	Create(ctx context.Context, a *domain.Activity) error
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	FindAll(ctx context.Context) ([]*domain.Activity, error)
	Delete(ctx context.Context, id string) error
}
