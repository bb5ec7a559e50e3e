package service

import (
	"context"
	"time"

	"github.com/mrfop/worktime/internal/domain"
)

// SessionPatch carries the fields a session patch may change. A nil
// pointer means "leave unchanged".
type SessionPatch struct {
	StartTime *time.Time
	EndTime   *time.Time
}

// HasAny reports whether the patch changes anything.
func (p SessionPatch) HasAny() bool {
	return p.StartTime != nil || p.EndTime != nil
}

// SegmentStart carries the fields required to start a segment.
type SegmentStart struct {
	CategoryID string
	ActivityID string
	Comment    *string
}

// SegmentStop carries optional overrides applied while stopping the
// open segment.
type SegmentStop struct {
	CategoryID *string
	ActivityID *string
	Comment    *string
}

// SegmentPatch carries the fields a segment patch may change. A nil
// pointer means "leave unchanged"; a non-nil empty Comment clears it.
type SegmentPatch struct {
	CategoryID *string
	ActivityID *string
	StartTime  *time.Time
	EndTime    *time.Time
	Comment    *string
}

// HasAny reports whether the patch changes anything.
func (p SegmentPatch) HasAny() bool {
	return p.CategoryID != nil || p.ActivityID != nil ||
		p.StartTime != nil || p.EndTime != nil || p.Comment != nil
}

// SessionService is the work session lifecycle manager. Current and
// IsRunning are non-locking reads and may observe slightly stale state;
// all mutations serialize through locking reads inside a unit of work.
type SessionService interface {
	Start(ctx context.Context) (*domain.WorkSession, error)
	Stop(ctx context.Context) (*domain.WorkSession, error)
	Patch(ctx context.Context, id string, patch SessionPatch) (*domain.WorkSession, error)
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]*domain.WorkSession, error)
	Current(ctx context.Context) (*domain.WorkSession, error)
	IsRunning(ctx context.Context) (bool, error)
}

// SegmentService is the work segment lifecycle manager.
type SegmentService interface {
	Start(ctx context.Context, in SegmentStart) (*domain.WorkSegment, error)
	Stop(ctx context.Context, in SegmentStop) (*domain.WorkSegment, error)
	Patch(ctx context.Context, id string, patch SegmentPatch) (*domain.WorkSegment, error)
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]*domain.WorkSegment, error)
	Current(ctx context.Context) (*domain.WorkSegment, error)
	IsRunning(ctx context.Context) (bool, error)
}

// SegmentReport is a segment row of a report with display names and
// its allocated duration.
type SegmentReport struct {
	Segment      domain.WorkSegment
	CategoryName string
	ActivityName string
	Seconds      int64
}

// SessionReport is a session row of a report with per-session duration
// arithmetic. Seconds values are clamped to zero; an open session
// contributes zero rather than an error (the export guard keeps open
// intervals out of finalized documents).
type SessionReport struct {
	Session            domain.WorkSession
	Segments           []SegmentReport
	SessionSeconds     int64
	SegmentSeconds     int64
	UnallocatedSeconds int64
}

// WorkDay is one UTC calendar-day bucket of a report.
type WorkDay struct {
	Day                string // UTC day, yyyy-mm-dd
	Sessions           []SessionReport
	SessionSeconds     int64
	SegmentSeconds     int64
	UnallocatedSeconds int64
}

// ReportService is the read-only report aggregator.
type ReportService interface {
	// DaysWithSegments buckets the sessions overlapping [from, to) by
	// their UTC start day, preserving newest-start-first session order
	// and first-seen day order. Nil bounds leave the window open.
	DaysWithSegments(ctx context.Context, from, to *time.Time) ([]WorkDay, error)
}

// ExportRequest describes a finalized report document to build.
// Storage stays UTC; Location only affects presentation.
type ExportRequest struct {
	From         time.Time
	To           time.Time
	Location     *time.Location
	ShowSegments bool
}

// ExportSegment is a formatted segment row of an export document.
type ExportSegment struct {
	Category string
	Activity string
	Start    string
	End      string
	Duration string
	Comment  string
}

// ExportSession is a formatted session row of an export document.
type ExportSession struct {
	Start       string
	End         string
	Duration    string
	Allocated   string
	Unallocated string
	Segments    []ExportSegment
}

// ExportDay is a formatted day bucket of an export document.
type ExportDay struct {
	Date        string
	Sessions    []ExportSession
	Duration    string
	Allocated   string
	Unallocated string
}

// ExportDocument is the plain view model a report renderer consumes.
type ExportDocument struct {
	From        string
	To          string
	Timezone    string
	GeneratedAt string
	Days        []ExportDay
	Duration    string
	Allocated   string
	Unallocated string
}

// ExportService guards and builds finalized report documents.
type ExportService interface {
	// AssertNothingRunning fails with an operation-blocked error naming
	// the running subject if a segment or session is currently open.
	AssertNothingRunning(ctx context.Context) error
	// BuildDocument validates [From, To) as a strict closed range,
	// re-checks the running guard, and builds the formatted view model.
	BuildDocument(ctx context.Context, req ExportRequest) (*ExportDocument, error)
	// Filename derives the document file name from the window.
	Filename(req ExportRequest) string
}

type CategoryService interface {
	Create(ctx context.Context, name string) (*domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	FindAll(ctx context.Context) ([]*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type ActivityService interface {
	Create(ctx context.Context, name string) (*domain.Activity, error)
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	FindAll(ctx context.Context) ([]*domain.Activity, error)
	Delete(ctx context.Context, id string) error
}
