package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mrfop/worktime/internal/db"
	"github.com/mrfop/worktime/internal/domain"
	"github.com/mrfop/worktime/internal/repository"
)

type segmentService struct {
	segments repository.SegmentRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewSegmentService creates the segment lifecycle manager. Category and
// activity references are resolved fail-fast at the moment they are
// attached; a dangling id is a not-found error, not a deferred
// constraint violation.
func NewSegmentService(segments repository.SegmentRepo, uow db.UnitOfWork, observers ...UseCaseObserver) SegmentService {
	return &segmentService{
		segments: segments,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *segmentService) Start(ctx context.Context, in SegmentStart) (segment *domain.WorkSegment, err error) {
	started := time.Now()
	defer func() { observe(ctx, s.observer, "segment_start", started, err, nil) }()

	comment := domain.NormalizeCommentNonNil(in.Comment)

	var createdID string
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSegments := repository.NewSQLiteSegmentRepo(tx)
		txSessions := repository.NewSQLiteSessionRepo(tx)
		txCategories := repository.NewSQLiteCategoryRepo(tx)
		txActivities := repository.NewSQLiteActivityRepo(tx)

		open, err := txSegments.LockCurrentForUpdate(ctx)
		if err != nil {
			return err
		}
		if open != nil {
			return domain.AlreadyRunning(domain.SubjectWorkSegment)
		}

		// A segment cannot exist without a running session.
		session, err := txSessions.LockCurrentForUpdate(ctx)
		if err != nil {
			return err
		}
		if session == nil {
			return domain.NoActive(domain.SubjectWorkSession)
		}

		category, err := txCategories.GetByID(ctx, in.CategoryID)
		if err != nil {
			return err
		}
		activity, err := txActivities.GetByID(ctx, in.ActivityID)
		if err != nil {
			return err
		}

		seg := &domain.WorkSegment{
			ID:            uuid.New().String(),
			WorkSessionID: session.ID,
			CategoryID:    category.ID,
			ActivityID:    activity.ID,
			StartTime:     time.Now().UTC(),
			Comment:       comment,
		}
		createdID = seg.ID
		return txSegments.Create(ctx, seg)
	})
	if err != nil {
		return nil, err
	}
	return s.segments.GetByID(ctx, createdID)
}

func (s *segmentService) Stop(ctx context.Context, in SegmentStop) (segment *domain.WorkSegment, err error) {
	started := time.Now()
	defer func() { observe(ctx, s.observer, "segment_stop", started, err, nil) }()

	var stoppedID string
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSegments := repository.NewSQLiteSegmentRepo(tx)

		open, err := txSegments.LockCurrentForUpdate(ctx)
		if err != nil {
			return err
		}
		if open == nil {
			return domain.NoActive(domain.SubjectWorkSegment)
		}

		end := time.Now().UTC()
		open.EndTime = &end

		if in.Comment != nil {
			open.Comment = domain.NormalizeComment(in.Comment)
		}
		if err := s.applyRelationUpdates(ctx, tx, open, in.CategoryID, in.ActivityID); err != nil {
			return err
		}

		if err := domain.RequireValidOpenRange(domain.SubjectWorkSegment, &open.StartTime, open.EndTime); err != nil {
			return err
		}

		stoppedID = open.ID
		return txSegments.Update(ctx, open)
	})
	if err != nil {
		return nil, err
	}
	return s.segments.GetByID(ctx, stoppedID)
}

func (s *segmentService) Patch(ctx context.Context, id string, patch SegmentPatch) (segment *domain.WorkSegment, err error) {
	started := time.Now()
	defer func() { observe(ctx, s.observer, "segment_patch", started, err, map[string]any{"id": id}) }()

	if !patch.HasAny() {
		return nil, domain.NoFieldsToUpdate(domain.SubjectWorkSegment)
	}
	// Request-level sanity check before touching storage.
	if err = domain.RequireValidOpenRange(domain.SubjectWorkSegment, patch.StartTime, patch.EndTime); err != nil {
		return nil, err
	}

	comment := domain.NormalizeComment(patch.Comment)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSegments := repository.NewSQLiteSegmentRepo(tx)

		current, err := txSegments.LockByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		// Scalars first, then relationships.
		if patch.StartTime != nil {
			current.StartTime = patch.StartTime.UTC()
		}
		if patch.EndTime != nil {
			end := patch.EndTime.UTC()
			current.EndTime = &end
		}
		if comment != nil {
			current.Comment = comment
		}
		if err := s.applyRelationUpdates(ctx, tx, current, patch.CategoryID, patch.ActivityID); err != nil {
			return err
		}

		// Validate the resulting entity state before committing.
		if err := domain.RequireValidOpenRange(domain.SubjectWorkSegment, &current.StartTime, current.EndTime); err != nil {
			return err
		}
		return txSegments.Update(ctx, current)
	})
	if err != nil {
		return nil, err
	}
	return s.segments.GetByID(ctx, id)
}

// applyRelationUpdates re-resolves category/activity references when
// supplied; each lookup independently fails not-found.
func (s *segmentService) applyRelationUpdates(ctx context.Context, tx db.DBTX, segment *domain.WorkSegment, categoryID, activityID *string) error {
	if categoryID != nil {
		category, err := repository.NewSQLiteCategoryRepo(tx).GetByID(ctx, *categoryID)
		if err != nil {
			return err
		}
		segment.CategoryID = category.ID
	}
	if activityID != nil {
		activity, err := repository.NewSQLiteActivityRepo(tx).GetByID(ctx, *activityID)
		if err != nil {
			return err
		}
		segment.ActivityID = activity.ID
	}
	return nil
}

func (s *segmentService) Delete(ctx context.Context, id string) (err error) {
	started := time.Now()
	defer func() { observe(ctx, s.observer, "segment_delete", started, err, map[string]any{"id": id}) }()

	err = s.segments.Delete(ctx, id)
	return err
}

func (s *segmentService) FindAll(ctx context.Context) ([]*domain.WorkSegment, error) {
	return s.segments.FindAll(ctx)
}

func (s *segmentService) Current(ctx context.Context) (*domain.WorkSegment, error) {
	return s.segments.FindCurrent(ctx)
}

func (s *segmentService) IsRunning(ctx context.Context) (bool, error) {
	current, err := s.segments.FindCurrent(ctx)
	if err != nil {
		return false, err
	}
	return current != nil, nil
}
