package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mrfop/worktime/internal/db"
	"github.com/mrfop/worktime/internal/domain"
	"github.com/mrfop/worktime/internal/repository"
)

type sessionService struct {
	sessions repository.SessionRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewSessionService creates the session lifecycle manager. All
// mutations run inside a unit of work whose locking reads serialize the
// check-then-act against concurrent starts and stops.
func NewSessionService(sessions repository.SessionRepo, uow db.UnitOfWork, observers ...UseCaseObserver) SessionService {
	return &sessionService{
		sessions: sessions,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *sessionService) Start(ctx context.Context) (session *domain.WorkSession, err error) {
	started := time.Now()
	defer func() { observe(ctx, s.observer, "session_start", started, err, nil) }()

	session = &domain.WorkSession{
		ID:        uuid.New().String(),
		StartTime: time.Now().UTC(),
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)

		open, err := txSessions.LockCurrentForUpdate(ctx)
		if err != nil {
			return err
		}
		if open != nil {
			return domain.AlreadyRunning(domain.SubjectWorkSession)
		}
		return txSessions.Create(ctx, session)
	})
	if err != nil {
		return nil, err
	}
	return s.sessions.GetByID(ctx, session.ID)
}

func (s *sessionService) Stop(ctx context.Context) (session *domain.WorkSession, err error) {
	started := time.Now()
	defer func() { observe(ctx, s.observer, "session_stop", started, err, nil) }()

	var stoppedID string
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		txSegments := repository.NewSQLiteSegmentRepo(tx)

		current, err := txSessions.LockCurrentForUpdate(ctx)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.NoActive(domain.SubjectWorkSession)
		}

		// Segments must be stopped first; silently truncating
		// in-progress work is not allowed.
		openSegment, err := txSegments.LockCurrentForUpdate(ctx)
		if err != nil {
			return err
		}
		if openSegment != nil {
			return domain.OperationBlocked(domain.SubjectWorkSession, domain.SubjectWorkSegment)
		}

		end := time.Now().UTC()
		current.EndTime = &end
		if err := domain.RequireValidOpenRange(domain.SubjectWorkSession, &current.StartTime, current.EndTime); err != nil {
			return err
		}

		stoppedID = current.ID
		return txSessions.Update(ctx, current)
	})
	if err != nil {
		return nil, err
	}
	return s.sessions.GetByID(ctx, stoppedID)
}

func (s *sessionService) Patch(ctx context.Context, id string, patch SessionPatch) (session *domain.WorkSession, err error) {
	started := time.Now()
	defer func() { observe(ctx, s.observer, "session_patch", started, err, map[string]any{"id": id}) }()

	if !patch.HasAny() {
		return nil, domain.NoFieldsToUpdate(domain.SubjectWorkSession)
	}
	// Request-level sanity check before touching storage.
	if err = domain.RequireValidOpenRange(domain.SubjectWorkSession, patch.StartTime, patch.EndTime); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)

		current, err := txSessions.LockByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if patch.StartTime != nil {
			current.StartTime = patch.StartTime.UTC()
		}
		if patch.EndTime != nil {
			end := patch.EndTime.UTC()
			current.EndTime = &end
		}

		// Validate the resulting entity state before committing.
		if err := domain.RequireValidOpenRange(domain.SubjectWorkSession, &current.StartTime, current.EndTime); err != nil {
			return err
		}
		return txSessions.Update(ctx, current)
	})
	if err != nil {
		return nil, err
	}
	return s.sessions.GetByID(ctx, id)
}

func (s *sessionService) Delete(ctx context.Context, id string) (err error) {
	started := time.Now()
	defer func() { observe(ctx, s.observer, "session_delete", started, err, map[string]any{"id": id}) }()

	// Unconditional by id; owned segments are removed by the store's
	// cascade.
	err = s.sessions.Delete(ctx, id)
	return err
}

func (s *sessionService) FindAll(ctx context.Context) ([]*domain.WorkSession, error) {
	return s.sessions.FindAll(ctx)
}

func (s *sessionService) Current(ctx context.Context) (*domain.WorkSession, error) {
	return s.sessions.FindCurrent(ctx)
}

func (s *sessionService) IsRunning(ctx context.Context) (bool, error) {
	current, err := s.sessions.FindCurrent(ctx)
	if err != nil {
		return false, err
	}
	return current != nil, nil
}
