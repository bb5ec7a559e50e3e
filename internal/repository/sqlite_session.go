package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mrfop/worktime/internal/db"
	"github.com/mrfop/worktime/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo over a DBTX. Create a
// tx-scoped instance inside a unit of work to make the Lock* reads
// exclusive.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(dbtx db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: dbtx}
}

const sessionColumns = `id, start_time, end_time, created_at, updated_at`

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.WorkSession) error {
	now := formatTime(time.Now())
	query := `INSERT INTO work_session (id, start_time, end_time, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		formatTime(s.StartTime),
		nullableTimeToString(s.EndTime),
		now,
		now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.SubjectWorkSession, err)
		}
		return fmt.Errorf("inserting work session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) Update(ctx context.Context, s *domain.WorkSession) error {
	query := `UPDATE work_session SET start_time = ?, end_time = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		formatTime(s.StartTime),
		nullableTimeToString(s.EndTime),
		formatTime(time.Now()),
		s.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.SubjectWorkSession, err)
		}
		return fmt.Errorf("updating work session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFound(domain.SubjectWorkSession, s.ID)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.WorkSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_session WHERE id = ?`
	return r.scanSession(r.db.QueryRowContext(ctx, query, id), id)
}

func (r *SQLiteSessionRepo) FindAll(ctx context.Context) ([]*domain.WorkSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_session ORDER BY start_time DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing work sessions: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) FindCurrent(ctx context.Context) (*domain.WorkSession, error) {
	return r.findOpen(ctx)
}

// LockCurrentForUpdate reads the open session under the transaction's
// write lock. The query itself is a plain SELECT; exclusivity comes
// from the immediate transaction the caller runs in.
func (r *SQLiteSessionRepo) LockCurrentForUpdate(ctx context.Context) (*domain.WorkSession, error) {
	return r.findOpen(ctx)
}

func (r *SQLiteSessionRepo) LockByIDForUpdate(ctx context.Context, id string) (*domain.WorkSession, error) {
	return r.GetByID(ctx, id)
}

func (r *SQLiteSessionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM work_session WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting work session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFound(domain.SubjectWorkSession, id)
	}
	return nil
}

func (r *SQLiteSessionRepo) findOpen(ctx context.Context) (*domain.WorkSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_session
		WHERE end_time IS NULL ORDER BY start_time DESC LIMIT 1`
	s, err := r.scanSession(r.db.QueryRowContext(ctx, query), "")
	if err != nil {
		if errorsIsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

func (r *SQLiteSessionRepo) FindOverlappingWithSegments(ctx context.Context, now time.Time, from, to *time.Time) ([]*SessionWithSegments, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_session
		WHERE (? IS NULL OR start_time < ?)
		  AND (? IS NULL OR COALESCE(end_time, ?) > ?)
		ORDER BY start_time DESC`
	toArg := nullableTimeToString(to)
	fromArg := nullableTimeToString(from)
	rows, err := r.db.QueryContext(ctx, query, toArg, toArg, fromArg, formatTime(now), fromArg)
	if err != nil {
		return nil, fmt.Errorf("querying overlapping work sessions: %w", err)
	}
	defer rows.Close()

	sessions, err := r.scanSessions(rows)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}

	result := make([]*SessionWithSegments, 0, len(sessions))
	byID := make(map[string]*SessionWithSegments, len(sessions))
	ids := make([]string, 0, len(sessions))
	for _, s := range sessions {
		v := &SessionWithSegments{Session: *s}
		result = append(result, v)
		byID[s.ID] = v
		ids = append(ids, s.ID)
	}

	if err := r.attachSegments(ctx, ids, byID); err != nil {
		return nil, err
	}
	return result, nil
}

// attachSegments eagerly loads the segments of the given sessions with
// their category/activity display names, ordered by start time.
func (r *SQLiteSessionRepo) attachSegments(ctx context.Context, ids []string, byID map[string]*SessionWithSegments) error {
	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	query := `SELECT s.id, s.work_session_id, s.category_id, s.activity_id,
			s.start_time, s.end_time, s.comment, s.created_at, s.updated_at,
			c.name, a.name
		FROM work_segment s
		JOIN category c ON s.category_id = c.id
		JOIN activity a ON s.activity_id = a.id
		WHERE s.work_session_id IN (` + placeholders + `)
		ORDER BY s.start_time ASC`
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("loading segments for report: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var seg domain.WorkSegment
		var startStr, createdStr, updatedStr string
		var endStr, commentStr sql.NullString
		var catName, actName string
		if err := rows.Scan(
			&seg.ID, &seg.WorkSessionID, &seg.CategoryID, &seg.ActivityID,
			&startStr, &endStr, &commentStr, &createdStr, &updatedStr,
			&catName, &actName,
		); err != nil {
			return fmt.Errorf("scanning report segment row: %w", err)
		}
		if err := populateSegmentTimes(&seg, startStr, endStr, createdStr, updatedStr); err != nil {
			return err
		}
		seg.Comment = stringPtr(commentStr)
		if v, ok := byID[seg.WorkSessionID]; ok {
			v.Segments = append(v.Segments, SegmentWithRefs{
				Segment:      seg,
				CategoryName: catName,
				ActivityName: actName,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating report segments: %w", err)
	}
	return nil
}

// scanSession scans a single session from a *sql.Row.
func (r *SQLiteSessionRepo) scanSession(row *sql.Row, id string) (*domain.WorkSession, error) {
	var s domain.WorkSession
	var startStr, createdStr, updatedStr string
	var endStr sql.NullString

	err := row.Scan(&s.ID, &startStr, &endStr, &createdStr, &updatedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NotFound(domain.SubjectWorkSession, id)
		}
		return nil, fmt.Errorf("scanning work session: %w", err)
	}
	return r.populateSession(&s, startStr, endStr, createdStr, updatedStr)
}

// scanSessions scans multiple sessions from *sql.Rows.
func (r *SQLiteSessionRepo) scanSessions(rows *sql.Rows) ([]*domain.WorkSession, error) {
	var sessions []*domain.WorkSession
	for rows.Next() {
		var s domain.WorkSession
		var startStr, createdStr, updatedStr string
		var endStr sql.NullString

		if err := rows.Scan(&s.ID, &startStr, &endStr, &createdStr, &updatedStr); err != nil {
			return nil, fmt.Errorf("scanning work session row: %w", err)
		}
		session, err := r.populateSession(&s, startStr, endStr, createdStr, updatedStr)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work sessions: %w", err)
	}
	return sessions, nil
}

// populateSession fills in parsed fields after scanning raw strings.
func (r *SQLiteSessionRepo) populateSession(s *domain.WorkSession, startStr string, endStr sql.NullString, createdStr, updatedStr string) (*domain.WorkSession, error) {
	var err error
	s.StartTime, err = time.Parse(timeLayout, startStr)
	if err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	s.EndTime = parseNullableTime(endStr)
	s.CreatedAt, err = time.Parse(timeLayout, createdStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	s.UpdatedAt, err = time.Parse(timeLayout, updatedStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return s, nil
}
