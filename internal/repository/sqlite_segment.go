package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mrfop/worktime/internal/db"
	"github.com/mrfop/worktime/internal/domain"
)

// SQLiteSegmentRepo implements SegmentRepo over a DBTX. Create a
// tx-scoped instance inside a unit of work to make the Lock* reads
// exclusive.
type SQLiteSegmentRepo struct {
	db db.DBTX
}

// NewSQLiteSegmentRepo creates a new SQLiteSegmentRepo.
func NewSQLiteSegmentRepo(dbtx db.DBTX) *SQLiteSegmentRepo {
	return &SQLiteSegmentRepo{db: dbtx}
}

const segmentColumns = `id, work_session_id, category_id, activity_id,
	start_time, end_time, comment, created_at, updated_at`

func (r *SQLiteSegmentRepo) Create(ctx context.Context, s *domain.WorkSegment) error {
	now := formatTime(time.Now())
	query := `INSERT INTO work_segment
		(id, work_session_id, category_id, activity_id, start_time, end_time, comment, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.WorkSessionID,
		s.CategoryID,
		s.ActivityID,
		formatTime(s.StartTime),
		nullableTimeToString(s.EndTime),
		nullableString(s.Comment),
		now,
		now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.SubjectWorkSegment, err)
		}
		return fmt.Errorf("inserting work segment: %w", err)
	}
	return nil
}

func (r *SQLiteSegmentRepo) Update(ctx context.Context, s *domain.WorkSegment) error {
	query := `UPDATE work_segment
		SET work_session_id = ?, category_id = ?, activity_id = ?,
		    start_time = ?, end_time = ?, comment = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.WorkSessionID,
		s.CategoryID,
		s.ActivityID,
		formatTime(s.StartTime),
		nullableTimeToString(s.EndTime),
		nullableString(s.Comment),
		formatTime(time.Now()),
		s.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.SubjectWorkSegment, err)
		}
		return fmt.Errorf("updating work segment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFound(domain.SubjectWorkSegment, s.ID)
	}
	return nil
}

func (r *SQLiteSegmentRepo) GetByID(ctx context.Context, id string) (*domain.WorkSegment, error) {
	query := `SELECT ` + segmentColumns + ` FROM work_segment WHERE id = ?`
	return r.scanSegment(r.db.QueryRowContext(ctx, query, id), id)
}

func (r *SQLiteSegmentRepo) FindAll(ctx context.Context) ([]*domain.WorkSegment, error) {
	query := `SELECT ` + segmentColumns + ` FROM work_segment ORDER BY start_time DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing work segments: %w", err)
	}
	defer rows.Close()
	return r.scanSegments(rows)
}

func (r *SQLiteSegmentRepo) FindCurrent(ctx context.Context) (*domain.WorkSegment, error) {
	return r.findOpen(ctx)
}

// LockCurrentForUpdate reads the open segment under the transaction's
// write lock; see SQLiteSessionRepo.LockCurrentForUpdate.
func (r *SQLiteSegmentRepo) LockCurrentForUpdate(ctx context.Context) (*domain.WorkSegment, error) {
	return r.findOpen(ctx)
}

func (r *SQLiteSegmentRepo) LockByIDForUpdate(ctx context.Context, id string) (*domain.WorkSegment, error) {
	return r.GetByID(ctx, id)
}

func (r *SQLiteSegmentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM work_segment WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting work segment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFound(domain.SubjectWorkSegment, id)
	}
	return nil
}

func (r *SQLiteSegmentRepo) findOpen(ctx context.Context) (*domain.WorkSegment, error) {
	query := `SELECT ` + segmentColumns + ` FROM work_segment
		WHERE end_time IS NULL ORDER BY start_time DESC LIMIT 1`
	s, err := r.scanSegment(r.db.QueryRowContext(ctx, query), "")
	if err != nil {
		if errorsIsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

// scanSegment scans a single segment from a *sql.Row.
func (r *SQLiteSegmentRepo) scanSegment(row *sql.Row, id string) (*domain.WorkSegment, error) {
	var s domain.WorkSegment
	var startStr, createdStr, updatedStr string
	var endStr, commentStr sql.NullString

	err := row.Scan(
		&s.ID, &s.WorkSessionID, &s.CategoryID, &s.ActivityID,
		&startStr, &endStr, &commentStr, &createdStr, &updatedStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NotFound(domain.SubjectWorkSegment, id)
		}
		return nil, fmt.Errorf("scanning work segment: %w", err)
	}
	if err := populateSegmentTimes(&s, startStr, endStr, createdStr, updatedStr); err != nil {
		return nil, err
	}
	s.Comment = stringPtr(commentStr)
	return &s, nil
}

// scanSegments scans multiple segments from *sql.Rows.
func (r *SQLiteSegmentRepo) scanSegments(rows *sql.Rows) ([]*domain.WorkSegment, error) {
	var segments []*domain.WorkSegment
	for rows.Next() {
		var s domain.WorkSegment
		var startStr, createdStr, updatedStr string
		var endStr, commentStr sql.NullString

		if err := rows.Scan(
			&s.ID, &s.WorkSessionID, &s.CategoryID, &s.ActivityID,
			&startStr, &endStr, &commentStr, &createdStr, &updatedStr,
		); err != nil {
			return nil, fmt.Errorf("scanning work segment row: %w", err)
		}
		if err := populateSegmentTimes(&s, startStr, endStr, createdStr, updatedStr); err != nil {
			return nil, err
		}
		s.Comment = stringPtr(commentStr)
		segments = append(segments, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work segments: %w", err)
	}
	return segments, nil
}

// populateSegmentTimes fills in parsed time fields after scanning raw
// strings.
func populateSegmentTimes(s *domain.WorkSegment, startStr string, endStr sql.NullString, createdStr, updatedStr string) error {
	var err error
	s.StartTime, err = time.Parse(timeLayout, startStr)
	if err != nil {
		return fmt.Errorf("parsing start_time: %w", err)
	}
	s.EndTime = parseNullableTime(endStr)
	s.CreatedAt, err = time.Parse(timeLayout, createdStr)
	if err != nil {
		return fmt.Errorf("parsing created_at: %w", err)
	}
	s.UpdatedAt, err = time.Parse(timeLayout, updatedStr)
	if err != nil {
		return fmt.Errorf("parsing updated_at: %w", err)
	}
	return nil
}
