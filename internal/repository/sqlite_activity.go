package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mrfop/worktime/internal/db"
	"github.com/mrfop/worktime/internal/domain"
)

// SQLiteActivityRepo implements ActivityRepo using a SQLite database.
type SQLiteActivityRepo struct {
	db db.DBTX
}

// NewSQLiteActivityRepo creates a new SQLiteActivityRepo.
func NewSQLiteActivityRepo(dbtx db.DBTX) *SQLiteActivityRepo {
	return &SQLiteActivityRepo{db: dbtx}
}

func (r *SQLiteActivityRepo) Create(ctx context.Context, a *domain.Activity) error {
	now := formatTime(time.Now())
	query := `INSERT INTO activity (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, a.ID, a.Name, now, now); err != nil {
		return fmt.Errorf("inserting activity: %w", err)
	}
	return nil
}

func (r *SQLiteActivityRepo) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, created_at, updated_at FROM activity WHERE id = ?`, id)
	var a domain.Activity
	var createdStr, updatedStr string
	if err := row.Scan(&a.ID, &a.Name, &createdStr, &updatedStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NotFound(domain.SubjectActivity, id)
		}
		return nil, fmt.Errorf("scanning activity: %w", err)
	}
	if err := parseAuditTimes(&a.CreatedAt, &a.UpdatedAt, createdStr, updatedStr); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *SQLiteActivityRepo) FindAll(ctx context.Context) ([]*domain.Activity, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at, updated_at FROM activity ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer rows.Close()

	var activities []*domain.Activity
	for rows.Next() {
		var a domain.Activity
		var createdStr, updatedStr string
		if err := rows.Scan(&a.ID, &a.Name, &createdStr, &updatedStr); err != nil {
			return nil, fmt.Errorf("scanning activity row: %w", err)
		}
		if err := parseAuditTimes(&a.CreatedAt, &a.UpdatedAt, createdStr, updatedStr); err != nil {
			return nil, err
		}
		activities = append(activities, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}
	return activities, nil
}

func (r *SQLiteActivityRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activity WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting activity: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFound(domain.SubjectActivity, id)
	}
	return nil
}
