package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mrfop/worktime/internal/db"
	"github.com/mrfop/worktime/internal/domain"
)

// SQLiteCategoryRepo implements CategoryRepo using a SQLite database.
type SQLiteCategoryRepo struct {
	db db.DBTX
}

// NewSQLiteCategoryRepo creates a new SQLiteCategoryRepo.
func NewSQLiteCategoryRepo(dbtx db.DBTX) *SQLiteCategoryRepo {
	return &SQLiteCategoryRepo{db: dbtx}
}

func (r *SQLiteCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	now := formatTime(time.Now())
	query := `INSERT INTO category (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, c.ID, c.Name, now, now); err != nil {
		return fmt.Errorf("inserting category: %w", err)
	}
	return nil
}

func (r *SQLiteCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, created_at, updated_at FROM category WHERE id = ?`, id)
	var c domain.Category
	var createdStr, updatedStr string
	if err := row.Scan(&c.ID, &c.Name, &createdStr, &updatedStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NotFound(domain.SubjectCategory, id)
		}
		return nil, fmt.Errorf("scanning category: %w", err)
	}
	if err := parseAuditTimes(&c.CreatedAt, &c.UpdatedAt, createdStr, updatedStr); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *SQLiteCategoryRepo) FindAll(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at, updated_at FROM category ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var c domain.Category
		var createdStr, updatedStr string
		if err := rows.Scan(&c.ID, &c.Name, &createdStr, &updatedStr); err != nil {
			return nil, fmt.Errorf("scanning category row: %w", err)
		}
		if err := parseAuditTimes(&c.CreatedAt, &c.UpdatedAt, createdStr, updatedStr); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return categories, nil
}

func (r *SQLiteCategoryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM category WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFound(domain.SubjectCategory, id)
	}
	return nil
}

// parseAuditTimes parses the created_at/updated_at pair shared by the
// taxonomy tables.
func parseAuditTimes(created, updated *time.Time, createdStr, updatedStr string) error {
	var err error
	*created, err = time.Parse(timeLayout, createdStr)
	if err != nil {
		return fmt.Errorf("parsing created_at: %w", err)
	}
	*updated, err = time.Parse(timeLayout, updatedStr)
	if err != nil {
		return fmt.Errorf("parsing updated_at: %w", err)
	}
	return nil
}
