package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tapovan/attendance-api/internal/models"
	appErrors "github.com/tapovan/attendance-api/pkg/errors"
)

// HolidayRepository persists holiday dates.
type HolidayRepository struct {
	db *sqlx.DB
}

// NewHolidayRepository constructs a holiday repository.
func NewHolidayRepository(db *sqlx.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// Create inserts a holiday and returns the stored row.
func (r *HolidayRepository) Create(ctx context.Context, date time.Time, reason string) (*models.Holiday, error) {
	query := `INSERT INTO holidays (date, reason, created_at)
VALUES ($1, $2, $3)
RETURNING id, date, reason, created_at`
	var row models.Holiday
	if err := r.db.GetContext(ctx, &row, query, date, reason, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("create holiday: %w", err)
	}
	return &row, nil
}

// Delete removes a holiday by id; NotFound when no row matched.
func (r *HolidayRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete holiday %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete holiday %d: %w", id, err)
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("holiday %d not found", id))
	}
	return nil
}

// ListByYear returns holidays inside the inclusive calendar year window.
func (r *HolidayRepository) ListByYear(ctx context.Context, year int) ([]models.Holiday, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	query := `SELECT id, date, reason, created_at FROM holidays
WHERE date >= $1 AND date <= $2 ORDER BY date`
	var rows []models.Holiday
	if err := r.db.SelectContext(ctx, &rows, query, start, end); err != nil {
		return nil, fmt.Errorf("list holidays for %d: %w", year, err)
	}
	return rows, nil
}
