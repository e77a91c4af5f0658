package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tapovan/attendance-api/internal/models"
	appErrors "github.com/tapovan/attendance-api/pkg/errors"
)

// AttendanceRepository handles persistence for attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// UpsertBatch applies every record in one transaction keyed on
// (date, student_id). Conflicting rows get status/standard/class updated in
// place; id and reason are preserved. Any failure rolls the whole batch back.
func (r *AttendanceRepository) UpsertBatch(ctx context.Context, records []models.Attendance) ([]models.Attendance, error) {
	if len(records) == 0 {
		return nil, nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin attendance batch: %w", err)
	}
	commit := false
	defer func() {
		if !commit {
			tx.Rollback()
		}
	}()

	query := `INSERT INTO attendance (date, student_id, standard, class, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (date, student_id)
DO UPDATE SET status = EXCLUDED.status, standard = EXCLUDED.standard, class = EXCLUDED.class, updated_at = EXCLUDED.updated_at
RETURNING id, date, student_id, standard, class, status, reason, created_at, updated_at`

	now := time.Now().UTC()
	stored := make([]models.Attendance, 0, len(records))
	for i := range records {
		rec := records[i]
		var row models.Attendance
		if err := tx.GetContext(ctx, &row, query, rec.Date, rec.StudentID, rec.Standard, rec.Class, rec.Status, now, now); err != nil {
			return nil, fmt.Errorf("upsert attendance for student %d on %s: %w", rec.StudentID, rec.Date.Format("2006-01-02"), err)
		}
		stored = append(stored, row)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit attendance batch: %w", err)
	}
	commit = true
	return stored, nil
}

// FindByRange returns attendance rows inside the inclusive date window with
// optional equality filters. No ordering is guaranteed.
func (r *AttendanceRepository) FindByRange(ctx context.Context, filter models.AttendanceFilter) ([]models.Attendance, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("date >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("date <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}
	if filter.Standard != "" {
		where = append(where, fmt.Sprintf("standard = $%d", len(args)+1))
		args = append(args, filter.Standard)
	}
	if filter.Class != "" {
		where = append(where, fmt.Sprintf("class = $%d", len(args)+1))
		args = append(args, filter.Class)
	}
	if filter.Status != nil && filter.Status.Valid() {
		where = append(where, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}

	query := fmt.Sprintf(`SELECT id, date, student_id, standard, class, status, reason, created_at, updated_at
FROM attendance WHERE %s`, strings.Join(where, " AND "))

	var rows []models.Attendance
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return rows, nil
}

// FindByID returns a single attendance row.
func (r *AttendanceRepository) FindByID(ctx context.Context, id int64) (*models.Attendance, error) {
	query := `SELECT id, date, student_id, standard, class, status, reason, created_at, updated_at
FROM attendance WHERE id = $1`
	var row models.Attendance
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("attendance record %d not found", id))
		}
		return nil, fmt.Errorf("find attendance %d: %w", id, err)
	}
	return &row, nil
}

// UpdateByID applies a targeted partial update to status and/or reason.
func (r *AttendanceRepository) UpdateByID(ctx context.Context, id int64, update models.AttendanceUpdate) (*models.Attendance, error) {
	set := []string{}
	args := []interface{}{}
	if update.Status != nil {
		set = append(set, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *update.Status)
	}
	if update.Reason != nil {
		set = append(set, fmt.Sprintf("reason = $%d", len(args)+1))
		args = append(args, *update.Reason)
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}
	set = append(set, fmt.Sprintf("updated_at = $%d", len(args)+1))
	args = append(args, time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE attendance SET %s WHERE id = $%d
RETURNING id, date, student_id, standard, class, status, reason, created_at, updated_at`, strings.Join(set, ", "), len(args))

	var row models.Attendance
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("attendance record %d not found", id))
		}
		return nil, fmt.Errorf("update attendance %d: %w", id, err)
	}
	return &row, nil
}
