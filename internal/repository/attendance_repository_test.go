package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapovan/attendance-api/internal/models"
	appErrors "github.com/tapovan/attendance-api/pkg/errors"
)

func newAttendanceMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func attendanceRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "date", "student_id", "standard", "class", "status", "reason", "created_at", "updated_at"})
}

func TestAttendanceRepositoryUpsertBatchCommits(t *testing.T) {
	db, mock, cleanup := newAttendanceMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	day := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO attendance")).
		WithArgs(day, int64(1), "10", "A", models.AttendanceStatusAbsent, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(attendanceRows().AddRow(int64(11), day, int64(1), "10", "A", "A", nil, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO attendance")).
		WithArgs(day, int64(2), "10", "A", models.AttendanceStatusPresent, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(attendanceRows().AddRow(int64(12), day, int64(2), "10", "A", "P", nil, now, now))
	mock.ExpectCommit()

	stored, err := repo.UpsertBatch(context.Background(), []models.Attendance{
		{Date: day, StudentID: 1, Standard: "10", Class: "A", Status: models.AttendanceStatusAbsent},
		{Date: day, StudentID: 2, Standard: "10", Class: "A", Status: models.AttendanceStatusPresent},
	})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, int64(11), stored[0].ID)
	assert.Equal(t, int64(12), stored[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryUpsertBatchRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newAttendanceMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	day := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO attendance")).
		WithArgs(day, int64(1), "10", "A", models.AttendanceStatusAbsent, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(attendanceRows().AddRow(int64(11), day, int64(1), "10", "A", "A", nil, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO attendance")).
		WithArgs(day, int64(2), "10", "A", models.AttendanceStatusPresent, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := repo.UpsertBatch(context.Background(), []models.Attendance{
		{Date: day, StudentID: 1, Standard: "10", Class: "A", Status: models.AttendanceStatusAbsent},
		{Date: day, StudentID: 2, Standard: "10", Class: "A", Status: models.AttendanceStatusPresent},
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryUpsertBatchEmpty(t *testing.T) {
	db, mock, cleanup := newAttendanceMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	stored, err := repo.UpsertBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, stored)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryFindByRangeFilters(t *testing.T) {
	db, mock, cleanup := newAttendanceMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	absent := models.AttendanceStatusAbsent
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM attendance WHERE 1=1 AND date >= $1 AND date <= $2 AND standard = $3 AND class = $4 AND status = $5")).
		WithArgs(from, to, "10", "A", absent).
		WillReturnRows(attendanceRows().AddRow(int64(1), from, int64(7), "10", "A", "A", nil, now, now))

	rows, err := repo.FindByRange(context.Background(), models.AttendanceFilter{
		DateFrom: &from,
		DateTo:   &to,
		Standard: "10",
		Class:    "A",
		Status:   &absent,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(7), rows[0].StudentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryUpdateByIDNotFound(t *testing.T) {
	db, mock, cleanup := newAttendanceMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	status := models.AttendanceStatusPresent
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE attendance SET")).
		WithArgs(status, sqlmock.AnyArg(), int64(99)).
		WillReturnRows(attendanceRows())

	_, err := repo.UpdateByID(context.Background(), 99, models.AttendanceUpdate{Status: &status})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryUpdateByIDPartial(t *testing.T) {
	db, mock, cleanup := newAttendanceMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	day := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()
	reason := "sick leave"

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE attendance SET reason = $1, updated_at = $2 WHERE id = $3")).
		WithArgs(reason, sqlmock.AnyArg(), int64(5)).
		WillReturnRows(attendanceRows().AddRow(int64(5), day, int64(3), "10", "A", "A", reason, now, now))

	updated, err := repo.UpdateByID(context.Background(), 5, models.AttendanceUpdate{Reason: &reason})
	require.NoError(t, err)
	require.NotNil(t, updated.Reason)
	assert.Equal(t, reason, *updated.Reason)
	assert.Equal(t, models.AttendanceStatusAbsent, updated.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
