package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapovan/attendance-api/internal/models"
	"github.com/tapovan/attendance-api/internal/service"
	appErrors "github.com/tapovan/attendance-api/pkg/errors"
)

// memoryAttendanceRepo implements the store contract in memory, keyed on
// (date, studentId) like the real table's unique constraint.
type memoryAttendanceRepo struct {
	nextID int64
	rows   map[string]*models.Attendance
}

func newMemoryAttendanceRepo() *memoryAttendanceRepo {
	return &memoryAttendanceRepo{nextID: 1, rows: map[string]*models.Attendance{}}
}

func upsertKey(date time.Time, studentID int64) string {
	return fmt.Sprintf("%s|%d", date.Format("2006-01-02"), studentID)
}

func (r *memoryAttendanceRepo) UpsertBatch(ctx context.Context, records []models.Attendance) ([]models.Attendance, error) {
	stored := make([]models.Attendance, 0, len(records))
	for _, rec := range records {
		key := upsertKey(rec.Date, rec.StudentID)
		if existing, ok := r.rows[key]; ok {
			existing.Status = rec.Status
			existing.Standard = rec.Standard
			existing.Class = rec.Class
			stored = append(stored, *existing)
			continue
		}
		rec.ID = r.nextID
		r.nextID++
		row := rec
		r.rows[key] = &row
		stored = append(stored, rec)
	}
	return stored, nil
}

func (r *memoryAttendanceRepo) FindByRange(ctx context.Context, filter models.AttendanceFilter) ([]models.Attendance, error) {
	var result []models.Attendance
	for _, row := range r.rows {
		if filter.DateFrom != nil && row.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && row.Date.After(*filter.DateTo) {
			continue
		}
		if filter.Standard != "" && row.Standard != filter.Standard {
			continue
		}
		if filter.Class != "" && row.Class != filter.Class {
			continue
		}
		if filter.Status != nil && row.Status != *filter.Status {
			continue
		}
		result = append(result, *row)
	}
	return result, nil
}

func (r *memoryAttendanceRepo) FindByID(ctx context.Context, id int64) (*models.Attendance, error) {
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, appErrors.ErrNotFound
}

func (r *memoryAttendanceRepo) UpdateByID(ctx context.Context, id int64, update models.AttendanceUpdate) (*models.Attendance, error) {
	row, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Status != nil {
		row.Status = *update.Status
	}
	if update.Reason != nil {
		row.Reason = update.Reason
	}
	return row, nil
}

type emptyDirectory struct{}

func (emptyDirectory) FetchBatch(ctx context.Context, studentIDs []int64) map[int64]models.Student {
	return map[int64]models.Student{}
}

type noopCache struct{ invalidations int }

func (c *noopCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (c *noopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (c *noopCache) InvalidatePattern(ctx context.Context, pattern string) error {
	c.invalidations++
	return nil
}

func newTestRouter(repo *memoryAttendanceRepo, cache *noopCache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewAttendanceService(repo, emptyDirectory{}, cache, nil, nil)
	attendanceHandler := NewAttendanceHandler(svc, nil)
	absenceHandler := NewAbsenceHandler(svc, service.NewExportService(), nil)

	r := gin.New()
	r.POST("/attendance", attendanceHandler.Mark)
	r.GET("/attendance", attendanceHandler.Monthly)
	r.POST("/update-attendance", attendanceHandler.Update)
	r.GET("/absent-students", absenceHandler.List)
	r.POST("/absent-students", absenceHandler.UpdateReason)
	return r
}

func TestMarkThenListAbsences(t *testing.T) {
	repo := newMemoryAttendanceRepo()
	cache := &noopCache{}
	router := newTestRouter(repo, cache)

	body := []byte(`{"date":"2024-01-05","standard":"10","class":"A","attendance":[{"studentId":1,"status":"A"},{"studentId":2,"status":"P"}]}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/attendance", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, cache.invalidations)

	ts := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC).UnixMilli()
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, fmt.Sprintf("/absent-students?startDate=%d&endDate=%d", ts, ts), nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var absences []models.EnrichedAbsence
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &absences))
	require.Len(t, absences, 1)
	assert.Equal(t, int64(1), absences[0].StudentID)
	assert.Equal(t, "Unknown", absences[0].Name)
	assert.Equal(t, "N/A", absences[0].RollNo)
}

func TestMarkTwiceIsIdempotent(t *testing.T) {
	repo := newMemoryAttendanceRepo()
	router := newTestRouter(repo, &noopCache{})

	body := []byte(`{"date":"2024-01-05","standard":"10","class":"A","attendance":[{"studentId":1,"status":"A"}]}`)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/attendance", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	require.Len(t, repo.rows, 1)
}

func TestMarkOverwritesStatus(t *testing.T) {
	repo := newMemoryAttendanceRepo()
	router := newTestRouter(repo, &noopCache{})

	first := []byte(`{"date":"2024-01-05","standard":"10","class":"A","attendance":[{"studentId":1,"status":"A"}]}`)
	second := []byte(`{"date":"2024-01-05","standard":"10","class":"A","attendance":[{"studentId":1,"status":"P"}]}`)
	for _, body := range [][]byte{first, second} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/attendance", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	require.Len(t, repo.rows, 1)
	for _, row := range repo.rows {
		assert.Equal(t, models.AttendanceStatusPresent, row.Status)
	}
}

func TestUpdateReasonFlow(t *testing.T) {
	repo := newMemoryAttendanceRepo()
	cache := &noopCache{}
	router := newTestRouter(repo, cache)

	body := []byte(`{"date":"2024-01-05","standard":"10","class":"A","attendance":[{"studentId":1,"status":"A"}]}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/attendance", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/absent-students", bytes.NewReader([]byte(`{"studentId":1,"reason":"sick leave"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Reason edits also invalidate the class cache key.
	assert.Equal(t, 2, cache.invalidations)

	record, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, record.Reason)
	assert.Equal(t, "sick leave", *record.Reason)
}
