package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tapovan/attendance-api/internal/models"
	appErrors "github.com/tapovan/attendance-api/pkg/errors"
)

type attendanceRepository interface {
	UpsertBatch(ctx context.Context, records []models.Attendance) ([]models.Attendance, error)
	FindByRange(ctx context.Context, filter models.AttendanceFilter) ([]models.Attendance, error)
	FindByID(ctx context.Context, id int64) (*models.Attendance, error)
	UpdateByID(ctx context.Context, id int64, update models.AttendanceUpdate) (*models.Attendance, error)
}

type studentDirectory interface {
	FetchBatch(ctx context.Context, studentIDs []int64) map[int64]models.Student
}

type attendanceCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	InvalidatePattern(ctx context.Context, pattern string) error
}

// AttendanceService is the reconciliation pipeline: it validates and
// normalizes write batches, upserts them atomically, invalidates the affected
// cache key after commit, and on reads merges attendance rows with
// directory-sourced identity data into deterministically sorted results.
type AttendanceService struct {
	repo      attendanceRepository
	directory studentDirectory
	cache     attendanceCache
	metrics   *MetricsService
	logger    *zap.Logger
	collator  *collate.Collator
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo attendanceRepository, directory studentDirectory, cache attendanceCache, metrics *MetricsService, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{
		repo:      repo,
		directory: directory,
		cache:     cache,
		metrics:   metrics,
		logger:    logger,
		collator:  collate.New(language.English),
	}
}

// RecordEntry is one student's status within a marking batch.
type RecordEntry struct {
	StudentID int64
	Status    string
}

// Record upserts a batch of attendance rows sharing one date/standard/class.
// The batch is all-or-nothing; the class's cached month windows are
// invalidated exactly once, strictly after the transaction commits.
func (s *AttendanceService) Record(ctx context.Context, date, standard, class string, entries []RecordEntry) error {
	if date == "" || standard == "" || class == "" {
		return appErrors.Clone(appErrors.ErrValidation, "date, standard and class are required")
	}
	day, err := parseDate(date)
	if err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "invalid date, expected YYYY-MM-DD")
	}

	records := make([]models.Attendance, 0, len(entries))
	for _, entry := range entries {
		status := models.AttendanceStatus(strings.ToUpper(entry.Status))
		if !status.Valid() {
			return appErrors.Clone(appErrors.ErrValidation, "status must be P or A")
		}
		if entry.StudentID <= 0 {
			return appErrors.Clone(appErrors.ErrValidation, "studentId is required for every entry")
		}
		records = append(records, models.Attendance{
			Date:      day,
			StudentID: entry.StudentID,
			Standard:  standard,
			Class:     class,
			Status:    status,
		})
	}

	start := time.Now()
	_, err = s.repo.UpsertBatch(ctx, records)
	s.metrics.ObserveDBQuery("attendance_upsert", time.Since(start))
	if err != nil {
		s.logger.Error("attendance batch failed",
			zap.String("date", date),
			zap.String("standard", standard),
			zap.String("class", class),
			zap.Int("entries", len(records)),
			zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark attendance")
	}

	s.invalidate(ctx, standard, class)
	return nil
}

// QueryAbsences lists absent students inside the inclusive date window,
// enriched with directory identity data and sorted by standard then class.
func (s *AttendanceService) QueryAbsences(ctx context.Context, opts models.AbsenceQueryOptions) ([]models.EnrichedAbsence, error) {
	if opts.DateFrom.IsZero() || opts.DateTo.IsZero() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "startDate and endDate are required")
	}

	absent := models.AttendanceStatusAbsent
	start := time.Now()
	rows, err := s.repo.FindByRange(ctx, models.AttendanceFilter{
		DateFrom: &opts.DateFrom,
		DateTo:   &opts.DateTo,
		Standard: opts.Standard,
		Class:    opts.Class,
		Status:   &absent,
	})
	s.metrics.ObserveDBQuery("absence_range", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch absent students")
	}

	students := s.directory.FetchBatch(ctx, distinctStudentIDs(rows))

	result := make([]models.EnrichedAbsence, 0, len(rows))
	for _, row := range rows {
		enriched := models.EnrichedAbsence{
			ID:        row.ID,
			Date:      row.Date,
			StudentID: row.StudentID,
			RollNo:    models.UnknownRollNo,
			Name:      models.UnknownName,
			Standard:  models.UnknownStandard,
			Class:     models.UnknownClass,
			Reason:    row.Reason,
		}
		if student, ok := students[row.StudentID]; ok {
			if student.RollNo != "" {
				enriched.RollNo = student.RollNo
			}
			if student.Name != "" {
				enriched.Name = student.Name
			}
			if student.CurrentStandard != "" {
				enriched.Standard = student.CurrentStandard
			}
			if student.CurrentClass != "" {
				enriched.Class = student.CurrentClass
			}
		}
		result = append(result, enriched)
	}

	s.sortAbsences(result)
	return result, nil
}

// QueryMonthly returns the month's attendance for a standard/class pair,
// enriched with student names and roll numbers. The window follows the legacy
// contract: a zero-based month, spanning the 2nd of that month through the
// 1st of the next, both at UTC midnight.
func (s *AttendanceService) QueryMonthly(ctx context.Context, standard, class string, month, year int) ([]models.EnrichedAttendance, error) {
	if standard == "" || class == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "standard and class are required")
	}
	if month < 0 || month > 11 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "month must be between 0 and 11")
	}

	start := time.Date(year, time.Month(month+1), 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.Month(month+2), 1, 0, 0, 0, 0, time.UTC)

	cacheKey := MonthlyAttendanceCacheKey(standard, class, month, year)
	var cached []models.EnrichedAttendance
	if s.cache != nil {
		if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
			return cached, nil
		}
	}

	queryStart := time.Now()
	rows, err := s.repo.FindByRange(ctx, models.AttendanceFilter{
		DateFrom: &start,
		DateTo:   &end,
		Standard: standard,
		Class:    class,
	})
	s.metrics.ObserveDBQuery("attendance_month", time.Since(queryStart))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch attendance")
	}

	students := s.directory.FetchBatch(ctx, distinctStudentIDs(rows))

	result := make([]models.EnrichedAttendance, 0, len(rows))
	for _, row := range rows {
		merged := models.EnrichedAttendance{
			ID:          row.ID,
			StudentID:   row.StudentID,
			StudentName: "Unknown Student",
			RollNo:      "Unknown Roll No",
			Date:        row.Date,
			Status:      row.Status,
			Reason:      row.Reason,
		}
		if student, ok := students[row.StudentID]; ok {
			if student.Name != "" {
				merged.StudentName = student.Name
			}
			if student.RollNo != "" {
				merged.RollNo = student.RollNo
			}
		}
		result = append(result, merged)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, result, 0)
	}
	return result, nil
}

// UpdateRecord applies a targeted status/reason update by record id and
// invalidates the class's cached month windows afterwards.
func (s *AttendanceService) UpdateRecord(ctx context.Context, id int64, status string, reason *string, standard, class string) (*models.Attendance, error) {
	if id <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	normalized := models.AttendanceStatus(strings.ToUpper(status))
	if !normalized.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be P or A")
	}

	updated, err := s.repo.UpdateByID(ctx, id, models.AttendanceUpdate{Status: &normalized, Reason: reason})
	if err != nil {
		return nil, err
	}

	// Prefer the caller-provided key context; fall back to the stored row.
	if standard == "" {
		standard = updated.Standard
	}
	if class == "" {
		class = updated.Class
	}
	s.invalidate(ctx, standard, class)
	return updated, nil
}

// UpdateReason sets the absence reason on a single record. The invalidation
// pattern is derived from the stored row so reason edits do not serve stale
// reads.
func (s *AttendanceService) UpdateReason(ctx context.Context, id int64, reason string) (*models.Attendance, error) {
	if id <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "studentId is required")
	}

	updated, err := s.repo.UpdateByID(ctx, id, models.AttendanceUpdate{Reason: &reason})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, updated.Standard, updated.Class)
	return updated, nil
}

func (s *AttendanceService) invalidate(ctx context.Context, standard, class string) {
	if s.cache == nil {
		return
	}
	pattern := AttendanceCachePattern(standard, class)
	if err := s.cache.InvalidatePattern(ctx, pattern); err != nil {
		// Stale entries expire via TTL; the write already committed.
		s.logger.Warn("cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
	}
}

// sortAbsences orders by standard (numeric when both sides parse as numbers,
// lexical otherwise) and then by class using locale-aware collation. The sort
// is stable so full ties keep their retrieval order.
func (s *AttendanceService) sortAbsences(records []models.EnrichedAbsence) {
	sort.SliceStable(records, func(i, j int) bool {
		if cmp := compareStandards(records[i].Standard, records[j].Standard); cmp != 0 {
			return cmp < 0
		}
		return s.collator.CompareString(records[i].Class, records[j].Class) < 0
	})
}

func compareStandards(a, b string) int {
	numA, errA := strconv.ParseFloat(a, 64)
	numB, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case numA < numB:
			return -1
		case numA > numB:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

func distinctStudentIDs(rows []models.Attendance) []int64 {
	seen := make(map[int64]struct{}, len(rows))
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.StudentID]; ok {
			continue
		}
		seen[row.StudentID] = struct{}{}
		ids = append(ids, row.StudentID)
	}
	return ids
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	_, err := time.Parse("2006-01-02", raw)
	return time.Time{}, err
}
