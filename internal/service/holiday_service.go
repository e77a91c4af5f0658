package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tapovan/attendance-api/internal/models"
	appErrors "github.com/tapovan/attendance-api/pkg/errors"
)

type holidayRepository interface {
	Create(ctx context.Context, date time.Time, reason string) (*models.Holiday, error)
	Delete(ctx context.Context, id int64) error
	ListByYear(ctx context.Context, year int) ([]models.Holiday, error)
}

// HolidayService manages the holiday registry. Holidays are independent of
// attendance data.
type HolidayService struct {
	repo   holidayRepository
	logger *zap.Logger
}

// NewHolidayService constructs the holiday service.
func NewHolidayService(repo holidayRepository, logger *zap.Logger) *HolidayService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HolidayService{repo: repo, logger: logger}
}

// Create registers a holiday.
func (s *HolidayService) Create(ctx context.Context, date, reason string) (*models.Holiday, error) {
	if date == "" || reason == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date and reason are required")
	}
	day, err := parseDate(date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid date, expected YYYY-MM-DD")
	}

	holiday, err := s.repo.Create(ctx, day, reason)
	if err != nil {
		s.logger.Error("holiday create failed", zap.String("date", date), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add holiday")
	}
	return holiday, nil
}

// Delete removes a holiday by id.
func (s *HolidayService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "holiday id is required")
	}
	return s.repo.Delete(ctx, id)
}

// ListByYear returns holidays for a calendar year; zero means current year.
func (s *HolidayService) ListByYear(ctx context.Context, year int) ([]models.Holiday, error) {
	if year == 0 {
		year = time.Now().UTC().Year()
	}
	holidays, err := s.repo.ListByYear(ctx, year)
	if err != nil {
		s.logger.Error("holiday list failed", zap.Int("year", year), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch holidays")
	}
	if holidays == nil {
		holidays = []models.Holiday{}
	}
	return holidays, nil
}
