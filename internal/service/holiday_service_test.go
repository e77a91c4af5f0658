package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapovan/attendance-api/internal/models"
	appErrors "github.com/tapovan/attendance-api/pkg/errors"
)

type holidayRepoStub struct {
	createdDate time.Time
	createErr   error
	deletedID   int64
	deleteErr   error
	listedYear  int
	listResult  []models.Holiday
	listErr     error
}

func (s *holidayRepoStub) Create(ctx context.Context, date time.Time, reason string) (*models.Holiday, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.createdDate = date
	return &models.Holiday{ID: 1, Date: date, Reason: reason}, nil
}

func (s *holidayRepoStub) Delete(ctx context.Context, id int64) error {
	s.deletedID = id
	return s.deleteErr
}

func (s *holidayRepoStub) ListByYear(ctx context.Context, year int) ([]models.Holiday, error) {
	s.listedYear = year
	return s.listResult, s.listErr
}

func TestHolidayServiceCreateNormalizesDate(t *testing.T) {
	repo := &holidayRepoStub{}
	svc := NewHolidayService(repo, nil)

	holiday, err := svc.Create(context.Background(), "2024-08-15", "Independence Day")
	require.NoError(t, err)
	assert.Equal(t, "Independence Day", holiday.Reason)
	assert.Equal(t, time.Date(2024, time.August, 15, 0, 0, 0, 0, time.UTC), repo.createdDate)
}

func TestHolidayServiceCreateValidation(t *testing.T) {
	svc := NewHolidayService(&holidayRepoStub{}, nil)

	cases := []struct {
		name   string
		date   string
		reason string
	}{
		{"missing date", "", "Diwali"},
		{"missing reason", "2024-11-01", ""},
		{"malformed date", "01/11/2024", "Diwali"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.date, tc.reason)
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		})
	}
}

func TestHolidayServiceCreateWrapsRepoError(t *testing.T) {
	svc := NewHolidayService(&holidayRepoStub{createErr: errors.New("db down")}, nil)

	_, err := svc.Create(context.Background(), "2024-08-15", "Independence Day")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestHolidayServiceDeleteRequiresID(t *testing.T) {
	repo := &holidayRepoStub{}
	svc := NewHolidayService(repo, nil)

	err := svc.Delete(context.Background(), 0)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, repo.deletedID)
}

func TestHolidayServiceDeletePropagatesNotFound(t *testing.T) {
	repo := &holidayRepoStub{deleteErr: appErrors.ErrNotFound}
	svc := NewHolidayService(repo, nil)

	err := svc.Delete(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Equal(t, int64(42), repo.deletedID)
}

func TestHolidayServiceListDefaultsToCurrentYear(t *testing.T) {
	repo := &holidayRepoStub{}
	svc := NewHolidayService(repo, nil)

	holidays, err := svc.ListByYear(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, time.Now().UTC().Year(), repo.listedYear)
	assert.NotNil(t, holidays)
	assert.Empty(t, holidays)
}

func TestHolidayServiceListPassesYearThrough(t *testing.T) {
	repo := &holidayRepoStub{listResult: []models.Holiday{{ID: 7, Reason: "Holi"}}}
	svc := NewHolidayService(repo, nil)

	holidays, err := svc.ListByYear(context.Background(), 2023)
	require.NoError(t, err)
	assert.Equal(t, 2023, repo.listedYear)
	require.Len(t, holidays, 1)
	assert.Equal(t, "Holi", holidays[0].Reason)
}
