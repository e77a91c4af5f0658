package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/tapovan/attendance-api/internal/dto"
	"github.com/tapovan/attendance-api/internal/models"
	appErrors "github.com/tapovan/attendance-api/pkg/errors"
	"github.com/tapovan/attendance-api/pkg/response"
)

type holidayService interface {
	Create(ctx context.Context, date, reason string) (*models.Holiday, error)
	Delete(ctx context.Context, id int64) error
	ListByYear(ctx context.Context, year int) ([]models.Holiday, error)
}

// HolidayHandler exposes the holiday registry endpoints.
type HolidayHandler struct {
	service  holidayService
	validate *validator.Validate
}

// NewHolidayHandler constructs the handler.
func NewHolidayHandler(svc holidayService, validate *validator.Validate) *HolidayHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &HolidayHandler{service: svc, validate: validate}
}

// List godoc
// @Summary List holidays for a calendar year
// @Tags Holidays
// @Produce json
// @Param year query int false "Year (defaults to current)"
// @Success 200 {array} models.Holiday
// @Router /holiday [get]
func (h *HolidayHandler) List(c *gin.Context) {
	year := 0
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "year must be a number"))
			return
		}
		year = parsed
	}

	holidays, err := h.service.ListByYear(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, holidays)
}

// Create godoc
// @Summary Add a holiday
// @Tags Holidays
// @Accept json
// @Produce json
// @Param body body dto.CreateHolidayRequest true "Holiday"
// @Success 200 {object} models.Holiday
// @Router /holiday/add [post]
func (h *HolidayHandler) Create(c *gin.Context) {
	var req dto.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(c, validationError(err))
		return
	}

	holiday, err := h.service.Create(c.Request.Context(), req.Date, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, holiday)
}

// Delete godoc
// @Summary Delete a holiday
// @Tags Holidays
// @Accept json
// @Produce json
// @Param body body dto.DeleteHolidayRequest true "Holiday id"
// @Success 200 {object} dto.DeleteHolidayResponse
// @Router /holiday/delete [delete]
func (h *HolidayHandler) Delete(c *gin.Context) {
	var req dto.DeleteHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(c, validationError(err))
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.DeleteHolidayResponse{Success: true})
}
