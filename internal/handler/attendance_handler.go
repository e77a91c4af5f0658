package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/tapovan/attendance-api/internal/dto"
	"github.com/tapovan/attendance-api/internal/models"
	"github.com/tapovan/attendance-api/internal/service"
	appErrors "github.com/tapovan/attendance-api/pkg/errors"
	"github.com/tapovan/attendance-api/pkg/response"
)

type attendanceService interface {
	Record(ctx context.Context, date, standard, class string, entries []service.RecordEntry) error
	QueryMonthly(ctx context.Context, standard, class string, month, year int) ([]models.EnrichedAttendance, error)
	UpdateRecord(ctx context.Context, id int64, status string, reason *string, standard, class string) (*models.Attendance, error)
}

// AttendanceHandler exposes the attendance marking and listing endpoints.
type AttendanceHandler struct {
	service  attendanceService
	validate *validator.Validate
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(svc attendanceService, validate *validator.Validate) *AttendanceHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &AttendanceHandler{service: svc, validate: validate}
}

// Mark godoc
// @Summary Mark attendance for a class on a date
// @Tags Attendance
// @Accept json
// @Produce json
// @Param body body dto.MarkAttendanceRequest true "Attendance batch"
// @Success 200 {object} dto.MarkAttendanceResponse
// @Router /attendance [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req dto.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(c, validationError(err))
		return
	}

	entries := make([]service.RecordEntry, 0, len(req.Attendance))
	for _, entry := range req.Attendance {
		entries = append(entries, service.RecordEntry{StudentID: entry.StudentID, Status: entry.Status})
	}

	if err := h.service.Record(c.Request.Context(), req.Date, req.Standard, req.Class, entries); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.MarkAttendanceResponse{Success: true, Message: "Attendance marked successfully"})
}

// Monthly godoc
// @Summary List a month's attendance for a standard/class pair
// @Tags Attendance
// @Produce json
// @Param standard query string true "Standard"
// @Param class query string true "Class"
// @Param month query int true "Month (0-based)"
// @Param year query int true "Year"
// @Success 200 {array} models.EnrichedAttendance
// @Router /attendance [get]
func (h *AttendanceHandler) Monthly(c *gin.Context) {
	standard := c.Query("standard")
	class := c.Query("class")
	monthRaw := c.Query("month")
	yearRaw := c.Query("year")
	if standard == "" || class == "" || monthRaw == "" || yearRaw == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "standard, class, month and year are required"))
		return
	}
	month, err := strconv.Atoi(monthRaw)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "month must be a number"))
		return
	}
	year, err := strconv.Atoi(yearRaw)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "year must be a number"))
		return
	}

	records, err := h.service.QueryMonthly(c.Request.Context(), standard, class, month, year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, records)
}

// Update godoc
// @Summary Update a single attendance record's status and reason
// @Tags Attendance
// @Accept json
// @Produce json
// @Param body body dto.UpdateAttendanceRequest true "Targeted update"
// @Success 200 {object} map[string]interface{}
// @Router /update-attendance [post]
func (h *AttendanceHandler) Update(c *gin.Context) {
	var req dto.UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(c, validationError(err))
		return
	}

	updated, err := h.service.UpdateRecord(c.Request.Context(), req.ID, req.Status, req.Reason, req.Standard, req.Class)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"message": "Attendance updated successfully",
		"data":    updated,
	})
}
