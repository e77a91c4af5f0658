package handler

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/tapovan/attendance-api/internal/dto"
	"github.com/tapovan/attendance-api/internal/models"
	"github.com/tapovan/attendance-api/internal/service"
	appErrors "github.com/tapovan/attendance-api/pkg/errors"
	"github.com/tapovan/attendance-api/pkg/response"
)

type absenceService interface {
	QueryAbsences(ctx context.Context, opts models.AbsenceQueryOptions) ([]models.EnrichedAbsence, error)
	UpdateReason(ctx context.Context, id int64, reason string) (*models.Attendance, error)
}

type absenceExporter interface {
	RenderAbsences(records []models.EnrichedAbsence, format service.ExportFormat) (*service.ExportArtifact, error)
}

// AbsenceHandler exposes the absent-students listing, reason updates and the
// report download.
type AbsenceHandler struct {
	service  absenceService
	exporter absenceExporter
	validate *validator.Validate
}

// NewAbsenceHandler constructs the handler.
func NewAbsenceHandler(svc absenceService, exporter absenceExporter, validate *validator.Validate) *AbsenceHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &AbsenceHandler{service: svc, exporter: exporter, validate: validate}
}

// List godoc
// @Summary List absent students over a date range
// @Tags Absences
// @Produce json
// @Param startDate query int true "Range start (epoch milliseconds)"
// @Param endDate query int true "Range end (epoch milliseconds)"
// @Param standard query string false "Standard filter"
// @Param className query string false "Class filter"
// @Success 200 {array} models.EnrichedAbsence
// @Router /absent-students [get]
func (h *AbsenceHandler) List(c *gin.Context) {
	opts, err := parseAbsenceQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	records, err := h.service.QueryAbsences(c.Request.Context(), *opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, records)
}

// UpdateReason godoc
// @Summary Update the absence reason on a single record
// @Tags Absences
// @Accept json
// @Produce json
// @Param body body dto.UpdateReasonRequest true "Reason update"
// @Success 200 {object} models.Attendance
// @Router /absent-students [post]
func (h *AbsenceHandler) UpdateReason(c *gin.Context) {
	var req dto.UpdateReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(c, validationError(err))
		return
	}

	updated, err := h.service.UpdateReason(c.Request.Context(), *req.StudentID, *req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, updated)
}

// Export godoc
// @Summary Download the absence list as CSV or PDF
// @Tags Absences
// @Produce text/csv
// @Produce application/pdf
// @Param startDate query int true "Range start (epoch milliseconds)"
// @Param endDate query int true "Range end (epoch milliseconds)"
// @Param standard query string false "Standard filter"
// @Param className query string false "Class filter"
// @Param format query string true "csv or pdf"
// @Router /absent-students/export [get]
func (h *AbsenceHandler) Export(c *gin.Context) {
	opts, err := parseAbsenceQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	records, err := h.service.QueryAbsences(c.Request.Context(), *opts)
	if err != nil {
		response.Error(c, err)
		return
	}

	artifact, err := h.exporter.RenderAbsences(records, service.ExportFormat(c.Query("format")))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.FileName))
	c.Data(200, artifact.ContentType, artifact.Payload)
}

func parseAbsenceQuery(c *gin.Context) (*models.AbsenceQueryOptions, error) {
	startRaw := c.Query("startDate")
	endRaw := c.Query("endDate")
	if startRaw == "" || endRaw == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "startDate and endDate are required")
	}
	startMs, err := strconv.ParseInt(startRaw, 10, 64)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "startDate must be an epoch millisecond timestamp")
	}
	endMs, err := strconv.ParseInt(endRaw, 10, 64)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must be an epoch millisecond timestamp")
	}

	return &models.AbsenceQueryOptions{
		DateFrom: time.UnixMilli(startMs).UTC(),
		DateTo:   time.UnixMilli(endMs).UTC(),
		Standard: c.Query("standard"),
		Class:    c.Query("className"),
	}, nil
}
