package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tapovan/attendance-api/internal/models"
	appErrors "github.com/tapovan/attendance-api/pkg/errors"
	"github.com/tapovan/attendance-api/pkg/export"
)

// ExportFormat identifies a supported download format.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportArtifact is a rendered report ready for download.
type ExportArtifact struct {
	FileName    string
	ContentType string
	Payload     []byte
}

// ExportService renders enriched absence listings into downloadable reports.
type ExportService struct {
	csv *export.CSVExporter
	pdf *export.PDFExporter
}

// NewExportService constructs the export service.
func NewExportService() *ExportService {
	return &ExportService{csv: export.NewCSVExporter(), pdf: export.NewPDFExporter()}
}

// RenderAbsences produces a CSV or PDF artifact for the absence list.
func (s *ExportService) RenderAbsences(records []models.EnrichedAbsence, format ExportFormat) (*ExportArtifact, error) {
	dataset := absenceDataset(records)

	switch ExportFormat(strings.ToLower(string(format))) {
	case ExportFormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportArtifact{
			FileName:    fmt.Sprintf("absent-students-%s.csv", uuid.NewString()[:8]),
			ContentType: "text/csv",
			Payload:     payload,
		}, nil
	case ExportFormatPDF:
		payload, err := s.pdf.Render(dataset, "Absent Students")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportArtifact{
			FileName:    fmt.Sprintf("absent-students-%s.pdf", uuid.NewString()[:8]),
			ContentType: "application/pdf",
			Payload:     payload,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

func absenceDataset(records []models.EnrichedAbsence) export.Dataset {
	headers := []string{"Date", "Roll No", "Name", "Standard", "Class", "Reason"}
	rows := make([]map[string]string, 0, len(records))
	for _, record := range records {
		reason := ""
		if record.Reason != nil {
			reason = *record.Reason
		}
		rows = append(rows, map[string]string{
			"Date":     record.Date.Format("2006-01-02"),
			"Roll No":  record.RollNo,
			"Name":     record.Name,
			"Standard": record.Standard,
			"Class":    record.Class,
			"Reason":   reason,
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
