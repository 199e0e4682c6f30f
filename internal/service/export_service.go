package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/tay1orr/notebook-loan-api/internal/models"
	appErrors "github.com/tay1orr/notebook-loan-api/pkg/errors"
	"github.com/tay1orr/notebook-loan-api/pkg/export"
)

type calendarSnapshotter interface {
	Entries() []models.SchoolDayEntry
}

// ExportFile is a rendered calendar document ready for download.
type ExportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders the loaded school calendar as CSV or PDF.
type ExportService struct {
	snapshot calendarSnapshotter
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
}

// NewExportService constructs the service.
func NewExportService(snapshot calendarSnapshotter) *ExportService {
	return &ExportService{
		snapshot: snapshot,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
	}
}

// Render produces the calendar in the requested format.
func (s *ExportService) Render(format string) (*ExportFile, error) {
	dataset := calendarDataset(s.snapshot.Entries())
	stamp := time.Now().UTC().Format("20060102")

	switch strings.ToLower(format) {
	case "csv", "":
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportFile{
			Content:     content,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("school-calendar-%s.csv", stamp),
		}, nil
	case "pdf":
		content, err := s.pdf.Render(dataset, "School Calendar")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportFile{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("school-calendar-%s.pdf", stamp),
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format, expected csv or pdf")
	}
}

func calendarDataset(entries []models.SchoolDayEntry) export.Dataset {
	dataset := export.Dataset{
		Headers: []string{"date", "is_school_day", "description"},
		Rows:    make([]map[string]string, 0, len(entries)),
	}
	for _, entry := range entries {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"date":          entry.Date,
			"is_school_day": fmt.Sprintf("%t", entry.IsSchoolDay),
			"description":   entry.Description,
		})
	}
	return dataset
}
