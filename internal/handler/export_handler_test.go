package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/tay1orr/notebook-loan-api/internal/service"
	appErrors "github.com/tay1orr/notebook-loan-api/pkg/errors"
)

type exportServiceMock struct {
	capturedFormat string
}

func (m *exportServiceMock) Render(format string) (*service.ExportFile, error) {
	m.capturedFormat = format
	if format == "xlsx" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
	return &service.ExportFile{
		Content:     []byte("date,is_school_day,description\n"),
		ContentType: "text/csv",
		Filename:    "school-calendar-20240916.csv",
	}, nil
}

func TestExportHandlerServesAttachment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &exportServiceMock{}
	handler := NewExportHandler(mockSvc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/calendar/export?format=csv", nil)
	c.Request = req

	handler.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "csv", mockSvc.capturedFormat)
	require.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	require.Contains(t, w.Header().Get("Content-Disposition"), "school-calendar-20240916.csv")
}

func TestExportHandlerRejectsUnknownFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewExportHandler(&exportServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/calendar/export?format=xlsx", nil)
	c.Request = req

	handler.Export(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
