package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tay1orr/notebook-loan-api/internal/service"
	"github.com/tay1orr/notebook-loan-api/pkg/response"
)

type exportService interface {
	Render(format string) (*service.ExportFile, error)
}

// ExportHandler serves calendar downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Export godoc
// @Summary Export the loaded school calendar
// @Tags Calendar
// @Produce text/csv
// @Param format query string false "Format (csv or pdf)"
// @Success 200 {file} file
// @Router /calendar/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	file, err := h.service.Render(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
