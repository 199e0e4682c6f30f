package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tay1orr/notebook-loan-api/internal/dto"
	"github.com/tay1orr/notebook-loan-api/internal/models"
	appErrors "github.com/tay1orr/notebook-loan-api/pkg/errors"
	"github.com/tay1orr/notebook-loan-api/pkg/response"
)

// Calendar uploads larger than 1 MiB are truncated at read time.
const maxImportBytes = 1 << 20

type calendarService interface {
	ListDays(ctx context.Context, page, pageSize int) ([]models.SchoolDayEntry, *models.Pagination, error)
	SetDay(ctx context.Context, date string, req dto.UpsertSchoolDayRequest) (*models.SchoolDayEntry, error)
	Import(ctx context.Context, format, content string, actor *models.JWTClaims) (*dto.ImportResult, error)
}

// CalendarHandler exposes the school calendar endpoints.
type CalendarHandler struct {
	service calendarService
}

// NewCalendarHandler constructs the handler.
func NewCalendarHandler(service calendarService) *CalendarHandler {
	return &CalendarHandler{service: service}
}

// ListDays godoc
// @Summary List school day overrides
// @Tags Calendar
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /calendar/days [get]
func (h *CalendarHandler) ListDays(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))

	entries, pagination, err := h.service.ListDays(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, pagination)
}

// UpsertDay godoc
// @Summary Set a single school day override
// @Tags Calendar
// @Accept json
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param payload body dto.UpsertSchoolDayRequest true "Override"
// @Success 200 {object} response.Envelope
// @Router /calendar/days/{date} [put]
func (h *CalendarHandler) UpsertDay(c *gin.Context) {
	var req dto.UpsertSchoolDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}

	entry, err := h.service.SetDay(c.Request.Context(), c.Param("date"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// Import godoc
// @Summary Import a school calendar file
// @Tags Calendar
// @Accept plain
// @Produce json
// @Param format query string false "Format (ics or csv, sniffed when omitted)"
// @Success 200 {object} response.Envelope
// @Router /calendar/import [post]
func (h *CalendarHandler) Import(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "failed to read upload"))
		return
	}

	result, err := h.service.Import(c.Request.Context(), c.Query("format"), string(body), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
