package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tay1orr/notebook-loan-api/internal/dto"
	appErrors "github.com/tay1orr/notebook-loan-api/pkg/errors"
	"github.com/tay1orr/notebook-loan-api/pkg/response"
)

type dueDateService interface {
	NextSchoolDay(ctx context.Context, from *time.Time) dto.DueDateResponse
	Overdue(ctx context.Context, due time.Time, at *time.Time) dto.OverdueResponse
}

// DueDateHandler exposes due date calculation endpoints.
type DueDateHandler struct {
	service dueDateService
}

// NewDueDateHandler constructs the handler.
func NewDueDateHandler(service dueDateService) *DueDateHandler {
	return &DueDateHandler{service: service}
}

// Next godoc
// @Summary Compute the next loan due date
// @Tags DueDates
// @Produce json
// @Param from query string false "Reference timestamp (RFC3339 or YYYY-MM-DD), defaults to now"
// @Success 200 {object} response.Envelope
// @Router /due-dates/next [get]
func (h *DueDateHandler) Next(c *gin.Context) {
	from, err := parseTimestamp(c.Query("from"))
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := h.service.NextSchoolDay(c.Request.Context(), from)
	response.JSON(c, http.StatusOK, resp, nil)
}

// Overdue godoc
// @Summary Assess whether a due date has passed
// @Tags DueDates
// @Produce json
// @Param due query string true "Due date (RFC3339)"
// @Param at query string false "Assessment timestamp (RFC3339), defaults to now"
// @Success 200 {object} response.Envelope
// @Router /due-dates/overdue [get]
func (h *DueDateHandler) Overdue(c *gin.Context) {
	due, err := parseTimestamp(c.Query("due"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if due == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "due query parameter is required"))
		return
	}

	at, err := parseTimestamp(c.Query("at"))
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := h.service.Overdue(c.Request.Context(), *due, at)
	response.JSON(c, http.StatusOK, resp, nil)
}

func parseTimestamp(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return &parsed, nil
	}
	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return &parsed, nil
	}
	return nil, appErrors.Clone(appErrors.ErrValidation, "invalid timestamp, expected RFC3339 or YYYY-MM-DD")
}
