package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tay1orr/notebook-loan-api/internal/dto"
	"github.com/tay1orr/notebook-loan-api/internal/models"
	appErrors "github.com/tay1orr/notebook-loan-api/pkg/errors"
	"github.com/tay1orr/notebook-loan-api/pkg/response"
)

type backupService interface {
	Trigger(ctx context.Context, actor *models.JWTClaims) (*models.BackupRecord, error)
	List(ctx context.Context) ([]dto.BackupItem, error)
	Resolve(token string) (string, error)
}

// BackupHandler exposes calendar backup endpoints.
type BackupHandler struct {
	service backupService
}

// NewBackupHandler constructs the handler.
func NewBackupHandler(service backupService) *BackupHandler {
	return &BackupHandler{service: service}
}

// Trigger godoc
// @Summary Trigger a calendar backup
// @Tags Backups
// @Produce json
// @Success 202 {object} response.Envelope
// @Router /backups [post]
func (h *BackupHandler) Trigger(c *gin.Context) {
	record, err := h.service.Trigger(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, record, nil)
}

// List godoc
// @Summary List backup history
// @Tags Backups
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /backups [get]
func (h *BackupHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Download godoc
// @Summary Download a backup file via signed token
// @Tags Backups
// @Produce text/csv
// @Param token query string true "Signed download token"
// @Success 200 {file} file
// @Router /backups/download [get]
func (h *BackupHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token query parameter is required"))
		return
	}

	path, err := h.service.Resolve(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.FileAttachment(path, "")
}
