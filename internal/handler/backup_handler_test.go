package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/tay1orr/notebook-loan-api/internal/dto"
	"github.com/tay1orr/notebook-loan-api/internal/middleware"
	"github.com/tay1orr/notebook-loan-api/internal/models"
	appErrors "github.com/tay1orr/notebook-loan-api/pkg/errors"
)

type backupServiceMock struct {
	triggerErr    error
	capturedActor *models.JWTClaims
	resolveToken  string
}

func (m *backupServiceMock) Trigger(ctx context.Context, actor *models.JWTClaims) (*models.BackupRecord, error) {
	if m.triggerErr != nil {
		return nil, m.triggerErr
	}
	m.capturedActor = actor
	return &models.BackupRecord{ID: "backup-1", Status: models.BackupStatusPending}, nil
}

func (m *backupServiceMock) List(ctx context.Context) ([]dto.BackupItem, error) {
	return []dto.BackupItem{
		{BackupRecord: models.BackupRecord{ID: "backup-1", Status: models.BackupStatusCompleted}, DownloadToken: "tok"},
	}, nil
}

func (m *backupServiceMock) Resolve(token string) (string, error) {
	m.resolveToken = token
	if token != "valid" {
		return "", appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}
	return "/tmp/does-not-matter.csv", nil
}

func TestBackupHandlerTrigger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &backupServiceMock{}
	handler := NewBackupHandler(mockSvc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/backups", nil)
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})

	handler.Trigger(c)

	require.Equal(t, http.StatusAccepted, w.Code)
	require.NotNil(t, mockSvc.capturedActor)
	require.Equal(t, "admin-1", mockSvc.capturedActor.UserID)
}

func TestBackupHandlerTriggerRateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBackupHandler(&backupServiceMock{triggerErr: appErrors.ErrRateLimited})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/backups", nil)
	c.Request = req

	handler.Trigger(c)

	require.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestBackupHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBackupHandler(&backupServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/backups", nil)
	c.Request = req

	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"download_token":"tok"`)
}

func TestBackupHandlerDownloadRequiresToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBackupHandler(&backupServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/backups/download", nil)
	c.Request = req

	handler.Download(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBackupHandlerDownloadRejectsBadToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &backupServiceMock{}
	handler := NewBackupHandler(mockSvc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/backups/download?token=forged", nil)
	c.Request = req

	handler.Download(c)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "forged", mockSvc.resolveToken)
}
