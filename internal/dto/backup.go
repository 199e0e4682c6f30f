package dto

import "github.com/tay1orr/notebook-loan-api/internal/models"

// BackupItem is a backup record enriched with a signed download token.
type BackupItem struct {
	models.BackupRecord
	DownloadToken string `json:"download_token,omitempty"`
}
