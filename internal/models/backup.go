package models

import "time"

// BackupStatus tracks the lifecycle of a calendar snapshot.
type BackupStatus string

const (
	BackupStatusPending   BackupStatus = "PENDING"
	BackupStatusCompleted BackupStatus = "COMPLETED"
	BackupStatusFailed    BackupStatus = "FAILED"
)

// BackupRecord is one calendar snapshot written to the backup storage dir.
type BackupRecord struct {
	ID          string       `db:"id" json:"id"`
	Filename    string       `db:"filename" json:"filename"`
	EntryCount  int          `db:"entry_count" json:"entry_count"`
	Status      BackupStatus `db:"status" json:"status"`
	TriggeredBy string       `db:"triggered_by" json:"triggered_by"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
}
