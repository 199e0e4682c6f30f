package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tay1orr/notebook-loan-api/internal/models"
)

// BackupRepository persists calendar snapshot history.
type BackupRepository struct {
	db *sqlx.DB
}

// NewBackupRepository constructs a backup repository.
func NewBackupRepository(db *sqlx.DB) *BackupRepository {
	return &BackupRepository{db: db}
}

// Insert stores a new backup record.
func (r *BackupRepository) Insert(ctx context.Context, record *models.BackupRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO backup_records (id, filename, entry_count, status, triggered_by, created_at)
VALUES (:id, :filename, :entry_count, :status, :triggered_by, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("insert backup record: %w", err)
	}
	return nil
}

// SetStatus finalises a backup run.
func (r *BackupRepository) SetStatus(ctx context.Context, id string, status models.BackupStatus, entryCount int) error {
	const query = `UPDATE backup_records SET status = $2, entry_count = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, entryCount); err != nil {
		return fmt.Errorf("update backup record %s: %w", id, err)
	}
	return nil
}

// List returns the most recent backups, newest first.
func (r *BackupRepository) List(ctx context.Context, limit int) ([]models.BackupRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `SELECT id, filename, entry_count, status, triggered_by, created_at
FROM backup_records ORDER BY created_at DESC LIMIT $1`
	var records []models.BackupRecord
	if err := r.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, fmt.Errorf("list backup records: %w", err)
	}
	return records, nil
}

// Latest returns the newest backup record, or nil when none exist.
func (r *BackupRepository) Latest(ctx context.Context) (*models.BackupRecord, error) {
	const query = `SELECT id, filename, entry_count, status, triggered_by, created_at
FROM backup_records ORDER BY created_at DESC LIMIT 1`
	var record models.BackupRecord
	if err := r.db.GetContext(ctx, &record, query); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("latest backup record: %w", err)
	}
	return &record, nil
}

// TrimHistory drops all but the newest keep records.
func (r *BackupRepository) TrimHistory(ctx context.Context, keep int) error {
	if keep <= 0 {
		return nil
	}
	const query = `DELETE FROM backup_records WHERE id NOT IN (
SELECT id FROM backup_records ORDER BY created_at DESC LIMIT $1)`
	if _, err := r.db.ExecContext(ctx, query, keep); err != nil {
		return fmt.Errorf("trim backup history: %w", err)
	}
	return nil
}
