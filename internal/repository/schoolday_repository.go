package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tay1orr/notebook-loan-api/internal/models"
)

// SchoolDayRepository persists calendar overrides so the in-memory calendar
// can be rebuilt after a cold start.
type SchoolDayRepository struct {
	db *sqlx.DB
}

// NewSchoolDayRepository constructs a school-day repository.
func NewSchoolDayRepository(db *sqlx.DB) *SchoolDayRepository {
	return &SchoolDayRepository{db: db}
}

// List returns all stored entries ordered by date.
func (r *SchoolDayRepository) List(ctx context.Context) ([]models.SchoolDayEntry, error) {
	const query = `SELECT date, is_school_day, description, updated_at FROM school_days ORDER BY date ASC`
	var entries []models.SchoolDayEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list school days: %w", err)
	}
	return entries, nil
}

// ReplaceAll clears the table and inserts the given entries in one
// transaction, mirroring the bulk-replace semantics of a calendar import.
func (r *SchoolDayRepository) ReplaceAll(ctx context.Context, entries []models.SchoolDayEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace school days: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM school_days"); err != nil {
		return fmt.Errorf("clear school days: %w", err)
	}

	const query = `INSERT INTO school_days (date, is_school_day, description, updated_at)
VALUES (:date, :is_school_day, :description, :updated_at)
ON CONFLICT (date) DO UPDATE SET is_school_day = EXCLUDED.is_school_day, description = EXCLUDED.description, updated_at = EXCLUDED.updated_at`
	now := time.Now().UTC()
	for _, entry := range entries {
		entry.UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, query, entry); err != nil {
			return fmt.Errorf("insert school day %s: %w", entry.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace school days: %w", err)
	}
	return nil
}

// Upsert stores a single entry, last write wins.
func (r *SchoolDayRepository) Upsert(ctx context.Context, entry *models.SchoolDayEntry) error {
	entry.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO school_days (date, is_school_day, description, updated_at)
VALUES (:date, :is_school_day, :description, :updated_at)
ON CONFLICT (date) DO UPDATE SET is_school_day = EXCLUDED.is_school_day, description = EXCLUDED.description, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("upsert school day %s: %w", entry.Date, err)
	}
	return nil
}

// Count returns the number of stored entries.
func (r *SchoolDayRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM school_days"); err != nil {
		return 0, fmt.Errorf("count school days: %w", err)
	}
	return total, nil
}
