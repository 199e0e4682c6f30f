package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tay1orr/notebook-loan-api/internal/models"
)

func TestBackupRepositoryInsertGeneratesID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewBackupRepository(db)
	mock.ExpectExec("INSERT INTO backup_records").
		WithArgs(sqlmock.AnyArg(), "calendar-20240916.csv", 0, "PENDING", "admin-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	record := &models.BackupRecord{
		Filename:    "calendar-20240916.csv",
		Status:      models.BackupStatusPending,
		TriggeredBy: "admin-1",
	}
	require.NoError(t, repo.Insert(context.Background(), record))
	assert.NotEmpty(t, record.ID)
	assert.False(t, record.CreatedAt.IsZero())
}

func TestBackupRepositorySetStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewBackupRepository(db)
	mock.ExpectExec("UPDATE backup_records").
		WithArgs("backup-1", "COMPLETED", 42).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetStatus(context.Background(), "backup-1", models.BackupStatusCompleted, 42))
}

func TestBackupRepositoryLatestNoRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewBackupRepository(db)
	mock.ExpectQuery("SELECT id, filename").
		WillReturnRows(sqlmock.NewRows([]string{"id", "filename", "entry_count", "status", "triggered_by", "created_at"}))

	record, err := repo.Latest(context.Background())
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestBackupRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewBackupRepository(db)
	rows := sqlmock.NewRows([]string{"id", "filename", "entry_count", "status", "triggered_by", "created_at"}).
		AddRow("backup-2", "calendar-b.csv", 10, "COMPLETED", "admin-1", time.Now()).
		AddRow("backup-1", "calendar-a.csv", 8, "COMPLETED", "admin-1", time.Now().Add(-time.Hour))
	mock.ExpectQuery("SELECT id, filename").
		WithArgs(50).
		WillReturnRows(rows)

	records, err := repo.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "backup-2", records[0].ID)
}

func TestBackupRepositoryTrimHistory(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewBackupRepository(db)
	mock.ExpectExec("DELETE FROM backup_records").
		WithArgs(20).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.TrimHistory(context.Background(), 20))
	require.NoError(t, repo.TrimHistory(context.Background(), 0))
}
