package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tay1orr/notebook-loan-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestSchoolDayRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSchoolDayRepository(db)
	rows := sqlmock.NewRows([]string{"date", "is_school_day", "description", "updated_at"}).
		AddRow("2024-09-16", false, "전교휴업", time.Now()).
		AddRow("2024-09-17", true, "", time.Now())
	mock.ExpectQuery("SELECT date, is_school_day").WillReturnRows(rows)

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2024-09-16", entries[0].Date)
	assert.False(t, entries[0].IsSchoolDay)
}

func TestSchoolDayRepositoryReplaceAll(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSchoolDayRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM school_days").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO school_days").
		WithArgs("2024-09-16", false, "휴업일", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO school_days").
		WithArgs("2024-09-17", true, "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	entries := []models.SchoolDayEntry{
		{Date: "2024-09-16", IsSchoolDay: false, Description: "휴업일"},
		{Date: "2024-09-17", IsSchoolDay: true},
	}
	require.NoError(t, repo.ReplaceAll(context.Background(), entries))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSchoolDayRepositoryReplaceAllEmptyClearsTable(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSchoolDayRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM school_days").WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceAll(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSchoolDayRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSchoolDayRepository(db)
	mock.ExpectExec("INSERT INTO school_days").
		WithArgs("2024-09-16", false, "개교기념일", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	entry := &models.SchoolDayEntry{Date: "2024-09-16", IsSchoolDay: false, Description: "개교기념일"}
	require.NoError(t, repo.Upsert(context.Background(), entry))
	assert.False(t, entry.UpdatedAt.IsZero())
}

func TestSchoolDayRepositoryCount(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSchoolDayRepository(db)
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, total)
}
