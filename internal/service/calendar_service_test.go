package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tay1orr/notebook-loan-api/internal/dto"
	"github.com/tay1orr/notebook-loan-api/internal/models"
	"github.com/tay1orr/notebook-loan-api/internal/schoolday"
	appErrors "github.com/tay1orr/notebook-loan-api/pkg/errors"
)

type schoolDayStoreStub struct {
	listResp     []models.SchoolDayEntry
	listErr      error
	replaced     []models.SchoolDayEntry
	replaceCalls int
	upserted     []models.SchoolDayEntry
}

func (s *schoolDayStoreStub) List(ctx context.Context) ([]models.SchoolDayEntry, error) {
	return s.listResp, s.listErr
}

func (s *schoolDayStoreStub) ReplaceAll(ctx context.Context, entries []models.SchoolDayEntry) error {
	s.replaced = entries
	s.replaceCalls++
	return nil
}

func (s *schoolDayStoreStub) Upsert(ctx context.Context, entry *models.SchoolDayEntry) error {
	s.upserted = append(s.upserted, *entry)
	return nil
}

func newCalendarServiceForTest(store *schoolDayStoreStub) (*CalendarService, *schoolday.Calendar) {
	cal := schoolday.NewCalendar()
	svc := NewCalendarService(store, cal, nil, nil, nil, nil)
	return svc, cal
}

func TestCalendarServiceWarmLoadsEntries(t *testing.T) {
	store := &schoolDayStoreStub{listResp: []models.SchoolDayEntry{
		{Date: "2024-09-16", IsSchoolDay: false, Description: "전교휴업"},
	}}
	svc, cal := newCalendarServiceForTest(store)

	require.NoError(t, svc.Warm(context.Background()))
	assert.True(t, cal.Enabled())
	assert.Equal(t, 1, cal.Len())
}

func TestCalendarServiceWarmEmptyKeepsDisabled(t *testing.T) {
	svc, cal := newCalendarServiceForTest(&schoolDayStoreStub{})

	require.NoError(t, svc.Warm(context.Background()))
	assert.False(t, cal.Enabled())
}

func TestCalendarServiceImportICS(t *testing.T) {
	store := &schoolDayStoreStub{}
	svc, cal := newCalendarServiceForTest(store)

	content := "BEGIN:VEVENT\nDTSTART:20240916\nSUMMARY:휴업일\nEND:VEVENT\n"
	result, err := svc.Import(context.Background(), "ics", content, &models.JWTClaims{UserID: "admin-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Loaded)
	assert.Equal(t, 1, result.Report.Parsed)
	require.Len(t, store.replaced, 1)
	assert.Equal(t, "2024-09-16", store.replaced[0].Date)
	assert.True(t, cal.Enabled())
}

func TestCalendarServiceImportSniffsFormat(t *testing.T) {
	store := &schoolDayStoreStub{}
	svc, _ := newCalendarServiceForTest(store)

	result, err := svc.Import(context.Background(), "", "date,is_school_day,description\n2024-09-16,false,휴업\n", nil)
	require.NoError(t, err)
	assert.Equal(t, schoolday.FormatCSV, result.Report.Format)

	result, err = svc.Import(context.Background(), "", "BEGIN:VCALENDAR\nBEGIN:VEVENT\nDTSTART:20240916\nEND:VEVENT\n", nil)
	require.NoError(t, err)
	assert.Equal(t, schoolday.FormatICS, result.Report.Format)
}

func TestCalendarServiceImportReplacesPriorState(t *testing.T) {
	store := &schoolDayStoreStub{}
	svc, cal := newCalendarServiceForTest(store)

	_, err := svc.Import(context.Background(), "csv", "date,is_school_day,description\n2024-09-16,false,A\n", nil)
	require.NoError(t, err)
	_, err = svc.Import(context.Background(), "csv", "date,is_school_day,description\n2024-09-17,false,B\n", nil)
	require.NoError(t, err)

	assert.Equal(t, 2, store.replaceCalls)
	assert.Equal(t, 1, cal.Len())
	_, ok := cal.Lookup(time.Date(2024, time.September, 16, 0, 0, 0, 0, schoolday.DefaultLocation))
	assert.False(t, ok)
}

func TestCalendarServiceImportRejectsEmptyAndUnknown(t *testing.T) {
	svc, _ := newCalendarServiceForTest(&schoolDayStoreStub{})

	_, err := svc.Import(context.Background(), "csv", "   \n", nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Import(context.Background(), "xlsx", "data", nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCalendarServiceSetDay(t *testing.T) {
	store := &schoolDayStoreStub{}
	svc, cal := newCalendarServiceForTest(store)

	isSchoolDay := false
	entry, err := svc.SetDay(context.Background(), "2024-09-16", dto.UpsertSchoolDayRequest{
		IsSchoolDay: &isSchoolDay,
		Description: "개교기념일",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-09-16", entry.Date)
	require.Len(t, store.upserted, 1)
	assert.False(t, cal.Enabled(), "single upsert must not flip calendar mode")
	assert.Equal(t, 1, cal.Len())
}

func TestCalendarServiceSetDayValidation(t *testing.T) {
	svc, _ := newCalendarServiceForTest(&schoolDayStoreStub{})

	_, err := svc.SetDay(context.Background(), "2024-09-16", dto.UpsertSchoolDayRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	isSchoolDay := true
	_, err = svc.SetDay(context.Background(), "16/09/2024", dto.UpsertSchoolDayRequest{IsSchoolDay: &isSchoolDay})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCalendarServiceListDaysPaging(t *testing.T) {
	store := &schoolDayStoreStub{}
	svc, cal := newCalendarServiceForTest(store)
	cal.Load([]models.SchoolDayEntry{
		{Date: "2024-09-18"},
		{Date: "2024-09-16"},
		{Date: "2024-09-17"},
	})

	entries, pagination, err := svc.ListDays(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2024-09-16", entries[0].Date)
	assert.Equal(t, 3, pagination.TotalCount)

	entries, _, err = svc.ListDays(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-09-18", entries[0].Date)

	entries, _, err = svc.ListDays(context.Background(), 5, 2)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
