package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tay1orr/notebook-loan-api/internal/dto"
	"github.com/tay1orr/notebook-loan-api/internal/models"
	"github.com/tay1orr/notebook-loan-api/internal/schoolday"
	appErrors "github.com/tay1orr/notebook-loan-api/pkg/errors"
)

type schoolDayStore interface {
	List(ctx context.Context) ([]models.SchoolDayEntry, error)
	ReplaceAll(ctx context.Context, entries []models.SchoolDayEntry) error
	Upsert(ctx context.Context, entry *models.SchoolDayEntry) error
}

// CalendarService owns the in-memory school calendar and keeps the backing
// store in sync. The calendar is process state: it is rebuilt from the store
// on every cold start and replaced wholesale on import.
type CalendarService struct {
	store     schoolDayStore
	calendar  *schoolday.Calendar
	validator *validator.Validate
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewCalendarService constructs the service.
func NewCalendarService(store schoolDayStore, calendar *schoolday.Calendar, validate *validator.Validate, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *CalendarService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{
		store:     store,
		calendar:  calendar,
		validator: validate,
		cache:     cache,
		metrics:   metrics,
		logger:    logger,
	}
}

// Warm rebuilds the in-memory calendar from the store. With no stored rows
// the calendar stays disabled and the weekday rule applies.
func (s *CalendarService) Warm(ctx context.Context) error {
	entries, err := s.store.List(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load school calendar")
	}
	if len(entries) == 0 {
		s.logger.Info("no stored calendar entries, using weekday rule")
		return nil
	}
	s.calendar.Load(entries)
	s.logger.Info("school calendar loaded", zap.Int("entries", len(entries)))
	return nil
}

// Import parses the uploaded content, replaces the stored calendar and the
// in-memory state, and returns the parse report. Unparseable rows are dropped
// silently per the import contract; the report carries the counts.
func (s *CalendarService) Import(ctx context.Context, format, content string, actor *models.JWTClaims) (*dto.ImportResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "empty calendar upload")
	}

	var (
		entries []models.SchoolDayEntry
		report  models.ImportReport
	)
	switch resolveFormat(format, content) {
	case schoolday.FormatICS:
		entries, report = schoolday.ParseICS(content)
	case schoolday.FormatCSV:
		entries, report = schoolday.ParseCSV(content)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported calendar format, expected ics or csv")
	}

	if err := s.store.ReplaceAll(ctx, entries); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist calendar")
	}
	s.calendar.Load(entries)
	s.metrics.RecordImport(report)
	s.invalidate(ctx)

	actorID := "import-key"
	if actor != nil {
		actorID = actor.UserID
	}
	s.logger.Info("school calendar imported",
		zap.String("format", report.Format),
		zap.Int("parsed", report.Parsed),
		zap.Int("skipped", report.Skipped),
		zap.String("actor", actorID))

	return &dto.ImportResult{Report: report, Loaded: len(entries)}, nil
}

// SetDay upserts a single override in both the store and the in-memory
// calendar. The calendar's enabled flag is left untouched.
func (s *CalendarService) SetDay(ctx context.Context, date string, req dto.UpsertSchoolDayRequest) (*models.SchoolDayEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if _, err := time.Parse(schoolday.DateKey, date); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid date, expected YYYY-MM-DD")
	}

	entry := &models.SchoolDayEntry{
		Date:        date,
		IsSchoolDay: *req.IsSchoolDay,
		Description: req.Description,
	}
	if err := s.store.Upsert(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store school day")
	}
	s.calendar.SetSchoolDay(entry.Date, entry.IsSchoolDay, entry.Description)
	s.invalidate(ctx)
	return entry, nil
}

// ListDays returns the loaded overrides, paged and ordered by date.
func (s *CalendarService) ListDays(ctx context.Context, page, pageSize int) ([]models.SchoolDayEntry, *models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 50
	}

	entries := s.calendar.Entries()
	pagination := &models.Pagination{Page: page, PageSize: pageSize, TotalCount: len(entries)}

	start := (page - 1) * pageSize
	if start >= len(entries) {
		return []models.SchoolDayEntry{}, pagination, nil
	}
	end := start + pageSize
	if end > len(entries) {
		end = len(entries)
	}
	return entries[start:end], pagination, nil
}

// Entries exposes a dated snapshot of the calendar for exports and backups.
func (s *CalendarService) Entries() []models.SchoolDayEntry {
	return s.calendar.Entries()
}

func (s *CalendarService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Invalidate(ctx, "calendar:*")
	_ = s.cache.Invalidate(ctx, "duedate:*")
}

func resolveFormat(format, content string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case schoolday.FormatICS:
		return schoolday.FormatICS
	case schoolday.FormatCSV:
		return schoolday.FormatCSV
	case "":
		if strings.Contains(content, "BEGIN:VCALENDAR") || strings.Contains(content, "BEGIN:VEVENT") {
			return schoolday.FormatICS
		}
		return schoolday.FormatCSV
	default:
		return ""
	}
}
