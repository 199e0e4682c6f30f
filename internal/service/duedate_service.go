package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tay1orr/notebook-loan-api/internal/dto"
	"github.com/tay1orr/notebook-loan-api/internal/schoolday"
)

// DueDateService answers next-school-day and overdue queries for the loan
// workflow. Results for a given reference date are cached: the computed due
// date depends only on the date portion of the reference, never its
// time-of-day, because same-day due dates are impossible.
type DueDateService struct {
	calc   *schoolday.Calculator
	cache  *CacheService
	logger *zap.Logger
}

// NewDueDateService constructs the service.
func NewDueDateService(calc *schoolday.Calculator, cache *CacheService, logger *zap.Logger) *DueDateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DueDateService{calc: calc, cache: cache, logger: logger}
}

// NextSchoolDay computes the due date for a loan requested at from. A nil
// from means "now".
func (s *DueDateService) NextSchoolDay(ctx context.Context, from *time.Time) dto.DueDateResponse {
	ref := time.Now()
	if from != nil {
		ref = *from
	}
	ref = ref.In(s.calc.Location())

	cacheKey := "duedate:next:" + ref.Format(schoolday.DateKey)
	var cached dto.DueDateResponse
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		cached.From = ref
		return cached
	}

	due := s.calc.NextSchoolDay(ref)
	resp := dto.DueDateResponse{
		From:          ref,
		DueDate:       due,
		FormattedDate: s.calc.FormatDate(due),
		FormattedTime: s.calc.FormatDateTime(due),
	}
	_ = s.cache.Set(ctx, cacheKey, resp, 0)
	return resp
}

// Overdue assesses a stored due date against at (nil means "now").
func (s *DueDateService) Overdue(ctx context.Context, due time.Time, at *time.Time) dto.OverdueResponse {
	now := time.Now()
	if at != nil {
		now = *at
	}
	now = now.In(s.calc.Location())

	return dto.OverdueResponse{
		DueDate:      due.In(s.calc.Location()),
		CheckedAt:    now,
		Overdue:      s.calc.IsOverdue(due, now),
		OverdueHours: s.calc.OverdueHours(due, now),
	}
}
