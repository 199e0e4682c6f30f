package schoolday

import (
	"time"

	"go.uber.org/zap"
)

// Default calculator settings. The school operates on KST (UTC+9, no DST)
// and loans fall due at the start of the next school day, 08:45.
const (
	DefaultCutoffHour   = 8
	DefaultCutoffMinute = 45
	DefaultHorizonDays  = 365
)

// DefaultLocation is the fixed UTC+9 zone all calculations normalise to.
var DefaultLocation = time.FixedZone("KST", 9*60*60)

// CalculatorOptions tunes a Calculator. Zero values select the defaults.
type CalculatorOptions struct {
	Location     *time.Location
	CutoffHour   int
	CutoffMinute int
	HorizonDays  int
	Logger       *zap.Logger

	// OnExhaustion is invoked when the horizon search finds no school day
	// and the calculator degrades to the weekday rule.
	OnExhaustion func()
}

// Calculator computes next-school-day instants and overdue status against a
// Calendar. All inputs are normalised to the fixed zone at the entry point;
// all outputs are pinned to the cutoff time in that zone.
type Calculator struct {
	calendar     *Calendar
	loc          *time.Location
	cutoffHour   int
	cutoffMinute int
	horizonDays  int
	logger       *zap.Logger
	onExhaustion func()
}

// NewCalculator constructs a calculator bound to the given calendar.
func NewCalculator(calendar *Calendar, opts CalculatorOptions) *Calculator {
	if calendar == nil {
		calendar = NewCalendar()
	}
	loc := opts.Location
	if loc == nil {
		loc = DefaultLocation
	}
	cutoffHour := opts.CutoffHour
	cutoffMinute := opts.CutoffMinute
	if cutoffHour == 0 && cutoffMinute == 0 {
		cutoffHour = DefaultCutoffHour
		cutoffMinute = DefaultCutoffMinute
	}
	horizon := opts.HorizonDays
	if horizon <= 0 {
		horizon = DefaultHorizonDays
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{
		calendar:     calendar,
		loc:          loc,
		cutoffHour:   cutoffHour,
		cutoffMinute: cutoffMinute,
		horizonDays:  horizon,
		logger:       logger,
		onExhaustion: opts.OnExhaustion,
	}
}

// Calendar exposes the calendar this calculator reads from.
func (c *Calculator) Calendar() *Calendar {
	return c.calendar
}

// Location returns the fixed zone used for all calculations.
func (c *Calculator) Location() *time.Location {
	return c.loc
}

// NextSchoolDay returns the next valid attendance instant strictly after
// from, pinned to the cutoff time. Without calendar data the default Mon-Fri
// rule applies. With calendar data, explicit entries win and unmarked
// weekdays count as implicit school days. If no qualifying date exists within
// the horizon the calculator logs a warning and degrades to the weekday rule,
// a safety valve against calendars that mark every day a closure.
func (c *Calculator) NextSchoolDay(from time.Time) time.Time {
	from = from.In(c.loc)

	if !c.calendar.Enabled() || c.calendar.Len() == 0 {
		return c.nextWeekday(from)
	}

	for i := 1; i <= c.horizonDays; i++ {
		candidate := from.AddDate(0, 0, i)
		if entry, ok := c.calendar.Lookup(candidate); ok {
			if entry.IsSchoolDay {
				return c.atCutoff(candidate)
			}
			continue
		}
		if isWeekend(candidate) {
			continue
		}
		return c.atCutoff(candidate)
	}

	c.logger.Warn("no school day found within horizon, falling back to weekday rule",
		zap.Time("from", from),
		zap.Int("horizon_days", c.horizonDays))
	if c.onExhaustion != nil {
		c.onExhaustion()
	}
	return c.nextWeekday(from)
}

// DueDate is an alias for NextSchoolDay: a loan is due at the start of the
// next school day after the request.
func (c *Calculator) DueDate(requestedAt time.Time) time.Time {
	return c.NextSchoolDay(requestedAt)
}

// IsOverdue reports whether now is strictly after due. No grace window.
func (c *Calculator) IsOverdue(due, now time.Time) bool {
	return now.After(due)
}

// OverdueHours returns now minus due in fractional hours. Negative while the
// loan is not yet due.
func (c *Calculator) OverdueHours(due, now time.Time) float64 {
	return now.Sub(due).Hours()
}

func (c *Calculator) nextWeekday(from time.Time) time.Time {
	candidate := from.AddDate(0, 0, 1)
	for isWeekend(candidate) {
		candidate = candidate.AddDate(0, 0, 1)
	}
	return c.atCutoff(candidate)
}

func (c *Calculator) atCutoff(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.cutoffHour, c.cutoffMinute, 0, 0, c.loc)
}
