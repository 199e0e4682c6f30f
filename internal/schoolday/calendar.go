package schoolday

import (
	"sort"
	"sync"
	"time"

	"github.com/tay1orr/notebook-loan-api/internal/models"
)

// DateKey is the canonical date format used as the calendar map key.
const DateKey = "2006-01-02"

// Calendar holds the explicit school-day overrides for a single timezone
// context. Dates without an entry fall back to the Mon-Fri weekday rule.
//
// The calendar is process-wide state mutated only through Load and
// SetSchoolDay. Concurrent loads resolve last-write-wins; the mutex exists
// because Go maps cannot be accessed concurrently, not to provide any
// transactional isolation.
type Calendar struct {
	mu      sync.RWMutex
	entries map[string]models.SchoolDayEntry
	enabled bool
}

// NewCalendar returns an empty, disabled calendar.
func NewCalendar() *Calendar {
	return &Calendar{entries: make(map[string]models.SchoolDayEntry)}
}

// Load replaces the entire mapping with the given entries and enables
// calendar-aware calculation. Loading an empty slice still enables the
// calendar; with zero entries every queried date falls through to the
// weekday rule, so the observable behaviour is unchanged.
func (c *Calendar) Load(entries []models.SchoolDayEntry) {
	next := make(map[string]models.SchoolDayEntry, len(entries))
	for _, entry := range entries {
		next[entry.Date] = entry
	}

	c.mu.Lock()
	c.entries = next
	c.enabled = true
	c.mu.Unlock()
}

// SetSchoolDay upserts a single entry. The enabled flag is left untouched.
func (c *Calendar) SetSchoolDay(date string, isSchoolDay bool, description string) {
	c.mu.Lock()
	c.entries[date] = models.SchoolDayEntry{
		Date:        date,
		IsSchoolDay: isSchoolDay,
		Description: description,
	}
	c.mu.Unlock()
}

// Lookup returns the explicit entry for the given date, if any.
func (c *Calendar) Lookup(date time.Time) (models.SchoolDayEntry, bool) {
	c.mu.RLock()
	entry, ok := c.entries[date.Format(DateKey)]
	c.mu.RUnlock()
	return entry, ok
}

// IsSchoolDay reports whether students attend on the given date. An explicit
// entry wins; otherwise any day that is not Saturday or Sunday counts.
func (c *Calendar) IsSchoolDay(date time.Time) bool {
	if entry, ok := c.Lookup(date); ok {
		return entry.IsSchoolDay
	}
	return !isWeekend(date)
}

// Enabled reports whether calendar-aware calculation is active.
func (c *Calendar) Enabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.enabled
}

// Len returns the number of explicit entries.
func (c *Calendar) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Entries returns a copy of all entries ordered by date.
func (c *Calendar) Entries() []models.SchoolDayEntry {
	c.mu.RLock()
	result := make([]models.SchoolDayEntry, 0, len(c.entries))
	for _, entry := range c.entries {
		result = append(result, entry)
	}
	c.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
