package models

import "time"

// SchoolDayEntry is an explicit calendar override for a single date.
// Date is stored as YYYY-MM-DD with no time component; at most one entry
// exists per date and a later write for the same date wins.
type SchoolDayEntry struct {
	Date        string    `db:"date" json:"date"`
	IsSchoolDay bool      `db:"is_school_day" json:"is_school_day"`
	Description string    `db:"description" json:"description"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// ImportReport summarises a best-effort calendar import. Bad rows and
// incomplete events are dropped, never reported as errors; the counts give
// operators visibility into how much of the upload actually landed.
type ImportReport struct {
	Format  string `json:"format"`
	Parsed  int    `json:"parsed"`
	Skipped int    `json:"skipped"`
}
