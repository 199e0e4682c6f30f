package dto

import "time"

// DueDateResponse is the computed next-school-day instant for a reference
// timestamp, pinned to the 08:45 cutoff.
type DueDateResponse struct {
	From          time.Time `json:"from"`
	DueDate       time.Time `json:"due_date"`
	FormattedDate string    `json:"formatted_date"`
	FormattedTime string    `json:"formatted_time"`
}

// OverdueResponse is the live overdue assessment for a stored due date.
type OverdueResponse struct {
	DueDate      time.Time `json:"due_date"`
	CheckedAt    time.Time `json:"checked_at"`
	Overdue      bool      `json:"overdue"`
	OverdueHours float64   `json:"overdue_hours"`
}
