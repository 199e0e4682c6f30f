package dto

import "github.com/tay1orr/notebook-loan-api/internal/models"

// UpsertSchoolDayRequest is the payload for PUT /calendar/days/:date.
type UpsertSchoolDayRequest struct {
	IsSchoolDay *bool  `json:"is_school_day" validate:"required"`
	Description string `json:"description"`
}

// ImportResult reports the outcome of a calendar import.
type ImportResult struct {
	Report models.ImportReport `json:"report"`
	Loaded int                 `json:"loaded"`
}
