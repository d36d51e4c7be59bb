package model

import (
	"errors"
	"math"
)

// HourEntry is a user-submitted record of worked time. Entries are never
// mutated in place; edits are a delete followed by a recreate.
type HourEntry struct {
	ID          int64   `json:"id"`
	EntryDate   Date    `json:"entryDate"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description,omitempty"`
}

// NewHourEntry is the payload for creating an entry.
type NewHourEntry struct {
	EntryDate   string  `json:"entryDate"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description,omitempty"`
}

// Entry validation errors, surfaced before any request is made.
var (
	ErrEntryDateRequired = errors.New("entry date is required (YYYY-MM-DD)")
	ErrEntryHoursInvalid = errors.New("hours must be a positive multiple of 0.5")
)

// Validate checks input shape only; business rules belong to the backend.
func (e NewHourEntry) Validate() error {
	if e.EntryDate == "" {
		return ErrEntryDateRequired
	}
	if _, err := ParseDate(e.EntryDate); err != nil {
		return ErrEntryDateRequired
	}
	if e.Hours <= 0 || e.Hours > 24 {
		return ErrEntryHoursInvalid
	}
	// Half-hour granularity, matching the entry form's input step.
	if halves := e.Hours * 2; math.Abs(halves-math.Round(halves)) > 1e-9 {
		return ErrEntryHoursInvalid
	}
	return nil
}

// EntryPage is the paged listing envelope returned by the backend.
type EntryPage struct {
	Content       []HourEntry `json:"content"`
	TotalElements int64       `json:"totalElements"`
	TotalPages    int         `json:"totalPages"`
	Number        int         `json:"number"`
	Size          int         `json:"size"`
}
