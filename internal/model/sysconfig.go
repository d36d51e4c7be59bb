package model

import "errors"

// SystemConfig holds the backend-persisted settings: the closure-day
// boundaries of the billing cycle and the weekly-hours expectation.
type SystemConfig struct {
	ClosureStartDay     int     `json:"closureStartDay"`
	ClosureEndDay       int     `json:"closureEndDay"`
	ExpectedWeeklyHours float64 `json:"expectedWeeklyHours"`
}

// System config validation errors.
var (
	ErrClosureDayInvalid = errors.New("closure days must be between 1 and 31")
	ErrWeeklyHoursRange  = errors.New("expected weekly hours must be between 0 and 168")
)

// Validate checks the config before it is submitted wholesale.
func (c SystemConfig) Validate() error {
	if c.ClosureStartDay < 1 || c.ClosureStartDay > 31 ||
		c.ClosureEndDay < 1 || c.ClosureEndDay > 31 {
		return ErrClosureDayInvalid
	}
	if c.ExpectedWeeklyHours < 0 || c.ExpectedWeeklyHours > 168 {
		return ErrWeeklyHoursRange
	}
	return nil
}
