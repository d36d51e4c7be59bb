// Package workweek converts between the two equivalent representations of
// a weekly-hours expectation: hours per week and percent of a full
// 168-hour week. The settings form keeps its two fields in sync through
// these conversions; each sync is a one-directional push so the fields
// can never oscillate.
package workweek

import "math"

// HoursInWeek is the fixed reference week (7 days x 24h).
const HoursInWeek = 168.0

// PercentFromHours converts weekly hours to a two-decimal percent of a
// 168-hour week. Non-positive or non-finite input yields 0.
func PercentFromHours(hours float64) float64 {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours <= 0 {
		return 0
	}
	return math.Round(hours/HoursInWeek*10000) / 100
}

// HoursFromPercent converts a percent of a 168-hour week to two-decimal
// weekly hours. Valid only for percent in [0,100] inclusive; anything
// outside that range, or non-finite, yields 0. Callers syncing an hours
// field must apply the result only when it is strictly positive, so a
// transient invalid percent never zeroes the hours field mid-edit.
func HoursFromPercent(percent float64) float64 {
	if math.IsNaN(percent) || math.IsInf(percent, 0) || percent < 0 || percent > 100 {
		return 0
	}
	return math.Round(percent/100*HoursInWeek*100) / 100
}
