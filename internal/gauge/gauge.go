// Package gauge maps a segment's hour totals onto renderable bar
// proportions. Everything here is pure display geometry: the underlying
// totals, balances, and availability are computed by the backend, and no
// function in this package ever fails — malformed input degrades to a
// zero or neutral result so a render pass cannot crash.
package gauge

import (
	"math"
	"time"

	"horaboard/internal/model"
)

// Bucket classifies a segment's progress for coloring.
type Bucket int

// Buckets ordered by progress. Neutral means nothing was available,
// Done means the available hours were met or exceeded.
const (
	BucketNeutral Bucket = iota
	BucketLow
	BucketMid
	BucketHigh
	BucketDone
)

// Progress-ratio thresholds for the low/mid/high buckets. Comparisons are
// strict-less-than, so a ratio of exactly 0.33 lands in the mid bucket.
const (
	lowThreshold = 0.33
	midThreshold = 0.66
)

func (b Bucket) String() string {
	switch b {
	case BucketLow:
		return "low"
	case BucketMid:
		return "mid"
	case BucketHigh:
		return "high"
	case BucketDone:
		return "done"
	}
	return "neutral"
}

// Segment is the slice of a period a single bar represents: either one
// week or the whole period.
type Segment struct {
	Start time.Time
	End   time.Time

	TotalWorked    float64
	TotalAdjusted  float64
	HoursAvailable float64

	// TotalSegmentHours is the upstream bar denominator. When absent or
	// non-positive the client derives it as 24h per day.
	TotalSegmentHours float64
}

// FromWeek builds the bar segment for one week.
func FromWeek(w model.Week) Segment {
	return Segment{
		Start:             w.WeekStart.Time,
		End:               w.WeekEnd.Time,
		TotalWorked:       w.TotalWorked,
		TotalAdjusted:     w.TotalAdjusted,
		HoursAvailable:    w.HoursAvailable,
		TotalSegmentHours: w.TotalSegmentHours,
	}
}

// FromProjection builds the period-wide bar segment.
func FromProjection(p model.Projection) Segment {
	return Segment{
		Start:             p.Period.Start.Time,
		End:               p.Period.End.Time,
		TotalWorked:       p.Totals.TotalWorked,
		TotalAdjusted:     p.Totals.TotalAdjusted,
		HoursAvailable:    p.Totals.AvailableHoursInPeriod,
		TotalSegmentHours: p.Totals.FullMonthMaxHours,
	}
}

// SegmentDayCount returns the inclusive day count between two calendar
// dates, ignoring time-of-day. Returns 0 when either date is unset or
// end precedes start.
func SegmentDayCount(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	a := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if b.Before(a) {
		return 0
	}
	return int(b.Sub(a).Hours()/24) + 1
}

// TotalHours is the bar denominator: the upstream value when positive,
// else 24h per day of the segment.
func (s Segment) TotalHours() float64 {
	if isFinite(s.TotalSegmentHours) && s.TotalSegmentHours > 0 {
		return s.TotalSegmentHours
	}
	return 24 * float64(SegmentDayCount(s.Start, s.End))
}

// EffectiveWorked is the displayed fill amount. Adjusted hours are a
// manual correction and are always additive for display.
func (s Segment) EffectiveWorked() float64 {
	return s.TotalWorked + s.TotalAdjusted
}

// FillPercent returns the bar fill in [0,100].
func (s Segment) FillPercent() float64 {
	total := s.TotalHours()
	if total <= 0 {
		return 0
	}
	return clampPercent(100 * s.EffectiveWorked() / total)
}

// AvailableMarkerPercent returns the position of the available-hours tick
// mark in [0,100], or 0 when availability is undefined or non-positive.
func (s Segment) AvailableMarkerPercent() float64 {
	total := s.TotalHours()
	if total <= 0 || !isFinite(s.HoursAvailable) || s.HoursAvailable <= 0 {
		return 0
	}
	return clampPercent(100 * s.HoursAvailable / total)
}

// ShowAvailableMarker reports whether the tick mark should render at all.
// It is suppressed when availability is zero, negative, or would coincide
// with or pass the end of the bar.
func (s Segment) ShowAvailableMarker() bool {
	total := s.TotalHours()
	return isFinite(s.HoursAvailable) && s.HoursAvailable > 0 && s.HoursAvailable < total
}

// FillBucket classifies progress against HoursAvailable (not against the
// bar denominator).
func (s Segment) FillBucket() Bucket {
	available := s.HoursAvailable
	if !isFinite(available) || available <= 0 {
		return BucketNeutral
	}
	worked := s.EffectiveWorked()
	if worked >= available {
		return BucketDone
	}
	switch ratio := worked / available; {
	case ratio < lowThreshold:
		return BucketLow
	case ratio < midThreshold:
		return BucketMid
	default:
		return BucketHigh
	}
}

func clampPercent(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
