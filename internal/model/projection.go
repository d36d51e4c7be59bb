// Package model defines the domain types served by the projection backend.
package model

// Projection is the read-only period snapshot computed by the backend.
// The client renders it as-is; every total and balance is precomputed upstream.
type Projection struct {
	Period   Period          `json:"period"`
	Totals   Totals          `json:"totals"`
	Progress Progress        `json:"progress"`
	Weeks    []Week          `json:"weeks"`
	Goal     *GoalProjection `json:"goalProjection,omitempty"`
}

// Period is the closure/billing cycle over which totals are aggregated.
type Period struct {
	Start     Date `json:"start"`
	End       Date `json:"end"`
	TotalDays int  `json:"totalDays"`
}

// Totals holds the period-wide aggregates.
type Totals struct {
	TotalWorked            float64 `json:"totalWorked"`
	TotalAdjusted          float64 `json:"totalAdjusted"`
	Balance                float64 `json:"balance"`
	FullMonthMaxHours      float64 `json:"fullMonthMaxHours"`
	AvailableHoursInPeriod float64 `json:"availableHoursInPeriod"`
}

// Progress tracks elapsed time within the period.
// PercentageElapsed is a 0.0-1.0 fraction.
type Progress struct {
	DaysElapsed       int     `json:"daysElapsed"`
	TotalDays         int     `json:"totalDays"`
	PercentageElapsed float64 `json:"percentageElapsed"`
}

// Week is one segment of the period with inclusive date bounds.
// Days is Monday-first and, when present, covers every day between
// WeekStart and WeekEnd.
type Week struct {
	WeekStart         Date    `json:"weekStart"`
	WeekEnd           Date    `json:"weekEnd"`
	TotalWorked       float64 `json:"totalWorked"`
	TotalAdjusted     float64 `json:"totalAdjusted"`
	Balance           float64 `json:"balance"`
	WorkingDaysCount  int     `json:"workingDaysCount"`
	HoursAvailable    float64 `json:"hoursAvailable"`
	BaseWeeklyHours   float64 `json:"baseWeeklyHours"`
	TotalSegmentHours float64 `json:"totalSegmentHours"`
	Days              []Day   `json:"days"`
}

// Day describes a single calendar day inside a week segment.
type Day struct {
	Date         Date   `json:"date"`
	Weekday      string `json:"weekday"`
	DayOfMonth   int    `json:"dayOfMonth"`
	Past         bool   `json:"past"`
	Holiday      bool   `json:"holiday"`
	UserOverride bool   `json:"userOverride"`
}

// GoalProjection is the backend's assessment of the period target.
type GoalProjection struct {
	CurrentRatePerDay     float64    `json:"currentRatePerDay"`
	ProjectedBalanceAtEnd float64    `json:"projectedBalanceAtEnd"`
	TargetHours           float64    `json:"targetHours"`
	Status                GoalStatus `json:"goalStatus"`
}

// GoalStatus is the backend-computed tri-state goal classifier.
// The client only maps it to a label and a visual style.
type GoalStatus string

// Goal status values as emitted by the backend.
const (
	GoalReachable  GoalStatus = "ATINGIVEL"
	GoalAtRisk     GoalStatus = "EM_RISCO"
	GoalImpossible GoalStatus = "IMPOSSIVEL"
)

// Label returns a short human-readable label for the status.
// Unknown values fall through to the raw string.
func (g GoalStatus) Label() string {
	switch g {
	case GoalReachable:
		return "on track"
	case GoalAtRisk:
		return "at risk"
	case GoalImpossible:
		return "out of reach"
	}
	return string(g)
}
