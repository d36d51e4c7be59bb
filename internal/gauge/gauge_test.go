package gauge

import (
	"math"
	"testing"
	"time"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func TestSegmentDayCount(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
	}{
		{"2024-03-01", "2024-03-01", 1},
		{"2024-03-01", "2024-03-07", 7},
		{"2024-02-26", "2024-03-03", 7}, // leap-year month boundary
		{"2024-03-31", "2024-04-01", 2},
		{"2024-03-07", "2024-03-01", 0}, // end before start
	}
	for _, tc := range tests {
		got := SegmentDayCount(date(t, tc.start), date(t, tc.end))
		if got != tc.want {
			t.Fatalf("SegmentDayCount(%s, %s) = %d, want %d", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestSegmentDayCountUnsetDates(t *testing.T) {
	var zero time.Time
	if got := SegmentDayCount(zero, zero); got != 0 {
		t.Fatalf("SegmentDayCount with unset dates = %d, want 0", got)
	}
	if got := SegmentDayCount(zero, date(t, "2024-03-01")); got != 0 {
		t.Fatalf("SegmentDayCount with unset start = %d, want 0", got)
	}
	if got := SegmentDayCount(date(t, "2024-03-01"), zero); got != 0 {
		t.Fatalf("SegmentDayCount with unset end = %d, want 0", got)
	}
}

func TestSegmentDayCountIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
	end := time.Date(2024, 3, 2, 0, 1, 0, 0, time.UTC)
	if got := SegmentDayCount(start, end); got != 2 {
		t.Fatalf("SegmentDayCount across midnight = %d, want 2", got)
	}
}

func TestTotalHoursPrefersUpstreamDenominator(t *testing.T) {
	s := Segment{
		Start:             date(t, "2024-03-04"),
		End:               date(t, "2024-03-10"),
		TotalSegmentHours: 150,
	}
	if got := s.TotalHours(); got != 150 {
		t.Fatalf("TotalHours = %.1f, want upstream 150", got)
	}

	s.TotalSegmentHours = 0
	if got := s.TotalHours(); got != 168 {
		t.Fatalf("TotalHours derived = %.1f, want 24x7 = 168", got)
	}

	s.TotalSegmentHours = -5
	if got := s.TotalHours(); got != 168 {
		t.Fatalf("TotalHours with negative upstream = %.1f, want 168", got)
	}
}

func TestFillPercentFullWeek(t *testing.T) {
	// Week with totalSegmentHours=168, worked 50, adjusted 10, available 94.08.
	s := Segment{
		TotalSegmentHours: 168,
		TotalWorked:       50,
		TotalAdjusted:     10,
		HoursAvailable:    94.08,
	}

	if got := s.FillPercent(); math.Abs(got-35.714285) > 0.01 {
		t.Fatalf("FillPercent = %.4f, want ~35.71", got)
	}
	if got := s.AvailableMarkerPercent(); math.Abs(got-56.0) > 0.01 {
		t.Fatalf("AvailableMarkerPercent = %.4f, want ~56.0", got)
	}
	if !s.ShowAvailableMarker() {
		t.Fatal("ShowAvailableMarker = false, want true")
	}
	// ratio 60/94.08 ~ 0.638 -> mid
	if got := s.FillBucket(); got != BucketMid {
		t.Fatalf("FillBucket = %s, want mid", got)
	}
}

func TestZeroDenominatorDegradesToZero(t *testing.T) {
	s := Segment{TotalWorked: 40, HoursAvailable: 20}
	// No dates and no upstream total: denominator is 0.
	if got := s.FillPercent(); got != 0 {
		t.Fatalf("FillPercent with zero denominator = %.2f, want 0", got)
	}
	if got := s.AvailableMarkerPercent(); got != 0 {
		t.Fatalf("AvailableMarkerPercent with zero denominator = %.2f, want 0", got)
	}
	if s.ShowAvailableMarker() {
		t.Fatal("ShowAvailableMarker with zero denominator = true, want false")
	}
}

func TestFillPercentCapsAtHundred(t *testing.T) {
	s := Segment{TotalSegmentHours: 100, TotalWorked: 150}
	if got := s.FillPercent(); got != 100 {
		t.Fatalf("FillPercent over bar = %.2f, want capped 100", got)
	}
}

func TestMarkerSuppressedAtOrPastBarEnd(t *testing.T) {
	s := Segment{TotalSegmentHours: 168, HoursAvailable: 168}
	if s.ShowAvailableMarker() {
		t.Fatal("marker shown when available == total, want suppressed")
	}
	s.HoursAvailable = 200
	if s.ShowAvailableMarker() {
		t.Fatal("marker shown when available > total, want suppressed")
	}
	s.HoursAvailable = 167.5
	if !s.ShowAvailableMarker() {
		t.Fatal("marker suppressed when 0 < available < total, want shown")
	}
}

func TestFillBucketNeutralWhenNothingAvailable(t *testing.T) {
	s := Segment{TotalSegmentHours: 168, TotalWorked: 80, HoursAvailable: 0}
	if got := s.FillBucket(); got != BucketNeutral {
		t.Fatalf("FillBucket with zero availability = %s, want neutral", got)
	}
	if s.ShowAvailableMarker() {
		t.Fatal("marker shown with zero availability, want hidden")
	}

	s.HoursAvailable = -4
	if got := s.FillBucket(); got != BucketNeutral {
		t.Fatalf("FillBucket with negative availability = %s, want neutral", got)
	}
}

func TestFillBucketThresholds(t *testing.T) {
	tests := []struct {
		name   string
		worked float64
		want   Bucket
	}{
		{"zero", 0, BucketLow},
		{"just under low threshold", 32.9, BucketLow},
		{"exactly 0.33 goes to mid", 33, BucketMid},
		{"just under mid threshold", 65.9, BucketMid},
		{"exactly 0.66 goes to high", 66, BucketHigh},
		{"almost done", 99.9, BucketHigh},
		{"exactly available", 100, BucketDone},
		{"over available", 130, BucketDone},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := Segment{TotalSegmentHours: 744, TotalWorked: tc.worked, HoursAvailable: 100}
			if got := s.FillBucket(); got != tc.want {
				t.Fatalf("worked=%.1f/100: FillBucket = %s, want %s", tc.worked, got, tc.want)
			}
		})
	}
}

func TestFillBucketCountsAdjustedHours(t *testing.T) {
	// Adjusted hours are additive: 90 worked + 10 adjusted meets 100 available.
	s := Segment{TotalSegmentHours: 744, TotalWorked: 90, TotalAdjusted: 10, HoursAvailable: 100}
	if got := s.FillBucket(); got != BucketDone {
		t.Fatalf("FillBucket with adjustment = %s, want done", got)
	}
}

func TestNonFiniteInputDegrades(t *testing.T) {
	s := Segment{TotalSegmentHours: math.NaN(), TotalWorked: 10, HoursAvailable: math.Inf(1)}
	if got := s.FillPercent(); got != 0 {
		t.Fatalf("FillPercent with NaN denominator = %.2f, want 0", got)
	}
	if got := s.FillBucket(); got != BucketNeutral {
		t.Fatalf("FillBucket with Inf availability = %s, want neutral", got)
	}
	if s.ShowAvailableMarker() {
		t.Fatal("marker shown with non-finite availability")
	}
}
