package store

import (
	"path/filepath"
	"testing"
	"time"

	"horaboard/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func sampleProjection() model.Projection {
	return model.Projection{
		Period: model.Period{
			Start:     model.NewDate(2024, 3, 1),
			End:       model.NewDate(2024, 3, 31),
			TotalDays: 31,
		},
		Totals: model.Totals{
			TotalWorked:            50,
			TotalAdjusted:          10,
			Balance:                -34.08,
			FullMonthMaxHours:      744,
			AvailableHoursInPeriod: 94.08,
		},
		Progress: model.Progress{DaysElapsed: 12, TotalDays: 31, PercentageElapsed: 0.387},
		Weeks: []model.Week{
			{
				WeekStart:         model.NewDate(2024, 3, 4),
				WeekEnd:           model.NewDate(2024, 3, 10),
				TotalWorked:       30,
				WorkingDaysCount:  5,
				HoursAvailable:    40,
				BaseWeeklyHours:   40,
				TotalSegmentHours: 168,
				Days: []model.Day{
					{Date: model.NewDate(2024, 3, 4), Weekday: "Mon", DayOfMonth: 4, Past: true},
					{Date: model.NewDate(2024, 3, 5), Weekday: "Tue", DayOfMonth: 5, Holiday: true},
				},
			},
		},
		Goal: &model.GoalProjection{
			CurrentRatePerDay:     4.2,
			ProjectedBalanceAtEnd: -3.5,
			TargetHours:           160,
			Status:                model.GoalAtRisk,
		},
	}
}

func TestLoadLatestProjectionEmptyCache(t *testing.T) {
	c := openTestCache(t)
	p, _, err := c.LoadLatestProjection()
	if err != nil {
		t.Fatalf("LoadLatestProjection on empty cache: %v", err)
	}
	if p != nil {
		t.Fatalf("empty cache returned %+v, want nil", p)
	}
}

func TestProjectionRoundTrip(t *testing.T) {
	c := openTestCache(t)
	fetched := time.Date(2024, 3, 12, 9, 30, 0, 0, time.UTC)

	if err := c.SaveProjection(sampleProjection(), fetched); err != nil {
		t.Fatalf("SaveProjection: %v", err)
	}

	p, at, err := c.LoadLatestProjection()
	if err != nil {
		t.Fatalf("LoadLatestProjection: %v", err)
	}
	if p == nil {
		t.Fatal("LoadLatestProjection returned nil after save")
	}
	if !at.Equal(fetched) {
		t.Fatalf("fetched at = %v, want %v", at, fetched)
	}
	if p.Period.Start.String() != "2024-03-01" || p.Period.TotalDays != 31 {
		t.Fatalf("period = %+v", p.Period)
	}
	if p.Totals.AvailableHoursInPeriod != 94.08 {
		t.Fatalf("totals = %+v", p.Totals)
	}
	if len(p.Weeks) != 1 {
		t.Fatalf("weeks = %d, want 1", len(p.Weeks))
	}
	w := p.Weeks[0]
	if w.WeekStart.String() != "2024-03-04" || w.TotalSegmentHours != 168 {
		t.Fatalf("week = %+v", w)
	}
	if len(w.Days) != 2 || !w.Days[0].Past || !w.Days[1].Holiday {
		t.Fatalf("days = %+v", w.Days)
	}
	if p.Goal == nil || p.Goal.Status != model.GoalAtRisk || p.Goal.TargetHours != 160 {
		t.Fatalf("goal = %+v", p.Goal)
	}
}

func TestProjectionWithoutGoal(t *testing.T) {
	c := openTestCache(t)
	proj := sampleProjection()
	proj.Goal = nil

	if err := c.SaveProjection(proj, time.Now()); err != nil {
		t.Fatalf("SaveProjection: %v", err)
	}
	p, _, err := c.LoadLatestProjection()
	if err != nil {
		t.Fatalf("LoadLatestProjection: %v", err)
	}
	if p.Goal != nil {
		t.Fatalf("goal = %+v, want nil", p.Goal)
	}
}

func TestSaveProjectionReplacesWeeks(t *testing.T) {
	c := openTestCache(t)
	proj := sampleProjection()

	if err := c.SaveProjection(proj, time.Now()); err != nil {
		t.Fatalf("first save: %v", err)
	}

	proj.Weeks = proj.Weeks[:0]
	proj.Weeks = append(proj.Weeks, model.Week{
		WeekStart: model.NewDate(2024, 3, 11),
		WeekEnd:   model.NewDate(2024, 3, 17),
	})
	if err := c.SaveProjection(proj, time.Now()); err != nil {
		t.Fatalf("second save: %v", err)
	}

	p, _, err := c.LoadLatestProjection()
	if err != nil {
		t.Fatalf("LoadLatestProjection: %v", err)
	}
	if len(p.Weeks) != 1 || p.Weeks[0].WeekStart.String() != "2024-03-11" {
		t.Fatalf("weeks after resave = %+v", p.Weeks)
	}
}

func TestLatestProjectionWins(t *testing.T) {
	c := openTestCache(t)

	older := sampleProjection()
	if err := c.SaveProjection(older, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("save older: %v", err)
	}

	newer := sampleProjection()
	newer.Period.Start = model.NewDate(2024, 4, 1)
	newer.Period.End = model.NewDate(2024, 4, 30)
	if err := c.SaveProjection(newer, time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("save newer: %v", err)
	}

	p, _, err := c.LoadLatestProjection()
	if err != nil {
		t.Fatalf("LoadLatestProjection: %v", err)
	}
	if p.Period.Start.String() != "2024-04-01" {
		t.Fatalf("latest period start = %s, want 2024-04-01", p.Period.Start)
	}
}

func TestEntriesMirror(t *testing.T) {
	c := openTestCache(t)
	now := time.Now()

	entries := []model.HourEntry{
		{ID: 1, EntryDate: model.NewDate(2024, 3, 1), Hours: 8, Description: "one"},
		{ID: 2, EntryDate: model.NewDate(2024, 3, 2), Hours: 7.5},
		{ID: 3, EntryDate: model.NewDate(2024, 3, 5), Hours: 4, Description: "three"},
	}
	if err := c.ReplaceEntries(entries, now); err != nil {
		t.Fatalf("ReplaceEntries: %v", err)
	}

	got, err := c.ListEntries("2024-03-01", "2024-03-02")
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].Hours != 7.5 {
		t.Fatalf("ranged list = %+v", got)
	}

	if err := c.SaveEntry(model.HourEntry{ID: 4, EntryDate: model.NewDate(2024, 3, 6), Hours: 2}, now); err != nil {
		t.Fatalf("SaveEntry: %v", err)
	}
	if err := c.DeleteEntry(1); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}

	got, err = c.ListEntries("", "")
	if err != nil {
		t.Fatalf("ListEntries open range: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("open list = %d entries, want 3", len(got))
	}
	for _, e := range got {
		if e.ID == 1 {
			t.Fatal("deleted entry still listed")
		}
	}
}
