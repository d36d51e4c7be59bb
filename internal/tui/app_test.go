package tui

import (
	"strings"
	"testing"
	"time"

	"horaboard/internal/model"
)

func TestFormatAge(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30s ago"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
	}
	for _, tc := range tests {
		if got := formatAge(tc.d); got != tc.want {
			t.Fatalf("formatAge(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestPadAndTruncateHeight(t *testing.T) {
	s := "a\nb\nc"
	if got := truncateHeight(s, 2); got != "a\nb" {
		t.Fatalf("truncateHeight = %q", got)
	}
	if got := truncateHeight(s, 5); got != s {
		t.Fatalf("truncateHeight above limit = %q", got)
	}

	padded := padHeight(s, 5)
	if lines := strings.Count(padded, "\n"); lines != 4 {
		t.Fatalf("padHeight produced %d newlines, want 4", lines)
	}
	if got := padHeight(s, 2); got != s {
		t.Fatalf("padHeight below current height = %q", got)
	}
}

func TestEntriesRange(t *testing.T) {
	var a App
	start, end := a.entriesRange()
	if start != "" || end != "" {
		t.Fatalf("range without projection = %q..%q, want open", start, end)
	}

	a.projection = &model.Projection{
		Period: model.Period{
			Start: model.NewDate(2024, 3, 1),
			End:   model.NewDate(2024, 3, 31),
		},
	}
	start, end = a.entriesRange()
	if start != "2024-03-01" || end != "2024-03-31" {
		t.Fatalf("range = %q..%q", start, end)
	}
}

func TestCommandsWithoutClientReturnErrors(t *testing.T) {
	cache := t.TempDir() + "/cache.db"

	msg := createEntryCmd(nil, cache, model.NewHourEntry{EntryDate: "2024-03-15", Hours: 8})()
	created, ok := msg.(EntryCreatedMsg)
	if !ok || created.Err == nil {
		t.Fatalf("createEntryCmd without client = %#v, want error message", msg)
	}

	msg = deleteEntryCmd(nil, cache, 7)()
	deleted, ok := msg.(EntryDeletedMsg)
	if !ok || deleted.Err == nil || deleted.ID != 7 {
		t.Fatalf("deleteEntryCmd without client = %#v, want error message", msg)
	}

	msg = saveSysConfigCmd(nil, model.SystemConfig{ClosureStartDay: 1, ClosureEndDay: 31, ExpectedWeeklyHours: 40})()
	saved, ok := msg.(SysConfigSavedMsg)
	if !ok || saved.Err == nil {
		t.Fatalf("saveSysConfigCmd without client = %#v, want error message", msg)
	}
}

func TestCurrentWeekPicksFirstOpenWeek(t *testing.T) {
	a := App{projection: &model.Projection{
		Weeks: []model.Week{
			{
				WeekStart: model.NewDate(2024, 3, 4),
				Days:      []model.Day{{Past: true}, {Past: true}},
			},
			{
				WeekStart: model.NewDate(2024, 3, 11),
				Days:      []model.Day{{Past: true}, {Past: false}},
			},
			{
				WeekStart: model.NewDate(2024, 3, 18),
				Days:      []model.Day{{Past: false}},
			},
		},
	}}

	wk := a.currentWeek()
	if wk == nil || wk.WeekStart.String() != "2024-03-11" {
		t.Fatalf("currentWeek = %+v, want week of 2024-03-11", wk)
	}

	// All weeks past: fall back to the last one
	for i := range a.projection.Weeks {
		for j := range a.projection.Weeks[i].Days {
			a.projection.Weeks[i].Days[j].Past = true
		}
	}
	wk = a.currentWeek()
	if wk == nil || wk.WeekStart.String() != "2024-03-18" {
		t.Fatalf("currentWeek fallback = %+v, want last week", wk)
	}
}
