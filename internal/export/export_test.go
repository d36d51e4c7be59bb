package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"horaboard/internal/model"
)

func sampleEntries() []model.HourEntry {
	return []model.HourEntry{
		{ID: 1, EntryDate: model.NewDate(2024, 3, 1), Hours: 8, Description: "regular day"},
		{ID: 2, EntryDate: model.NewDate(2024, 3, 2), Hours: 7.5},
		{ID: 3, EntryDate: model.NewDate(2024, 3, 5), Hours: 4, Description: "half day"},
	}
}

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.csv")
	if err := ToCSV(sampleEntries(), path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open exported csv: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d rows, want header + 3 entries", len(records))
	}
	if records[0][0] != "ID" || records[0][2] != "Hours" {
		t.Fatalf("header = %v", records[0])
	}
	if records[1][1] != "2024-03-01" || records[1][2] != "8" {
		t.Fatalf("first row = %v", records[1])
	}
	if records[2][2] != "7.5" {
		t.Fatalf("second row hours = %q, want 7.5", records[2][2])
	}
}

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.json")
	if err := ToJSON(sampleEntries(), path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported json: %v", err)
	}

	var out jsonExport
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 3 || len(out.Entries) != 3 {
		t.Fatalf("count = %d, entries = %d", out.Count, len(out.Entries))
	}
	if out.TotalHours != 19.5 {
		t.Fatalf("total hours = %v, want 19.5", out.TotalHours)
	}
	if out.Entries[1].Date != "2024-03-02" || out.Entries[1].Description != "" {
		t.Fatalf("entry = %+v", out.Entries[1])
	}
}

func TestExportEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := ToCSV(nil, filepath.Join(dir, "empty.csv")); err != nil {
		t.Fatalf("ToCSV empty: %v", err)
	}
	if err := ToJSON(nil, filepath.Join(dir, "empty.json")); err != nil {
		t.Fatalf("ToJSON empty: %v", err)
	}
}
