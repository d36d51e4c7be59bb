// Package export writes hour entries to CSV or JSON files for use
// outside the dashboard.
package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"horaboard/internal/model"
)

func ToCSV(entries []model.HourEntry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Date", "Hours", "Description"}); err != nil {
		return err
	}

	for _, e := range entries {
		row := []string{
			fmt.Sprintf("%d", e.ID),
			e.EntryDate.String(),
			formatHours(e.Hours),
			e.Description,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatHours(h float64) string {
	s := fmt.Sprintf("%.2f", h)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
