// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"horaboard/internal/model"
)

// FormatHours formats an hour quantity with up to two decimals.
// e.g., 8 -> "8h", 7.5 -> "7.5h", 23.81 -> "23.81h"
func FormatHours(h float64) string {
	s := strconv.FormatFloat(h, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-0" {
		s = "0"
	}
	return s + "h"
}

// FormatSignedHours formats a balance with an explicit sign.
// e.g., 2.5 -> "+2.5h", -34.08 -> "-34.08h", 0 -> "0h"
func FormatSignedHours(h float64) string {
	if h > 0 {
		return "+" + FormatHours(h)
	}
	return FormatHours(h)
}

// FormatPercent formats a 0-1 fraction as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatDate renders a date as its ISO wire form, or "—" when unset.
func FormatDate(d model.Date) string {
	if d.IsZero() {
		return "—"
	}
	return d.String()
}

// FormatDateShort renders a date as "Mar 01", or "—" when unset.
func FormatDateShort(d model.Date) string {
	if d.IsZero() {
		return "—"
	}
	return d.Format("Jan 02")
}

// FormatDateRange renders an inclusive date range.
func FormatDateRange(start, end model.Date) string {
	return FormatDateShort(start) + " – " + FormatDateShort(end)
}
