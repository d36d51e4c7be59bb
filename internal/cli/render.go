package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"horaboard/internal/gauge"
	"horaboard/internal/model"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
	ColorYellow    = lipgloss.Color("#D0A215")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// BucketColor maps a fill bucket to its display color.
func BucketColor(b gauge.Bucket) lipgloss.Color {
	switch b {
	case gauge.BucketLow:
		return ColorRed
	case gauge.BucketMid:
		return ColorYellow
	case gauge.BucketHigh:
		return ColorBlue
	case gauge.BucketDone:
		return ColorGreen
	}
	return ColorTextDim
}

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows.
// A single-cell row of "---" renders as a separator line.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			if len(h) > widths[i] {
				widths[i] = len(h)
			}
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if i < numCols && lipgloss.Width(cell) > widths[i] {
					widths[i] = lipgloss.Width(cell)
				}
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			padded := fmt.Sprintf(" %-*s ", widths[i], h)
			b.WriteString(headerStyle.Render(padded))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		rule("├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			rule("├", "┼", "┤")
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			w := widths[i]
			cell := ""
			if i < len(row) {
				cell = row[i]
			}

			// Right-align all but the first column
			pad := w - lipgloss.Width(cell)
			if pad < 0 {
				pad = 0
			}
			if i == 0 {
				b.WriteString(valueStyle.Render(" " + cell + strings.Repeat(" ", pad) + " "))
			} else {
				b.WriteString(valueStyle.Render(" " + strings.Repeat(" ", pad) + cell + " "))
			}
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	rule("╰", "┴", "╯")

	return b.String()
}

// RenderHourBar renders a segment as a colored bar with the
// available-hours tick mark and a trailing fill percentage.
func RenderHourBar(seg gauge.Segment, width int) string {
	if width < 4 {
		width = 4
	}

	fillPct := seg.FillPercent()
	fillCells := int(fillPct / 100 * float64(width))
	if fillCells > width {
		fillCells = width
	}

	markerIdx := -1
	if seg.ShowAvailableMarker() {
		markerIdx = int(seg.AvailableMarkerPercent() / 100 * float64(width))
		if markerIdx >= width {
			markerIdx = width - 1
		}
	}

	barStyle := lipgloss.NewStyle().Foreground(BucketColor(seg.FillBucket()))
	markStyle := lipgloss.NewStyle().Foreground(ColorText).Bold(true)

	var b strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i == markerIdx:
			b.WriteString(markStyle.Render("┊"))
		case i < fillCells:
			b.WriteString(barStyle.Render("█"))
		default:
			b.WriteString(dimStyle.Render("░"))
		}
	}

	return b.String() + " " + barStyle.Render(fmt.Sprintf("%5.1f%%", fillPct))
}

// RenderDayStrip renders a week's Monday-first day markers.
// Past days are filled, holidays marked, overrides accented.
func RenderDayStrip(days []model.Day) string {
	if len(days) == 0 {
		return ""
	}

	holidayStyle := lipgloss.NewStyle().Foreground(ColorOrange)
	overrideStyle := lipgloss.NewStyle().Foreground(ColorAccent)

	var b strings.Builder
	for i, d := range days {
		if i > 0 {
			b.WriteString(" ")
		}
		label := fmt.Sprintf("%s %2d", d.Weekday, d.DayOfMonth)
		switch {
		case d.Holiday:
			b.WriteString(holidayStyle.Render(label))
		case d.UserOverride:
			b.WriteString(overrideStyle.Render(label))
		case d.Past:
			b.WriteString(valueStyle.Render(label))
		default:
			b.WriteString(dimStyle.Render(label))
		}
	}
	return b.String()
}
