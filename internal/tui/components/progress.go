package components

import (
	"fmt"
	"strings"

	"horaboard/internal/gauge"
	"horaboard/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// BucketColor maps a fill bucket to the active theme.
func BucketColor(b gauge.Bucket) lipgloss.Color {
	t := theme.Active
	switch b {
	case gauge.BucketLow:
		return t.Red
	case gauge.BucketMid:
		return t.Yellow
	case gauge.BucketHigh:
		return t.Blue
	case gauge.BucketDone:
		return t.Green
	}
	return t.TextDim
}

// HourBar renders a segment's worked hours as a colored bar with the
// available-hours tick mark and a trailing fill percentage.
func HourBar(seg gauge.Segment, width int) string {
	t := theme.Active
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

	barColor := BucketColor(seg.FillBucket())
	filledStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	markStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i == markerIdx:
			b.WriteString(markStyle.Render("┊"))
		case i < fillCells:
			b.WriteString(filledStyle.Render("█"))
		default:
			b.WriteString(emptyStyle.Render("░"))
		}
	}

	return b.String() + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%5.1f%%", fillPct))
}

// ElapsedBar renders period progress as a labeled solid bar.
// pct is a 0..1 fraction.
func ElapsedBar(label string, pct float64, labelW, barWidth int) string {
	t := theme.Active

	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	bar := progress.New(
		progress.WithSolidFill(string(t.Accent)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100))
}
