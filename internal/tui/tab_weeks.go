package tui

import (
	"fmt"
	"strings"

	"horaboard/internal/cli"
	"horaboard/internal/gauge"
	"horaboard/internal/tui/components"
	"horaboard/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderWeeksTab(cw, h int) string {
	t := theme.Active

	if a.projection == nil || len(a.projection.Weeks) == 0 {
		empty := lipgloss.NewStyle().Foreground(t.TextMuted).Render("No weeks in the current period")
		return components.ContentCard("Weeks", empty, cw)
	}

	weeks := a.projection.Weeks
	cursor := a.weeksCursor
	if cursor >= len(weeks) {
		cursor = len(weeks) - 1
	}

	innerW := components.CardInnerWidth(cw)
	barW := innerW - 28
	if barW < 16 {
		barW = 16
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)

	var body strings.Builder
	for i, wk := range weeks {
		label := fmt.Sprintf("%s – %s", cli.FormatDateShort(wk.WeekStart), cli.FormatDateShort(wk.WeekEnd))
		if i == cursor {
			body.WriteString(markerStyle.Render("▸ "))
			body.WriteString(selectedStyle.Render(fmt.Sprintf("%-15s", label)))
		} else {
			body.WriteString("  ")
			body.WriteString(labelStyle.Render(fmt.Sprintf("%-15s", label)))
		}
		body.WriteString(" ")
		body.WriteString(components.HourBar(gauge.FromWeek(wk), barW))
		body.WriteString("\n")
	}

	var b strings.Builder
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Weeks (%d)", len(weeks)), body.String(), cw))
	b.WriteString("\n")

	// Detail card for the selected week
	sel := weeks[cursor]
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var detail strings.Builder
	detail.WriteString(cli.RenderDayStrip(sel.Days))
	detail.WriteString("\n\n")
	detail.WriteString(labelStyle.Render("Worked:        ") + valueStyle.Render(cli.FormatHours(sel.TotalWorked)) + "\n")
	detail.WriteString(labelStyle.Render("Adjusted:      ") + valueStyle.Render(cli.FormatHours(sel.TotalAdjusted)) + "\n")
	detail.WriteString(labelStyle.Render("Balance:       ") + valueStyle.Render(cli.FormatSignedHours(sel.Balance)) + "\n")
	detail.WriteString(labelStyle.Render("Available:     ") + valueStyle.Render(cli.FormatHours(sel.HoursAvailable)) + "\n")
	detail.WriteString(labelStyle.Render("Working days:  ") + valueStyle.Render(fmt.Sprintf("%d", sel.WorkingDaysCount)) + "\n")
	detail.WriteString(labelStyle.Render("Base weekly:   ") + valueStyle.Render(cli.FormatHours(sel.BaseWeeklyHours)))

	b.WriteString(components.ContentCard(
		fmt.Sprintf("Week %s", cli.FormatDateShort(sel.WeekStart)), detail.String(), cw))

	return b.String()
}
