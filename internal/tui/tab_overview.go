package tui

import (
	"fmt"
	"strings"

	"horaboard/internal/cli"
	"horaboard/internal/gauge"
	"horaboard/internal/model"
	"horaboard/internal/tui/components"
	"horaboard/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active

	if a.projection == nil {
		empty := lipgloss.NewStyle().Foreground(t.TextMuted).Render(
			"No active period on the server.\nAdd entries or configure closure days to start one.")
		return components.ContentCard("Overview", empty, cw)
	}

	p := a.projection
	var b strings.Builder

	// Row 1: Metric cards
	metrics := []components.Metric{
		{Label: "Worked", Value: cli.FormatHours(p.Totals.TotalWorked),
			Detail: fmt.Sprintf("+%s adjusted", cli.FormatHours(p.Totals.TotalAdjusted))},
		{Label: "Balance", Value: cli.FormatSignedHours(p.Totals.Balance)},
		{Label: "Available", Value: cli.FormatHours(p.Totals.AvailableHoursInPeriod),
			Detail: fmt.Sprintf("of %s", cli.FormatHours(p.Totals.FullMonthMaxHours))},
		{Label: "Days", Value: fmt.Sprintf("%d / %d", p.Progress.DaysElapsed, p.Progress.TotalDays),
			Detail: cli.FormatDateRange(p.Period.Start, p.Period.End)},
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	// Row 2: Period gauge + elapsed time
	innerW := components.CardInnerWidth(cw)
	barW := innerW - 10
	if barW < 20 {
		barW = 20
	}

	seg := gauge.FromProjection(*p)
	var gaugeBody strings.Builder
	gaugeBody.WriteString(components.HourBar(seg, barW))
	gaugeBody.WriteString("\n")
	gaugeBody.WriteString(components.ElapsedBar("Elapsed", p.Progress.PercentageElapsed, 7, barW-9))
	b.WriteString(components.ContentCard("Period", gaugeBody.String(), cw))
	b.WriteString("\n")

	// Row 3: Goal projection + current week side by side
	halves := components.LayoutRow(cw, 2)

	goalCard := a.renderGoalCard(halves[0])
	weekCard := a.renderCurrentWeekCard(halves[1])

	if a.isCompactLayout() || goalCard == "" {
		if goalCard != "" {
			b.WriteString(a.renderGoalCard(cw))
			b.WriteString("\n")
		}
		b.WriteString(a.renderCurrentWeekCard(cw))
	} else {
		b.WriteString(components.CardRow([]string{goalCard, weekCard}))
	}

	return b.String()
}

func goalStatusColor(s model.GoalStatus) lipgloss.Color {
	t := theme.Active
	switch s {
	case model.GoalReachable:
		return t.Green
	case model.GoalAtRisk:
		return t.Yellow
	case model.GoalImpossible:
		return t.Red
	}
	return t.TextDim
}

func (a App) goalCardBody() string {
	t := theme.Active
	g := a.projection.Goal
	if g == nil {
		return ""
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	statusStyle := lipgloss.NewStyle().Foreground(goalStatusColor(g.Status)).Background(t.Surface).Bold(true)

	var b strings.Builder
	b.WriteString(labelStyle.Render("Status:      ") + statusStyle.Render(g.Status.Label()) + "\n")
	b.WriteString(labelStyle.Render("Target:      ") + valueStyle.Render(cli.FormatHours(g.TargetHours)) + "\n")
	b.WriteString(labelStyle.Render("Daily rate:  ") + valueStyle.Render(cli.FormatHours(g.CurrentRatePerDay)+"/day") + "\n")
	b.WriteString(labelStyle.Render("At period end: ") + valueStyle.Render(cli.FormatSignedHours(g.ProjectedBalanceAtEnd)))
	return b.String()
}

func (a App) renderGoalCard(w int) string {
	body := a.goalCardBody()
	if body == "" {
		return ""
	}
	return components.ContentCard("Goal", body, w)
}

// currentWeek returns the week containing today, or the last week of
// the period when today is outside all of them.
func (a App) currentWeek() *model.Week {
	p := a.projection
	if p == nil || len(p.Weeks) == 0 {
		return nil
	}
	for i := range p.Weeks {
		w := &p.Weeks[i]
		if anyDayNotPast(w.Days) {
			return w
		}
	}
	return &p.Weeks[len(p.Weeks)-1]
}

func anyDayNotPast(days []model.Day) bool {
	for _, d := range days {
		if !d.Past {
			return true
		}
	}
	return false
}

func (a App) currentWeekBody(w int) string {
	t := theme.Active
	wk := a.currentWeek()
	if wk == nil {
		return lipgloss.NewStyle().Foreground(t.TextMuted).Render("No weeks in period")
	}

	innerW := components.CardInnerWidth(w)
	barW := innerW - 8
	if barW < 16 {
		barW = 16
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	b.WriteString(components.HourBar(gauge.FromWeek(*wk), barW))
	b.WriteString("\n")
	b.WriteString(cli.RenderDayStrip(wk.Days))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%s worked · %s available · %d working days",
		cli.FormatHours(wk.TotalWorked+wk.TotalAdjusted),
		cli.FormatHours(wk.HoursAvailable),
		wk.WorkingDaysCount)))
	return b.String()
}

func (a App) renderCurrentWeekCard(w int) string {
	wk := a.currentWeek()
	title := "This Week"
	if wk != nil {
		title = fmt.Sprintf("Week %s", cli.FormatDateShort(wk.WeekStart))
	}
	return components.ContentCard(title, a.currentWeekBody(w), w)
}
