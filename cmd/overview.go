package cmd

import (
	"context"
	"fmt"

	"horaboard/internal/cli"
	"horaboard/internal/gauge"

	"github.com/spf13/cobra"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show the current period projection",
	RunE:  runOverview,
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}

func runOverview(_ *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	proj, cached, err := fetchProjection(context.Background(), client)
	if err != nil {
		return err
	}

	if proj == nil {
		fmt.Println("\n  No active period on the server.")
		fmt.Println("  Add entries with `horaboard entries add`, or configure closure days.")
		return nil
	}

	fmt.Println()
	title := fmt.Sprintf("HORABOARD  %s", cli.FormatDateRange(proj.Period.Start, proj.Period.End))
	if cached {
		title += "  (cached)"
	}
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()

	rows := [][]string{
		{"Worked", cli.FormatHours(proj.Totals.TotalWorked)},
		{"Adjusted", cli.FormatSignedHours(proj.Totals.TotalAdjusted)},
		{"Balance", cli.FormatSignedHours(proj.Totals.Balance)},
		{"---"},
		{"Available", cli.FormatHours(proj.Totals.AvailableHoursInPeriod)},
		{"Period max", cli.FormatHours(proj.Totals.FullMonthMaxHours)},
		{"Days elapsed", fmt.Sprintf("%d / %d", proj.Progress.DaysElapsed, proj.Progress.TotalDays)},
		{"Time elapsed", cli.FormatPercent(proj.Progress.PercentageElapsed)},
	}

	if g := proj.Goal; g != nil {
		rows = append(rows,
			[]string{"---"},
			[]string{"Goal status", g.Status.Label()},
			[]string{"Goal target", cli.FormatHours(g.TargetHours)},
			[]string{"Daily rate", cli.FormatHours(g.CurrentRatePerDay) + "/day"},
			[]string{"Projected end", cli.FormatSignedHours(g.ProjectedBalanceAtEnd)},
		)
	}

	fmt.Print(cli.RenderTable(cli.Table{Title: "Period", Rows: rows}))
	fmt.Println()

	// Period gauge
	fmt.Println("  " + cli.RenderHourBar(gauge.FromProjection(*proj), 44))
	fmt.Println()

	// Weekly bars
	if len(proj.Weeks) > 0 {
		fmt.Println("  Weeks")
		for _, wk := range proj.Weeks {
			fmt.Printf("  %s  %s\n",
				cli.FormatDateShort(wk.WeekStart),
				cli.RenderHourBar(gauge.FromWeek(wk), 36))
		}
		fmt.Println()
	}

	return nil
}
