package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"horaboard/internal/config"
	"horaboard/internal/model"
	"horaboard/internal/workweek"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show local and server configuration",
	RunE:  runConfigShow,
}

var configSetHoursCmd = &cobra.Command{
	Use:   "set-hours <hours>",
	Short: "Set the expected weekly hours on the server",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigSetHours,
}

var configSetPercentCmd = &cobra.Command{
	Use:   "set-percent <percent>",
	Short: "Set expected weekly hours as a percentage of the 168h week",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigSetPercent,
}

var configSetClosureCmd = &cobra.Command{
	Use:   "set-closure <start-day> <end-day>",
	Short: "Set the period closure days on the server",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSetClosure,
}

func init() {
	configCmd.AddCommand(configSetHoursCmd)
	configCmd.AddCommand(configSetPercentCmd)
	configCmd.AddCommand(configSetClosureCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Local]")
	fmt.Printf("    Server URL:       %s\n", config.ServerURL(cfg))
	fmt.Printf("    Theme:            %s\n", cfg.Appearance.Theme)
	fmt.Printf("    Page size:        %d\n", cfg.General.PageSize)
	fmt.Printf("    Auto refresh:     %v\n", cfg.TUI.AutoRefresh)
	fmt.Printf("    Refresh interval: %ds\n", cfg.TUI.RefreshIntervalSec)
	fmt.Println()

	client, err := newClient()
	if err != nil {
		fmt.Println("  [Server]")
		fmt.Printf("    %v\n", err)
		return nil
	}

	sys, err := client.FetchSystemConfig(context.Background())
	fmt.Println("  [Server]")
	if err != nil {
		fmt.Printf("    Unreachable: %v\n", err)
		return nil
	}
	if sys == nil {
		fmt.Println("    No system config stored yet")
		return nil
	}

	fmt.Printf("    Closure days:     %d to %d\n", sys.ClosureStartDay, sys.ClosureEndDay)
	fmt.Printf("    Weekly hours:     %g (%.2f%% of the week)\n",
		sys.ExpectedWeeklyHours, workweek.PercentFromHours(sys.ExpectedWeeklyHours))
	return nil
}

// updateSystemConfig fetches, patches, validates, and saves the
// server-side config.
func updateSystemConfig(apply func(*model.SystemConfig)) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	ctx := context.Background()
	sys, err := client.FetchSystemConfig(ctx)
	if err != nil {
		return err
	}
	if sys == nil {
		sys = &model.SystemConfig{ClosureStartDay: 1, ClosureEndDay: 31, ExpectedWeeklyHours: 40}
	}

	apply(sys)

	saved, err := client.SaveSystemConfig(ctx, *sys)
	if err != nil {
		return err
	}
	if saved != nil {
		fmt.Printf("  Saved: closure %d-%d, %g weekly hours (%.2f%%)\n",
			saved.ClosureStartDay, saved.ClosureEndDay,
			saved.ExpectedWeeklyHours, workweek.PercentFromHours(saved.ExpectedWeeklyHours))
	}
	return nil
}

func runConfigSetHours(_ *cobra.Command, args []string) error {
	hours, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
	if err != nil {
		return fmt.Errorf("invalid hours %q", args[0])
	}
	return updateSystemConfig(func(sc *model.SystemConfig) {
		sc.ExpectedWeeklyHours = hours
	})
}

func runConfigSetPercent(_ *cobra.Command, args []string) error {
	pct, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
	if err != nil {
		return fmt.Errorf("invalid percent %q", args[0])
	}
	hours := workweek.HoursFromPercent(pct)
	if hours <= 0 {
		return fmt.Errorf("percent must be between 0 and 100 (exclusive of 0)")
	}
	return updateSystemConfig(func(sc *model.SystemConfig) {
		sc.ExpectedWeeklyHours = hours
	})
}

func runConfigSetClosure(_ *cobra.Command, args []string) error {
	start, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid start day %q", args[0])
	}
	end, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid end day %q", args[1])
	}
	return updateSystemConfig(func(sc *model.SystemConfig) {
		sc.ClosureStartDay = start
		sc.ClosureEndDay = end
	})
}
