package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"horaboard/internal/cli"

	"github.com/spf13/cobra"
)

var adjustCmd = &cobra.Command{
	Use:   "adjust <hours>",
	Short: "Set the manual hour adjustment for the current period",
	Long: "Set the adjustment applied on top of worked hours, such as compensated " +
		"overtime or bank corrections. Use 0 to clear it; negative values subtract.",
	Args: cobra.ExactArgs(1),
	RunE: runAdjust,
}

func init() {
	rootCmd.AddCommand(adjustCmd)
}

func runAdjust(_ *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	hours, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
	if err != nil {
		return fmt.Errorf("invalid hours %q", args[0])
	}

	proj, err := client.ApplyAdjustment(context.Background(), hours)
	if err != nil {
		return err
	}

	fmt.Printf("  Adjustment set to %s\n", cli.FormatSignedHours(hours))
	if proj != nil {
		fmt.Printf("  New balance: %s\n", cli.FormatSignedHours(proj.Totals.Balance))
	}
	return nil
}
