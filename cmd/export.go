package cmd

import (
	"context"
	"fmt"
	"strings"

	"horaboard/internal/export"

	"github.com/spf13/cobra"
)

var (
	flagExportFormat string
	flagExportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export hour entries to CSV or JSON",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "csv", "Output format: csv or json")
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Output file (default entries.<format>)")
	exportCmd.Flags().StringVar(&flagEntriesStart, "start", "", "Range start (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&flagEntriesEnd, "end", "", "Range end (YYYY-MM-DD)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	format := strings.ToLower(flagExportFormat)
	if format != "csv" && format != "json" {
		return fmt.Errorf("unsupported format %q (use csv or json)", flagExportFormat)
	}

	out := flagExportOut
	if out == "" {
		out = "entries." + format
	}

	entries, err := client.ListEntries(context.Background(), flagEntriesStart, flagEntriesEnd)
	if err != nil {
		return err
	}

	switch format {
	case "csv":
		err = export.ToCSV(entries, out)
	case "json":
		err = export.ToJSON(entries, out)
	}
	if err != nil {
		return err
	}

	fmt.Printf("  Exported %d entries to %s\n", len(entries), out)
	return nil
}
