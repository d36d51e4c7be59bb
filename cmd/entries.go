package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"horaboard/internal/api"
	"horaboard/internal/cli"
	"horaboard/internal/model"
	"horaboard/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagEntriesStart string
	flagEntriesEnd   string
	flagEntriesPage  int
	flagEntriesSize  int
	flagEntriesAll   bool
)

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "Manage hour entries",
	RunE:  runEntriesList,
}

var entriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List hour entries",
	RunE:  runEntriesList,
}

var entriesAddCmd = &cobra.Command{
	Use:   "add <date> <hours> [description]",
	Short: "Record worked hours for a day",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runEntriesAdd,
}

var entriesRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an hour entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runEntriesRm,
}

func init() {
	entriesCmd.PersistentFlags().StringVar(&flagEntriesStart, "start", "", "Range start (YYYY-MM-DD, default period start)")
	entriesCmd.PersistentFlags().StringVar(&flagEntriesEnd, "end", "", "Range end (YYYY-MM-DD, default period end)")
	entriesListCmd.Flags().IntVar(&flagEntriesPage, "page", 0, "Page number (0-based)")
	entriesListCmd.Flags().IntVar(&flagEntriesSize, "size", 0, "Page size (0 = unpaged)")
	entriesListCmd.Flags().BoolVar(&flagEntriesAll, "all", false, "Ignore the current period, list everything")

	entriesCmd.AddCommand(entriesListCmd)
	entriesCmd.AddCommand(entriesAddCmd)
	entriesCmd.AddCommand(entriesRmCmd)
	rootCmd.AddCommand(entriesCmd)
}

// entriesWindow resolves the listing range: explicit flags win, then
// the current projection period, then open-ended.
func entriesWindow(ctx context.Context, client *api.Client) (string, string) {
	if flagEntriesAll {
		return "", ""
	}
	start, end := flagEntriesStart, flagEntriesEnd
	if start != "" || end != "" {
		return start, end
	}
	proj, _, err := fetchProjection(ctx, client)
	if err != nil || proj == nil {
		return "", ""
	}
	return proj.Period.Start.String(), proj.Period.End.String()
}

func runEntriesList(_ *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	ctx := context.Background()
	start, end := entriesWindow(ctx, client)

	var (
		entries []model.HourEntry
		footer  string
		cached  bool
	)

	if flagEntriesSize > 0 {
		page, perr := client.ListEntriesPaged(ctx, start, end, flagEntriesPage, flagEntriesSize)
		if perr != nil {
			return perr
		}
		entries = page.Content
		footer = fmt.Sprintf("page %d of %d · %s entries total",
			page.Number+1, page.TotalPages, cli.FormatNumber(page.TotalElements))
	} else {
		entries, err = client.ListEntries(ctx, start, end)
		if err != nil {
			if errors.Is(err, api.ErrUnavailable) && !flagNoCache {
				if cache, cerr := store.Open(store.DefaultPath()); cerr == nil {
					entries, err = cache.ListEntries(start, end)
					_ = cache.Close()
					cached = err == nil
				}
			}
			if err != nil {
				return err
			}
		} else if !flagNoCache && start == "" && end == "" {
			if cache, cerr := store.Open(store.DefaultPath()); cerr == nil {
				_ = cache.ReplaceEntries(entries, time.Now())
				_ = cache.Close()
			}
		}
	}

	if len(entries) == 0 {
		fmt.Println("\n  No entries found.")
		return nil
	}

	title := "Entries"
	if cached {
		title += " (cached)"
	}

	var total float64
	rows := make([][]string, 0, len(entries)+2)
	for _, e := range entries {
		total += e.Hours
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			cli.FormatDate(e.EntryDate),
			cli.FormatHours(e.Hours),
			e.Description,
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"", "Total", cli.FormatHours(total), ""})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   title,
		Headers: []string{"ID", "Date", "Hours", "Description"},
		Rows:    rows,
	}))
	if footer != "" {
		fmt.Printf("  %s\n", footer)
	}
	fmt.Println()
	return nil
}

func runEntriesAdd(_ *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	hours, err := strconv.ParseFloat(strings.TrimSpace(args[1]), 64)
	if err != nil {
		return fmt.Errorf("invalid hours %q", args[1])
	}

	in := model.NewHourEntry{
		EntryDate: strings.TrimSpace(args[0]),
		Hours:     hours,
	}
	if len(args) == 3 {
		in.Description = args[2]
	}

	created, err := client.CreateEntry(context.Background(), in)
	if err != nil {
		return err
	}

	if !flagNoCache && created != nil {
		if cache, cerr := store.Open(store.DefaultPath()); cerr == nil {
			_ = cache.SaveEntry(*created, time.Now())
			_ = cache.Close()
		}
	}

	if created != nil {
		fmt.Printf("  Added entry %d: %s %s\n", created.ID,
			cli.FormatDate(created.EntryDate), cli.FormatHours(created.Hours))
	} else {
		fmt.Println("  Entry added.")
	}
	return nil
}

func runEntriesRm(_ *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid entry id %q", args[0])
	}

	if err := client.DeleteEntry(context.Background(), id); err != nil {
		return err
	}

	if !flagNoCache {
		if cache, cerr := store.Open(store.DefaultPath()); cerr == nil {
			_ = cache.DeleteEntry(id)
			_ = cache.Close()
		}
	}

	fmt.Printf("  Deleted entry %d\n", id)
	return nil
}
