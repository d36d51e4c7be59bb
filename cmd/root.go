// Package cmd implements the horaboard CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"horaboard/internal/api"
	"horaboard/internal/config"
	"horaboard/internal/model"
	"horaboard/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagServer  string
	flagDate    string
	flagQuiet   bool
	flagNoCache bool
)

var rootCmd = &cobra.Command{
	Use:   "horaboard",
	Short: "Work hours dashboard CLI",
	Long:  "Track worked hours, weekly gauges, and period projections from your work-hours server.",
	RunE:  runOverview,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagServer, "server", "s", "", "Server URL (overrides config and HORABOARD_SERVER)")
	rootCmd.PersistentFlags().StringVar(&flagDate, "date", "", "Reference date for the projection (YYYY-MM-DD, default today)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip the local snapshot cache fallback")
}

// serverURL resolves the backend URL: flag, then env, then config file.
func serverURL() string {
	if flagServer != "" {
		return flagServer
	}
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	return config.ServerURL(cfg)
}

// newClient builds the API client or explains how to configure one.
func newClient() (*api.Client, error) {
	url := serverURL()
	if url == "" {
		return nil, errors.New("no server configured: run `horaboard setup` or pass --server")
	}
	client := api.NewClient(url)
	if client == nil {
		return nil, fmt.Errorf("invalid server url %q", url)
	}
	return client, nil
}

// fetchProjection loads the projection, falling back to the local
// cache when the backend is unreachable. The bool reports cache use.
func fetchProjection(ctx context.Context, client *api.Client) (*model.Projection, bool, error) {
	proj, err := client.FetchProjection(ctx, flagDate)
	if err == nil {
		if proj != nil && !flagNoCache {
			if cache, cerr := store.Open(store.DefaultPath()); cerr == nil {
				_ = cache.SaveProjection(*proj, time.Now())
				_ = cache.Close()
			}
		}
		return proj, false, nil
	}

	if errors.Is(err, api.ErrUnavailable) && !flagNoCache {
		cache, cerr := store.Open(store.DefaultPath())
		if cerr == nil {
			defer func() { _ = cache.Close() }()
			if cached, at, lerr := cache.LoadLatestProjection(); lerr == nil && cached != nil {
				if !flagQuiet {
					fmt.Fprintf(os.Stderr, "  Server unreachable, showing snapshot from %s\n",
						at.Local().Format("2006-01-02 15:04"))
				}
				return cached, true, nil
			}
		}
	}
	return nil, false, err
}
