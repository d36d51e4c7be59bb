package cmd

import (
	"errors"
	"fmt"
	"strings"

	"horaboard/internal/api"
	"horaboard/internal/config"
	"horaboard/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure the server URL and appearance",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	serverURL := cfg.Server.URL
	themeName := cfg.Appearance.Theme
	autoRefresh := cfg.TUI.AutoRefresh

	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, t := range theme.All {
		themeOpts[i] = huh.NewOption(t.Name, t.Name)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Server URL").
				Description("The work-hours backend this dashboard talks to.").
				Placeholder("http://localhost:8080").
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return errors.New("server URL is required")
					}
					if api.NewClient(s) == nil {
						return errors.New("must start with http:// or https://")
					}
					return nil
				}).
				Value(&serverURL),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&themeName),
			huh.NewConfirm().
				Title("Auto-refresh the TUI dashboard?").
				Value(&autoRefresh),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Server.URL = strings.TrimSpace(serverURL)
	cfg.Appearance.Theme = themeName
	cfg.TUI.AutoRefresh = autoRefresh

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `horaboard` to see your period, or `horaboard tui` for the dashboard.")
	return nil
}
