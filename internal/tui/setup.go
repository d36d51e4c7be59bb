package tui

import (
	"errors"
	"strings"

	"horaboard/internal/api"
	"horaboard/internal/config"
	"horaboard/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// setupValues holds the first-run wizard answers.
type setupValues struct {
	ServerURL string
	Theme     string
}

func newSetupForm(vals *setupValues) *huh.Form {
	vals.Theme = theme.FlexokiDark.Name

	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, t := range theme.All {
		themeOpts[i] = huh.NewOption(t.Name, t.Name)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to horaboard").
				Description("Point the dashboard at your work-hours server to get started."),
			huh.NewInput().
				Title("Server URL").
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
				Value(&vals.ServerURL),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.saveSetupConfig()
		a.needSetup = false
		a.setupForm = nil
		return a, tea.Batch(
			fetchProjectionCmd(a.client, a.cachePath),
			fetchSysConfigCmd(a.client),
			a.spinner.Tick,
			tickCmd(),
		)
	}

	if a.setupForm.State == huh.StateAborted {
		return a, tea.Quit
	}

	return a, cmd
}

func (a *App) saveSetupConfig() {
	cfg := loadConfigOrDefault()

	url := strings.TrimSpace(a.setupVals.ServerURL)
	cfg.Server.URL = url
	a.serverURL = url
	a.client = api.NewClient(url)

	if a.setupVals.Theme != "" {
		cfg.Appearance.Theme = a.setupVals.Theme
		theme.SetActive(cfg.Appearance.Theme)
	}

	_ = config.Save(cfg)
}
