package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"horaboard/internal/api"
	"horaboard/internal/config"
	"horaboard/internal/model"
	"horaboard/internal/tui/components"
	"horaboard/internal/tui/theme"
	"horaboard/internal/workweek"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldServerURL = iota
	settingsFieldClosureStart
	settingsFieldClosureEnd
	settingsFieldWeeklyHours
	settingsFieldWeeklyPercent
	settingsFieldTheme
	settingsFieldAutoRefresh
	settingsFieldRefreshInterval
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saving  bool  // system config save in flight
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40
	return ti
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	cfg := loadConfigOrDefault()
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()

	switch a.settings.cursor {
	case settingsFieldServerURL:
		ti.Placeholder = "http://localhost:8080"
		ti.SetValue(cfg.Server.URL)
	case settingsFieldClosureStart:
		ti.Placeholder = "1 (day of month, 1-31)"
		if a.sysConfig != nil {
			ti.SetValue(strconv.Itoa(a.sysConfig.ClosureStartDay))
		}
	case settingsFieldClosureEnd:
		ti.Placeholder = "31 (day of month, 1-31)"
		if a.sysConfig != nil {
			ti.SetValue(strconv.Itoa(a.sysConfig.ClosureEndDay))
		}
	case settingsFieldWeeklyHours:
		ti.Placeholder = "40"
		if a.sysConfig != nil {
			ti.SetValue(strings.TrimSuffix(cliHours(a.sysConfig.ExpectedWeeklyHours), "h"))
		}
	case settingsFieldWeeklyPercent:
		ti.Placeholder = "23.81 (% of the 168h week)"
		if a.sysConfig != nil {
			ti.SetValue(fmt.Sprintf("%.2f", workweek.PercentFromHours(a.sysConfig.ExpectedWeeklyHours)))
		}
	case settingsFieldTheme:
		ti.Placeholder = "flexoki-dark, catppuccin-mocha, terminal"
		ti.SetValue(cfg.Appearance.Theme)
	case settingsFieldAutoRefresh:
		ti.Placeholder = "true or false"
		ti.SetValue(strconv.FormatBool(a.autoRefresh))
	case settingsFieldRefreshInterval:
		ti.Placeholder = "60 (seconds, minimum 10)"
		ti.SetValue(strconv.Itoa(int(a.refreshInterval.Seconds())))
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "enter":
		cmd := a.settingsSave()
		a.settings.editing = false
		if cmd == nil {
			a.settings.saved = a.settings.saveErr == nil
		}
		return a, cmd
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave applies the edited value. Backend fields return a save
// command; local fields persist to the config file immediately.
func (a *App) settingsSave() tea.Cmd {
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldServerURL:
		if api.NewClient(val) == nil {
			a.settings.saveErr = fmt.Errorf("invalid server url %q", val)
			return nil
		}
		cfg := loadConfigOrDefault()
		cfg.Server.URL = val
		a.serverURL = val
		a.client = api.NewClient(val)
		a.settings.saveErr = config.Save(cfg)
		if a.settings.saveErr == nil {
			a.refreshing = true
			return fetchProjectionCmd(a.client, a.cachePath)
		}
		return nil

	case settingsFieldClosureStart, settingsFieldClosureEnd:
		day, err := strconv.Atoi(val)
		if err != nil {
			a.settings.saveErr = fmt.Errorf("invalid day %q", val)
			return nil
		}
		return a.saveSystemField(func(sc *model.SystemConfig) {
			if a.settings.cursor == settingsFieldClosureStart {
				sc.ClosureStartDay = day
			} else {
				sc.ClosureEndDay = day
			}
		})

	case settingsFieldWeeklyHours:
		hours, err := strconv.ParseFloat(val, 64)
		if err != nil {
			a.settings.saveErr = fmt.Errorf("invalid hours %q", val)
			return nil
		}
		return a.saveSystemField(func(sc *model.SystemConfig) {
			sc.ExpectedWeeklyHours = hours
		})

	case settingsFieldWeeklyPercent:
		pct, err := strconv.ParseFloat(val, 64)
		if err != nil {
			a.settings.saveErr = fmt.Errorf("invalid percent %q", val)
			return nil
		}
		// Percent is a one-way input: it only overwrites the weekly
		// hours when it converts to a positive amount.
		hours := workweek.HoursFromPercent(pct)
		if hours <= 0 {
			a.settings.saveErr = fmt.Errorf("percent %v is out of range", pct)
			return nil
		}
		return a.saveSystemField(func(sc *model.SystemConfig) {
			sc.ExpectedWeeklyHours = hours
		})

	case settingsFieldTheme:
		found := false
		for _, t := range theme.All {
			if t.Name == val {
				found = true
				break
			}
		}
		if !found {
			a.settings.saveErr = fmt.Errorf("unknown theme %q", val)
			return nil
		}
		cfg := loadConfigOrDefault()
		cfg.Appearance.Theme = val
		theme.SetActive(val)
		a.settings.saveErr = config.Save(cfg)
		return nil

	case settingsFieldAutoRefresh:
		cfg := loadConfigOrDefault()
		cfg.TUI.AutoRefresh = val == "true" || val == "1" || val == "yes"
		a.autoRefresh = cfg.TUI.AutoRefresh
		a.settings.saveErr = config.Save(cfg)
		return nil

	case settingsFieldRefreshInterval:
		interval, err := strconv.Atoi(val)
		if err != nil || interval < 10 {
			a.settings.saveErr = fmt.Errorf("interval must be at least 10 seconds")
			return nil
		}
		cfg := loadConfigOrDefault()
		cfg.TUI.RefreshIntervalSec = interval
		a.refreshInterval = time.Duration(interval) * time.Second
		a.settings.saveErr = config.Save(cfg)
		return nil
	}

	return nil
}

func (a *App) saveSystemField(apply func(*model.SystemConfig)) tea.Cmd {
	if a.sysConfig == nil {
		a.settings.saveErr = fmt.Errorf("system config not loaded yet")
		return nil
	}
	updated := *a.sysConfig
	apply(&updated)
	if err := updated.Validate(); err != nil {
		a.settings.saveErr = err
		return nil
	}
	a.settings.saveErr = nil
	a.settings.saving = true
	return saveSysConfigCmd(a.client, updated)
}

func cliHours(h float64) string {
	s := strconv.FormatFloat(h, 'f', -1, 64)
	return s + "h"
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := loadConfigOrDefault()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceHover).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover)

	type field struct {
		label string
		value string
	}

	closureStart := "(loading)"
	closureEnd := "(loading)"
	weeklyHours := "(loading)"
	weeklyPercent := "(loading)"
	if a.sysConfig != nil {
		closureStart = strconv.Itoa(a.sysConfig.ClosureStartDay)
		closureEnd = strconv.Itoa(a.sysConfig.ClosureEndDay)
		weeklyHours = cliHours(a.sysConfig.ExpectedWeeklyHours)
		weeklyPercent = fmt.Sprintf("%.2f%%", workweek.PercentFromHours(a.sysConfig.ExpectedWeeklyHours))
	}

	fields := []field{
		{"Server URL", cfg.Server.URL},
		{"Closure Start Day", closureStart},
		{"Closure End Day", closureEnd},
		{"Weekly Hours", weeklyHours},
		{"Weekly Percent", weeklyPercent},
		{"Theme", cfg.Appearance.Theme},
		{"Auto Refresh", strconv.FormatBool(a.autoRefresh)},
		{"Refresh Interval", fmt.Sprintf("%ds", int(a.refreshInterval.Seconds()))},
	}

	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			innerW := components.CardInnerWidth(cw)
			padLen := innerW - usedWidth
			if padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceHover).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	switch {
	case a.settings.saving:
		formBody.WriteString("\n")
		formBody.WriteString(labelStyle.Render("Saving..."))
	case a.settings.saveErr != nil:
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	case a.settings.saved:
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	// General info card
	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Server:       ") + valueStyle.Render(a.serverURL) + "\n")
	infoBody.WriteString(labelStyle.Render("Cache file:   ") + valueStyle.Render(a.cachePath) + "\n")
	infoBody.WriteString(labelStyle.Render("Config file:  ") + valueStyle.Render(config.Path()))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}
