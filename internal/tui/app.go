// Package tui provides the interactive Bubble Tea dashboard for horaboard.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"horaboard/internal/api"
	"horaboard/internal/config"
	"horaboard/internal/model"
	"horaboard/internal/store"
	"horaboard/internal/tui/components"
	"horaboard/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ProjectionMsg is sent when a projection fetch completes.
type ProjectionMsg struct {
	Projection *model.Projection
	FetchedAt  time.Time
	Cached     bool
	Err        error
}

// EntriesMsg is sent when an entries fetch completes.
type EntriesMsg struct {
	Entries []model.HourEntry
	Cached  bool
	Err     error
}

// EntryCreatedMsg reports the result of posting a new entry.
type EntryCreatedMsg struct {
	Entry *model.HourEntry
	Err   error
}

// EntryDeletedMsg reports the result of deleting an entry.
type EntryDeletedMsg struct {
	ID  int64
	Err error
}

// SysConfigMsg is sent when the backend system config arrives.
type SysConfigMsg struct {
	Config *model.SystemConfig
	Err    error
}

// SysConfigSavedMsg reports the result of saving system config upstream.
type SysConfigSavedMsg struct {
	Config *model.SystemConfig
	Err    error
}

// App is the root Bubble Tea model.
type App struct {
	client    *api.Client
	serverURL string
	cachePath string

	// Data
	projection *model.Projection
	fetchedAt  time.Time
	cached     bool
	fetchErr   string
	loaded     bool

	entries        []model.HourEntry
	entriesLoaded  bool
	entriesLoading bool

	sysConfig *model.SystemConfig

	// Auto-refresh state
	autoRefresh     bool
	refreshInterval time.Duration
	lastRefresh     time.Time
	refreshing      bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	weeksCursor int
	entState    entriesState
	settings    settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 72
	compactWidth     = 110
	maxContentWidth  = 160

	minContentHeight = 5
)

// loadConfigOrDefault loads config, returning defaults on error.
// This ensures the TUI can always start even if config is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new TUI app model.
func NewApp(serverURL string) App {
	needSetup := !config.Exists() && serverURL == ""

	cfg := loadConfigOrDefault()
	if serverURL == "" {
		serverURL = config.ServerURL(cfg)
	}
	theme.SetActive(cfg.Appearance.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	refreshInterval := time.Duration(cfg.TUI.RefreshIntervalSec) * time.Second
	if refreshInterval < 10*time.Second {
		refreshInterval = 60 * time.Second
	}

	return App{
		client:          api.NewClient(serverURL),
		serverURL:       serverURL,
		cachePath:       store.DefaultPath(),
		needSetup:       needSetup,
		autoRefresh:     cfg.TUI.AutoRefresh,
		refreshInterval: refreshInterval,
		spinner:         sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.needSetup {
		form := newSetupForm(&a.setupVals)
		a.setupForm = form
		return form.Init()
	}

	return tea.Batch(
		fetchProjectionCmd(a.client, a.cachePath),
		fetchSysConfigCmd(a.client),
		a.spinner.Tick,
		tickCmd(),
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Entry creation form intercepts all keys
		if a.entState.adding && a.entState.form != nil {
			return a.updateEntryForm(msg)
		}

		// Settings tab has its own keybindings (text input)
		if a.activeTab == 3 && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		// Help toggle
		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		// Entries tab keybindings
		if a.activeTab == 2 {
			if m, cmd, handled := a.updateEntriesKeys(key); handled {
				return m, cmd
			}
		}

		// Settings tab navigation (non-editing mode)
		if a.activeTab == 3 {
			switch key {
			case "j", "down":
				if a.settings.cursor < settingsFieldCount-1 {
					a.settings.cursor++
				}
				return a, nil
			case "k", "up":
				if a.settings.cursor > 0 {
					a.settings.cursor--
				}
				return a, nil
			case "enter":
				return a.settingsStartEdit()
			}
		}

		// Weeks tab navigation
		if a.activeTab == 1 && a.projection != nil {
			switch key {
			case "j", "down":
				if a.weeksCursor < len(a.projection.Weeks)-1 {
					a.weeksCursor++
				}
				return a, nil
			case "k", "up":
				if a.weeksCursor > 0 {
					a.weeksCursor--
				}
				return a, nil
			}
		}

		if key == "q" {
			return a, tea.Quit
		}

		// Manual refresh
		if key == "r" && !a.refreshing {
			a.refreshing = true
			return a, tea.Batch(
				fetchProjectionCmd(a.client, a.cachePath),
				fetchSysConfigCmd(a.client),
			)
		}

		// Toggle auto-refresh
		if key == "R" {
			a.autoRefresh = !a.autoRefresh
			cfg := loadConfigOrDefault()
			cfg.TUI.AutoRefresh = a.autoRefresh
			_ = config.Save(cfg)
			return a, nil
		}

		// Tab navigation
		switch key {
		case "o", "w", "e", "x":
			a.activeTab = components.TabIdxByKey(rune(key[0]))
			if a.activeTab == 2 && !a.entriesLoaded && !a.entriesLoading {
				a.entriesLoading = true
				start, end := a.entriesRange()
				return a, fetchEntriesCmd(a.client, a.cachePath, start, end)
			}
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		}
		return a, nil

	case ProjectionMsg:
		a.refreshing = false
		a.loaded = true
		a.lastRefresh = time.Now()
		if msg.Err != nil {
			a.fetchErr = shortErr(msg.Err)
			return a, nil
		}
		a.fetchErr = ""
		a.projection = msg.Projection
		a.fetchedAt = msg.FetchedAt
		a.cached = msg.Cached
		if a.projection != nil && a.weeksCursor >= len(a.projection.Weeks) {
			a.weeksCursor = 0
		}
		return a, nil

	case EntriesMsg:
		a.entriesLoading = false
		a.entriesLoaded = true
		if msg.Err != nil {
			a.entState.lastErr = shortErr(msg.Err)
			return a, nil
		}
		a.entState.lastErr = ""
		a.entries = msg.Entries
		if a.entState.cursor >= len(a.entries) {
			a.entState.cursor = len(a.entries) - 1
		}
		if a.entState.cursor < 0 {
			a.entState.cursor = 0
		}
		return a, nil

	case EntryCreatedMsg:
		a.entState.submitting = false
		if msg.Err != nil {
			a.entState.lastErr = shortErr(msg.Err)
			return a, nil
		}
		a.entState.lastErr = ""
		// Re-list entries and refresh the projection; totals changed.
		a.entriesLoading = true
		start, end := a.entriesRange()
		return a, tea.Batch(
			fetchEntriesCmd(a.client, a.cachePath, start, end),
			fetchProjectionCmd(a.client, a.cachePath),
		)

	case EntryDeletedMsg:
		delete(a.entState.deleting, msg.ID)
		if msg.Err != nil {
			a.entState.lastErr = shortErr(msg.Err)
			return a, nil
		}
		a.entState.lastErr = ""
		a.entriesLoading = true
		start, end := a.entriesRange()
		return a, tea.Batch(
			fetchEntriesCmd(a.client, a.cachePath, start, end),
			fetchProjectionCmd(a.client, a.cachePath),
		)

	case SysConfigMsg:
		if msg.Err == nil {
			a.sysConfig = msg.Config
		}
		return a, nil

	case SysConfigSavedMsg:
		a.settings.saving = false
		if msg.Err != nil {
			a.settings.saveErr = msg.Err
			return a, nil
		}
		a.settings.saveErr = nil
		a.settings.saved = true
		a.sysConfig = msg.Config
		// Closure days shift the period; re-fetch the projection.
		return a, fetchProjectionCmd(a.client, a.cachePath)

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if a.loaded && a.autoRefresh && !a.refreshing {
			if time.Since(a.lastRefresh) >= a.refreshInterval {
				a.refreshing = true
				cmds = append(cmds, fetchProjectionCmd(a.client, a.cachePath))
			}
		}
		return a, tea.Batch(cmds...)
	}

	// Forward unhandled messages to active forms (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.entState.adding && a.entState.form != nil {
		return a.updateEntryForm(msg)
	}

	return a, nil
}

// entriesRange returns the listing window: the projection period when
// known, otherwise open-ended.
func (a App) entriesRange() (string, string) {
	if a.projection == nil {
		return "", ""
	}
	return a.projection.Period.Start.String(), a.projection.Period.End.String()
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.entState.adding && a.entState.form != nil {
		return a.viewEntryForm()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  horaboard needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active
	w := a.width
	h := a.height

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	spinnerStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◷ horaboard"))
	b.WriteString(subtitleStyle.Render(" · Work Hours Dashboard"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Fetching projection from " + a.serverURL + "..."))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active
	h := a.height
	w := a.width

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Blue).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◷ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"o w e x", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Navigate lists"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"a", "Add entry (Entries tab)"},
		{"d", "Delete entry (Entries tab)"},
		{"Enter", "Edit / Confirm"},
		{"Esc", "Back / Cancel"},
		{"r", "Refresh data"},
		{"R", "Toggle auto-refresh"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	dataAge := ""
	if !a.fetchedAt.IsZero() {
		dataAge = formatAge(time.Since(a.fetchedAt))
	}
	statusBar := components.RenderStatusBar(w, a.serverURL, dataAge, a.cached, a.fetchErr)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case 0:
		content = a.renderOverviewTab(cw)
	case 1:
		content = a.renderWeeksTab(cw, contentH)
	case 2:
		content = a.renderEntriesTab(cw, contentH)
	case 3:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Commands ───────────────────────────────────────────────────

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// fetchProjectionCmd fetches the current projection, falling back to
// the local cache when the backend is unreachable.
func fetchProjectionCmd(client *api.Client, cachePath string) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return ProjectionMsg{Err: errors.New("no server configured")}
		}

		ctx := context.Background()
		proj, err := client.FetchProjection(ctx, "")
		if err == nil {
			now := time.Now()
			if proj != nil {
				if cache, cerr := store.Open(cachePath); cerr == nil {
					_ = cache.SaveProjection(*proj, now)
					_ = cache.Close()
				}
			}
			return ProjectionMsg{Projection: proj, FetchedAt: now}
		}

		if errors.Is(err, api.ErrUnavailable) {
			if cache, cerr := store.Open(cachePath); cerr == nil {
				defer func() { _ = cache.Close() }()
				if proj, at, lerr := cache.LoadLatestProjection(); lerr == nil && proj != nil {
					return ProjectionMsg{Projection: proj, FetchedAt: at, Cached: true}
				}
			}
		}
		return ProjectionMsg{Err: err}
	}
}

// fetchEntriesCmd lists entries, falling back to the cache mirror when
// the backend is unreachable.
func fetchEntriesCmd(client *api.Client, cachePath string, start, end string) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return EntriesMsg{Err: errors.New("no server configured")}
		}

		entries, err := client.ListEntries(context.Background(), start, end)
		if err == nil {
			if cache, cerr := store.Open(cachePath); cerr == nil {
				_ = cache.ReplaceEntries(entries, time.Now())
				_ = cache.Close()
			}
			return EntriesMsg{Entries: entries}
		}

		if errors.Is(err, api.ErrUnavailable) {
			if cache, cerr := store.Open(cachePath); cerr == nil {
				defer func() { _ = cache.Close() }()
				if mirrored, lerr := cache.ListEntries(start, end); lerr == nil {
					return EntriesMsg{Entries: mirrored, Cached: true}
				}
			}
		}
		return EntriesMsg{Err: err}
	}
}

func fetchSysConfigCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return SysConfigMsg{Err: errors.New("no server configured")}
		}
		cfg, err := client.FetchSystemConfig(context.Background())
		return SysConfigMsg{Config: cfg, Err: err}
	}
}

func createEntryCmd(client *api.Client, cachePath string, in model.NewHourEntry) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return EntryCreatedMsg{Err: errors.New("no server configured")}
		}
		created, err := client.CreateEntry(context.Background(), in)
		if err == nil && created != nil {
			if cache, cerr := store.Open(cachePath); cerr == nil {
				_ = cache.SaveEntry(*created, time.Now())
				_ = cache.Close()
			}
		}
		return EntryCreatedMsg{Entry: created, Err: err}
	}
}

func deleteEntryCmd(client *api.Client, cachePath string, id int64) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return EntryDeletedMsg{ID: id, Err: errors.New("no server configured")}
		}
		err := client.DeleteEntry(context.Background(), id)
		if err == nil {
			if cache, cerr := store.Open(cachePath); cerr == nil {
				_ = cache.DeleteEntry(id)
				_ = cache.Close()
			}
		}
		return EntryDeletedMsg{ID: id, Err: err}
	}
}

func saveSysConfigCmd(client *api.Client, cfg model.SystemConfig) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return SysConfigSavedMsg{Err: errors.New("no server configured")}
		}
		saved, err := client.SaveSystemConfig(context.Background(), cfg)
		return SysConfigSavedMsg{Config: saved, Err: err}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func shortErr(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, api.ErrUnavailable) {
		return "server unreachable"
	}
	s := err.Error()
	if len(s) > 60 {
		s = s[:59] + "…"
	}
	return s
}

func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}
