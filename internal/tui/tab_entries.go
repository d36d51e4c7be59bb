package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"horaboard/internal/cli"
	"horaboard/internal/model"
	"horaboard/internal/tui/components"
	"horaboard/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// entriesState tracks the entries tab state.
type entriesState struct {
	cursor     int
	adding     bool
	form       *huh.Form
	formVals   entryFormValues
	submitting bool
	deleting   map[int64]bool // entry IDs with an in-flight delete
	lastErr    string
}

type entryFormValues struct {
	Date        string
	Hours       string
	Description string
}

func newEntryForm(vals *entryFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Placeholder("2024-03-15").
				Validate(func(s string) error {
					if _, err := model.ParseDate(strings.TrimSpace(s)); err != nil {
						return errors.New("use YYYY-MM-DD")
					}
					return nil
				}).
				Value(&vals.Date),
			huh.NewInput().
				Title("Hours").
				Placeholder("8 or 7.5").
				Validate(func(s string) error {
					h, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil {
						return errors.New("must be a number")
					}
					in := model.NewHourEntry{EntryDate: "2024-01-01", Hours: h}
					if err := in.Validate(); err != nil {
						return errors.New("between 0.5 and 24, in half-hour steps")
					}
					return nil
				}).
				Value(&vals.Hours),
			huh.NewInput().
				Title("Description (optional)").
				Value(&vals.Description),
		),
	)
}

// updateEntriesKeys handles list-mode keys on the entries tab.
// The third return reports whether the key was consumed.
func (a App) updateEntriesKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.entState.cursor < len(a.entries)-1 {
			a.entState.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.entState.cursor > 0 {
			a.entState.cursor--
		}
		return a, nil, true
	case "g":
		a.entState.cursor = 0
		return a, nil, true
	case "G":
		if len(a.entries) > 0 {
			a.entState.cursor = len(a.entries) - 1
		}
		return a, nil, true
	case "a":
		a.entState.adding = true
		a.entState.formVals = entryFormValues{}
		form := newEntryForm(&a.entState.formVals)
		if a.width > 0 {
			form = form.WithWidth(a.width)
		}
		a.entState.form = form
		return a, form.Init(), true
	case "d":
		if len(a.entries) == 0 || a.entState.cursor >= len(a.entries) {
			return a, nil, true
		}
		sel := a.entries[a.entState.cursor]
		if a.entState.deleting == nil {
			a.entState.deleting = make(map[int64]bool)
		}
		if a.entState.deleting[sel.ID] {
			return a, nil, true
		}
		a.entState.deleting[sel.ID] = true
		return a, deleteEntryCmd(a.client, a.cachePath, sel.ID), true
	}
	return a, nil, false
}

func (a App) updateEntryForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		a.entState.adding = false
		a.entState.form = nil
		return a, nil
	}

	form, cmd := a.entState.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.entState.form = f
	}

	if a.entState.form.State == huh.StateCompleted {
		a.entState.adding = false
		a.entState.form = nil

		hours, err := strconv.ParseFloat(strings.TrimSpace(a.entState.formVals.Hours), 64)
		if err != nil {
			a.entState.lastErr = "invalid hours"
			return a, nil
		}
		in := model.NewHourEntry{
			EntryDate:   strings.TrimSpace(a.entState.formVals.Date),
			Hours:       hours,
			Description: strings.TrimSpace(a.entState.formVals.Description),
		}
		a.entState.submitting = true
		return a, createEntryCmd(a.client, a.cachePath, in)
	}

	if a.entState.form.State == huh.StateAborted {
		a.entState.adding = false
		a.entState.form = nil
		return a, nil
	}

	return a, cmd
}

func (a App) viewEntryForm() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	body := titleStyle.Render("New Entry") + "\n\n" + a.entState.form.View()
	card := cardStyle.Render(body)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderEntriesTab(cw, h int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover)

	if a.entriesLoading && !a.entriesLoaded {
		return components.ContentCard("Entries",
			labelStyle.Render("Loading entries..."), cw)
	}

	if len(a.entries) == 0 {
		var body strings.Builder
		body.WriteString(labelStyle.Render("No entries in this period."))
		body.WriteString("\n\n")
		body.WriteString(dimStyle.Render("[a] add entry"))
		if a.entState.lastErr != "" {
			body.WriteString("\n")
			body.WriteString(lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Render(a.entState.lastErr))
		}
		return components.ContentCard("Entries", body.String(), cw)
	}

	cursor := a.entState.cursor
	if cursor >= len(a.entries) {
		cursor = len(a.entries) - 1
	}

	// Keep the cursor visible within the card height
	visible := h - 8
	if visible < 5 {
		visible = 5
	}
	offset := 0
	if cursor >= visible {
		offset = cursor - visible + 1
	}
	end := offset + visible
	if end > len(a.entries) {
		end = len(a.entries)
	}

	var body strings.Builder
	body.WriteString(dimStyle.Render(fmt.Sprintf("  %-12s %8s  %s", "Date", "Hours", "Description")))
	body.WriteString("\n")

	var total float64
	for _, e := range a.entries {
		total += e.Hours
	}

	for i := offset; i < end; i++ {
		e := a.entries[i]
		desc := e.Description
		if lipgloss.Width(desc) > 40 {
			desc = desc[:39] + "…"
		}
		line := fmt.Sprintf("%-12s %8s  %s", cli.FormatDate(e.EntryDate), cli.FormatHours(e.Hours), desc)
		if a.entState.deleting[e.ID] {
			line += "  (deleting...)"
		}

		if i == cursor {
			body.WriteString(markerStyle.Render("▸ "))
			body.WriteString(selectedStyle.Render(line))
		} else {
			body.WriteString("  ")
			body.WriteString(valueStyle.Render(line))
		}
		body.WriteString("\n")
	}

	body.WriteString("\n")
	summary := fmt.Sprintf("%d entries · %s total", len(a.entries), cli.FormatHours(total))
	if a.entState.submitting {
		summary += " · saving..."
	}
	body.WriteString(labelStyle.Render(summary))

	if a.entState.lastErr != "" {
		body.WriteString("\n")
		body.WriteString(lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Render(a.entState.lastErr))
	}

	body.WriteString("\n")
	body.WriteString(dimStyle.Render("[j/k] navigate  [a] add  [d] delete"))

	title := "Entries"
	if a.projection != nil {
		title = fmt.Sprintf("Entries %s", cli.FormatDateRange(a.projection.Period.Start, a.projection.Period.End))
	}
	return components.ContentCard(title, body.String(), cw)
}
