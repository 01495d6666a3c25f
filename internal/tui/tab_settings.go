package tui

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/theirongolddev/optimscale/internal/config"
	"github.com/theirongolddev/optimscale/internal/scenario"
	"github.com/theirongolddev/optimscale/internal/tui/components"
	"github.com/theirongolddev/optimscale/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldLayout
	settingsFieldDegree
	settingsFieldHorizon
	settingsFieldHistory
	settingsFieldExportDir
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	return ti
}

// updateSettingsKeys handles navigation on the settings tab. ok is false
// for keys the tab leaves to the global bindings.
func (a App) updateSettingsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
		return a, nil, true
	case "enter":
		m, cmd := a.settingsStartEdit()
		return m, cmd, true
	}
	return a, nil, false
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	cfg := a.cfg
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()

	switch a.settings.cursor {
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(cfg.Appearance.Theme)
	case settingsFieldLayout:
		ti.Placeholder = "single or grid"
		ti.SetValue(cfg.Appearance.Layout)
	case settingsFieldDegree:
		ti.Placeholder = "1 (linear) or 2 (quadratic)"
		ti.SetValue(strconv.Itoa(cfg.General.Degree))
	case settingsFieldHorizon:
		ti.Placeholder = "12 (marketing chart length)"
		ti.SetValue(strconv.Itoa(cfg.General.Horizon))
	case settingsFieldHistory:
		ti.Placeholder = "10 (marketing history points)"
		ti.SetValue(strconv.Itoa(cfg.General.MarketingHistory))
	case settingsFieldExportDir:
		ti.Placeholder = "directory for CSV, PDF and SQLite exports"
		ti.SetValue(cfg.General.ExportDir)
	}

	cmd := ti.Focus()
	a.settings.input = ti
	return a, cmd
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave validates the edited field, writes the config file and
// applies the change to the running dashboard.
func (a *App) settingsSave() {
	cfg := a.cfg
	val := strings.TrimSpace(a.settings.input.Value())
	rebuild := false

	atoi := func(s string) (int, bool) {
		n, err := strconv.Atoi(s)
		return n, err == nil
	}

	switch a.settings.cursor {
	case settingsFieldTheme:
		if !slices.Contains(theme.Names(), val) {
			a.settings.saveErr = fmt.Errorf("unknown theme %q", val)
			return
		}
		cfg.Appearance.Theme = val
	case settingsFieldLayout:
		cfg.Appearance.Layout = val
	case settingsFieldDegree:
		n, ok := atoi(val)
		if !ok {
			a.settings.saveErr = errors.New("degree must be a number")
			return
		}
		cfg.General.Degree = n
		rebuild = true
	case settingsFieldHorizon:
		n, ok := atoi(val)
		if !ok {
			a.settings.saveErr = errors.New("horizon must be a number")
			return
		}
		cfg.General.Horizon = n
		rebuild = true
	case settingsFieldHistory:
		n, ok := atoi(val)
		if !ok {
			a.settings.saveErr = errors.New("history must be a number")
			return
		}
		cfg.General.MarketingHistory = n
		rebuild = true
	case settingsFieldExportDir:
		if val == "" {
			val = "."
		}
		cfg.General.ExportDir = val
	}

	if err := cfg.Validate(); err != nil {
		a.settings.saveErr = err
		return
	}
	if rebuild {
		if err := a.rebuildDashboard(cfg); err != nil {
			a.settings.saveErr = err
			return
		}
	}

	a.cfg = cfg
	theme.SetActive(cfg.Appearance.Theme)
	a.dash.Theme = theme.Active.Name
	a.dash.Layout = scenarioLayout(cfg.Appearance.Layout)
	a.settings.saveErr = config.SaveTo(a.cfgPath, cfg)
	if a.settings.saveErr == nil {
		a.log.Info().Str("path", a.cfgPath).Msg("config saved")
	}
}

// rebuildDashboard reloads the dataset under cfg, keeping the selected
// range. Drag edits and notes do not survive a forecast settings change.
func (a *App) rebuildDashboard(cfg config.Config) error {
	ds, err := cfg.LoadDataset()
	if err != nil {
		return err
	}
	start, end := a.dash.Range()
	dash := scenario.NewDashboard(ds, a.log)
	dash.SetRange(start, end)
	dash.Layout = a.dash.Layout
	dash.Theme = a.dash.Theme
	a.dash = dash
	a.dragging = ""
	return nil
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := a.cfg

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	fields := []field{
		{"Theme", cfg.Appearance.Theme},
		{"Layout", cfg.Appearance.Layout},
		{"Fit Degree", fmt.Sprintf("%d (%s)", cfg.General.Degree, degreeName(cfg.General.Degree))},
		{"Spend Horizon", strconv.Itoa(cfg.General.Horizon)},
		{"Spend History", strconv.Itoa(cfg.General.MarketingHistory)},
		{"Export Dir", cfg.General.ExportDir},
	}

	var formBody strings.Builder
	for i, f := range fields {
		// Show text input if currently editing this field
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
			if padLen := components.CardInnerWidth(cw) - usedWidth; padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	dataset := "built-in"
	if cfg.General.Dataset != "" {
		dataset = cfg.General.Dataset
	}
	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Config file:  ") + valueStyle.Render(a.cfgPath) + "\n")
	infoBody.WriteString(labelStyle.Render("Dataset:      ") + valueStyle.Render(dataset) + "\n")
	infoBody.WriteString(labelStyle.Render("Metrics:      ") + valueStyle.Render(strconv.Itoa(len(a.dash.Charts()))) + "\n")
	infoBody.WriteString(labelStyle.Render("Log level:    ") + valueStyle.Render(cfg.Log.Level))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}
