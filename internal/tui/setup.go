package tui

import (
	"github.com/theirongolddev/optimscale/internal/config"
	"github.com/theirongolddev/optimscale/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers of the first-run setup form.
type SetupValues struct {
	Theme     string
	Layout    string
	Degree    int
	ExportDir string
}

// NewSetupValues prefills the form from cfg.
func NewSetupValues(cfg config.Config) *SetupValues {
	return &SetupValues{
		Theme:     cfg.Appearance.Theme,
		Layout:    cfg.Appearance.Layout,
		Degree:    cfg.General.Degree,
		ExportDir: cfg.General.ExportDir,
	}
}

// Apply copies the answers into cfg.
func (v SetupValues) Apply(cfg *config.Config) {
	cfg.Appearance.Theme = v.Theme
	cfg.Appearance.Layout = v.Layout
	cfg.General.Degree = v.Degree
	if v.ExportDir == "" {
		v.ExportDir = "."
	}
	cfg.General.ExportDir = v.ExportDir
}

// NewSetupForm builds the setup wizard bound to v. The same form runs
// inside the dashboard on first launch and standalone from `optimscale setup`.
func NewSetupForm(v *SetupValues) *huh.Form {
	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themes = append(themes, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to optimscale").
				Description("Scenario planning for burn, cash, runway, ARR and marketing spend.\nA few preferences, all changeable later under Settings."),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&v.Theme),
			huh.NewSelect[string]().
				Title("Overview layout").
				Options(
					huh.NewOption("One chart at a time", "single"),
					huh.NewOption("2×2 grid", "grid"),
				).
				Value(&v.Layout),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Trend line").
				Description("Fitted to the history of every chart.").
				Options(
					huh.NewOption("Linear", 1),
					huh.NewOption("Quadratic", 2),
				).
				Value(&v.Degree),
			huh.NewInput().
				Title("Export directory").
				Placeholder(".").
				Value(&v.ExportDir),
		),
	)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.saveSetupConfig()
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

// saveSetupConfig applies the wizard answers and writes the config file.
// A failed save keeps the answers for this session only.
func (a *App) saveSetupConfig() {
	cfg := a.cfg
	a.setupVals.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		a.setFlash(err.Error(), true)
		return
	}
	if cfg.General.Degree != a.cfg.General.Degree {
		if err := a.rebuildDashboard(cfg); err != nil {
			a.setFlash(err.Error(), true)
			return
		}
	}
	a.cfg = cfg
	theme.SetActive(cfg.Appearance.Theme)
	a.dash.Theme = theme.Active.Name
	a.dash.Layout = scenarioLayout(cfg.Appearance.Layout)

	if err := config.SaveTo(a.cfgPath, cfg); err != nil {
		a.log.Warn().Err(err).Msg("saving setup config")
		a.setFlash("Could not save config: "+err.Error(), true)
		return
	}
	a.setFlash("Saved "+a.cfgPath, false)
}
