// Package tui provides the interactive Bubble Tea dashboard for optimscale.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/optimscale/internal/config"
	"github.com/theirongolddev/optimscale/internal/dataset"
	"github.com/theirongolddev/optimscale/internal/scenario"
	"github.com/theirongolddev/optimscale/internal/tui/components"
	"github.com/theirongolddev/optimscale/internal/tui/theme"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

const (
	tabOverview = iota
	tabMarketing
	tabInputs
	tabNotes
	tabSettings
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	headerHeight     = 2 // tab bar + range row
	statusHeight     = 1
	minContentHeight = 5 // minimum content area height

	// rowPixels is how tall one terminal row counts for the drag
	// controller, close to a typical glyph height.
	rowPixels = 16.0

	flashDuration = 3 * time.Second
)

// App is the root Bubble Tea model.
type App struct {
	dash    *scenario.Dashboard
	cfg     config.Config
	cfgPath string
	log     zerolog.Logger

	width     int
	height    int
	activeTab int
	showHelp  bool

	selected int    // focused overview chart
	dragging string // metric key of the chart under the pointer, "" when idle
	canvas   bool   // inputs tab shows the business canvas

	keys keyMap
	help help.Model

	flash      string
	flashErr   bool
	flashUntil time.Time

	busy    string // label of the running export
	spinner spinner.Model

	notes    notesState
	settings settingsState

	setupForm *huh.Form
	setupVals *SetupValues

	now func() time.Time
}

// Options configures NewApp.
type Options struct {
	Config     config.Config
	ConfigPath string
	Logger     zerolog.Logger
	// FirstRun opens the setup form before the dashboard.
	FirstRun bool
}

// NewApp creates the dashboard model around dash.
func NewApp(dash *scenario.Dashboard, opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	theme.SetActive(opts.Config.Appearance.Theme)
	dash.Theme = theme.Active.Name
	dash.Layout = scenarioLayout(opts.Config.Appearance.Layout)

	path := opts.ConfigPath
	if path == "" {
		path = config.ConfigPath()
	}

	a := App{
		dash:    dash,
		cfg:     opts.Config,
		cfgPath: path,
		log:     opts.Logger,
		keys:    newKeyMap(),
		help:    help.New(),
		spinner: sp,
		notes:   notesState{input: newNoteInput()},
		now:     time.Now,
	}
	if opts.FirstRun {
		a.setupVals = NewSetupValues(opts.Config)
		a.setupForm = NewSetupForm(a.setupVals)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseCellMotion,
		tickCmd(),
	}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
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

	case tea.MouseMsg:
		if a.showHelp || a.setupForm != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup wizard intercepts all keys
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}
		if a.notes.adding {
			return a.updateNoteInput(msg)
		}

		if key.Matches(msg, a.keys.Help) {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if a.activeTab == tabSettings {
			if m, cmd, ok := a.updateSettingsKeys(msg); ok {
				return m, cmd
			}
		}

		return a.updateKeys(msg)

	case exportDoneMsg:
		a.busy = ""
		if msg.err != nil {
			a.log.Error().Err(msg.err).Str("kind", msg.kind).Msg("export failed")
			a.setFlash(fmt.Sprintf("%s export failed: %v", msg.kind, msg.err), true)
			return a, nil
		}
		a.log.Info().Str("kind", msg.kind).Str("path", msg.path).Msg("exported")
		a.setFlash(fmt.Sprintf("Saved %s", msg.path), false)
		return a, nil

	case spinner.TickMsg:
		if a.busy != "" {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		if a.flash != "" && !a.now().Before(a.flashUntil) {
			a.flash = ""
			a.flashErr = false
		}
		return a, tickCmd()
	}

	// Forward unhandled messages to the active form (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.notes.adding {
		var cmd tea.Cmd
		a.notes.input, cmd = a.notes.input.Update(msg)
		return a, cmd
	}

	return a, nil
}

// updateKeys handles the dashboard bindings outside of any input mode.
func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := a.keys
	switch {
	case key.Matches(msg, k.Quit):
		return a, tea.Quit

	case key.Matches(msg, k.PrevTab):
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case key.Matches(msg, k.NextTab):
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)

	case key.Matches(msg, k.Up):
		a.selectChart(-1)
	case key.Matches(msg, k.Down):
		a.selectChart(1)

	case key.Matches(msg, k.Variant):
		c := a.focusedChart()
		if c == nil {
			return a, nil
		}
		name, err := a.dash.CycleVariant(c.Key())
		if err != nil {
			a.setFlash(err.Error(), true)
			return a, nil
		}
		a.setFlash(fmt.Sprintf("%s: %s", c.Title(), name), false)

	case key.Matches(msg, k.StartEarly):
		a.dash.ShiftRange(-1, 0)
	case key.Matches(msg, k.StartLate):
		a.dash.ShiftRange(1, 0)
	case key.Matches(msg, k.EndEarly):
		a.dash.ShiftRange(0, -1)
	case key.Matches(msg, k.EndLate):
		a.dash.ShiftRange(0, 1)

	case key.Matches(msg, k.Raise):
		a.nudge(1)
	case key.Matches(msg, k.Lower):
		a.nudge(-1)

	case key.Matches(msg, k.Reset):
		c := a.focusedChart()
		if c == nil {
			return a, nil
		}
		if err := a.dash.ResetChart(c.Key()); err != nil {
			a.setFlash(err.Error(), true)
			return a, nil
		}
		a.setFlash(c.Title()+" reset", false)

	case key.Matches(msg, k.ExportCSV):
		a.exportCSV()
	case key.Matches(msg, k.ExportPDF):
		if a.busy != "" {
			return a, nil
		}
		a.busy = "Rendering PDF"
		return a, tea.Batch(a.spinner.Tick, exportPDFCmd(a.exportPath(pdfName), a.capture()))
	case key.Matches(msg, k.ExportDB):
		if a.busy != "" {
			return a, nil
		}
		a.busy = "Archiving snapshot"
		return a, tea.Batch(a.spinner.Tick, exportSQLiteCmd(a.exportPath(archiveName), a.capture()))

	case key.Matches(msg, k.Theme):
		theme.Active = theme.Toggle(a.cfg.Appearance.Theme)
		a.dash.Theme = theme.Active.Name
		a.setFlash("Theme: "+theme.Active.Name, false)
	case key.Matches(msg, k.Layout):
		a.dash.Layout = a.dash.Layout.Toggle()

	case key.Matches(msg, k.Annotate):
		return a.startNote()

	case key.Matches(msg, k.ToggleInput) && a.activeTab == tabInputs:
		a.canvas = !a.canvas

	default:
		if s := msg.String(); len(s) == 1 {
			if idx := components.TabIdxByKey(rune(s[0])); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

// updateMouse handles tab clicks, chart drags and the wheel.
func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionMotion:
		if a.dragging == "" {
			return a, nil
		}
		c, err := a.dash.Chart(a.dragging)
		if err != nil {
			a.dragging = ""
			return a, nil
		}
		if f, ok := a.frameFor(a.dragging); !ok || !f.contains(msg.X, msg.Y) {
			res, ended := c.PointerLeave()
			a.dragging = ""
			if ended && res.Changed() {
				a.setFlash(res.Title+" updated", false)
			}
			return a, nil
		}
		c.PointerMove(float64(msg.X), float64(msg.Y)*rowPixels)
		return a, nil

	case tea.MouseActionRelease:
		if a.dragging == "" {
			return a, nil
		}
		if c, err := a.dash.Chart(a.dragging); err == nil {
			if res, ended := c.PointerUp(); ended && res.Changed() {
				a.setFlash(res.Title+" updated", false)
			}
		}
		a.dragging = ""
		return a, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.selectChart(-1)
	case tea.MouseButtonWheelDown:
		a.selectChart(1)
	case tea.MouseButtonLeft:
		if msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
			return a, nil
		}
		a.pressChart(msg.X, msg.Y)
	}
	return a, nil
}

// pressChart starts a drag when (x, y) lands on a chart's anchor column.
// Presses on other points only focus the chart.
func (a *App) pressChart(x, y int) {
	for _, f := range a.chartFrames() {
		if !f.contains(x, y) {
			continue
		}
		if a.activeTab == tabOverview {
			a.selected = a.overviewIndex(f.key)
		}
		c, err := a.dash.Chart(f.key)
		if err != nil {
			return
		}
		g := components.MeasureLineChart(chartSeries(c), f.bodyWidth(), f.bodyHeight())
		bx, by := x-f.x-components.CardBodyX, y-f.y-components.CardBodyY
		if by < 0 || by >= g.Rows {
			return
		}
		idx := g.PointAt(bx)
		combined := c.Combined()
		if idx < 0 || idx >= len(combined) {
			return
		}
		if err := c.PointerDown(combined[idx].Period, float64(x), float64(y)*rowPixels); err != nil {
			a.log.Debug().Err(err).Str("metric", c.Key()).Msg("drag ignored")
			return
		}
		a.dragging = c.Key()
		return
	}
}

// nudge moves the focused chart's anchor by one row worth of drag.
func (a *App) nudge(dir int) {
	c := a.focusedChart()
	if c == nil {
		return
	}
	res, err := c.Nudge(int(rowPixels) * dir)
	if err != nil {
		a.log.Debug().Err(err).Str("metric", c.Key()).Msg("nudge ignored")
		return
	}
	if res.Changed() {
		a.setFlash(res.Title+" updated", false)
	}
}

func (a *App) setFlash(text string, isErr bool) {
	a.flash = text
	a.flashErr = isErr
	a.flashUntil = a.now().Add(flashDuration)
}

// overviewCharts are every chart except the marketing spend chart.
func (a App) overviewCharts() []*scenario.Chart {
	var out []*scenario.Chart
	for _, c := range a.dash.Charts() {
		if c.Key() != dataset.MarketingKey {
			out = append(out, c)
		}
	}
	return out
}

func (a App) overviewIndex(key string) int {
	for i, c := range a.overviewCharts() {
		if c.Key() == key {
			return i
		}
	}
	return a.selected
}

func (a *App) selectChart(delta int) {
	n := len(a.overviewCharts())
	if n == 0 {
		return
	}
	a.selected = (a.selected + delta + n) % n
}

// focusedChart is the chart keyboard actions apply to: the spend chart on
// the marketing and inputs tabs, the selected overview chart elsewhere.
func (a App) focusedChart() *scenario.Chart {
	if a.activeTab == tabMarketing || a.activeTab == tabInputs {
		if c, err := a.dash.Chart(dataset.MarketingKey); err == nil {
			return c
		}
	}
	charts := a.overviewCharts()
	if len(charts) == 0 {
		return nil
	}
	return charts[min(a.selected, len(charts)-1)]
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) contentHeight() int {
	return max(minContentHeight, a.height-headerHeight-statusHeight)
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

	if a.setupForm != nil {
		return a.setupForm.View()
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
		"\n  Terminal too narrow (%d cols)\n\n  optimscale needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
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

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	h := a.help
	h.ShowAll = true
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	h.Styles.FullSeparator = dimStyle

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	b.WriteString(h.View(a.keys))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Tabs: o m i n x  ·  drag the ◆ point with the mouse"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + range pill
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	start, end := a.dash.Range()
	pill := pillStyle.Render(" ") + accentStyle.Render(start+" – "+end)
	if c := a.focusedChart(); c != nil {
		pill += pillStyle.Render(" │ ") + accentStyle.Render(c.Title()) +
			pillStyle.Render(" · ") + accentStyle.Render(a.dash.Variant(c.Key()))
	}
	pill += pillStyle.Render(" │ "+string(a.dash.Layout)+" ")

	rowStyle := lipgloss.NewStyle().Background(t.Surface).Width(w)
	header := components.RenderTabBar(a.activeTab, w) + "\n" + rowStyle.Render(pill)

	// 2. Status bar
	status := components.Status{
		Flash:    a.flash,
		FlashErr: a.flashErr,
		Range:    fmt.Sprintf("%d periods", a.periodCount()),
		Info:     degreeName(a.cfg.General.Degree),
	}
	if a.busy != "" {
		status.Activity = a.spinner.View() + " " + a.busy
	}
	statusBar := components.RenderStatusBar(w, status)

	// 3. Tab content
	contentH := a.contentHeight()
	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabMarketing:
		content = a.renderMarketingTab(cw)
	case tabInputs:
		content = a.renderInputsTab(cw)
	case tabNotes:
		content = a.renderNotesTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	// 4. Truncate + pad to exactly contentH lines, fill, center
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) periodCount() int {
	c := a.focusedChart()
	if c == nil {
		return 0
	}
	return len(c.Historical())
}

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// scenarioLayout maps the config layout name, defaulting to single.
func scenarioLayout(name string) scenario.Layout {
	if name == string(scenario.LayoutGrid) {
		return scenario.LayoutGrid
	}
	return scenario.LayoutSingle
}

func degreeName(d int) string {
	if d == 2 {
		return "quadratic fit"
	}
	return "linear fit"
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
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
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
// This ensures gaps between cards and empty lines have proper background fill.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
