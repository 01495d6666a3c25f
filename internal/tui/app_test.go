package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/optimscale/internal/config"
	"github.com/theirongolddev/optimscale/internal/dataset"
	"github.com/theirongolddev/optimscale/internal/export"
	"github.com/theirongolddev/optimscale/internal/scenario"
	"github.com/theirongolddev/optimscale/internal/tui/components"
	"github.com/theirongolddev/optimscale/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

var (
	pressLeft = tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	dragLeft  = tea.MouseMsg{Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
	release   = tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
)

func newTestApp(t *testing.T) App {
	t.Helper()
	t.Cleanup(func() { theme.SetActive("flexoki-dark") })

	cfg := config.DefaultConfig()
	cfg.General.ExportDir = t.TempDir()
	ds, err := cfg.LoadDataset()
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	dash := scenario.NewDashboard(ds, zerolog.Nop())
	a := NewApp(dash, Options{
		Config:     cfg,
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
		Logger:     zerolog.Nop(),
	})
	m, _ := a.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return m.(App)
}

func sendKey(t *testing.T, a App, k string) App {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	m, _ := a.Update(msg)
	return m.(App)
}

func sendMouse(t *testing.T, a App, x, y int, base tea.MouseMsg) App {
	t.Helper()
	base.X, base.Y = x, y
	m, _ := a.Update(base)
	return m.(App)
}

// pointOnScreen returns the screen cell where point idx of the chart in
// frame f is drawn.
func pointOnScreen(t *testing.T, f chartFrame, c *scenario.Chart, idx int) (int, int) {
	t.Helper()
	g := components.MeasureLineChart(chartSeries(c), f.bodyWidth(), f.bodyHeight())
	combined := c.Combined()
	if idx >= len(g.Columns) {
		t.Fatalf("point %d not measured (%d columns)", idx, len(g.Columns))
	}
	x := f.x + components.CardBodyX + g.AxisW + g.Columns[idx]
	y := f.y + components.CardBodyY + g.RowOf(combined[idx].Value)
	return x, y
}

func marketingFrame(t *testing.T, a App) (chartFrame, *scenario.Chart) {
	t.Helper()
	f, ok := a.frameFor(dataset.MarketingKey)
	if !ok {
		t.Fatal("no marketing frame on the marketing tab")
	}
	c, err := a.dash.Chart(dataset.MarketingKey)
	if err != nil {
		t.Fatalf("Chart: %v", err)
	}
	return f, c
}

func TestDragAnchorThroughUpdate(t *testing.T) {
	a := newTestApp(t)
	a.activeTab = tabMarketing
	f, c := marketingFrame(t, a)

	anchor, _ := c.Anchor()
	predBefore := c.Predicted()
	x, y := pointOnScreen(t, f, c, len(c.Historical())-1)

	a = sendMouse(t, a, x, y, pressLeft)
	if a.dragging != dataset.MarketingKey {
		t.Fatalf("dragging = %q after press on anchor", a.dragging)
	}
	a = sendMouse(t, a, x, y+3, dragLeft)
	a = sendMouse(t, a, x, y+3, release)

	if a.dragging != "" {
		t.Errorf("dragging = %q after release", a.dragging)
	}
	if c.DragState() != scenario.DragIdle {
		t.Errorf("drag state = %v after release", c.DragState())
	}
	got, _ := c.Anchor()
	want := anchor.Value - 3*rowPixels*c.Spec().DragSensitivity
	if got.Value != want {
		t.Errorf("anchor = %v, want %v", got.Value, want)
	}
	if c.Predicted()[0].Value == predBefore[0].Value {
		t.Error("projection not recomputed after drag")
	}
	if a.flash != c.Title()+" updated" {
		t.Errorf("flash = %q", a.flash)
	}
}

func TestPressOffAnchorDoesNotDrag(t *testing.T) {
	a := newTestApp(t)
	a.activeTab = tabMarketing
	f, c := marketingFrame(t, a)
	x, y := pointOnScreen(t, f, c, 0)

	a = sendMouse(t, a, x, y, pressLeft)
	if a.dragging != "" {
		t.Fatalf("dragging = %q after press on a non-anchor point", a.dragging)
	}
	if c.DragState() != scenario.DragIdle {
		t.Errorf("drag state = %v", c.DragState())
	}
}

func TestDragEndsWhenPointerLeavesChart(t *testing.T) {
	a := newTestApp(t)
	a.activeTab = tabMarketing
	f, c := marketingFrame(t, a)
	anchor, _ := c.Anchor()
	x, y := pointOnScreen(t, f, c, len(c.Historical())-1)

	a = sendMouse(t, a, x, y, pressLeft)
	a = sendMouse(t, a, x, y+2, dragLeft)
	a = sendMouse(t, a, f.x+f.w+1, y+2, dragLeft)

	if a.dragging != "" {
		t.Fatalf("dragging = %q after leaving the frame", a.dragging)
	}
	moved, _ := c.Anchor()
	if moved.Value == anchor.Value {
		t.Fatal("anchor unchanged by the in-frame motion")
	}

	// Motion after leave is ignored.
	a = sendMouse(t, a, x, y+6, dragLeft)
	again, _ := c.Anchor()
	if again.Value != moved.Value {
		t.Errorf("anchor changed after the drag ended: %v -> %v", moved.Value, again.Value)
	}
}

func TestOverviewClickSelectsChart(t *testing.T) {
	a := newTestApp(t)
	a.dash.Layout = scenario.LayoutGrid
	frames := a.chartFrames()
	if len(frames) < 2 {
		t.Fatalf("grid has %d frames", len(frames))
	}
	f := frames[1]
	a = sendMouse(t, a, f.x+f.w/2, f.y, pressLeft)
	if got := a.overviewCharts()[a.selected].Key(); got != f.key {
		t.Errorf("selected %q, want %q", got, f.key)
	}
}

func TestVariantKeyCyclesFocusedChart(t *testing.T) {
	a := newTestApp(t)
	c := a.focusedChart()
	before := a.dash.Variant(c.Key())

	a = sendKey(t, a, "v")
	after := a.dash.Variant(c.Key())
	if after == before {
		t.Fatalf("variant still %q", after)
	}
	if !strings.Contains(a.flash, after) {
		t.Errorf("flash = %q, want variant name", a.flash)
	}
}

func TestRangeKeys(t *testing.T) {
	a := newTestApp(t)
	periods := a.dash.Dataset().Periods

	a = sendKey(t, a, "]")
	a = sendKey(t, a, "{")
	start, end := a.dash.Range()
	if start != periods[1] {
		t.Errorf("start = %q, want %q", start, periods[1])
	}
	if end != periods[len(periods)-2] {
		t.Errorf("end = %q, want %q", end, periods[len(periods)-2])
	}

	a = sendKey(t, a, "[")
	a = sendKey(t, a, "[")
	if start, _ := a.dash.Range(); start != periods[0] {
		t.Errorf("start = %q, want clamp to %q", start, periods[0])
	}
}

func TestNudgeAndReset(t *testing.T) {
	a := newTestApp(t)
	c := a.focusedChart()
	anchor, _ := c.Anchor()

	a = sendKey(t, a, "+")
	raised, _ := c.Anchor()
	if raised.Value <= anchor.Value {
		t.Fatalf("anchor %v not raised from %v", raised.Value, anchor.Value)
	}

	a = sendKey(t, a, "r")
	reset, _ := c.Anchor()
	if reset.Value != anchor.Value {
		t.Errorf("anchor after reset = %v, want %v", reset.Value, anchor.Value)
	}
	if a.flash != c.Title()+" reset" {
		t.Errorf("flash = %q", a.flash)
	}
}

func TestFlashExpiresOnTick(t *testing.T) {
	a := newTestApp(t)
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return clock }

	a = sendKey(t, a, "+")
	if a.flash == "" {
		t.Fatal("no flash after nudge")
	}

	m, _ := a.Update(tickMsg{})
	a = m.(App)
	if a.flash == "" {
		t.Fatal("flash cleared before it expired")
	}

	clock = clock.Add(flashDuration)
	m, _ = a.Update(tickMsg{})
	a = m.(App)
	if a.flash != "" {
		t.Errorf("flash = %q after expiry", a.flash)
	}
}

func TestAddNote(t *testing.T) {
	a := newTestApp(t)
	c := a.focusedChart()

	a = sendKey(t, a, "a")
	if !a.notes.adding || a.activeTab != tabNotes {
		t.Fatalf("adding=%v tab=%d after [a]", a.notes.adding, a.activeTab)
	}

	// Empty text keeps the form open.
	a = sendKey(t, a, "enter")
	if !a.notes.adding || !a.flashErr {
		t.Fatalf("empty note: adding=%v flashErr=%v", a.notes.adding, a.flashErr)
	}

	a = sendKey(t, a, "launch")
	a = sendKey(t, a, "enter")
	if a.notes.adding {
		t.Fatal("form still open after saving")
	}
	notes := c.Annotations()
	if len(notes) != 1 {
		t.Fatalf("got %d notes, want 1", len(notes))
	}
	seed := c.Seed()
	if notes[0].Note != "launch" || notes[0].Period != seed[len(seed)-1].Period {
		t.Errorf("note = %+v", notes[0])
	}
	if !strings.Contains(a.renderNotesTab(a.contentWidth()), "launch") {
		t.Error("notes tab does not list the new note")
	}
}

func TestSettingsSaveLayout(t *testing.T) {
	a := newTestApp(t)
	a = sendKey(t, a, "x")
	if a.activeTab != tabSettings {
		t.Fatalf("activeTab = %d", a.activeTab)
	}
	a = sendKey(t, a, "j") // Layout
	a = sendKey(t, a, "enter")
	if !a.settings.editing {
		t.Fatal("not editing after enter")
	}
	a.settings.input.SetValue("grid")
	a = sendKey(t, a, "enter")

	if a.settings.saveErr != nil {
		t.Fatalf("saveErr: %v", a.settings.saveErr)
	}
	if a.dash.Layout != scenario.LayoutGrid {
		t.Errorf("layout = %v", a.dash.Layout)
	}
	saved, err := config.LoadFrom(a.cfgPath)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if saved.Appearance.Layout != "grid" {
		t.Errorf("saved layout = %q", saved.Appearance.Layout)
	}
}

func TestSettingsRejectsInvalidDegree(t *testing.T) {
	a := newTestApp(t)
	dash := a.dash
	a = sendKey(t, a, "x")
	a = sendKey(t, a, "j")
	a = sendKey(t, a, "j") // Degree
	a = sendKey(t, a, "enter")
	a.settings.input.SetValue("3")
	a = sendKey(t, a, "enter")

	if a.settings.saveErr == nil {
		t.Fatal("degree 3 accepted")
	}
	if a.cfg.General.Degree != 1 {
		t.Errorf("degree = %d", a.cfg.General.Degree)
	}
	if a.dash != dash {
		t.Error("dashboard rebuilt for a rejected value")
	}
	if _, err := os.Stat(a.cfgPath); !os.IsNotExist(err) {
		t.Errorf("config written for a rejected value: %v", err)
	}
}

func TestExportCSVKey(t *testing.T) {
	a := newTestApp(t)
	c := a.focusedChart()

	a = sendKey(t, a, "e")
	path := filepath.Join(a.cfg.General.ExportDir, export.CSVName(c))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("csv not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "Period") {
		t.Errorf("csv starts %q", strings.SplitN(string(data), "\n", 2)[0])
	}
	if a.flash != "Saved "+path {
		t.Errorf("flash = %q", a.flash)
	}
}

func TestSQLiteExportReportsDone(t *testing.T) {
	a := newTestApp(t)

	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("S")})
	a = m.(App)
	if a.busy == "" || cmd == nil {
		t.Fatalf("busy=%q cmd=%v after [S]", a.busy, cmd)
	}

	path := a.exportPath(archiveName)
	m, _ = a.Update(exportSQLiteCmd(path, a.capture())())
	a = m.(App)
	if a.busy != "" {
		t.Errorf("busy = %q after done", a.busy)
	}
	if a.flashErr || a.flash != "Saved "+path {
		t.Errorf("flash = %q (err=%v)", a.flash, a.flashErr)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("archive missing: %v", err)
	}
}

func TestThemeToggle(t *testing.T) {
	a := newTestApp(t)
	if theme.Active.Light {
		t.Fatal("default theme is light")
	}
	a = sendKey(t, a, "t")
	if !theme.Active.Light || a.dash.Theme != theme.Active.Name {
		t.Fatalf("after toggle: %q light=%v", theme.Active.Name, theme.Active.Light)
	}
	a = sendKey(t, a, "t")
	if theme.Active.Light {
		t.Errorf("second toggle left %q active", theme.Active.Name)
	}
}

func TestViewFitsTerminal(t *testing.T) {
	a := newTestApp(t)
	for tab := range components.Tabs {
		a.activeTab = tab
		out := a.View()
		lines := strings.Split(out, "\n")
		if len(lines) != a.height {
			t.Errorf("tab %d: %d lines, want %d", tab, len(lines), a.height)
		}
	}

	m, _ := a.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	if !strings.Contains(m.(App).View(), "80") {
		t.Error("narrow view does not mention the minimum width")
	}
}
