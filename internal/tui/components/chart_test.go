package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/optimscale/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func spendSeries() LineSeries {
	return LineSeries{
		Values: []float64{800, 810, 820, 830, 840, 850, 860},
		Labels: []string{"Jul '24", "Aug '24", "Sep '24", "Oct '24", "Nov '24", "Dec '24", "Jan '25"},
		Split:  5,
	}
}

func TestLineChartHeightMatchesGeometry(t *testing.T) {
	theme.SetActive("flexoki-dark")

	out, g := LineChart(spendSeries(), 60, 12)
	if got := lipgloss.Height(out); got != g.Height() {
		t.Fatalf("rendered height = %d, geometry says %d", got, g.Height())
	}
	if g.Rows != 10 {
		t.Fatalf("rows = %d, want 10", g.Rows)
	}
}

func TestLineChartMarksAnchor(t *testing.T) {
	theme.SetActive("flexoki-dark")

	out, g := LineChart(spendSeries(), 60, 12)
	lines := strings.Split(ansiStrip(out), "\n")

	anchorRow := g.RowOf(840)
	row := []rune(lines[anchorRow])
	col := g.AxisW + g.Columns[4]
	if row[col] != '◆' {
		t.Fatalf("anchor cell = %q, want ◆ (row %q)", row[col], string(row))
	}
	if strings.Count(ansiStrip(out), "◆") != 1 {
		t.Fatal("exactly one anchor marker expected")
	}
	if !strings.Contains(ansiStrip(out), "○") {
		t.Fatal("projected points should be drawn hollow")
	}
}

func TestMeasureMatchesRender(t *testing.T) {
	theme.SetActive("flexoki-dark")

	s := spendSeries()
	_, rendered := LineChart(s, 70, 14)
	measured := MeasureLineChart(s, 70, 14)
	if rendered.AxisW != measured.AxisW || rendered.Rows != measured.Rows {
		t.Fatalf("measured %+v, rendered %+v", measured, rendered)
	}
	for i := range measured.Columns {
		if measured.Columns[i] != rendered.Columns[i] {
			t.Fatalf("column %d: measured %d, rendered %d", i, measured.Columns[i], rendered.Columns[i])
		}
	}
}

func TestPointAt(t *testing.T) {
	g := MeasureLineChart(spendSeries(), 60, 12)

	for i, c := range g.Columns {
		if got := g.PointAt(g.AxisW + c); got != i {
			t.Errorf("PointAt(column of %d) = %d", i, got)
		}
	}
	if got := g.PointAt(0); got != -1 {
		t.Errorf("PointAt(axis) = %d, want -1", got)
	}
	if got := g.PointAt(g.AxisW + g.Columns[len(g.Columns)-1] + 40); got != -1 {
		t.Errorf("PointAt(far right) = %d, want -1", got)
	}
}

func TestRowOfOrdersValues(t *testing.T) {
	g := MeasureLineChart(spendSeries(), 60, 12)
	if g.RowOf(g.Hi) != 0 {
		t.Errorf("RowOf(hi) = %d, want 0", g.RowOf(g.Hi))
	}
	if g.RowOf(g.Lo) != g.Rows-1 {
		t.Errorf("RowOf(lo) = %d, want %d", g.RowOf(g.Lo), g.Rows-1)
	}
	if g.RowOf(850) > g.RowOf(800) {
		t.Error("larger values must sit higher")
	}
}

func TestFormatChartLabel(t *testing.T) {
	tests := []struct {
		v, step float64
		want    string
	}{
		{905000, 10000, "905k"},
		{2500000, 500000, "2.5M"},
		{1.9, 0.1, "1.9"},
		{1.25, 0.05, "1.25"},
		{40, 10, "40"},
	}
	for _, tt := range tests {
		if got := formatChartLabel(tt.v, tt.step); got != tt.want {
			t.Errorf("formatChartLabel(%v, %v) = %q, want %q", tt.v, tt.step, got, tt.want)
		}
	}
}

func TestSparklineEmpty(t *testing.T) {
	if got := Sparkline(nil, 0, "1", "2"); got != "" {
		t.Fatalf("Sparkline(nil) = %q", got)
	}
}
