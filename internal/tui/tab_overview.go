package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/optimscale/internal/cli"
	"github.com/theirongolddev/optimscale/internal/model"
	"github.com/theirongolddev/optimscale/internal/scenario"
	"github.com/theirongolddev/optimscale/internal/tui/components"
)

func (a App) renderOverviewTab(cw int) string {
	charts := a.overviewCharts()
	if len(charts) == 0 {
		return components.ContentCard("Overview", "No metrics loaded", cw)
	}
	var b strings.Builder

	// Row 1: Metric cards
	cards := make([]components.Metric, len(charts))
	for i, c := range charts {
		cards[i] = metricFor(c)
		cards[i].Focus = i == a.selected
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: charts, one per frame
	frames := a.chartFrames()
	for i := 0; i < len(frames); {
		rowY := frames[i].y
		var row []string
		for ; i < len(frames) && frames[i].y == rowY; i++ {
			f := frames[i]
			c, err := a.dash.Chart(f.key)
			if err != nil {
				continue
			}
			focus := a.overviewIndex(f.key) == a.selected
			row = append(row, renderChartCard(c, f, a.chartTitle(c, f.bodyWidth()), focus))
		}
		b.WriteString(components.CardRow(row))
		b.WriteString("\n")
	}

	return b.String()
}

// metricFor summarizes a chart as its anchor value and the last projection.
func metricFor(c *scenario.Chart) components.Metric {
	spec := c.Spec()
	m := components.Metric{Label: c.Title(), Value: "—"}

	anchor, ok := c.Anchor()
	if !ok {
		return m
	}
	m.Value = cli.FormatValue(anchor.Value, spec.Unit, spec.Precision)

	if last, ok := model.Last(c.Predicted()); ok {
		m.Delta = fmt.Sprintf("%s by %s", cli.FormatValue(last.Value, spec.Unit, spec.Precision), last.Period)
		if anchor.Value != 0 {
			m.Delta += " (" + cli.FormatGrowth((last.Value-anchor.Value)/anchor.Value*100) + ")"
		}
	}
	return m
}

// chartTitle is the metric title, its variant and fitted formula, cut to
// width.
func (a App) chartTitle(c *scenario.Chart, width int) string {
	title := c.Title() + " · " + a.dash.Variant(c.Key())
	if m, err := c.Model(); err == nil {
		title += "   " + m.String()
	}
	return truncStr(title, width)
}
