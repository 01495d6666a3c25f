package tui

import (
	"github.com/theirongolddev/optimscale/internal/dataset"
	"github.com/theirongolddev/optimscale/internal/model"
	"github.com/theirongolddev/optimscale/internal/scenario"
	"github.com/theirongolddev/optimscale/internal/tui/components"
)

const (
	metricRowHeight    = 5 // bordered metric card: label, value, delta
	spendTableHeight   = 7 // bordered spreadsheet card under the spend chart
	minChartCardHeight = 8
)

// chartFrame is the screen rectangle of one chart card. The renderer and
// the mouse hit-test both derive from chartFrames, so they cannot drift.
type chartFrame struct {
	key        string
	x, y, w, h int
}

func (f chartFrame) contains(x, y int) bool {
	return x >= f.x && x < f.x+f.w && y >= f.y && y < f.y+f.h
}

func (f chartFrame) bodyWidth() int { return components.CardInnerWidth(f.w) }

// bodyHeight is the chart height inside the card: border top and bottom
// plus the title line.
func (f chartFrame) bodyHeight() int { return f.h - 3 }

// chartFrames lays out the chart cards of the active tab in screen
// coordinates.
func (a App) chartFrames() []chartFrame {
	cw := a.contentWidth()
	left := (a.width - cw) / 2
	contentH := a.contentHeight()

	switch a.activeTab {
	case tabOverview:
		charts := a.overviewCharts()
		if len(charts) == 0 {
			return nil
		}
		top := headerHeight + metricRowHeight
		avail := max(minChartCardHeight, contentH-metricRowHeight)

		if a.dash.Layout != scenario.LayoutGrid {
			c := charts[min(a.selected, len(charts)-1)]
			return []chartFrame{{key: c.Key(), x: left, y: top, w: cw, h: avail}}
		}

		rows := (len(charts) + 1) / 2
		h := max(minChartCardHeight, avail/rows)
		widths := components.LayoutRow(cw, 2)
		frames := make([]chartFrame, 0, len(charts))
		for i, c := range charts {
			col := i % 2
			x := left
			if col == 1 {
				x += widths[0]
			}
			frames = append(frames, chartFrame{key: c.Key(), x: x, y: top + (i/2)*h, w: widths[col], h: h})
		}
		return frames

	case tabMarketing:
		if _, err := a.dash.Chart(dataset.MarketingKey); err != nil {
			return nil
		}
		w := cw
		if !a.isCompactLayout() {
			widths := components.LayoutRow(cw, 3)
			w = widths[0] + widths[1]
		}
		h := max(minChartCardHeight, contentH-spendTableHeight)
		return []chartFrame{{key: dataset.MarketingKey, x: left, y: headerHeight, w: w, h: h}}
	}
	return nil
}

func (a App) frameFor(key string) (chartFrame, bool) {
	for _, f := range a.chartFrames() {
		if f.key == key {
			return f, true
		}
	}
	return chartFrame{}, false
}

// chartSeries flattens a chart for the line renderer.
func chartSeries(c *scenario.Chart) components.LineSeries {
	combined := c.Combined()
	s := components.LineSeries{
		Values: model.Values(combined),
		Labels: model.Periods(combined),
		Split:  len(c.Historical()),
	}
	for _, n := range c.Annotations() {
		if i := model.IndexOf(combined, n.Period); i >= 0 {
			if s.Marks == nil {
				s.Marks = make(map[int]bool)
			}
			s.Marks[i] = true
		}
	}
	return s
}

// renderChartCard draws c filling frame f.
func renderChartCard(c *scenario.Chart, f chartFrame, title string, focus bool) string {
	body, _ := components.LineChart(chartSeries(c), f.bodyWidth(), f.bodyHeight())
	if len(c.Combined()) == 0 {
		body = padHeight("No data in the selected range", f.bodyHeight())
	}
	if focus {
		return components.FocusCard(title, body, f.w)
	}
	return components.ContentCard(title, body, f.w)
}
