package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/optimscale/internal/cli"
	"github.com/theirongolddev/optimscale/internal/dataset"
	"github.com/theirongolddev/optimscale/internal/forecast"
	"github.com/theirongolddev/optimscale/internal/model"
	"github.com/theirongolddev/optimscale/internal/scenario"
	"github.com/theirongolddev/optimscale/internal/tui/components"
	"github.com/theirongolddev/optimscale/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderMarketingTab(cw int) string {
	c, err := a.dash.Chart(dataset.MarketingKey)
	if err != nil {
		return components.ContentCard("Marketing", "No marketing spend series in this dataset", cw)
	}
	frames := a.chartFrames()
	if len(frames) == 0 {
		return ""
	}
	f := frames[0]

	var b strings.Builder

	// Row 1: draggable spend chart + model card
	chart := renderChartCard(c, f, a.chartTitle(c, f.bodyWidth()), true)
	if f.w < cw {
		body := truncateHeight(a.modelSummary(c, components.CardInnerWidth(cw-f.w)), f.bodyHeight())
		side := components.ContentCard("Model", body, cw-f.w)
		side = padCardHeight(side, f.h)
		b.WriteString(components.CardRow([]string{chart, side}))
	} else {
		b.WriteString(chart)
	}
	b.WriteString("\n")

	// Row 2: spreadsheet derived from the live history
	b.WriteString(components.ContentCard("Model Inputs", spendGrid(c, components.CardInnerWidth(cw)), cw))
	return b.String()
}

// modelSummary lists the fitted formula, its R² and the projected points.
func (a App) modelSummary(c *scenario.Chart, innerW int) string {
	t := theme.Active
	spec := c.Spec()
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	predStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	m, err := c.Model()
	if err != nil {
		b.WriteString(labelStyle.Render("Not enough history to fit a trend."))
		return b.String()
	}
	b.WriteString(valueStyle.Render(truncStr(m.String(), innerW)))
	b.WriteString("\n")
	b.WriteString(components.Sparkline(model.Values(c.Combined()), len(c.Historical()), t.Blue, t.Orange))
	b.WriteString("\n")
	barW := max(6, innerW-16)
	b.WriteString(components.FitBar("R²", forecast.RSquared(m, c.Historical()), 3, barW))
	b.WriteString("\n\n")

	if anchor, ok := c.Anchor(); ok {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-9s", anchor.Period)))
		b.WriteString(valueStyle.Render(cli.FormatValue(anchor.Value, spec.Unit, spec.Precision)))
		b.WriteString(labelStyle.Render("  ◆"))
		b.WriteString("\n")
	}
	for _, p := range c.Predicted() {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-9s", p.Period)))
		b.WriteString(predStyle.Render(cli.FormatValue(p.Value, spec.Unit, spec.Precision)))
		b.WriteString("\n")
	}
	if n := len(c.Annotations()); n > 0 {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%d note(s)", n)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("drag ◆ or press +/-"))
	return b.String()
}

// spendGrid lays the spend inputs out with one column per period.
func spendGrid(c *scenario.Chart, innerW int) string {
	spec := c.Spec()
	rows := scenario.SpendInputs(c)
	if len(rows) == 0 {
		return "No history in the selected range"
	}

	labelW := 8
	if fit := (innerW - labelW) / 6; fit > 0 && len(rows) > fit {
		rows = rows[len(rows)-fit:]
	}
	colW := max(6, (innerW-labelW)/len(rows))
	compact := colW < 10
	value := func(v float64) string {
		if compact {
			return cli.FormatCompact(v)
		}
		return cli.FormatValue(v, spec.Unit, spec.Precision)
	}

	header := []string{"Period"}
	spend := []string{"Spend"}
	growth := []string{"Growth"}
	change := []string{"Change"}
	for _, r := range rows {
		header = append(header, r.Period)
		spend = append(spend, value(r.Value))
		if r.HasPrev {
			growth = append(growth, cli.FormatGrowth(r.GrowthPct))
			if compact {
				change = append(change, cli.FormatCompact(r.Change))
			} else {
				change = append(change, cli.FormatDelta(r.Value, r.Value-r.Change, spec.Unit, spec.Precision))
			}
		} else {
			growth = append(growth, "—")
			change = append(change, "—")
		}
	}
	return gridTable(header, [][]string{spend, growth, change}, labelW, colW)
}

// gridTable renders header and rows in fixed-width columns: the first
// column left-aligned, the rest right-aligned.
func gridTable(header []string, rows [][]string, labelW, colW int) string {
	t := theme.Active
	headStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	cellStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	line := func(cells []string, first, rest lipgloss.Style) string {
		var b strings.Builder
		for i, cell := range cells {
			if i == 0 {
				b.WriteString(first.Width(labelW).Render(truncStr(cell, labelW)))
				continue
			}
			b.WriteString(rest.Width(colW).Align(lipgloss.Right).Render(truncStr(cell, colW-1)))
		}
		return b.String()
	}

	out := []string{line(header, headStyle, headStyle)}
	for _, r := range rows {
		out = append(out, line(r, labelStyle, cellStyle))
	}
	return strings.Join(out, "\n")
}

// padCardHeight appends background lines until card is h lines tall.
func padCardHeight(card string, h int) string {
	n := lipgloss.Height(card)
	if n >= h {
		return card
	}
	blank := lipgloss.NewStyle().Background(theme.Active.Background).
		Render(strings.Repeat(" ", lipgloss.Width(card)))
	return card + strings.Repeat("\n"+blank, h-n)
}
