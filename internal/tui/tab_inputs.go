package tui

import (
	"strings"

	"github.com/theirongolddev/optimscale/internal/calendar"
	"github.com/theirongolddev/optimscale/internal/cli"
	"github.com/theirongolddev/optimscale/internal/dataset"
	"github.com/theirongolddev/optimscale/internal/tui/components"
	"github.com/theirongolddev/optimscale/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderInputsTab(cw int) string {
	t := theme.Active
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Background)
	innerW := components.CardInnerWidth(cw)

	var b strings.Builder
	if a.canvas {
		b.WriteString(components.ContentCard("Business Canvas", canvasGrid(a.dash.Dataset().Canvas, innerW), cw))
		b.WriteString("\n")
		b.WriteString(hintStyle.Render(" [tab] spreadsheet view"))
		return b.String()
	}

	anchor := ""
	if c, err := a.dash.Chart(dataset.MarketingKey); err == nil {
		b.WriteString(components.ContentCard("Spreadsheet · "+c.Title(), spendGrid(c, innerW), cw))
		b.WriteString("\n")
		if p, ok := c.Anchor(); ok {
			anchor = p.Period
		}
	}
	b.WriteString(components.ContentCard("Strategies", strategyGrid(a.dash.Dataset().Strategies, anchor, innerW), cw))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(" [tab] business canvas"))
	return b.String()
}

// strategyGrid lists each strategy's last close and its monthly plan, the
// plan columns labeled with the months after anchor.
func strategyGrid(strategies []dataset.Strategy, anchor string, innerW int) string {
	if len(strategies) == 0 {
		return "No strategies defined"
	}
	n := 0
	for _, s := range strategies {
		n = max(n, len(s.Values))
	}

	labelW := 18
	colW := 9
	fit := max(1, (innerW-labelW-colW)/colW)
	n = min(n, fit)

	header := append([]string{"Strategy", "Last"}, calendar.Monthly{}.After(anchor, n)...)
	rows := make([][]string, 0, len(strategies))
	for _, s := range strategies {
		row := []string{s.Category, cli.FormatCompact(s.LastClose)}
		for i := 0; i < n; i++ {
			if i < len(s.Values) {
				row = append(row, cli.FormatCompact(s.Values[i]))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return gridTable(header, rows, labelW, colW)
}

// canvasGrid renders the business canvas rows under its column headings.
func canvasGrid(cv dataset.Canvas, innerW int) string {
	if len(cv.Rows) == 0 {
		return "No canvas rows defined"
	}
	labelW := 24
	cols := cv.Columns
	colW := max(5, (innerW-labelW)/max(1, len(cols)))
	if fit := (innerW - labelW) / colW; len(cols) > fit {
		cols = cols[:max(1, fit)]
	}

	header := append([]string{"Category"}, cols...)
	rows := make([][]string, 0, len(cv.Rows))
	for _, r := range cv.Rows {
		row := []string{r.Category}
		for i := range cols {
			if i < len(r.Values) {
				row = append(row, cli.FormatCompact(r.Values[i]))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return gridTable(header, rows, labelW, colW)
}
