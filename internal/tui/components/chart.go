package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/optimscale/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline from values. Values from split on
// are drawn in the projection color.
func Sparkline(values []float64, split int, color, projColor lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	histStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	projStyle := lipgloss.NewStyle().Foreground(projColor).Background(t.Surface)

	var hist, proj strings.Builder
	for i, v := range values {
		idx := int((v - lo) / span * float64(len(blocks)-1))
		idx = max(0, min(idx, len(blocks)-1))
		if i < split {
			hist.WriteRune(blocks[idx])
		} else {
			proj.WriteRune(blocks[idx])
		}
	}

	out := histStyle.Render(hist.String())
	if proj.Len() > 0 {
		out += projStyle.Render(proj.String())
	}
	return out
}

// LineSeries is the data of one line chart: the first Split values are
// history, the rest are projected.
type LineSeries struct {
	Values []float64
	Labels []string
	Split  int
	Marks  map[int]bool // indexes carrying an annotation
}

// LineGeometry locates the drawn points inside a rendered LineChart. All
// coordinates are relative to the chart's top-left cell.
type LineGeometry struct {
	AxisW   int   // columns used by the y axis
	Rows    int   // plot rows; the x axis and labels follow
	Columns []int // plot column of each point
	Lo, Hi  float64
}

// Height is the number of lines the chart occupies.
func (g LineGeometry) Height() int { return g.Rows + 2 }

// PointAt returns the index of the point drawn at chart column x, or -1
// when x falls between points.
func (g LineGeometry) PointAt(x int) int {
	px := x - g.AxisW
	if px < 0 || len(g.Columns) == 0 {
		return -1
	}
	reach := 1
	if len(g.Columns) > 1 {
		reach = max(1, (g.Columns[1]-g.Columns[0])/2)
	}
	best, bestDist := -1, reach+1
	for i, c := range g.Columns {
		d := px - c
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// RowOf is the plot row a value is drawn on, 0 being the top.
func (g LineGeometry) RowOf(v float64) int {
	if g.Rows <= 1 || g.Hi == g.Lo {
		return 0
	}
	r := int(math.Round((g.Hi - v) / (g.Hi - g.Lo) * float64(g.Rows-1)))
	return max(0, min(r, g.Rows-1))
}

// MeasureLineChart computes the geometry LineChart will use for s in a
// width x height box.
func MeasureLineChart(s LineSeries, width, height int) LineGeometry {
	g := LineGeometry{Rows: max(3, height-2)}
	if len(s.Values) == 0 {
		return g
	}

	lo, hi := s.Values[0], s.Values[0]
	for _, v := range s.Values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	step := chartTickStep(hi - lo)
	g.Lo = math.Floor(lo/step) * step
	g.Hi = math.Ceil(hi/step) * step
	if g.Hi == g.Lo {
		g.Hi = g.Lo + step
	}

	labelW := 0
	for _, tick := range ticks(g.Lo, g.Hi, step) {
		labelW = max(labelW, len(formatChartLabel(tick, step)))
	}
	g.AxisW = labelW + 2 // label, space, axis

	n := len(s.Values)
	plotW := max(n, width-g.AxisW-1)
	g.Columns = make([]int, n)
	for i := range g.Columns {
		if n > 1 {
			g.Columns[i] = i * (plotW - 1) / (n - 1)
		}
	}
	return g
}

type cellKind int

const (
	cellEmpty cellKind = iota
	cellHistLine
	cellProjLine
	cellHistPoint
	cellProjPoint
	cellAnchor
	cellMark
)

// LineChart renders s as a solid historical line joined to a dashed
// projection, with the anchor point highlighted.
func LineChart(s LineSeries, width, height int) (string, LineGeometry) {
	g := MeasureLineChart(s, width, height)
	if len(s.Values) == 0 {
		return "", g
	}
	t := theme.Active

	plotW := g.Columns[len(g.Columns)-1] + 1
	grid := make([][]rune, g.Rows)
	kinds := make([][]cellKind, g.Rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", plotW))
		kinds[r] = make([]cellKind, plotW)
	}
	put := func(r, c int, ch rune, k cellKind) {
		if r < 0 || r >= g.Rows || c < 0 || c >= plotW {
			return
		}
		if kinds[r][c] >= cellHistPoint && k < cellHistPoint {
			return
		}
		grid[r][c] = ch
		kinds[r][c] = k
	}

	// Segments first so points overwrite them.
	for i := 0; i+1 < len(s.Values); i++ {
		c0, c1 := g.Columns[i], g.Columns[i+1]
		v0, v1 := s.Values[i], s.Values[i+1]
		proj := i+1 >= s.Split
		kind := cellHistLine
		if proj {
			kind = cellProjLine
		}
		prev := g.RowOf(v0)
		for c := c0 + 1; c < c1; c++ {
			frac := float64(c-c0) / float64(c1-c0)
			r := g.RowOf(v0 + (v1-v0)*frac)
			ch := lineRune(prev, r, proj, c)
			put(r, c, ch, kind)
			prev = r
		}
	}

	anchor := s.Split - 1
	for i, v := range s.Values {
		r, c := g.RowOf(v), g.Columns[i]
		switch {
		case i == anchor:
			put(r, c, '◆', cellAnchor)
		case s.Marks[i]:
			put(r, c, '◉', cellMark)
		case i < s.Split:
			put(r, c, '●', cellHistPoint)
		default:
			put(r, c, '○', cellProjPoint)
		}
	}

	bg := lipgloss.NewStyle().Background(t.Surface)
	axisStyle := bg.Foreground(t.TextDim)
	styles := map[cellKind]lipgloss.Style{
		cellEmpty:     bg,
		cellHistLine:  bg.Foreground(t.Accent),
		cellHistPoint: bg.Foreground(t.AccentBright),
		cellProjLine:  bg.Foreground(t.Orange),
		cellProjPoint: bg.Foreground(t.Orange),
		cellAnchor:    bg.Foreground(t.Yellow).Bold(true),
		cellMark:      bg.Foreground(t.Magenta).Bold(true),
	}

	step := chartTickStep(g.Hi - g.Lo)
	tickRows := make(map[int]string)
	for _, tick := range ticks(g.Lo, g.Hi, step) {
		r := g.RowOf(tick)
		if _, taken := tickRows[r]; !taken {
			tickRows[r] = formatChartLabel(tick, step)
		}
	}
	labelW := g.AxisW - 2

	var b strings.Builder
	for r := 0; r < g.Rows; r++ {
		axis := "│"
		if _, ok := tickRows[r]; ok {
			axis = "┤"
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s %s", labelW, tickRows[r], axis)))

		// Emit runs of equally styled cells.
		start := 0
		for c := 1; c <= plotW; c++ {
			if c < plotW && kinds[r][c] == kinds[r][start] {
				continue
			}
			b.WriteString(styles[kinds[r][start]].Render(string(grid[r][start:c])))
			start = c
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(strings.Repeat(" ", labelW+1) + "└" + strings.Repeat("─", plotW)))
	b.WriteString("\n")
	b.WriteString(axisStyle.Render(strings.Repeat(" ", g.AxisW) + xLabels(s, g, plotW)))

	return b.String(), g
}

// lineRune picks the glyph joining the previous column's row to r. The
// projection alternates with gaps to read as dashed.
func lineRune(prev, r int, proj bool, c int) rune {
	if proj && c%2 == 1 {
		return ' '
	}
	switch {
	case r < prev:
		return '╱'
	case r > prev:
		return '╲'
	case proj:
		return '┄'
	default:
		return '─'
	}
}

// xLabels places the first, anchor and last labels, then fills in others
// where they fit.
func xLabels(s LineSeries, g LineGeometry, plotW int) string {
	buf := []rune(strings.Repeat(" ", plotW+1))
	taken := make([]bool, len(buf))

	place := func(i int) {
		if i < 0 || i >= len(s.Labels) || i >= len(g.Columns) {
			return
		}
		lbl := []rune(s.Labels[i])
		pos := g.Columns[i] - len(lbl)/2
		pos = max(0, min(pos, len(buf)-len(lbl)))
		for j := max(0, pos-1); j < min(len(buf), pos+len(lbl)+1); j++ {
			if taken[j] {
				return
			}
		}
		copy(buf[pos:], lbl)
		for j := pos; j < pos+len(lbl); j++ {
			taken[j] = true
		}
	}

	place(0)
	place(s.Split - 1)
	place(len(s.Values) - 1)
	for i := 1; i < len(s.Values)-1; i++ {
		place(i)
	}
	return strings.TrimRight(string(buf), " ")
}

func ticks(lo, hi, step float64) []float64 {
	var out []float64
	for v := lo; v <= hi+step/2; v += step {
		out = append(out, v)
	}
	return out
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(span float64) float64 {
	if span <= 0 {
		return 1
	}
	rough := span / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

// formatChartLabel abbreviates v. Steps below 1 keep as many decimals as
// the step needs.
func formatChartLabel(v, step float64) string {
	if step > 0 && step < 1 {
		decimals := int(math.Ceil(-math.Log10(step) - 1e-9))
		return fmt.Sprintf("%.*f", decimals, v)
	}
	switch {
	case math.Abs(v) >= 1e9:
		if v == math.Trunc(v/1e9)*1e9 {
			return fmt.Sprintf("%.0fB", v/1e9)
		}
		return fmt.Sprintf("%.1fB", v/1e9)
	case math.Abs(v) >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%.0fM", v/1e6)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case math.Abs(v) >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
