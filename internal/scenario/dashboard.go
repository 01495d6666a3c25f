package scenario

import (
	"fmt"

	"github.com/theirongolddev/optimscale/internal/calendar"
	"github.com/theirongolddev/optimscale/internal/dataset"
	"github.com/theirongolddev/optimscale/internal/model"

	"github.com/rs/zerolog"
)

// Layout is how the overview arranges its charts.
type Layout string

const (
	LayoutSingle Layout = "single"
	LayoutGrid   Layout = "grid"
)

// Toggle returns the other layout.
func (l Layout) Toggle() Layout {
	if l == LayoutGrid {
		return LayoutSingle
	}
	return LayoutGrid
}

// Dashboard owns one Chart per dataset metric together with the shared
// selections: variant per metric, date range and layout.
type Dashboard struct {
	data    *dataset.Dataset
	charts  map[string]*Chart
	order   []string
	variant map[string]string

	start, end string

	Layout Layout
	Theme  string

	log  zerolog.Logger
	opts []Option
}

// NewDashboard builds a chart for every metric of data, using each
// metric's first variant and the full period range.
func NewDashboard(data *dataset.Dataset, log zerolog.Logger, opts ...Option) *Dashboard {
	d := &Dashboard{
		data:    data,
		charts:  make(map[string]*Chart, len(data.Metrics)),
		variant: make(map[string]string, len(data.Metrics)),
		Layout:  LayoutSingle,
		log:     log,
		opts:    append([]Option{WithLogger(log)}, opts...),
	}
	if n := len(data.Periods); n > 0 {
		d.start, d.end = data.Periods[0], data.Periods[n-1]
	}
	for i := range data.Metrics {
		m := &data.Metrics[i]
		d.order = append(d.order, m.Key)
		d.variant[m.Key] = m.Variants[0].Name
		d.charts[m.Key] = NewChart(m.MetricSpec, d.seedFor(m), d.opts...)
	}
	return d
}

// Dataset returns the backing dataset.
func (d *Dashboard) Dataset() *dataset.Dataset { return d.data }

// Charts returns the charts in dataset order.
func (d *Dashboard) Charts() []*Chart {
	out := make([]*Chart, len(d.order))
	for i, k := range d.order {
		out[i] = d.charts[k]
	}
	return out
}

// Chart looks up the chart of metric.
func (d *Dashboard) Chart(metric string) (*Chart, error) {
	c, ok := d.charts[metric]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
	return c, nil
}

// Variant returns the selected variant of metric.
func (d *Dashboard) Variant(metric string) string { return d.variant[metric] }

// Variants lists the selectable variants of metric.
func (d *Dashboard) Variants(metric string) []string {
	m, ok := d.data.Metric(metric)
	if !ok {
		return nil
	}
	return m.VariantNames()
}

// SetVariant switches metric to another seed variant. The chart is
// reseeded, which discards any drag edits.
func (d *Dashboard) SetVariant(metric, variant string) error {
	m, ok := d.data.Metric(metric)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
	if _, ok := m.Variant(variant); !ok {
		return fmt.Errorf("%w: %q for %s", ErrUnknownVariant, variant, metric)
	}
	d.variant[metric] = variant
	d.charts[metric].reseed(d.seedFor(m))
	d.log.Debug().Str("metric", metric).Str("variant", variant).Msg("variant selected")
	return nil
}

// CycleVariant selects the next variant of metric and returns its name.
func (d *Dashboard) CycleVariant(metric string) (string, error) {
	m, ok := d.data.Metric(metric)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
	names := m.VariantNames()
	next := names[0]
	for i, n := range names {
		if n == d.variant[metric] {
			next = names[(i+1)%len(names)]
			break
		}
	}
	return next, d.SetVariant(metric, next)
}

// Range returns the selected period range.
func (d *Dashboard) Range() (start, end string) { return d.start, d.end }

// SetRange selects the periods start through end and reseeds every chart.
// Labels outside the dataset vocabulary leave the series unfiltered.
func (d *Dashboard) SetRange(start, end string) {
	d.start, d.end = start, end
	for i := range d.data.Metrics {
		m := &d.data.Metrics[i]
		d.charts[m.Key].reseed(d.seedFor(m))
	}
	d.log.Debug().Str("start", start).Str("end", end).Msg("range selected")
}

// ShiftRange moves the range bounds by whole periods, clamped to the
// dataset and kept in order.
func (d *Dashboard) ShiftRange(dStart, dEnd int) {
	periods := d.data.Periods
	if len(periods) == 0 {
		return
	}
	lo, hi, ok := calendar.Window(periods, d.start, d.end)
	if !ok {
		lo, hi = 0, len(periods)-1
	}
	lo = clamp(lo+dStart, 0, len(periods)-1)
	hi = clamp(hi+dEnd, 0, len(periods)-1)
	if lo > hi {
		if dStart != 0 {
			lo = hi
		} else {
			hi = lo
		}
	}
	d.SetRange(periods[lo], periods[hi])
}

// ResetChart restores the seeded values of metric.
func (d *Dashboard) ResetChart(metric string) error {
	c, err := d.Chart(metric)
	if err != nil {
		return err
	}
	c.Reset()
	return nil
}

// seedFor is the metric's selected variant cut to the date range, then to
// the metric's history length.
func (d *Dashboard) seedFor(m *dataset.Metric) []model.Point {
	pts, err := d.data.Series(m.Key, d.variant[m.Key])
	if err != nil {
		return nil
	}
	if lo, hi, ok := calendar.Window(d.data.Periods, d.start, d.end); ok {
		pts = pts[lo : hi+1]
	}
	if m.History > 0 && len(pts) > m.History {
		pts = pts[:m.History]
	}
	return pts
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
