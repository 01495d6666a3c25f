// Package export writes dashboard snapshots as CSV, SQLite and PDF files.
// Exports are outputs only; nothing here is read back into the dashboard.
package export

import (
	"time"

	"github.com/theirongolddev/optimscale/internal/forecast"
	"github.com/theirongolddev/optimscale/internal/model"
	"github.com/theirongolddev/optimscale/internal/scenario"
)

// ChartSnapshot is the frozen state of one chart.
type ChartSnapshot struct {
	Spec        model.MetricSpec
	Variant     string
	Historical  []model.Point
	Predicted   []model.Point
	Model       forecast.Model
	Fitted      bool
	RSquared    float64
	Annotations []model.Annotation
}

// Snapshot is the frozen state of the dashboard.
type Snapshot struct {
	TakenAt    time.Time
	RangeStart string
	RangeEnd   string
	Charts     []ChartSnapshot
}

// Capture copies the current state of every chart of d.
func Capture(d *scenario.Dashboard, now time.Time) Snapshot {
	start, end := d.Range()
	snap := Snapshot{TakenAt: now, RangeStart: start, RangeEnd: end}
	for _, c := range d.Charts() {
		cs := CaptureChart(c)
		cs.Variant = d.Variant(c.Key())
		snap.Charts = append(snap.Charts, cs)
	}
	return snap
}

// CaptureChart copies the current state of c.
func CaptureChart(c *scenario.Chart) ChartSnapshot {
	cs := ChartSnapshot{
		Spec:        c.Spec(),
		Historical:  c.Historical(),
		Predicted:   c.Predicted(),
		Annotations: c.Annotations(),
	}
	if m, err := c.Model(); err == nil {
		cs.Model = m
		cs.Fitted = true
		cs.RSquared = forecast.RSquared(m, cs.Historical)
	}
	return cs
}
