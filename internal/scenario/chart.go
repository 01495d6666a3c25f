// Package scenario holds the live state of each dashboard chart: the
// historical segment the user edits, the projection derived from it, the
// drag session and annotations.
package scenario

import (
	"time"

	"github.com/theirongolddev/optimscale/internal/calendar"
	"github.com/theirongolddev/optimscale/internal/forecast"
	"github.com/theirongolddev/optimscale/internal/model"

	"github.com/rs/zerolog"
)

// Chart is the view state of one metric chart. The historical segment is
// only changed by the drag controller, Reset, or reseeding; the predicted
// segment is always recomputed from it as a whole.
type Chart struct {
	spec model.MetricSpec

	seed       []model.Point
	historical []model.Point
	predicted  []model.Point
	fit        forecast.Model
	fitErr     error

	annotations []model.Annotation
	drag        dragSession

	cal calendar.Sequence
	log zerolog.Logger
	now func() time.Time
}

// Option customizes a Chart.
type Option func(*Chart)

// WithLogger routes drag and refit events to log.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Chart) { c.log = log }
}

// WithCalendar replaces the month-year label sequence.
func WithCalendar(cal calendar.Sequence) Option {
	return func(c *Chart) { c.cal = cal }
}

// WithClock sets the time source for annotation timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Chart) { c.now = now }
}

// NewChart builds a chart seeded with seed and computes its first projection.
// A seed too short to fit leaves the chart with a flat display fill.
func NewChart(spec model.MetricSpec, seed []model.Point, opts ...Option) *Chart {
	c := &Chart{
		spec: spec,
		cal:  calendar.Monthly{},
		log:  zerolog.Nop(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.reseed(seed)
	return c
}

// Spec returns the metric configuration.
func (c *Chart) Spec() model.MetricSpec { return c.spec }

// Key is the metric key.
func (c *Chart) Key() string { return c.spec.Key }

// Title is the display title.
func (c *Chart) Title() string { return c.spec.Title }

// Historical returns a copy of the current historical segment.
func (c *Chart) Historical() []model.Point { return model.Clone(c.historical) }

// Predicted returns a copy of the current predicted segment.
func (c *Chart) Predicted() []model.Point { return model.Clone(c.predicted) }

// Seed returns a copy of the values the chart resets to.
func (c *Chart) Seed() []model.Point { return model.Clone(c.seed) }

// Combined is historical followed by predicted: the array a chart surface
// draws, solid up to len(Historical()) and dashed after.
func (c *Chart) Combined() []model.Point {
	out := make([]model.Point, 0, len(c.historical)+len(c.predicted))
	out = append(out, c.historical...)
	return append(out, c.predicted...)
}

// Anchor is the last historical point, the only one that can be dragged.
func (c *Chart) Anchor() (model.Point, bool) {
	return model.Last(c.historical)
}

// Model returns the most recent successful fit and the error of the most
// recent fit attempt, if it failed.
func (c *Chart) Model() (forecast.Model, error) {
	return c.fit, c.fitErr
}

// Recompute refits the historical segment and replaces the predicted
// segment. On failure the predicted segment is left as it was.
func (c *Chart) Recompute() error {
	m, pts, err := forecast.Forecast(c.historical, forecast.Degree(c.spec.Degree), c.spec.Lookahead,
		forecast.Precision(c.spec.Precision), c.cal)
	c.fitErr = err
	if err != nil {
		return err
	}
	c.fit = m
	c.predicted = c.normalize(pts)
	return nil
}

// Reset restores the seeded historical values and ends any drag.
// Annotations are kept.
func (c *Chart) Reset() {
	c.reseed(c.seed)
}

// horizon is the total number of displayed periods.
func (c *Chart) horizon() int {
	if c.spec.Horizon > 0 {
		return c.spec.Horizon
	}
	return len(c.historical) + c.spec.Lookahead
}

func (c *Chart) normalize(pts []model.Point) []model.Point {
	return forecast.Normalize(c.historical, pts, c.horizon(), c.cal)
}

func (c *Chart) reseed(seed []model.Point) {
	c.seed = model.Clone(seed)
	c.historical = model.Clone(seed)
	c.drag = dragSession{}
	c.fit = forecast.Model{}
	if err := c.Recompute(); err != nil {
		c.log.Debug().Err(err).Str("metric", c.spec.Key).Msg("seed cannot be fitted")
		c.predicted = c.normalize(nil)
	}
}
