package scenario

import (
	"math"

	"github.com/theirongolddev/optimscale/internal/forecast"
)

// DragState is the state of a chart's drag controller.
type DragState int

const (
	DragIdle DragState = iota
	DragDragging
)

func (s DragState) String() string {
	if s == DragDragging {
		return "dragging"
	}
	return "idle"
}

type dragSession struct {
	state  DragState
	x, y   float64
	before float64
}

// DragResult summarizes a finished drag gesture.
type DragResult struct {
	Metric string
	Title  string
	Period string
	Before float64
	After  float64
}

// Changed reports whether the gesture moved the anchor value.
func (r DragResult) Changed() bool { return r.Before != r.After }

// DragState returns the controller state.
func (c *Chart) DragState() DragState { return c.drag.state }

// PointerDown starts a drag when period is the anchor label. Pointer
// coordinates are in surface units with y growing downward.
func (c *Chart) PointerDown(period string, x, y float64) error {
	anchor, ok := c.Anchor()
	if !ok {
		return ErrEmptySeries
	}
	if period != anchor.Period {
		return &InvalidDragTargetError{Period: period, Anchor: anchor.Period}
	}
	c.drag = dragSession{state: DragDragging, x: x, y: y, before: anchor.Value}
	c.log.Debug().Str("metric", c.spec.Key).Str("period", period).Float64("value", anchor.Value).Msg("drag start")
	return nil
}

// PointerMove applies the vertical motion since the previous pointer
// position to the anchor value and recomputes the projection. It returns
// true when the anchor value changed.
func (c *Chart) PointerMove(x, y float64) bool {
	if c.drag.state != DragDragging || len(c.historical) == 0 {
		return false
	}
	dy := y - c.drag.y
	c.drag.x, c.drag.y = x, y

	last := &c.historical[len(c.historical)-1]
	next := forecast.Round(last.Value-dy*c.spec.DragSensitivity, forecast.Precision(c.spec.Precision))
	next = math.Max(0, next)
	if next == last.Value {
		return false
	}
	last.Value = next

	if err := c.Recompute(); err != nil {
		// Keep the previous projection; the gesture itself stays valid.
		c.log.Debug().Err(err).Str("metric", c.spec.Key).Msg("refit failed during drag")
	}
	return true
}

// PointerUp ends the drag. ok is false when no drag was in progress.
func (c *Chart) PointerUp() (DragResult, bool) {
	return c.endDrag("up")
}

// PointerLeave ends the drag when the pointer exits the chart surface.
func (c *Chart) PointerLeave() (DragResult, bool) {
	return c.endDrag("leave")
}

func (c *Chart) endDrag(reason string) (DragResult, bool) {
	if c.drag.state != DragDragging {
		return DragResult{}, false
	}
	before := c.drag.before
	c.drag = dragSession{}

	anchor, _ := c.Anchor()
	res := DragResult{
		Metric: c.spec.Key,
		Title:  c.spec.Title,
		Period: anchor.Period,
		Before: before,
		After:  anchor.Value,
	}
	c.log.Debug().Str("metric", c.spec.Key).Str("reason", reason).
		Float64("before", res.Before).Float64("after", res.After).Msg("drag end")
	return res, true
}

// Nudge moves the anchor by rows steps of the drag sensitivity, as if the
// anchor had been dragged rows units upward and released. A drag already
// in progress is ended first.
func (c *Chart) Nudge(rows int) (DragResult, error) {
	c.endDrag("nudge")
	anchor, ok := c.Anchor()
	if !ok {
		return DragResult{}, ErrEmptySeries
	}
	if err := c.PointerDown(anchor.Period, 0, 0); err != nil {
		return DragResult{}, err
	}
	c.PointerMove(0, -float64(rows))
	res, _ := c.PointerUp()
	return res, nil
}
