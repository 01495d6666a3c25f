package forecast

import (
	"github.com/theirongolddev/optimscale/internal/calendar"
	"github.com/theirongolddev/optimscale/internal/model"
)

// Normalize fits the predicted tail to a chart that always displays
// totalHorizon periods. The result has exactly max(0, totalHorizon-len(historical))
// points: predicted is truncated when too long and padded with its last
// value (or the last historical value) when too short.
//
// Padding is a display fill, not a forecast.
func Normalize(historical, predicted []model.Point, totalHorizon int, cal calendar.Sequence) []model.Point {
	remaining := totalHorizon - len(historical)
	if remaining <= 0 {
		return []model.Point{}
	}
	if len(predicted) >= remaining {
		return model.Clone(predicted[:remaining])
	}

	out := make([]model.Point, 0, remaining)
	out = append(out, predicted...)

	var fill model.Point
	if p, ok := model.Last(predicted); ok {
		fill = p
	} else if p, ok := model.Last(historical); ok {
		fill = p
	}

	labels := cal.After(fill.Period, remaining-len(predicted))
	for _, label := range labels {
		out = append(out, model.Point{Period: label, Value: fill.Value})
	}
	return out
}
