package scenario

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySeries is returned when a drag starts on a chart with no history.
	ErrEmptySeries = errors.New("scenario: chart has no historical points")
	// ErrInvalidAnnotation is returned for an empty note or an unknown period.
	ErrInvalidAnnotation = errors.New("scenario: invalid annotation")
	// ErrUnknownMetric is returned when a dashboard lookup names no chart.
	ErrUnknownMetric = errors.New("scenario: unknown metric")
	// ErrUnknownVariant is returned when a metric has no variant of that name.
	ErrUnknownVariant = errors.New("scenario: unknown variant")
)

// InvalidDragTargetError reports a pointer-down on a point other than the
// last historical one.
type InvalidDragTargetError struct {
	Period string
	Anchor string
}

func (e *InvalidDragTargetError) Error() string {
	return fmt.Sprintf("scenario: %q is not draggable, only the latest point %q is", e.Period, e.Anchor)
}
