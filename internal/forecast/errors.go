package forecast

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedDegree is returned for degrees other than Linear and Quadratic.
	ErrUnsupportedDegree = errors.New("forecast: unsupported degree")
	// ErrNegativeCount is returned when a projection of fewer than zero points is requested.
	ErrNegativeCount = errors.New("forecast: negative projection count")
)

// InsufficientDataError reports a fit attempted on too short a series.
type InsufficientDataError struct {
	Degree Degree
	Have   int
	Need   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("forecast: %s fit needs at least %d points, have %d", e.Degree, e.Need, e.Have)
}

// DegenerateFitError reports a singular normal-equations system.
type DegenerateFitError struct {
	Degree      Degree
	Denominator float64
}

func (e *DegenerateFitError) Error() string {
	return fmt.Sprintf("forecast: %s fit is degenerate (denominator %g)", e.Degree, e.Denominator)
}
