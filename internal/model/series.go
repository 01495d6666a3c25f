// Package model defines the value types shared across optimscale packages.
package model

// Point is one observation of a metric. Period is a label from an ordered
// calendar vocabulary (e.g. "Jul '24"); fits use the index, not the label.
type Point struct {
	Period string  `yaml:"period" json:"period"`
	Value  float64 `yaml:"value" json:"value"`
}

// Values returns the values of pts in order.
func Values(pts []Point) []float64 {
	out := make([]float64, len(pts))
	for i, p := range pts {
		out[i] = p.Value
	}
	return out
}

// Periods returns the period labels of pts in order.
func Periods(pts []Point) []string {
	out := make([]string, len(pts))
	for i, p := range pts {
		out[i] = p.Period
	}
	return out
}

// Clone returns a copy of pts that shares no backing array.
func Clone(pts []Point) []Point {
	if pts == nil {
		return nil
	}
	out := make([]Point, len(pts))
	copy(out, pts)
	return out
}

// Last returns the final point and whether pts was non-empty.
func Last(pts []Point) (Point, bool) {
	if len(pts) == 0 {
		return Point{}, false
	}
	return pts[len(pts)-1], true
}

// IndexOf returns the position of period in pts, or -1.
func IndexOf(pts []Point, period string) int {
	for i, p := range pts {
		if p.Period == period {
			return i
		}
	}
	return -1
}
