// Package calendar implements the month-year period vocabulary used to label
// series points ("Jul '24", "Aug '24", ...).
package calendar

import (
	"fmt"
	"time"
)

// Layout is the time layout of a period label.
const Layout = "Jan '06"

// Sequence produces the labels that follow a given period.
// Implementations must always return exactly n labels.
type Sequence interface {
	After(last string, n int) []string
}

// Monthly is the month-year Sequence.
type Monthly struct{}

// Parse converts a period label to the first day of its month (UTC).
func Parse(label string) (time.Time, error) {
	t, err := time.Parse(Layout, label)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing period %q: %w", label, err)
	}
	return t, nil
}

// Format renders t as a period label.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Shift moves a label by n months. Unparseable labels are returned as-is.
func Shift(label string, n int) string {
	t, err := Parse(label)
	if err != nil {
		return label
	}
	return Format(t.AddDate(0, n, 0))
}

// After returns the n month labels following last. When last is not a
// month label the result falls back to positional labels ("last+1", ...)
// so callers can rely on the length.
func (Monthly) After(last string, n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	t, err := Parse(last)
	if err != nil {
		base := last
		if base == "" {
			base = "P"
		}
		for i := range out {
			out[i] = fmt.Sprintf("%s+%d", base, i+1)
		}
		return out
	}
	for i := range out {
		out[i] = Format(t.AddDate(0, i+1, 0))
	}
	return out
}

// Between returns the labels from start through end inclusive.
func Between(start, end string) ([]string, error) {
	s, err := Parse(start)
	if err != nil {
		return nil, err
	}
	e, err := Parse(end)
	if err != nil {
		return nil, err
	}
	if e.Before(s) {
		return nil, fmt.Errorf("period range %s - %s is reversed", start, end)
	}
	var out []string
	for t := s; !t.After(e); t = t.AddDate(0, 1, 0) {
		out = append(out, Format(t))
	}
	return out, nil
}

// Window locates start and end inside periods and returns the inclusive
// index range. ok is false when either label is missing or the range is
// reversed; callers keep the series unfiltered in that case.
func Window(periods []string, start, end string) (lo, hi int, ok bool) {
	lo, hi = -1, -1
	for i, p := range periods {
		if p == start && lo < 0 {
			lo = i
		}
		if p == end {
			hi = i
		}
	}
	if lo < 0 || hi < 0 || hi < lo {
		return 0, 0, false
	}
	return lo, hi, true
}
