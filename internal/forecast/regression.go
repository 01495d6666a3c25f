// Package forecast fits polynomial trends to ordered series and projects
// them forward. Every function is pure: the same input always produces the
// same output.
package forecast

import (
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/optimscale/internal/calendar"
	"github.com/theirongolddev/optimscale/internal/model"

	"gonum.org/v1/gonum/mat"
)

// Degree is the polynomial degree of a fit.
type Degree int

const (
	Linear    Degree = 1
	Quadratic Degree = 2
)

func (d Degree) String() string {
	switch d {
	case Linear:
		return "linear"
	case Quadratic:
		return "quadratic"
	default:
		return "degree-" + strconv.Itoa(int(d))
	}
}

// Valid reports whether d is a supported degree.
func (d Degree) Valid() bool {
	return d == Linear || d == Quadratic
}

// MinPoints is the shortest series a fit of degree d accepts.
func (d Degree) MinPoints() int {
	return int(d) + 1
}

// Model is a fitted polynomial. Coefficients[i] multiplies x^i, where x is
// the 0-based index of a point in the fitted series.
type Model struct {
	Coefficients []float64
	Degree       Degree
}

// At evaluates the polynomial at x.
func (m Model) At(x float64) float64 {
	// Horner
	y := 0.0
	for i := len(m.Coefficients) - 1; i >= 0; i-- {
		y = y*x + m.Coefficients[i]
	}
	return y
}

// Slope is the linear coefficient.
func (m Model) Slope() float64 {
	if len(m.Coefficients) < 2 {
		return 0
	}
	return m.Coefficients[1]
}

// Intercept is the constant coefficient.
func (m Model) Intercept() float64 {
	if len(m.Coefficients) == 0 {
		return 0
	}
	return m.Coefficients[0]
}

// String renders the model as a formula caption, e.g. "y = 9607.5x + 804551.5".
func (m Model) String() string {
	if len(m.Coefficients) == 0 {
		return "y = 0"
	}
	var b strings.Builder
	b.WriteString("y =")
	first := true
	for i := len(m.Coefficients) - 1; i >= 0; i-- {
		c := Round(m.Coefficients[i], 2)
		if c == 0 && (i > 0 || !first) {
			continue
		}
		sign := "+"
		if c < 0 {
			sign = "-"
			c = -c
		}
		switch {
		case first && sign == "-":
			b.WriteString(" -")
		case !first:
			b.WriteString(" " + sign + " ")
		default:
			b.WriteString(" ")
		}
		b.WriteString(strconv.FormatFloat(c, 'f', -1, 64))
		switch i {
		case 0:
		case 1:
			b.WriteString("x")
		default:
			b.WriteString("x²")
		}
		first = false
	}
	return b.String()
}

// Fit computes the least-squares polynomial of the given degree for series,
// using each point's index as x.
func Fit(series []model.Point, degree Degree) (Model, error) {
	if !degree.Valid() {
		return Model{}, ErrUnsupportedDegree
	}
	if len(series) < degree.MinPoints() {
		return Model{}, &InsufficientDataError{Degree: degree, Have: len(series), Need: degree.MinPoints()}
	}
	if degree == Linear {
		return fitLinear(series)
	}
	return fitQuadratic(series)
}

func fitLinear(series []model.Point) (Model, error) {
	n := float64(len(series))
	var sumX, sumY, sumXY, sumXX float64
	for i, p := range series {
		x := float64(i)
		sumX += x
		sumY += p.Value
		sumXY += x * p.Value
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return Model{}, &DegenerateFitError{Degree: Linear, Denominator: denom}
	}

	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n
	return Model{Coefficients: []float64{intercept, slope}, Degree: Linear}, nil
}

// fitQuadratic solves the normal equations XᵀX·β = Xᵀy for y = a + bx + cx².
func fitQuadratic(series []model.Point) (Model, error) {
	// s[k] = Σx^k for k in 0..4, t[k] = Σx^k·y for k in 0..2
	var s [5]float64
	var t [3]float64
	for i, p := range series {
		x := float64(i)
		pow := 1.0
		for k := 0; k < 5; k++ {
			s[k] += pow
			if k < 3 {
				t[k] += pow * p.Value
			}
			pow *= x
		}
	}

	normal := mat.NewDense(3, 3, []float64{
		s[0], s[1], s[2],
		s[1], s[2], s[3],
		s[2], s[3], s[4],
	})
	det := mat.Det(normal)
	if det == 0 || math.IsNaN(det) {
		return Model{}, &DegenerateFitError{Degree: Quadratic, Denominator: det}
	}

	var coef mat.VecDense
	if err := coef.SolveVec(normal, mat.NewVecDense(3, t[:])); err != nil {
		return Model{}, &DegenerateFitError{Degree: Quadratic, Denominator: det}
	}

	return Model{
		Coefficients: []float64{coef.AtVec(0), coef.AtVec(1), coef.AtVec(2)},
		Degree:       Quadratic,
	}, nil
}

// Project evaluates m past the end of series. The i-th projected point sits
// at x = len(series)+i and is labelled with the i-th period after the last
// point of series.
func Project(m Model, series []model.Point, count int, precision Precision, cal calendar.Sequence) ([]model.Point, error) {
	if count < 0 {
		return nil, ErrNegativeCount
	}
	if !m.Degree.Valid() {
		return nil, ErrUnsupportedDegree
	}

	last := ""
	if p, ok := model.Last(series); ok {
		last = p.Period
	}
	labels := cal.After(last, count)

	out := make([]model.Point, count)
	n := len(series)
	for i := range out {
		x := float64(n + i)
		out[i] = model.Point{Period: labels[i], Value: Round(m.At(x), precision)}
	}
	return out, nil
}

// Forecast fits series and projects count points in one call.
func Forecast(series []model.Point, degree Degree, count int, precision Precision, cal calendar.Sequence) (Model, []model.Point, error) {
	m, err := Fit(series, degree)
	if err != nil {
		return Model{}, nil, err
	}
	pts, err := Project(m, series, count, precision, cal)
	if err != nil {
		return Model{}, nil, err
	}
	return m, pts, nil
}

// RSquared is the coefficient of determination of m over series. A flat
// series scores 1 when it is reproduced exactly and 0 otherwise.
func RSquared(m Model, series []model.Point) float64 {
	if len(series) == 0 {
		return 0
	}
	mean := 0.0
	for _, p := range series {
		mean += p.Value
	}
	mean /= float64(len(series))

	var ssRes, ssTot float64
	for i, p := range series {
		r := p.Value - m.At(float64(i))
		d := p.Value - mean
		ssRes += r * r
		ssTot += d * d
	}
	if ssTot == 0 {
		if ssRes < 1e-12 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}
