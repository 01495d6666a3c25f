package forecast

import (
	"testing"

	"github.com/theirongolddev/optimscale/internal/calendar"
	"github.com/theirongolddev/optimscale/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(periodStart string, values ...float64) []model.Point {
	labels := append([]string{periodStart}, calendar.Monthly{}.After(periodStart, len(values)-1)...)
	pts := make([]model.Point, len(values))
	for i, v := range values {
		pts[i] = model.Point{Period: labels[i], Value: v}
	}
	return pts
}

func TestFitLinear_ExampleSeries(t *testing.T) {
	s := series("Jan '25", 100, 110, 120)

	m, err := Fit(s, Linear)
	require.NoError(t, err)
	assert.InDelta(t, 10, m.Slope(), 1e-9)
	assert.InDelta(t, 100, m.Intercept(), 1e-9)

	got, err := Project(m, s, 2, 0, calendar.Monthly{})
	require.NoError(t, err)
	assert.Equal(t, []model.Point{
		{Period: "Apr '25", Value: 130},
		{Period: "May '25", Value: 140},
	}, got)
}

func TestFit_LinearExactness(t *testing.T) {
	cases := []struct {
		name   string
		m, b   float64
		n      int
		degree Degree
	}{
		{"rising linear", 9607.5, 804551.5, 10, Linear},
		{"falling linear", -0.2, 5.0, 12, Linear},
		{"quadratic fit on linear data", 3.25, -7, 8, Quadratic},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values := make([]float64, tc.n)
			for i := range values {
				values[i] = tc.m*float64(i) + tc.b
			}
			s := series("Jul '24", values...)

			m, err := Fit(s, tc.degree)
			require.NoError(t, err)
			assert.InDelta(t, tc.m, m.Slope(), 1e-6)
			assert.InDelta(t, tc.b, m.Intercept(), 1e-6)
			if tc.degree == Quadratic {
				assert.InDelta(t, 0, m.Coefficients[2], 1e-8)
			}

			proj, err := Project(m, s, 4, 2, calendar.Monthly{})
			require.NoError(t, err)
			for i, p := range proj {
				want := Round(tc.m*float64(tc.n+i)+tc.b, 2)
				assert.InDelta(t, want, p.Value, 1e-9, "projection %d", i)
			}
		})
	}
}

func TestFitQuadratic_RecoversCurve(t *testing.T) {
	// y = 2 + 0.5x + 0.25x²
	values := make([]float64, 9)
	for i := range values {
		x := float64(i)
		values[i] = 2 + 0.5*x + 0.25*x*x
	}
	s := series("Jul '24", values...)

	m, err := Fit(s, Quadratic)
	require.NoError(t, err)
	require.Len(t, m.Coefficients, 3)
	assert.InDelta(t, 2, m.Coefficients[0], 1e-7)
	assert.InDelta(t, 0.5, m.Coefficients[1], 1e-7)
	assert.InDelta(t, 0.25, m.Coefficients[2], 1e-8)
	assert.InDelta(t, 1, RSquared(m, s), 1e-12)

	proj, err := Project(m, s, 1, 2, calendar.Monthly{})
	require.NoError(t, err)
	assert.Equal(t, "Apr '25", proj[0].Period)
	assert.InDelta(t, 2+0.5*9+0.25*81, proj[0].Value, 1e-9)
}

func TestFit_InsufficientData(t *testing.T) {
	_, err := Fit(series("Jan '25", 1), Linear)
	var insufficient *InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 2, insufficient.Need)
	assert.Equal(t, 1, insufficient.Have)

	_, err = Fit(series("Jan '25", 1, 2), Quadratic)
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 3, insufficient.Need)

	_, err = Fit(nil, Linear)
	require.ErrorAs(t, err, &insufficient)
}

func TestFit_UnsupportedDegree(t *testing.T) {
	_, err := Fit(series("Jan '25", 1, 2, 3, 4), Degree(3))
	assert.ErrorIs(t, err, ErrUnsupportedDegree)
}

func TestProject_Deterministic(t *testing.T) {
	s := series("Jul '24", 2.31, 2.28, 2.25, 2.22, 2.31, 2.35, 2.38, 2.40, 2.42, 2.43, 2.44, 2.45)
	for _, d := range []Degree{Linear, Quadratic} {
		m1, a, err := Forecast(s, d, 5, 2, calendar.Monthly{})
		require.NoError(t, err)
		m2, b, err := Forecast(s, d, 5, 2, calendar.Monthly{})
		require.NoError(t, err)
		assert.Equal(t, m1, m2)
		assert.Equal(t, a, b)
	}
}

func TestProject_ZeroAndNegativeCount(t *testing.T) {
	s := series("Jan '25", 1, 2, 3)
	m, err := Fit(s, Linear)
	require.NoError(t, err)

	got, err := Project(m, s, 0, 2, calendar.Monthly{})
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = Project(m, s, -1, 2, calendar.Monthly{})
	assert.ErrorIs(t, err, ErrNegativeCount)
}

func TestProject_PrecisionPolicy(t *testing.T) {
	s := series("Jan '25", 1.111, 2.222, 3.333)
	m, err := Fit(s, Linear)
	require.NoError(t, err)

	whole, err := Project(m, s, 1, 0, calendar.Monthly{})
	require.NoError(t, err)
	assert.Equal(t, 4.0, whole[0].Value)

	cents, err := Project(m, s, 1, 2, calendar.Monthly{})
	require.NoError(t, err)
	assert.Equal(t, 4.44, cents[0].Value)
}

func TestModelString(t *testing.T) {
	assert.Equal(t, "y = 9607.5x + 804551.5",
		Model{Coefficients: []float64{804551.5, 9607.5}, Degree: Linear}.String())
	assert.Equal(t, "y = -0.2x + 5",
		Model{Coefficients: []float64{5, -0.2}, Degree: Linear}.String())
	assert.Equal(t, "y = 0.25x² + 0.5x + 2",
		Model{Coefficients: []float64{2, 0.5, 0.25}, Degree: Quadratic}.String())
	assert.Equal(t, "y = 3x",
		Model{Coefficients: []float64{0, 3}, Degree: Linear}.String())
}

func TestRound(t *testing.T) {
	assert.Equal(t, 2.46, Round(2.455, 2))
	assert.Equal(t, -3.0, Round(-2.5, 0))
	assert.Equal(t, 914378.0, Round(914377.6, 0))
}
