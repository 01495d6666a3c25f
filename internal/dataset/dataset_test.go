package dataset

import (
	"testing"

	"github.com/theirongolddev/optimscale/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	ds, err := Builtin()
	require.NoError(t, err)

	assert.Len(t, ds.Periods, 12)
	assert.Equal(t, "Jul '24", ds.Periods[0])
	assert.Equal(t, []string{"burn", "cash", "runway", "arr", "marketing"}, ds.Keys())

	m, ok := ds.Metric(MarketingKey)
	require.True(t, ok)
	assert.Equal(t, model.UnitCurrency, m.Unit)
	assert.Equal(t, 0, m.Precision)
	assert.Equal(t, 100.0, m.DragSensitivity)
	assert.Equal(t, 12, m.Horizon)
	assert.Equal(t, 10, m.History)

	arr, ok := ds.Metric("arr")
	require.True(t, ok)
	assert.Equal(t, []string{"Sales Conversion", "Marketing"}, arr.VariantNames())

	assert.Len(t, ds.Canvas.Rows, 9)
	assert.Len(t, ds.Strategies, 4)
}

func TestSeries(t *testing.T) {
	ds, err := Builtin()
	require.NoError(t, err)

	pts, err := ds.Series("burn", "Adjusted")
	require.NoError(t, err)
	require.Len(t, pts, 12)
	assert.Equal(t, model.Point{Period: "Jul '24", Value: 2.41}, pts[0])
	assert.Equal(t, model.Point{Period: "Jun '25", Value: 2.55}, pts[11])

	_, err = ds.Series("burn", "Nope")
	assert.Error(t, err)
	_, err = ds.Series("nope", "Default")
	assert.Error(t, err)
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"length mismatch": `
periods: ["Jan '25", "Feb '25"]
metrics:
  - {key: a, title: A, unit: count, precision: 2, drag_sensitivity: 1, degree: 1, lookahead: 1,
     variants: [{name: Default, values: [1]}]}
`,
		"bad degree": `
periods: ["Jan '25"]
metrics:
  - {key: a, title: A, unit: count, precision: 2, drag_sensitivity: 1, degree: 3, lookahead: 1,
     variants: [{name: Default, values: [1]}]}
`,
		"duplicate key": `
periods: ["Jan '25"]
metrics:
  - {key: a, title: A, unit: count, precision: 2, drag_sensitivity: 1, degree: 1,
     variants: [{name: Default, values: [1]}]}
  - {key: a, title: B, unit: count, precision: 2, drag_sensitivity: 1, degree: 1,
     variants: [{name: Default, values: [1]}]}
`,
		"no metrics": `periods: ["Jan '25"]`,
		"not yaml":   `periods: [`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}
