package forecast

import (
	"testing"

	"github.com/theirongolddev/optimscale/internal/calendar"
	"github.com/theirongolddev/optimscale/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_TruncatesLongTail(t *testing.T) {
	hist := series("Jul '24", 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	pred := series("May '25", 11, 12, 13, 14, 15)

	got := Normalize(hist, pred, 12, calendar.Monthly{})
	assert.Equal(t, pred[:2], got)
}

func TestNormalize_FlatFillFromHistory(t *testing.T) {
	hist := series("Jul '24", 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)

	got := Normalize(hist, nil, 12, calendar.Monthly{})
	assert.Equal(t, []model.Point{
		{Period: "May '25", Value: 10},
		{Period: "Jun '25", Value: 10},
	}, got)
}

func TestNormalize_PadsFromLastPrediction(t *testing.T) {
	hist := series("Jul '24", 1, 2, 3, 4, 5, 6, 7, 8, 9)
	pred := series("Apr '25", 10)

	got := Normalize(hist, pred, 12, calendar.Monthly{})
	assert.Equal(t, []model.Point{
		{Period: "Apr '25", Value: 10},
		{Period: "May '25", Value: 10},
		{Period: "Jun '25", Value: 10},
	}, got)
}

func TestNormalize_DoesNotAliasInput(t *testing.T) {
	hist := series("Jul '24", 1, 2)
	pred := series("Sep '24", 3, 4, 5)

	got := Normalize(hist, pred, 4, calendar.Monthly{})
	got[0].Value = 99
	assert.Equal(t, 3.0, pred[0].Value)
}

func TestNormalize_HorizonInvariant(t *testing.T) {
	const horizon = 12
	for h := 0; h <= horizon+2; h++ {
		for p := 0; p <= horizon+2; p++ {
			hist := make([]model.Point, h)
			pred := make([]model.Point, p)
			got := Normalize(hist, pred, horizon, calendar.Monthly{})
			want := horizon - h
			if want < 0 {
				want = 0
			}
			assert.Lenf(t, got, want, "hist=%d pred=%d", h, p)
		}
	}
}
