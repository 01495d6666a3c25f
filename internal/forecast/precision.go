package forecast

import (
	"math"

	"github.com/shopspring/decimal"
)

// Precision is the number of decimal places a metric is displayed and
// stored with: 0 for currency-like magnitudes, 2 for ratios.
type Precision int

// Round rounds v to p decimal places, half away from zero.
func Round(v float64, p Precision) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	if p < 0 {
		p = 0
	}
	return decimal.NewFromFloat(v).Round(int32(p)).InexactFloat64()
}
