package cli

import (
	"testing"

	"github.com/theirongolddev/optimscale/internal/model"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		v         float64
		unit      model.Unit
		precision int
		want      string
	}{
		{905418, model.UnitCurrency, 0, "$905,418"},
		{905417.6, model.UnitCurrency, 0, "$905,418"},
		{-1200, model.UnitCurrency, 0, "-$1,200"},
		{2.45, model.UnitMillions, 2, "$2.45M"},
		{2.4, model.UnitMillions, 2, "$2.40M"},
		{1.9, model.UnitYears, 2, "1.90 yrs"},
		{12.345, model.UnitPercent, 1, "12.3%"},
		{4.3, model.UnitCount, 2, "4.30"},
		{1234567.891, model.UnitCount, 2, "1,234,567.89"},
		{0.25, model.UnitRatio, 2, "0.25"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.v, tt.unit, tt.precision); got != tt.want {
			t.Errorf("FormatValue(%v, %s, %d) = %q, want %q", tt.v, tt.unit, tt.precision, got, tt.want)
		}
	}
}

func TestFormatDecimal(t *testing.T) {
	tests := []struct {
		v    float64
		p    int
		want string
	}{
		{0, 0, "0"},
		{999.5, 0, "1,000"},
		{-0.001, 2, "0.00"},
		{-1234.5, 1, "-1,234.5"},
	}
	for _, tt := range tests {
		if got := FormatDecimal(tt.v, tt.p); got != tt.want {
			t.Errorf("FormatDecimal(%v, %d) = %q, want %q", tt.v, tt.p, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{814159, "814,159"},
		{-1234567, "-1,234,567"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.n); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{905418, "905.4K"},
		{1_250_000, "1.2M"},
		{2.456, "2.46"},
		{312, "312"},
	}
	for _, tt := range tests {
		if got := FormatCompact(tt.v); got != tt.want {
			t.Errorf("FormatCompact(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestFormatGrowthAndDelta(t *testing.T) {
	if got := FormatGrowth(1.43); got != "+1.4%" {
		t.Errorf("FormatGrowth(1.43) = %q", got)
	}
	if got := FormatGrowth(-0.26); got != "-0.3%" {
		t.Errorf("FormatGrowth(-0.26) = %q", got)
	}
	if got := FormatDelta(905518, 905418, model.UnitCurrency, 0); got != "+$100" {
		t.Errorf("FormatDelta up = %q", got)
	}
	if got := FormatDelta(2.28, 2.31, model.UnitMillions, 2); got != "-$0.03M" {
		t.Errorf("FormatDelta down = %q", got)
	}
}
