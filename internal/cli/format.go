// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/optimscale/internal/model"

	"github.com/shopspring/decimal"
)

// FormatValue renders v in the display convention of unit.
// e.g. currency 905418 -> "$905,418", millions 2.45 -> "$2.45M", years 1.9 -> "1.90 yrs"
func FormatValue(v float64, unit model.Unit, precision int) string {
	switch unit {
	case model.UnitCurrency:
		return signed(v, func(a float64) string { return "$" + FormatDecimal(a, precision) })
	case model.UnitMillions:
		return signed(v, func(a float64) string { return "$" + FormatDecimal(a, precision) + "M" })
	case model.UnitPercent:
		return FormatDecimal(v, precision) + "%"
	case model.UnitYears:
		return FormatDecimal(v, precision) + " yrs"
	default:
		return FormatDecimal(v, precision)
	}
}

func signed(v float64, f func(float64) string) string {
	if v < 0 {
		return "-" + f(-v)
	}
	return f(v)
}

// FormatDecimal rounds v to precision places and adds comma separators to
// the integer part.
// e.g., 1234567.891 with precision 2 -> "1,234,567.89"
func FormatDecimal(v float64, precision int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	if precision < 0 {
		precision = 0
	}
	s := decimal.NewFromFloat(v).StringFixed(int32(precision))
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return s
	}
	out := FormatNumber(n)
	if frac != "" {
		out += "." + frac
	}
	if neg && strings.Trim(out, "0.,") != "" {
		out = "-" + out
	}
	return out
}

// FormatCompact formats a magnitude with K/M/B suffixes for axis labels.
// e.g., 1234 -> "1.2K", 905418 -> "905.4K", 2.45 -> "2.45"
func FormatCompact(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", v/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	case abs >= 100:
		return fmt.Sprintf("%.0f", v)
	default:
		return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatGrowth formats a percentage change with an explicit sign.
// e.g., 1.43 -> "+1.4%"
func FormatGrowth(pct float64) string {
	if pct >= 0 {
		return fmt.Sprintf("+%.1f%%", pct)
	}
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDelta formats the difference between two values of unit with a sign.
func FormatDelta(current, previous float64, unit model.Unit, precision int) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatValue(delta, unit, precision)
	}
	return "-" + FormatValue(-delta, unit, precision)
}
