package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseNumber parses a user-entered decimal. Surrounding whitespace and
// thousands separators are ignored. ok is false for empty or non-numeric
// input and for NaN/Inf.
func ParseNumber(s string) (v float64, ok bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseNumberOr parses s and falls back to def when s is not a usable number.
// Zero also falls back, matching how the journal treats blank quantities.
func ParseNumberOr(s string, def float64) float64 {
	v, ok := ParseNumber(s)
	if !ok || v == 0 {
		return def
	}
	return v
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Fixed2 formats v with exactly two decimals after rounding.
func Fixed2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Sum adds values with decimal arithmetic so that long P&L series do not drift.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	f, _ := total.Float64()
	return f
}

// Add returns a+b computed in decimal.
func Add(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).Float64()
	return f
}

// FormatNumber renders a stored price without trailing zeros ("100", "1.2345").
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
