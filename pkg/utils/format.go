// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"math"
	"strings"
)

// CurrencySymbol is prefixed to formatted money values.
var CurrencySymbol = "$"

// FormatCurrency formats an amount with thousands separators and two decimals.
// Negative amounts render as "-$1,234.50".
func FormatCurrency(amount float64) string {
	negative := amount < 0
	str := Fixed2(math.Abs(amount))
	parts := strings.SplitN(str, ".", 2)

	result := CurrencySymbol + groupThousands(parts[0]) + "." + parts[1]
	if negative && str != "0.00" {
		result = "-" + result
	}
	return result
}

// groupThousands inserts a comma every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatPnL formats P&L with an explicit sign.
func FormatPnL(pnl float64) string {
	formatted := FormatCurrency(pnl)
	if Round2(pnl) > 0 {
		return "+" + formatted
	}
	return formatted
}

// FormatPercent formats a whole-number percentage ("67%").
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.0f%%", value)
}
