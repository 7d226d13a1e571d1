package cli

import (
	"strings"
	"time"

	"trade-journal/pkg/utils"
)

// dateFormat is the table date layout, from ui.date_format.
var dateFormat = "02 Jan 2006"

// FormatDate renders a stored YYYY-MM-DD date for display. Unparseable
// dates are shown as stored.
func FormatDate(s string) string {
	t, ok := utils.ParseDate(s)
	if !ok {
		return s
	}
	return t.Format(dateFormat)
}

// FormatMonth renders a month heading ("March 2024").
func FormatMonth(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}

// FormatPrice formats a price, or "-" when unset.
func FormatPrice(price float64) string {
	if price == 0 {
		return "-"
	}
	return utils.FormatNumber(price)
}

// FormatRiskReward formats a reward-to-risk ratio as "1:2.00", or "-" when unset.
func FormatRiskReward(rr float64) string {
	if rr <= 0 {
		return "-"
	}
	return "1:" + utils.Fixed2(rr)
}

// FormatList joins tags for a table cell.
func FormatList(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}

// TruncateString truncates a string to max length with ellipsis.
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// PadRight pads a string to the right.
func PadRight(s string, length int) string {
	if n := displayWidth(s); n < length {
		return s + strings.Repeat(" ", length-n)
	}
	return s
}

// PadLeft pads a string to the left.
func PadLeft(s string, length int) string {
	if n := displayWidth(s); n < length {
		return strings.Repeat(" ", length-n) + s
	}
	return s
}
