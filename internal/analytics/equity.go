package analytics

import (
	"sort"

	"trade-journal/internal/models"
	"trade-journal/pkg/utils"
)

// StartLabel names the zero anchor that precedes the first real point of a curve.
const StartLabel = "Start"

// EquityPoint is one point of the cumulative P&L curve.
type EquityPoint struct {
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	DailyPnL float64 `json:"dailyPnL"`
}

// EquityCurve groups trades by date string, orders the dates chronologically
// and accumulates their P&L. A Start point of 0 is prepended when there is
// at least one trade; an empty input yields an empty curve.
func EquityCurve(trades []models.Trade) []EquityPoint {
	daily := make(map[string]float64)
	for _, t := range trades {
		daily[t.Date] = utils.Add(daily[t.Date], t.PnL)
	}
	if len(daily) == 0 {
		return []EquityPoint{}
	}

	dates := make([]string, 0, len(daily))
	for d := range daily {
		dates = append(dates, d)
	}
	sortDates(dates)

	curve := make([]EquityPoint, 0, len(dates)+1)
	curve = append(curve, EquityPoint{Name: StartLabel})
	cumulative := 0.0
	for _, d := range dates {
		cumulative = utils.Add(cumulative, daily[d])
		curve = append(curve, EquityPoint{
			Name:     d,
			Value:    utils.Round2(cumulative),
			DailyPnL: daily[d],
		})
	}
	return curve
}

// sortDates orders date strings by the calendar day they denote. Strings
// that do not parse sort after all valid dates, lexicographically.
func sortDates(dates []string) {
	sort.SliceStable(dates, func(i, j int) bool {
		return dateLess(dates[i], dates[j])
	})
}

func dateLess(a, b string) bool {
	ta, okA := utils.ParseDate(a)
	tb, okB := utils.ParseDate(b)
	switch {
	case okA && okB:
		if ta.Equal(tb) {
			return a < b
		}
		return ta.Before(tb)
	case okA:
		return true
	case okB:
		return false
	default:
		return a < b
	}
}
