package analytics

import (
	"sort"

	"trade-journal/internal/models"
)

// FilterByPlatform returns the trades tagged with platform. An empty
// platform means no filter and returns the input unchanged.
func FilterByPlatform(trades []models.Trade, platform string) []models.Trade {
	if platform == "" {
		return trades
	}
	out := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		if t.HasPlatform(platform) {
			out = append(out, t)
		}
	}
	return out
}

// FilterTrades applies the trade-list filters and orders the result newest first.
// The input slice is not modified.
func FilterTrades(trades []models.Trade, f models.TradeFilter) []models.Trade {
	out := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		if f.Symbol != "" && t.Symbol != f.Symbol {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Strategy != "" && t.Setup != f.Strategy {
			continue
		}
		if f.Platform != "" && !t.HasPlatform(f.Platform) {
			continue
		}
		out = append(out, t)
	}
	SortByDateDesc(out)
	return out
}

// SortByDateDesc orders trades newest first, keeping insertion order within a day.
func SortByDateDesc(trades []models.Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		return dateLess(trades[j].Date, trades[i].Date)
	})
}

// SortByDateAsc orders trades oldest first, keeping insertion order within a day.
func SortByDateAsc(trades []models.Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		return dateLess(trades[i].Date, trades[j].Date)
	})
}
