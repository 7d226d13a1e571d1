package analytics

import (
	"fmt"
	"math"
	"sort"

	"trade-journal/internal/models"
	"trade-journal/pkg/utils"
)

// StrategyStats summarises the trades attributed to one strategy.
type StrategyStats struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Count    int     `json:"count"`
	Wins     int     `json:"wins"`
	TotalPnL float64 `json:"totalPnL"`
	AvgPnL   float64 `json:"avgPnL"`
	WinRate  float64 `json:"winRate"`
}

// StrategyPoint is one point of the per-strategy cumulative curve. Values
// maps strategy title to its running P&L at that point.
type StrategyPoint struct {
	Date   string             `json:"date"`
	Values map[string]float64 `json:"values"`
}

// TradesFor returns the trades attributed to s, in input order.
func TradesFor(s models.Strategy, trades []models.Trade) []models.Trade {
	var out []models.Trade
	for _, t := range trades {
		if s.Owns(t) {
			out = append(out, t)
		}
	}
	return out
}

// StrategyPerformance computes stats for every strategy with at least one
// trade, sorted by total P&L descending. Trades whose setup matches no
// strategy title are ignored.
func StrategyPerformance(strategies []models.Strategy, trades []models.Trade) []StrategyStats {
	out := make([]StrategyStats, 0, len(strategies))
	for _, s := range strategies {
		owned := TradesFor(s, trades)
		if len(owned) == 0 {
			continue
		}
		st := StrategyStats{ID: s.ID, Title: s.Title, Count: len(owned)}
		pnls := make([]float64, 0, len(owned))
		for _, t := range owned {
			pnls = append(pnls, t.PnL)
			if t.Status == models.StatusWin {
				st.Wins++
			}
		}
		st.TotalPnL = utils.Sum(pnls...)
		st.AvgPnL = st.TotalPnL / float64(st.Count)
		st.WinRate = float64(st.Wins) / float64(st.Count) * 100
		out = append(out, st)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalPnL > out[j].TotalPnL })
	return out
}

// WinRateLabel renders a strategy's win rate as "N%", "0%" when it has no trades.
func WinRateLabel(s models.Strategy, trades []models.Trade) string {
	owned := TradesFor(s, trades)
	if len(owned) == 0 {
		return "0%"
	}
	wins := 0
	for _, t := range owned {
		if t.Status == models.StatusWin {
			wins++
		}
	}
	return fmt.Sprintf("%d%%", int(math.Round(float64(wins)/float64(len(owned))*100)))
}

// WithWinRates returns a copy of strategies with WinRate filled in.
func WithWinRates(strategies []models.Strategy, trades []models.Trade) []models.Strategy {
	out := make([]models.Strategy, len(strategies))
	for i, s := range strategies {
		s.WinRate = WinRateLabel(s, trades)
		out[i] = s
	}
	return out
}

// SortActiveFirst returns a copy with the active strategy first and the
// others in their original order.
func SortActiveFirst(strategies []models.Strategy) []models.Strategy {
	out := append([]models.Strategy(nil), strategies...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].IsActive && !out[j].IsActive
	})
	return out
}

// StrategyCurve builds the running P&L of every strategy that has trades.
// It starts with a Start point where every strategy is 0 and adds one point
// per trade in chronological order, snapshotting all running totals.
func StrategyCurve(strategies []models.Strategy, trades []models.Trade) []StrategyPoint {
	var tracked []models.Strategy
	for _, s := range strategies {
		if len(TradesFor(s, trades)) > 0 {
			tracked = append(tracked, s)
		}
	}
	if len(tracked) == 0 {
		return []StrategyPoint{}
	}

	running := make(map[string]float64, len(tracked))
	for _, s := range tracked {
		running[s.Title] = 0
	}

	relevant := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		if _, ok := running[t.Setup]; ok {
			relevant = append(relevant, t)
		}
	}
	SortByDateAsc(relevant)

	points := make([]StrategyPoint, 0, len(relevant)+1)
	points = append(points, StrategyPoint{Date: StartLabel, Values: snapshot(running)})
	for _, t := range relevant {
		running[t.Setup] = utils.Add(running[t.Setup], t.PnL)
		points = append(points, StrategyPoint{Date: t.Date, Values: snapshot(running)})
	}
	return points
}

func snapshot(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
