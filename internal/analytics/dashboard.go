package analytics

import (
	"sort"

	"trade-journal/internal/models"
	"trade-journal/pkg/utils"
)

// Stats holds the headline dashboard figures.
type Stats struct {
	TotalPnL       float64 `json:"totalPnL"`
	TotalTrades    int     `json:"totalTrades"`
	WinCount       int     `json:"winCount"`
	LossCount      int     `json:"lossCount"`
	BreakEvenCount int     `json:"breakEvenCount"`
	WinRate        float64 `json:"winRate"`
	AvgWin         float64 `json:"avgWin"`
	AvgRR          float64 `json:"avgRR"`
}

// OutcomeSlice is one non-empty slice of the outcome breakdown.
type OutcomeSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// PlatformPnL is the summed P&L of the trades tagged with one platform.
type PlatformPnL struct {
	Name string  `json:"name"`
	PnL  float64 `json:"pnl"`
}

// Dashboard is the overview screen. Stats, Outcomes and Equity honour the
// platform filter; Platforms and PlatformPerformance always cover every trade.
type Dashboard struct {
	Platform            string         `json:"platform,omitempty"`
	Platforms           []string       `json:"platforms"`
	Stats               Stats          `json:"stats"`
	Outcomes            []OutcomeSlice `json:"outcomes"`
	Equity              []EquityPoint  `json:"equity"`
	PlatformPerformance []PlatformPnL  `json:"platformPerformance"`
}

// BuildDashboard computes the dashboard for an optional platform filter.
func BuildDashboard(trades []models.Trade, platform string) Dashboard {
	filtered := FilterByPlatform(trades, platform)
	stats := ComputeStats(filtered)
	return Dashboard{
		Platform:            platform,
		Platforms:           AllPlatforms(trades),
		Stats:               stats,
		Outcomes:            OutcomeBreakdown(stats),
		Equity:              EquityCurve(filtered),
		PlatformPerformance: PlatformPerformance(trades),
	}
}

// ComputeStats aggregates the headline figures. Outcome counts follow the
// status field while the average win follows the P&L sign.
func ComputeStats(trades []models.Trade) Stats {
	var s Stats
	s.TotalTrades = len(trades)

	var winPnL, rrSum []float64
	pnls := make([]float64, 0, len(trades))
	for _, t := range trades {
		pnls = append(pnls, t.PnL)
		switch t.Status {
		case models.StatusWin:
			s.WinCount++
		case models.StatusLoss:
			s.LossCount++
		case models.StatusBreakEven:
			s.BreakEvenCount++
		}
		if t.PnL > 0 {
			winPnL = append(winPnL, t.PnL)
		}
		if t.RiskReward > 0 {
			rrSum = append(rrSum, t.RiskReward)
		}
	}

	s.TotalPnL = utils.Sum(pnls...)
	if s.TotalTrades > 0 {
		s.WinRate = float64(s.WinCount) / float64(s.TotalTrades) * 100
	}
	if len(winPnL) > 0 {
		s.AvgWin = utils.Sum(winPnL...) / float64(len(winPnL))
	}
	if len(rrSum) > 0 {
		s.AvgRR = utils.Sum(rrSum...) / float64(len(rrSum))
	}
	return s
}

// OutcomeBreakdown returns the Wins/Losses/Breakeven slices, dropping empty ones.
func OutcomeBreakdown(s Stats) []OutcomeSlice {
	all := []OutcomeSlice{
		{Name: "Wins", Value: s.WinCount},
		{Name: "Losses", Value: s.LossCount},
		{Name: "Breakeven", Value: s.BreakEvenCount},
	}
	out := make([]OutcomeSlice, 0, len(all))
	for _, o := range all {
		if o.Value > 0 {
			out = append(out, o)
		}
	}
	return out
}

// AllPlatforms returns every platform tag in use, sorted and de-duplicated.
func AllPlatforms(trades []models.Trade) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, t := range trades {
		for _, p := range t.Platform {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	sort.Strings(out)
	return out
}

// PlatformPerformance adds each trade's P&L to every platform it is tagged
// with, so the platform totals may exceed the overall total. Sorted by P&L
// descending.
func PlatformPerformance(trades []models.Trade) []PlatformPnL {
	totals := make(map[string]float64)
	for _, t := range trades {
		for _, p := range t.Platform {
			totals[p] = utils.Add(totals[p], t.PnL)
		}
	}
	out := make([]PlatformPnL, 0, len(totals))
	for name, pnl := range totals {
		out = append(out, PlatformPnL{Name: name, PnL: pnl})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PnL == out[j].PnL {
			return out[i].Name < out[j].Name
		}
		return out[i].PnL > out[j].PnL
	})
	return out
}
