package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-journal/internal/models"
)

func dashboardTrades() []models.Trade {
	return []models.Trade{
		{ID: "1", Date: "2024-01-02", PnL: 100, RiskReward: 2, Status: models.StatusWin, Platform: []string{"FTMO Account", "Topstep XFA"}},
		{ID: "2", Date: "2024-01-03", PnL: -40, RiskReward: 1.5, Status: models.StatusLoss, Platform: []string{"FTMO Account"}},
		{ID: "3", Date: "2024-01-03", PnL: 0, Status: models.StatusBreakEven, Platform: []string{"Topstep XFA"}},
		{ID: "4", Date: "2024-01-04", PnL: 60, Status: models.StatusWin},
	}
}

func TestComputeStats(t *testing.T) {
	s := ComputeStats(dashboardTrades())

	assert.Equal(t, 120.0, s.TotalPnL)
	assert.Equal(t, 4, s.TotalTrades)
	assert.Equal(t, 2, s.WinCount)
	assert.Equal(t, 1, s.LossCount)
	assert.Equal(t, 1, s.BreakEvenCount)
	assert.Equal(t, 50.0, s.WinRate)
	assert.Equal(t, 80.0, s.AvgWin)
	assert.Equal(t, 1.75, s.AvgRR)
}

func TestComputeStats_Empty(t *testing.T) {
	assert.Equal(t, Stats{}, ComputeStats(nil))
}

func TestBuildDashboard_PlatformFilter(t *testing.T) {
	d := BuildDashboard(dashboardTrades(), "FTMO Account")

	assert.Equal(t, []string{"FTMO Account", "Topstep XFA"}, d.Platforms)
	assert.Equal(t, 2, d.Stats.TotalTrades)
	assert.Equal(t, 60.0, d.Stats.TotalPnL)
	assert.Equal(t, []OutcomeSlice{{Name: "Wins", Value: 1}, {Name: "Losses", Value: 1}}, d.Outcomes)
	require.Len(t, d.Equity, 3)
	assert.Equal(t, 60.0, d.Equity[2].Value)

	// Platform performance ignores the filter and double counts multi-tagged trades.
	require.Len(t, d.PlatformPerformance, 2)
	assert.Equal(t, PlatformPnL{Name: "Topstep XFA", PnL: 100}, d.PlatformPerformance[0])
	assert.Equal(t, PlatformPnL{Name: "FTMO Account", PnL: 60}, d.PlatformPerformance[1])
}

func TestFilterTrades(t *testing.T) {
	trades := []models.Trade{
		{ID: "a", Symbol: "XAUUSD", Date: "2024-01-01", Status: models.StatusWin, Setup: "MSS"},
		{ID: "b", Symbol: "EURUSD", Date: "2024-01-03", Status: models.StatusLoss, Setup: "MSS", Platform: []string{"FTMO Account"}},
		{ID: "c", Symbol: "XAUUSD", Date: "2024-01-02", Status: models.StatusWin, Setup: "B&R"},
	}

	all := FilterTrades(trades, models.TradeFilter{})
	assert.Equal(t, []string{"b", "c", "a"}, ids(all))
	assert.Equal(t, "a", trades[0].ID, "input order is untouched")

	assert.Equal(t, []string{"c", "a"}, ids(FilterTrades(trades, models.TradeFilter{Symbol: "XAUUSD"})))
	assert.Equal(t, []string{"b"}, ids(FilterTrades(trades, models.TradeFilter{Status: models.StatusLoss})))
	assert.Equal(t, []string{"c"}, ids(FilterTrades(trades, models.TradeFilter{Strategy: "B&R"})))
	assert.Equal(t, []string{"b"}, ids(FilterTrades(trades, models.TradeFilter{Platform: "FTMO Account"})))
}

func ids(trades []models.Trade) []string {
	out := make([]string, len(trades))
	for i, t := range trades {
		out[i] = t.ID
	}
	return out
}
