package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-journal/internal/models"
)

func fixedID() string { return "trade-1" }

func TestCommit_LongWin(t *testing.T) {
	f := NewTradeForm(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), nil, 0)
	f.SetDirection(models.DirectionLong)
	f.SetQuantity("2")
	f.SetPrices("100", "110", "95")
	f.SetOutcome(models.OutcomeWin)

	tr := Commit(f, CommitOptions{NewID: fixedID})

	assert.Equal(t, 2.0, tr.RiskReward)
	assert.Equal(t, 110.0, tr.ExitPrice)
	assert.Equal(t, 20.0, tr.PnL)
	assert.Equal(t, 10.0, tr.Points)
	assert.Equal(t, models.StatusWin, tr.Status)
	assert.Equal(t, "trade-1", tr.ID)
	assert.Equal(t, "2024-03-05", tr.Date)
}

func TestCommit_ShortLoss(t *testing.T) {
	f := NewTradeForm(time.Now(), nil, 0)
	f.SetDirection(models.DirectionShort)
	f.SetPrices("2000", "1950", "2020")
	f.SetOutcome(models.OutcomeLoss)

	assert.Equal(t, "2.50", f.RiskReward)
	assert.Equal(t, "2020", f.ExitPrice)
	assert.Equal(t, "-20.00", f.RealizedPnL)
	assert.Equal(t, "-20.00", f.Points)

	tr := Commit(f, CommitOptions{NewID: fixedID})
	assert.Equal(t, -20.0, tr.PnL)
	assert.Equal(t, models.StatusLoss, tr.Status)
	assert.Equal(t, 1.0, tr.Quantity)
}

func TestDerive_RiskRewardNeedsAllPrices(t *testing.T) {
	f := NewTradeForm(time.Now(), nil, 0)
	f.SetPrices("100", "110", "")
	assert.Empty(t, f.RiskReward)

	f.SetStopLoss("95")
	assert.Equal(t, "2.00", f.RiskReward)

	// Stop equal to entry leaves the previous ratio in place.
	f.SetStopLoss("100")
	assert.Equal(t, "2.00", f.RiskReward)

	f.SetTakeProfit("abc")
	assert.Equal(t, "2.00", f.RiskReward)
}

func TestDerive_BreakevenUsesEntryAndKeepsPoints(t *testing.T) {
	f := NewTradeForm(time.Now(), nil, 0)
	f.SetDirection(models.DirectionLong)
	f.SetPrices("100", "110", "95")
	f.SetPoints("3")
	f.SetOutcome(models.OutcomeBreakeven)

	assert.Equal(t, "100", f.ExitPrice)
	assert.Equal(t, "0.00", f.RealizedPnL)
	assert.Equal(t, models.OutcomeBreakeven, f.Outcome)
	assert.Equal(t, "3", f.Points)
}

func TestDerive_ZeroPnLWithWinBecomesBreakeven(t *testing.T) {
	f := NewTradeForm(time.Now(), nil, 0)
	f.SetDirection(models.DirectionLong)
	f.SetPrices("100", "100", "95")
	f.SetOutcome(models.OutcomeWin)

	assert.Equal(t, "0.00", f.RealizedPnL)
	assert.Equal(t, models.OutcomeBreakeven, f.Outcome)
}

func TestDerive_ManualPnLDrivesOutcome(t *testing.T) {
	f := NewTradeForm(time.Now(), nil, 0)
	f.SetDirection(models.DirectionLong)
	f.SetPrices("100", "110", "95")
	f.SetOutcome(models.OutcomeWin)
	require.Equal(t, "10.00", f.RealizedPnL)

	f.SetRealizedPnL("-12.5")
	assert.Equal(t, "-12.5", f.RealizedPnL)
	assert.Equal(t, models.OutcomeLoss, f.Outcome)
	assert.Equal(t, "-5.00", f.Points)

	// A price edit recomputes P&L from the (now Loss) outcome.
	f.SetQuantity("3")
	assert.Equal(t, "-15.00", f.RealizedPnL)
}

func TestDerive_ZeroManualPnLWithoutOutcome(t *testing.T) {
	f := NewTradeForm(time.Now(), nil, 0)
	f.SetRealizedPnL("0")
	assert.Equal(t, models.OutcomeUnset, f.Outcome)
}

func TestDerive_NonNumericEntryLeavesPnL(t *testing.T) {
	f := NewTradeForm(time.Now(), nil, 0)
	f.SetDirection(models.DirectionLong)
	f.SetPrices("100", "110", "95")
	f.SetOutcome(models.OutcomeWin)
	f.SetEntryPrice("n/a")

	assert.Equal(t, "10.00", f.RealizedPnL)
	assert.Empty(t, f.ExitPrice)
}

func TestDerive_ClearingOutcomeStopsPnLStages(t *testing.T) {
	f := NewTradeForm(time.Now(), nil, 0)
	f.SetDirection(models.DirectionLong)
	f.SetPrices("100", "110", "95")
	f.SetOutcome(models.OutcomeWin)
	require.Equal(t, "10.00", f.RealizedPnL)

	f.SetOutcome(models.OutcomeUnset)
	assert.Equal(t, models.OutcomeUnset, f.Outcome)
	assert.Empty(t, f.ExitPrice)

	// Further price edits resolve nothing until an outcome is chosen again.
	f.SetQuantity("2")
	assert.Equal(t, models.OutcomeUnset, f.Outcome)
	assert.Equal(t, "10.00", f.RealizedPnL)

	f.SetOutcome(models.OutcomeLoss)
	assert.Equal(t, "95", f.ExitPrice)
	assert.Equal(t, "-10.00", f.RealizedPnL)
}

func TestDerive_NewFormDefaultsToLong(t *testing.T) {
	f := NewTradeForm(time.Now(), nil, 0)
	require.Equal(t, models.DirectionLong, f.Direction)

	f.SetPrices("100", "110", "95")
	f.SetOutcome(models.OutcomeWin)
	assert.Equal(t, "10.00", f.RealizedPnL)
	assert.Equal(t, models.OutcomeWin, f.Outcome)
	assert.Equal(t, "10.00", f.Points)
}

func TestCommit_UndirectedFormIsPricedAsLong(t *testing.T) {
	f := &TradeForm{EntryPrice: "100", TakeProfit: "110", StopLoss: "95", Quantity: "1"}
	f.SetOutcome(models.OutcomeWin)

	tr := Commit(f, CommitOptions{NewID: fixedID})
	assert.Equal(t, models.DirectionLong, tr.Direction)
	assert.Equal(t, 110.0, tr.ExitPrice)
	assert.Equal(t, 10.0, tr.PnL)
	assert.Equal(t, models.StatusWin, tr.Status)
}

func TestCommit_Defaults(t *testing.T) {
	f := &TradeForm{Quantity: "abc"}
	now := time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)
	active := &models.Strategy{Title: "Silver Bullet", IsActive: true}

	tr := Commit(f, CommitOptions{NewID: fixedID, Now: now, ActiveStrategy: active})

	assert.Equal(t, "UNKNOWN", tr.Symbol)
	assert.Equal(t, models.DirectionLong, tr.Direction)
	assert.Equal(t, 1.0, tr.Quantity)
	assert.Equal(t, 0.0, tr.EntryPrice)
	assert.Equal(t, models.StatusBreakEven, tr.Status)
	assert.Equal(t, "2024-01-02", tr.Date)
	assert.Equal(t, "Silver Bullet", tr.Setup)
	assert.NotNil(t, tr.Platform)
}

func TestCommit_WinWithoutTakeProfitIsReconciled(t *testing.T) {
	f := NewTradeForm(time.Now(), nil, 0)
	f.SetDirection(models.DirectionLong)
	f.SetEntryPrice("100")
	f.SetOutcome(models.OutcomeWin)

	tr := Commit(f, CommitOptions{NewID: fixedID})
	assert.Equal(t, 0.0, tr.PnL)
	assert.Equal(t, models.StatusBreakEven, tr.Status)
}

func TestCommit_EditKeepsChecklistScore(t *testing.T) {
	existing := models.Trade{
		ID: "t-9", Symbol: "XAUUSD", Date: "2024-02-01", Direction: models.DirectionLong,
		EntryPrice: 100, TakeProfit: 110, StopLoss: 95, Quantity: 1,
		PnL: 10, Status: models.StatusWin, ChecklistScore: 80, FollowedPlan: true,
	}
	f := FormFromTrade(existing)
	f.ChecklistScore = 10
	f.SetDescriptive(Descriptive{Date: f.Date, Instrument: f.Instrument, Notes: "edited"})

	tr := Commit(f, CommitOptions{Existing: &existing})
	assert.Equal(t, "t-9", tr.ID)
	assert.Equal(t, 80, tr.ChecklistScore)
	assert.True(t, tr.FollowedPlan)
	assert.Equal(t, "edited", tr.Notes)
	assert.Equal(t, 10.0, tr.PnL)
}

func TestFormFromTrade_KeepsStoredPnLUntilPriceChange(t *testing.T) {
	existing := models.Trade{
		ID: "t-1", Direction: models.DirectionLong, EntryPrice: 100, TakeProfit: 110, StopLoss: 95,
		Quantity: 1, PnL: 42, Status: models.StatusWin,
	}
	f := FormFromTrade(existing)
	assert.Equal(t, "42.00", f.RealizedPnL)
	assert.Equal(t, "110", f.ExitPrice)

	f.SetQuantity("2")
	assert.Equal(t, "20.00", f.RealizedPnL)
}

func TestFollowedPlan(t *testing.T) {
	assert.False(t, FollowedPlan(74))
	assert.True(t, FollowedPlan(75))
	assert.True(t, FollowedPlan(100))
}

func TestTradeInput_Apply(t *testing.T) {
	f := NewTradeForm(time.Now(), nil, 50)
	TradeInput{
		Instrument: Str("EURUSD"),
		Direction:  Str("short"),
		EntryPrice: Str("1.1000"),
		TakeProfit: Str("1.0950"),
		StopLoss:   Str("1.1020"),
		Quantity:   Str("1000"),
		Outcome:    Str("win"),
		Platforms:  &[]string{"FTMO Account", "", "FTMO Account"},
	}.Apply(f)

	assert.Equal(t, "EURUSD", f.Instrument)
	assert.Equal(t, models.DirectionShort, f.Direction)
	assert.Equal(t, "2.50", f.RiskReward)
	assert.Equal(t, "5.00", f.RealizedPnL)
	assert.Equal(t, models.OutcomeWin, f.Outcome)
	assert.Equal(t, []string{"FTMO Account"}, f.Platforms)
	assert.False(t, f.FollowedPlan())
}
