package derive

import (
	"time"

	"trade-journal/internal/models"
	"trade-journal/pkg/utils"
)

// PlanThreshold is the checklist score at or above which a trade counts as
// having followed the plan.
const PlanThreshold = 75

// FollowedPlan reports whether a checklist score meets PlanThreshold.
func FollowedPlan(score int) bool {
	return score >= PlanThreshold
}

// CommitOptions carries the inputs a commit needs from outside the form.
type CommitOptions struct {
	// Existing is the stored trade being edited, or nil for a new trade.
	Existing *models.Trade
	// ActiveStrategy pre-fills an empty setup on new trades.
	ActiveStrategy *models.Strategy
	// Now stamps new trades with no date. Zero means time.Now.
	Now time.Time
	// NewID generates ids for new trades. Nil means utils.NewID.
	NewID func() string
}

// Commit converts the form into a committed Trade. Derived fields are taken
// as the setters left them; missing fields fall back on defaults and the
// status is made to agree with the sign of the committed P&L.
func Commit(f *TradeForm, opts CommitOptions) models.Trade {
	t := models.Trade{
		ID:          f.ID,
		Date:        f.Date,
		Symbol:      f.Instrument,
		Direction:   f.Direction,
		Session:     f.Session,
		Timeframe:   f.Timeframe,
		Platform:    append([]string{}, f.Platforms...),
		Setup:       f.Setup,
		Confluences: append([]string{}, f.Confluences...),
		Mindset:     f.Mindset,
		Notes:       f.Notes,
		Screenshot:  f.Screenshot,
		EntryPrice:  utils.ParseNumberOr(f.EntryPrice, 0),
		TakeProfit:  utils.ParseNumberOr(f.TakeProfit, 0),
		StopLoss:    utils.ParseNumberOr(f.StopLoss, 0),
		Quantity:    utils.ParseNumberOr(f.Quantity, 1),
		ExitPrice:   utils.ParseNumberOr(f.ExitPrice, 0),
		RiskReward:  utils.ParseNumberOr(f.RiskReward, 0),
		Points:      utils.ParseNumberOr(f.Points, 0),
		PnL:         utils.ParseNumberOr(f.RealizedPnL, 0),
		Status:      f.Outcome.Status(),
	}

	if t.ID == "" {
		newID := opts.NewID
		if newID == nil {
			newID = utils.NewID
		}
		t.ID = newID()
	}
	if t.Symbol == "" {
		t.Symbol = "UNKNOWN"
	}
	if t.Direction != models.DirectionShort {
		t.Direction = models.DirectionLong
	}
	if t.Date == "" {
		now := opts.Now
		if now.IsZero() {
			now = time.Now()
		}
		t.Date = utils.FormatDate(now)
	}

	if opts.Existing != nil {
		t.ChecklistScore = opts.Existing.ChecklistScore
	} else {
		t.ChecklistScore = f.ChecklistScore
		if t.Setup == "" && opts.ActiveStrategy != nil {
			t.Setup = opts.ActiveStrategy.Title
		}
	}
	t.FollowedPlan = FollowedPlan(t.ChecklistScore)
	t.Status = reconcileStatus(t.Status, t.PnL)
	return t
}

// reconcileStatus forces the status to follow the sign of the P&L. It only
// changes anything when no P&L could be derived for a chosen outcome.
func reconcileStatus(s models.TradeStatus, pnl float64) models.TradeStatus {
	switch {
	case pnl > 0:
		return models.StatusWin
	case pnl < 0:
		return models.StatusLoss
	case s == models.StatusOpen:
		return s
	default:
		return models.StatusBreakEven
	}
}
