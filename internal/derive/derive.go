package derive

import (
	"math"

	"trade-journal/internal/models"
	"trade-journal/pkg/utils"
)

// prices holds the parsed numeric inputs of one derivation pass.
type prices struct {
	entry, tp, sl       float64
	entryOK, tpOK, slOK bool
}

func (f *TradeForm) parsePrices() prices {
	var p prices
	p.entry, p.entryOK = utils.ParseNumber(f.EntryPrice)
	p.tp, p.tpOK = utils.ParseNumber(f.TakeProfit)
	p.sl, p.slOK = utils.ParseNumber(f.StopLoss)
	return p
}

// derive runs the stages once, in order. Later stages read the results of
// earlier ones; no stage is re-entered within a pass. The outcome is only
// back-derived when the P&L was set in this pass, either typed (pnlTyped) or
// recomputed from the resolved exit.
func (f *TradeForm) derive(pnlTyped bool) {
	p := f.parsePrices()
	f.deriveRiskReward(p)
	exit, exitOK := f.resolveExit(p)
	pnlSet := pnlTyped
	if !f.pnlManual && exitOK {
		f.RealizedPnL = utils.Fixed2(PnL(f.Direction, p.entry, exit, utils.ParseNumberOr(f.Quantity, 1)))
		pnlSet = true
	}
	if pnlSet {
		f.deriveOutcome()
	}
	f.derivePoints(p)
}

// deriveRiskReward sets the reward-to-risk ratio when entry, take-profit and
// stop-loss are all non-zero and the stop differs from the entry. Otherwise
// the previous value is left alone.
func (f *TradeForm) deriveRiskReward(p prices) {
	if !p.entryOK || !p.tpOK || !p.slOK {
		return
	}
	if p.entry == 0 || p.tp == 0 || p.sl == 0 || p.entry == p.sl {
		return
	}
	f.RiskReward = utils.Fixed2(RiskReward(p.entry, p.tp, p.sl))
}

// resolveExit picks the exit price implied by the outcome.
func (f *TradeForm) resolveExit(p prices) (float64, bool) {
	if !p.entryOK || f.Outcome == models.OutcomeUnset {
		f.ExitPrice = ""
		return 0, false
	}
	var exit float64
	switch f.Outcome {
	case models.OutcomeWin:
		if !p.tpOK {
			f.ExitPrice = ""
			return 0, false
		}
		exit = p.tp
	case models.OutcomeLoss:
		if !p.slOK {
			f.ExitPrice = ""
			return 0, false
		}
		exit = p.sl
	default:
		exit = p.entry
	}
	f.ExitPrice = utils.FormatNumber(exit)
	return exit, true
}

// deriveOutcome back-derives the outcome from the sign of the P&L. A zero P&L
// only moves an already chosen outcome to Breakeven.
func (f *TradeForm) deriveOutcome() {
	pnl, ok := utils.ParseNumber(f.RealizedPnL)
	if !ok {
		return
	}
	switch {
	case pnl > 0:
		f.Outcome = models.OutcomeWin
	case pnl < 0:
		f.Outcome = models.OutcomeLoss
	case f.Outcome != models.OutcomeUnset:
		f.Outcome = models.OutcomeBreakeven
	}
}

// derivePoints sets the signed price distance travelled for Win and Loss.
// Breakeven and unset outcomes keep the previous value.
func (f *TradeForm) derivePoints(p prices) {
	if !p.entryOK || f.Direction == "" {
		return
	}
	switch f.Outcome {
	case models.OutcomeWin:
		if p.tpOK {
			f.Points = utils.Fixed2(Points(f.Direction, p.entry, p.tp))
		}
	case models.OutcomeLoss:
		if p.slOK {
			f.Points = utils.Fixed2(Points(f.Direction, p.entry, p.sl))
		}
	}
}

// RiskReward returns |(tp-entry)/(entry-sl)|. The caller guarantees entry != sl.
func RiskReward(entry, takeProfit, stopLoss float64) float64 {
	return math.Abs((takeProfit - entry) / (entry - stopLoss))
}

// PnL returns the profit of a position closed at exit. Any direction other
// than Short is priced as Long, the side an undirected trade commits as.
func PnL(d models.Direction, entry, exit, qty float64) float64 {
	if d == models.DirectionShort {
		return (entry - exit) * qty
	}
	return (exit - entry) * qty
}

// Points returns the signed distance from entry to exit in the trade's favour.
func Points(d models.Direction, entry, exit float64) float64 {
	if d == models.DirectionShort {
		return entry - exit
	}
	return exit - entry
}
