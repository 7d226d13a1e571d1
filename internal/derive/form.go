// Package derive resolves the dependent financial fields of a trade form
// (risk/reward, P&L, outcome and points) and commits the form as a Trade.
package derive

import (
	"time"

	"trade-journal/internal/models"
	"trade-journal/pkg/utils"
)

// TradeForm is the in-progress trade being entered or edited.
//
// Price fields hold the raw text the user typed so that unparseable input can
// be kept as-is; derived fields hold two-decimal strings. Fields are updated
// through the Set* methods, each of which re-runs the derivation pass.
type TradeForm struct {
	ID          string           `json:"id"`
	Date        string           `json:"date"`
	Instrument  string           `json:"instrument"`
	Direction   models.Direction `json:"direction"`
	Session     string           `json:"session"`
	Timeframe   string           `json:"timeframe"`
	Platforms   []string         `json:"platforms"`
	Setup       string           `json:"setup"`
	Confluences []string         `json:"confluences"`
	Mindset     string           `json:"mindset"`
	Notes       string           `json:"notes"`
	Screenshot  string           `json:"screenshot,omitempty"`

	EntryPrice string         `json:"entryPrice"`
	TakeProfit string         `json:"takeProfit"`
	StopLoss   string         `json:"stopLoss"`
	Quantity   string         `json:"quantity"`
	Outcome    models.Outcome `json:"outcome"`

	RiskReward  string `json:"riskReward"`
	RealizedPnL string `json:"realizedPnL"`
	Points      string `json:"points"`
	ExitPrice   string `json:"exitPrice"`

	// ChecklistScore is carried from the checklist session (new trades) or
	// from the stored trade (edits). It is never edited through the form.
	ChecklistScore int `json:"checklistScore"`

	// pnlManual is set while RealizedPnL holds a typed value that the
	// price-driven P&L stage must not overwrite.
	pnlManual bool
}

// NewTradeForm returns a blank Long form dated today. When a strategy is
// active its title pre-fills the setup.
func NewTradeForm(today time.Time, active *models.Strategy, checklistScore int) *TradeForm {
	f := &TradeForm{
		Date:           utils.FormatDate(today),
		Direction:      models.DirectionLong,
		Quantity:       "1",
		ChecklistScore: checklistScore,
	}
	if active != nil {
		f.Setup = active.Title
	}
	return f
}

// FormFromTrade loads a committed trade for editing and re-derives it.
// The stored P&L is kept until a price-driving field changes.
func FormFromTrade(t models.Trade) *TradeForm {
	f := &TradeForm{
		ID:             t.ID,
		Date:           t.Date,
		Instrument:     t.Symbol,
		Direction:      t.Direction,
		Session:        t.Session,
		Timeframe:      t.Timeframe,
		Platforms:      append([]string(nil), t.Platform...),
		Setup:          t.Setup,
		Confluences:    append([]string(nil), t.Confluences...),
		Mindset:        t.Mindset,
		Notes:          t.Notes,
		Screenshot:     t.Screenshot,
		EntryPrice:     utils.FormatNumber(t.EntryPrice),
		TakeProfit:     optionalNumber(t.TakeProfit),
		StopLoss:       optionalNumber(t.StopLoss),
		Quantity:       utils.FormatNumber(t.Quantity),
		Outcome:        models.OutcomeFromStatus(t.Status),
		RiskReward:     optionalNumber(t.RiskReward),
		RealizedPnL:    utils.Fixed2(t.PnL),
		Points:         optionalNumber(t.Points),
		ChecklistScore: t.ChecklistScore,
		pnlManual:      true,
	}
	if t.Quantity == 0 {
		f.Quantity = "1"
	}
	f.derive(false)
	return f
}

func optionalNumber(v float64) string {
	if v == 0 {
		return ""
	}
	return utils.FormatNumber(v)
}

// SetEntryPrice updates the entry price.
func (f *TradeForm) SetEntryPrice(v string) {
	f.EntryPrice = v
	f.priceInputChanged()
}

// SetTakeProfit updates the take-profit level.
func (f *TradeForm) SetTakeProfit(v string) {
	f.TakeProfit = v
	f.priceInputChanged()
}

// SetStopLoss updates the stop-loss level.
func (f *TradeForm) SetStopLoss(v string) {
	f.StopLoss = v
	f.priceInputChanged()
}

// SetPrices updates entry, take-profit and stop-loss together.
func (f *TradeForm) SetPrices(entry, takeProfit, stopLoss string) {
	f.EntryPrice, f.TakeProfit, f.StopLoss = entry, takeProfit, stopLoss
	f.priceInputChanged()
}

// SetQuantity updates the position size.
func (f *TradeForm) SetQuantity(v string) {
	f.Quantity = v
	f.priceInputChanged()
}

// SetDirection updates the trade side.
func (f *TradeForm) SetDirection(d models.Direction) {
	f.Direction = d
	f.priceInputChanged()
}

// SetOutcome selects Win, Loss, Breakeven or clears the outcome.
func (f *TradeForm) SetOutcome(o models.Outcome) {
	f.Outcome = o
	f.priceInputChanged()
}

// SetRealizedPnL records a typed P&L. It drives the outcome but is not
// recomputed from prices until a price, quantity, direction or outcome changes.
func (f *TradeForm) SetRealizedPnL(v string) {
	f.RealizedPnL = v
	f.pnlManual = true
	f.derive(true)
}

// SetPoints records a typed points value. Win and Loss outcomes recompute it.
func (f *TradeForm) SetPoints(v string) {
	f.Points = v
	f.derive(false)
}

// Descriptive groups the free-text fields of the form.
type Descriptive struct {
	Date       string
	Instrument string
	Session    string
	Timeframe  string
	Setup      string
	Mindset    string
	Notes      string
}

// SetDescriptive replaces the descriptive fields. They take no part in derivation.
func (f *TradeForm) SetDescriptive(d Descriptive) {
	f.Date = d.Date
	f.Instrument = d.Instrument
	f.Session = d.Session
	f.Timeframe = d.Timeframe
	f.Setup = d.Setup
	f.Mindset = d.Mindset
	f.Notes = d.Notes
}

// SetPlatforms replaces the platform tags.
func (f *TradeForm) SetPlatforms(platforms []string) {
	f.Platforms = uniqueNonEmpty(platforms)
}

// SetConfluences replaces the confluence tags.
func (f *TradeForm) SetConfluences(confluences []string) {
	f.Confluences = uniqueNonEmpty(confluences)
}

// SetScreenshot attaches or clears (empty string) the screenshot blob.
func (f *TradeForm) SetScreenshot(blob string) {
	f.Screenshot = blob
}

// FollowedPlan reports the read-only "followed plan" assertion of the form.
func (f *TradeForm) FollowedPlan() bool {
	return FollowedPlan(f.ChecklistScore)
}

func (f *TradeForm) priceInputChanged() {
	f.pnlManual = false
	f.derive(false)
}

func uniqueNonEmpty(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
