package derive

import (
	"strings"

	"trade-journal/internal/models"
)

// TradeInput is a partial update to a form as received from the CLI or API.
// Nil fields are left unchanged.
type TradeInput struct {
	Date        *string   `json:"date,omitempty"`
	Instrument  *string   `json:"instrument,omitempty"`
	Direction   *string   `json:"direction,omitempty"`
	Session     *string   `json:"session,omitempty"`
	Timeframe   *string   `json:"timeframe,omitempty"`
	Platforms   *[]string `json:"platforms,omitempty"`
	Setup       *string   `json:"setup,omitempty"`
	Confluences *[]string `json:"confluences,omitempty"`
	Mindset     *string   `json:"mindset,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	Screenshot  *string   `json:"screenshot,omitempty"`
	EntryPrice  *string   `json:"entryPrice,omitempty"`
	TakeProfit  *string   `json:"takeProfit,omitempty"`
	StopLoss    *string   `json:"stopLoss,omitempty"`
	Quantity    *string   `json:"quantity,omitempty"`
	Outcome     *string   `json:"outcome,omitempty"`
	RealizedPnL *string   `json:"realizedPnL,omitempty"`
	Points      *string   `json:"points,omitempty"`
}

// Apply feeds the input through the form setters. Price-driving fields go
// first so that a typed P&L or points value is applied last and wins.
func (in TradeInput) Apply(f *TradeForm) {
	d := Descriptive{
		Date:       f.Date,
		Instrument: f.Instrument,
		Session:    f.Session,
		Timeframe:  f.Timeframe,
		Setup:      f.Setup,
		Mindset:    f.Mindset,
		Notes:      f.Notes,
	}
	set(&d.Date, in.Date)
	set(&d.Instrument, in.Instrument)
	set(&d.Session, in.Session)
	set(&d.Timeframe, in.Timeframe)
	set(&d.Setup, in.Setup)
	set(&d.Mindset, in.Mindset)
	set(&d.Notes, in.Notes)
	f.SetDescriptive(d)

	if in.Platforms != nil {
		f.SetPlatforms(*in.Platforms)
	}
	if in.Confluences != nil {
		f.SetConfluences(*in.Confluences)
	}
	if in.Screenshot != nil {
		f.SetScreenshot(*in.Screenshot)
	}

	if in.Direction != nil {
		f.SetDirection(models.ParseDirection(*in.Direction))
	}
	if in.Quantity != nil {
		f.SetQuantity(strings.TrimSpace(*in.Quantity))
	}
	if in.EntryPrice != nil || in.TakeProfit != nil || in.StopLoss != nil {
		entry, tp, sl := f.EntryPrice, f.TakeProfit, f.StopLoss
		set(&entry, in.EntryPrice)
		set(&tp, in.TakeProfit)
		set(&sl, in.StopLoss)
		f.SetPrices(strings.TrimSpace(entry), strings.TrimSpace(tp), strings.TrimSpace(sl))
	}
	if in.Outcome != nil {
		f.SetOutcome(models.ParseOutcome(*in.Outcome))
	}
	if in.RealizedPnL != nil {
		f.SetRealizedPnL(strings.TrimSpace(*in.RealizedPnL))
	}
	if in.Points != nil {
		f.SetPoints(strings.TrimSpace(*in.Points))
	}
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Str returns a pointer to s, for building a TradeInput literal.
func Str(s string) *string {
	return &s
}
