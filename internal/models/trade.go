package models

// Trade represents one journaled trading decision.
type Trade struct {
	ID          string      `json:"id" csv:"id"`
	Symbol      string      `json:"symbol" csv:"symbol"`
	Date        string      `json:"date" csv:"date"`
	Direction   Direction   `json:"direction" csv:"direction"`
	Session     string      `json:"session" csv:"session"`
	Timeframe   string      `json:"timeframe" csv:"timeframe"`
	Platform    []string    `json:"platform" csv:"-"`
	Setup       string      `json:"setup" csv:"setup"`
	Confluences []string    `json:"confluences" csv:"-"`
	Mindset     string      `json:"mindset" csv:"mindset"`
	Notes       string      `json:"notes" csv:"notes"`
	Screenshot  string      `json:"screenshot,omitempty" csv:"-"`
	EntryPrice  float64     `json:"entryPrice" csv:"entry_price"`
	TakeProfit  float64     `json:"takeProfit" csv:"take_profit"`
	StopLoss    float64     `json:"stopLoss" csv:"stop_loss"`
	Quantity    float64     `json:"quantity" csv:"quantity"`
	ExitPrice   float64     `json:"exitPrice" csv:"exit_price"`
	RiskReward  float64     `json:"riskReward" csv:"risk_reward"`
	Points      float64     `json:"points" csv:"points"`
	PnL         float64     `json:"pnl" csv:"pnl"`
	Status      TradeStatus `json:"status" csv:"status"`

	// ChecklistScore is captured at save time and never edited afterwards.
	ChecklistScore int  `json:"checklistScore" csv:"checklist_score"`
	FollowedPlan   bool `json:"followedPlan" csv:"followed_plan"`
}

// WithDefaults fills the fields an older or partial record may lack:
// quantity 1, Long, BREAK_EVEN and empty tag sets.
func (t Trade) WithDefaults() Trade {
	if t.Quantity == 0 {
		t.Quantity = 1
	}
	if t.Direction == "" {
		t.Direction = DirectionLong
	}
	if t.Status == "" {
		t.Status = StatusBreakEven
	}
	if t.Platform == nil {
		t.Platform = []string{}
	}
	if t.Confluences == nil {
		t.Confluences = []string{}
	}
	return t
}

// HasPlatform reports whether the trade is tagged with the given platform.
func (t Trade) HasPlatform(platform string) bool {
	for _, p := range t.Platform {
		if p == platform {
			return true
		}
	}
	return false
}

// TradeFilter represents the trade-list filters. Empty fields match everything.
type TradeFilter struct {
	Symbol   string
	Status   TradeStatus
	Strategy string
	Platform string
}
