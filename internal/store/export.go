package store

import (
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"trade-journal/internal/models"
)

// listSep joins multi-valued fields inside one CSV cell.
const listSep = ";"

// tradeRow is the CSV shape of a trade. Multi-valued fields are flattened.
type tradeRow struct {
	ID             string  `csv:"id"`
	Date           string  `csv:"date"`
	Symbol         string  `csv:"symbol"`
	Direction      string  `csv:"direction"`
	Session        string  `csv:"session"`
	Timeframe      string  `csv:"timeframe"`
	Platform       string  `csv:"platform"`
	Setup          string  `csv:"setup"`
	Confluences    string  `csv:"confluences"`
	Mindset        string  `csv:"mindset"`
	EntryPrice     float64 `csv:"entry_price"`
	TakeProfit     float64 `csv:"take_profit"`
	StopLoss       float64 `csv:"stop_loss"`
	Quantity       float64 `csv:"quantity"`
	ExitPrice      float64 `csv:"exit_price"`
	RiskReward     float64 `csv:"risk_reward"`
	Points         float64 `csv:"points"`
	PnL            float64 `csv:"pnl"`
	Status         string  `csv:"status"`
	ChecklistScore int     `csv:"checklist_score"`
	FollowedPlan   bool    `csv:"followed_plan"`
	Notes          string  `csv:"notes"`
}

// WriteTradesCSV writes trades as CSV with a header row. Screenshots are omitted.
func WriteTradesCSV(w io.Writer, trades []models.Trade) error {
	rows := make([]*tradeRow, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, &tradeRow{
			ID:             t.ID,
			Date:           t.Date,
			Symbol:         t.Symbol,
			Direction:      string(t.Direction),
			Session:        t.Session,
			Timeframe:      t.Timeframe,
			Platform:       strings.Join(t.Platform, listSep),
			Setup:          t.Setup,
			Confluences:    strings.Join(t.Confluences, listSep),
			Mindset:        t.Mindset,
			EntryPrice:     t.EntryPrice,
			TakeProfit:     t.TakeProfit,
			StopLoss:       t.StopLoss,
			Quantity:       t.Quantity,
			ExitPrice:      t.ExitPrice,
			RiskReward:     t.RiskReward,
			Points:         t.Points,
			PnL:            t.PnL,
			Status:         string(t.Status),
			ChecklistScore: t.ChecklistScore,
			FollowedPlan:   t.FollowedPlan,
			Notes:          t.Notes,
		})
	}
	return gocsv.Marshal(rows, w)
}

// ReadTradesCSV parses a file written by WriteTradesCSV. Missing quantity
// defaults to 1 and missing platform to the empty set.
func ReadTradesCSV(r io.Reader) ([]models.Trade, error) {
	var rows []*tradeRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, err
	}
	trades := make([]models.Trade, 0, len(rows))
	for _, row := range rows {
		t := models.Trade{
			ID:             row.ID,
			Date:           row.Date,
			Symbol:         row.Symbol,
			Direction:      models.ParseDirection(row.Direction),
			Session:        row.Session,
			Timeframe:      row.Timeframe,
			Platform:       splitList(row.Platform),
			Setup:          row.Setup,
			Confluences:    splitList(row.Confluences),
			Mindset:        row.Mindset,
			EntryPrice:     row.EntryPrice,
			TakeProfit:     row.TakeProfit,
			StopLoss:       row.StopLoss,
			Quantity:       row.Quantity,
			ExitPrice:      row.ExitPrice,
			RiskReward:     row.RiskReward,
			Points:         row.Points,
			PnL:            row.PnL,
			Status:         models.ParseStatus(row.Status),
			ChecklistScore: row.ChecklistScore,
			FollowedPlan:   row.FollowedPlan,
			Notes:          row.Notes,
		}
		trades = append(trades, t.WithDefaults())
	}
	return trades, nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, listSep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
