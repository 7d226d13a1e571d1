package store

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-journal/internal/models"
)

func TestTradesCSV(t *testing.T) {
	trades := []models.Trade{{
		ID: "t1", Date: "2024-03-05", Symbol: "NASDAQ 100", Direction: models.DirectionShort,
		Platform: []string{"FTMO Account", "Topstep XFA"}, Setup: "Break & Retest",
		EntryPrice: 2000, TakeProfit: 1950, StopLoss: 2020, Quantity: 1, ExitPrice: 2020,
		RiskReward: 2.5, Points: -20, PnL: -20, Status: models.StatusLoss,
		ChecklistScore: 80, FollowedPlan: true, Notes: "chased, entry late",
		Screenshot: "data:image/png;base64,AAAA",
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteTradesCSV(&buf, trades))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "id,date,symbol,"))
	assert.Contains(t, out, "FTMO Account;Topstep XFA")
	assert.NotContains(t, out, "base64")

	back, err := ReadTradesCSV(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, back, 1)
	want := trades[0]
	want.Screenshot = ""
	want.Confluences = []string{}
	assert.Equal(t, want, back[0])
}

func TestReadTradesCSV_Defaults(t *testing.T) {
	in := "id,date,symbol,pnl\nx,2024-01-01,EURUSD,5\n"
	trades, err := ReadTradesCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, 1.0, trades[0].Quantity)
	assert.Equal(t, models.DirectionLong, trades[0].Direction)
	assert.Equal(t, []string{}, trades[0].Platform)
}
