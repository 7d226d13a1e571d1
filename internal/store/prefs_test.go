package store

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-journal/internal/models"
)

func TestPrefs_UserRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := NewPrefs(NewMemoryStore(), zerolog.Nop())

	assert.Nil(t, p.LoadUser(ctx))
	assert.False(t, p.HasUser(ctx))

	require.NoError(t, p.SaveUser(ctx, models.User{Email: "sam@example.com", Name: "sam"}))
	u := p.LoadUser(ctx)
	require.NotNil(t, u)
	assert.Equal(t, "sam", u.Name)
	assert.True(t, p.HasUser(ctx))

	require.NoError(t, p.ForgetUser(ctx))
	assert.Nil(t, p.LoadUser(ctx))
}

func TestPrefs_CorruptUserIsRemovedAndLogged(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	require.NoError(t, kv.Set(ctx, KeyUser, "{not json"))

	var buf bytes.Buffer
	p := NewPrefs(kv, zerolog.New(&buf))

	assert.Nil(t, p.LoadUser(ctx))
	_, ok, _ := kv.Get(ctx, KeyUser)
	assert.False(t, ok)
	assert.Contains(t, buf.String(), KeyUser)
}

func TestPrefs_CorruptOptionsFallBackToDefaults(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	require.NoError(t, kv.Set(ctx, KeyOptions, "[1,2"))

	var buf bytes.Buffer
	p := NewPrefs(kv, zerolog.New(&buf))

	assert.Equal(t, models.DefaultFormOptions(), p.LoadOptions(ctx))
	assert.Contains(t, buf.String(), "persistence")
}

func TestPrefs_Snapshot(t *testing.T) {
	ctx := context.Background()
	p := NewPrefs(NewMemoryStore(), zerolog.Nop())

	_, ok := p.LoadSnapshot(ctx)
	assert.False(t, ok)

	snap := Snapshot{
		Trades: []models.Trade{{
			ID: "t1", Symbol: "XAUUSD", Direction: models.DirectionShort, Quantity: 2,
			Platform: []string{"FTMO Account"}, Confluences: []string{},
			PnL: 12.5, Status: models.StatusWin,
		}},
		Strategies: []models.Strategy{{ID: "s1", Title: "Break & Retest", IsActive: true}},
	}
	require.NoError(t, p.SaveSnapshot(ctx, snap))
	require.NoError(t, p.SaveChecklist(ctx, []models.ChecklistItem{{ID: "auto-0", IsChecked: true}}))

	got, ok := p.LoadSnapshot(ctx)
	require.True(t, ok)
	assert.Equal(t, snap, got)

	require.NoError(t, p.ClearSnapshot(ctx))
	_, ok = p.LoadSnapshot(ctx)
	assert.False(t, ok)
	_, ok = p.LoadChecklist(ctx)
	assert.False(t, ok)
}

func TestPrefs_PartialOptionsGetDefaultsPerList(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	require.NoError(t, kv.Set(ctx, KeyOptions, `{"platforms":["Mine"],"timeframes":[]}`))
	p := NewPrefs(kv, zerolog.Nop())

	got := p.LoadOptions(ctx)
	defaults := models.DefaultFormOptions()
	assert.Equal(t, []string{"Mine"}, got.Platforms)
	assert.Equal(t, []string{}, got.Timeframes)
	assert.Equal(t, defaults.Sessions, got.Sessions)
	assert.Equal(t, defaults.Instruments, got.Instruments)
}

func TestPrefs_PartialTradeRecordGetsDefaults(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	require.NoError(t, kv.Set(ctx, KeyTrades, `[{"id":"t1","symbol":"EURUSD","date":"2024-03-01","pnl":5}]`))
	p := NewPrefs(kv, zerolog.Nop())

	snap, ok := p.LoadSnapshot(ctx)
	require.True(t, ok)
	require.Len(t, snap.Trades, 1)
	tr := snap.Trades[0]
	assert.Equal(t, 1.0, tr.Quantity)
	assert.Equal(t, []string{}, tr.Platform)
	assert.Equal(t, []string{}, tr.Confluences)
	assert.Equal(t, models.DirectionLong, tr.Direction)
	assert.Equal(t, models.StatusBreakEven, tr.Status)
	assert.Equal(t, 5.0, tr.PnL)
}
