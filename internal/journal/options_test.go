package journal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-journal/internal/errors"
	"trade-journal/internal/models"
	"trade-journal/internal/store"
)

func TestAddOption(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	s := newTestSession(t, kv)

	o, err := s.AddOption(ctx, models.OptionInstruments, "  BTCUSD ")
	require.NoError(t, err)
	assert.Equal(t, "BTCUSD", o.Instruments[len(o.Instruments)-1])

	again, err := s.AddOption(ctx, models.OptionInstruments, "BTCUSD")
	require.NoError(t, err)
	assert.Equal(t, len(o.Instruments), len(again.Instruments))

	_, err = s.AddOption(ctx, models.OptionInstruments, "   ")
	assert.ErrorIs(t, err, errors.ErrInputValidation)

	_, err = s.AddOption(ctx, "", "x")
	assert.ErrorIs(t, err, errors.ErrInvalidOption)

	restored := newTestSession(t, kv)
	assert.Contains(t, restored.FormOptions().Instruments, "BTCUSD")
}

func TestRemoveOption(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, nil)

	_, err := s.RemoveOption(ctx, models.OptionSessions, "Tokyo", Confirmed(false))
	assert.ErrorIs(t, err, errors.ErrNotConfirmed)
	assert.Contains(t, s.FormOptions().Sessions, "Tokyo")

	o, err := s.RemoveOption(ctx, models.OptionSessions, "Tokyo", Confirmed(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"London", "New York"}, o.Sessions)

	_, err = s.RemoveOption(ctx, models.OptionSessions, "Tokyo", Confirmed(true))
	assert.ErrorIs(t, err, errors.ErrInvalidOption)
}

func TestFormOptions_IsACopy(t *testing.T) {
	s := newTestSession(t, nil)
	o := s.FormOptions()
	o.Platforms[0] = "changed"
	assert.NotEqual(t, "changed", s.FormOptions().Platforms[0])
}

func TestRemoveOption_EmptiedListSurvivesRestore(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	s := newTestSession(t, kv)

	for _, v := range models.DefaultFormOptions().Sessions {
		_, err := s.RemoveOption(ctx, models.OptionSessions, v, Confirmed(true))
		require.NoError(t, err)
	}
	assert.Empty(t, s.FormOptions().Sessions)

	restored := newTestSession(t, kv)
	assert.Equal(t, []string{}, restored.FormOptions().Sessions)
	assert.Equal(t, models.DefaultFormOptions().Timeframes, restored.FormOptions().Timeframes)
}
