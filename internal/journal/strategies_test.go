package journal

import (
	"context"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-journal/internal/errors"
	"trade-journal/internal/models"
)

func countActive(strategies []models.Strategy) int {
	n := 0
	for _, st := range strategies {
		if st.IsActive {
			n++
		}
	}
	return n
}

func TestSetActiveStrategy_RegeneratesChecklist(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, nil)

	require.NoError(t, s.SetActiveStrategy(ctx, "2"))

	assert.Equal(t, 1, countActive(s.RawStrategies()))
	active, _ := s.ActiveStrategy()
	assert.Equal(t, "Break & Retest", active.Title)
	items := s.Checklist()
	require.Len(t, items, active.Rules.Count())
	assert.Equal(t, active.Rules.Analysis[0], items[0].Label)
	assert.Equal(t, "Risk Management", items[len(items)-1].Group)
	assert.Equal(t, "2", s.Strategies()[0].ID)
}

func TestSetActiveStrategy_UnknownID(t *testing.T) {
	s := newTestSession(t, nil)
	err := s.SetActiveStrategy(context.Background(), "missing")
	assert.ErrorIs(t, err, errors.ErrStrategyNotFound)
	active, _ := s.ActiveStrategy()
	assert.Equal(t, "1", active.ID)
}

// TestProperty_SingleActiveStrategy verifies that after any sequence of
// activations over a catalog starting with zero or one active strategy,
// exactly one strategy is active and it is the last one activated.
func TestProperty_SingleActiveStrategy(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("exactly one active after activation", prop.ForAll(
		func(extra int, picks []int, seeded bool) bool {
			ctx := context.Background()
			s := newTestSession(t, nil)
			if !seeded {
				s.strategies = nil
				s.checklist = s.checklistFor(nil)
			}
			for i := 0; i < extra; i++ {
				if _, err := s.SaveStrategy(ctx, models.Strategy{Title: fmt.Sprintf("S%d", i)}); err != nil {
					return false
				}
			}
			all := s.RawStrategies()
			if len(all) == 0 {
				return true
			}
			last := ""
			for _, p := range picks {
				last = all[p%len(all)].ID
				if err := s.SetActiveStrategy(ctx, last); err != nil {
					return false
				}
			}
			if last == "" {
				return countActive(s.RawStrategies()) <= 1
			}
			active, ok := s.ActiveStrategy()
			return ok && active.ID == last && countActive(s.RawStrategies()) == 1
		},
		gen.IntRange(0, 5),
		gen.SliceOf(gen.IntRange(0, 100)),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestSaveStrategy_NewIsInactive(t *testing.T) {
	s := newTestSession(t, nil)
	st, err := s.SaveStrategy(context.Background(), models.Strategy{
		Title:    "  Opening Range  ",
		IsActive: true,
		Rules:    models.StrategyRules{Entry: []string{"Break of range", " "}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Opening Range", st.Title)
	assert.False(t, st.IsActive)
	assert.Equal(t, []string{"Break of range"}, st.Rules.Entry)
	assert.Equal(t, 1, countActive(s.RawStrategies()))
}

func TestSaveStrategy_EditKeepsActiveAndRefreshesChecklist(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, nil)
	st, err := s.Strategy("1")
	require.NoError(t, err)

	st.IsActive = false
	st.Rules.Risk = append(st.Rules.Risk, "Max two trades a day")
	saved, err := s.SaveStrategy(ctx, st)
	require.NoError(t, err)

	assert.True(t, saved.IsActive)
	items := s.Checklist()
	assert.Equal(t, "Max two trades a day", items[len(items)-1].Label)
}

func TestSaveStrategy_RequiresTitle(t *testing.T) {
	s := newTestSession(t, nil)
	_, err := s.SaveStrategy(context.Background(), models.Strategy{Title: " "})
	assert.ErrorIs(t, err, errors.ErrInputValidation)
}

func TestRenamedStrategyLosesTrades(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, nil)
	saveWin(t, s, "2024-03-01")

	assert.Equal(t, "100%", s.Strategies()[0].WinRate)

	st, _ := s.Strategy("1")
	st.Title = "MSS v2"
	_, err := s.SaveStrategy(ctx, st)
	require.NoError(t, err)

	assert.Equal(t, "0%", s.Strategies()[0].WinRate)
	assert.Equal(t, "Market Structure Shift", s.Trades()[0].Setup)
}

func TestDeleteStrategy(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, nil)

	assert.ErrorIs(t, s.DeleteStrategy(ctx, "1", Confirmed(false)), errors.ErrNotConfirmed)
	assert.Len(t, s.RawStrategies(), 2)

	require.NoError(t, s.DeleteStrategy(ctx, "1", Confirmed(true)))
	assert.Len(t, s.RawStrategies(), 1)
	_, ok := s.ActiveStrategy()
	assert.False(t, ok)
	assert.Len(t, s.Checklist(), 12)
}

func TestRules_AddRemove(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, nil)

	st, err := s.AddRule(ctx, "2", models.CategorySetup, "Retest on lower timeframe")
	require.NoError(t, err)
	n := len(st.Rules.Setup)
	assert.Equal(t, "Retest on lower timeframe", st.Rules.Setup[n-1])

	_, err = s.RemoveRule(ctx, "2", models.CategorySetup, n-1, Confirmed(false))
	assert.ErrorIs(t, err, errors.ErrNotConfirmed)

	st, err = s.RemoveRule(ctx, "2", models.CategorySetup, n-1, Confirmed(true))
	require.NoError(t, err)
	assert.Len(t, st.Rules.Setup, n-1)

	_, err = s.RemoveRule(ctx, "2", models.CategorySetup, 99, Confirmed(true))
	assert.ErrorIs(t, err, errors.ErrInputValidation)
}

func TestFindStrategy_ByTitle(t *testing.T) {
	s := newTestSession(t, nil)
	st, err := s.FindStrategy("Break & Retest")
	require.NoError(t, err)
	assert.Equal(t, "2", st.ID)

	_, err = s.FindStrategy("nothing")
	assert.ErrorIs(t, err, errors.ErrStrategyNotFound)
}
