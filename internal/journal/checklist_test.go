package journal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-journal/internal/errors"
	"trade-journal/internal/models"
)

func TestScoreChecklist(t *testing.T) {
	items := []models.ChecklistItem{
		{ID: "a", Category: models.CategoryAnalysis, Group: "Analysis", IsChecked: true},
		{ID: "b", Category: models.CategoryAnalysis, Group: "Analysis"},
		{ID: "c", Category: models.CategoryRisk, Group: "Risk Management", IsChecked: true},
	}

	sc := ScoreChecklist(items)

	assert.Equal(t, 2, sc.Checked)
	assert.Equal(t, 3, sc.Total)
	assert.Equal(t, 67, sc.Percent)
	assert.Equal(t, 50, sc.Categories[models.CategoryAnalysis])
	assert.Equal(t, 0, sc.Categories[models.CategoryEntry])
	assert.Equal(t, 100, sc.Groups["Risk Management"])
	assert.Equal(t, []string{"Analysis", "Risk Management"}, sc.GroupOrder)
	assert.False(t, sc.FollowedPlan)
}

func TestScoreChecklist_Empty(t *testing.T) {
	sc := ScoreChecklist(nil)
	assert.Equal(t, 0, sc.Percent)
	assert.False(t, sc.FollowedPlan)
}

func TestToggleAndReset(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, nil)

	it, err := s.ToggleChecklistItem(ctx, "auto-2")
	require.NoError(t, err)
	assert.True(t, it.IsChecked)
	it, err = s.ToggleChecklistItem(ctx, "auto-2")
	require.NoError(t, err)
	assert.False(t, it.IsChecked)

	_, err = s.ToggleChecklistItem(ctx, "missing")
	assert.ErrorIs(t, err, errors.ErrChecklistItem)

	for _, it := range s.Checklist()[:6] {
		_, err := s.ToggleChecklistItem(ctx, it.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, 75, s.ChecklistScore().Percent)
	assert.True(t, s.ChecklistScore().FollowedPlan)
	assert.Equal(t, 75, s.NewTradeForm().ChecklistScore)

	s.ResetChecklist(ctx)
	assert.Equal(t, 0, s.ChecklistScore().Checked)
}
