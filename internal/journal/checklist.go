package journal

import (
	"context"
	"fmt"
	"math"

	"trade-journal/internal/derive"
	"trade-journal/internal/errors"
	"trade-journal/internal/models"
)

// Score is the completion of the checklist in whole percent.
type Score struct {
	Checked    int                         `json:"checked"`
	Total      int                         `json:"total"`
	Percent    int                         `json:"percent"`
	Categories map[models.RuleCategory]int `json:"categories"`
	Groups     map[string]int              `json:"groups"`
	// GroupOrder lists the groups in the order they first appear.
	GroupOrder []string `json:"groupOrder"`
	// FollowedPlan reports whether Percent meets the plan threshold.
	FollowedPlan bool `json:"followedPlan"`
}

// Checklist returns a copy of the current checklist.
func (s *Session) Checklist() []models.ChecklistItem {
	return append([]models.ChecklistItem(nil), s.checklist...)
}

// ToggleChecklistItem flips one item.
func (s *Session) ToggleChecklistItem(ctx context.Context, id string) (models.ChecklistItem, error) {
	for i := range s.checklist {
		if s.checklist[i].ID == id {
			s.checklist[i].IsChecked = !s.checklist[i].IsChecked
			s.persist(ctx)
			return s.checklist[i], nil
		}
	}
	return models.ChecklistItem{}, errors.Wrapf(errors.ErrChecklistItem, "item %s", id)
}

// ResetChecklist unchecks every item.
func (s *Session) ResetChecklist(ctx context.Context) {
	s.resetChecklist()
	s.persist(ctx)
}

func (s *Session) resetChecklist() {
	for i := range s.checklist {
		s.checklist[i].IsChecked = false
	}
}

// ChecklistScore computes the overall, per-category and per-group completion.
func (s *Session) ChecklistScore() Score {
	return ScoreChecklist(s.checklist)
}

// ScoreChecklist computes completion percentages for items. Categories with
// no items score 0.
func ScoreChecklist(items []models.ChecklistItem) Score {
	sc := Score{
		Total:      len(items),
		Categories: make(map[models.RuleCategory]int, len(models.RuleCategories)),
		Groups:     make(map[string]int),
	}
	catChecked := map[models.RuleCategory]int{}
	catTotal := map[models.RuleCategory]int{}
	groupChecked := map[string]int{}
	groupTotal := map[string]int{}
	for _, it := range items {
		if _, seen := groupTotal[it.Group]; !seen {
			sc.GroupOrder = append(sc.GroupOrder, it.Group)
		}
		catTotal[it.Category]++
		groupTotal[it.Group]++
		if it.IsChecked {
			sc.Checked++
			catChecked[it.Category]++
			groupChecked[it.Group]++
		}
	}
	sc.Percent = roundPercent(sc.Checked, sc.Total)
	for _, c := range models.RuleCategories {
		sc.Categories[c] = roundPercent(catChecked[c], catTotal[c])
	}
	for g, total := range groupTotal {
		sc.Groups[g] = roundPercent(groupChecked[g], total)
	}
	sc.FollowedPlan = derive.FollowedPlan(sc.Percent)
	return sc
}

// checklistFor builds the unchecked checklist of a strategy, or the generic
// default checklist when no strategy is active.
func (s *Session) checklistFor(active *models.Strategy) []models.ChecklistItem {
	if active == nil {
		return DefaultChecklist()
	}
	items := make([]models.ChecklistItem, 0, active.Rules.Count())
	n := 1
	for _, c := range models.RuleCategories {
		for _, rule := range active.Rules.List(c) {
			items = append(items, models.ChecklistItem{
				ID:       fmt.Sprintf("auto-%d", n),
				Label:    rule,
				Category: c,
				Group:    c.Group(),
			})
			n++
		}
	}
	return items
}

func sameChecklist(a, b []models.ChecklistItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Label != b[i].Label {
			return false
		}
	}
	return true
}

func roundPercent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}
