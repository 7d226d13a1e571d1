package journal

import (
	"context"
	"strings"

	"trade-journal/internal/analytics"
	"trade-journal/internal/errors"
	"trade-journal/internal/logging"
	"trade-journal/internal/models"
)

// Strategies returns the catalog with the active strategy first and win
// rates filled in from the current trades.
func (s *Session) Strategies() []models.Strategy {
	return analytics.WithWinRates(analytics.SortActiveFirst(s.strategies), s.trades)
}

// RawStrategies returns the catalog in stored order.
func (s *Session) RawStrategies() []models.Strategy {
	return append([]models.Strategy(nil), s.strategies...)
}

// ActiveStrategy returns the active strategy, if any.
func (s *Session) ActiveStrategy() (models.Strategy, bool) {
	if a := s.activeStrategy(); a != nil {
		return *a, true
	}
	return models.Strategy{}, false
}

func (s *Session) activeStrategy() *models.Strategy {
	for i := range s.strategies {
		if s.strategies[i].IsActive {
			st := s.strategies[i]
			return &st
		}
	}
	return nil
}

// Strategy returns the strategy with the given id.
func (s *Session) Strategy(id string) (models.Strategy, error) {
	if i := s.indexOfStrategy(id); i >= 0 {
		return s.strategies[i], nil
	}
	return models.Strategy{}, errors.Wrapf(errors.ErrStrategyNotFound, "strategy %s", id)
}

// FindStrategy resolves a strategy by id or, failing that, by exact title.
func (s *Session) FindStrategy(ref string) (models.Strategy, error) {
	if st, err := s.Strategy(ref); err == nil {
		return st, nil
	}
	if st, ok := models.FindStrategyByTitle(s.strategies, ref); ok {
		return st, nil
	}
	return models.Strategy{}, errors.Wrapf(errors.ErrStrategyNotFound, "strategy %q", ref)
}

// SaveStrategy adds a new strategy or replaces an existing one by id. An
// edit keeps the stored active flag. Trades keep their setup text, so a
// renamed strategy no longer owns its earlier trades.
func (s *Session) SaveStrategy(ctx context.Context, st models.Strategy) (models.Strategy, error) {
	st.Title = strings.TrimSpace(st.Title)
	if st.Title == "" {
		return models.Strategy{}, errors.NewValidationError("title", st.Title, "must not be empty")
	}
	st.WinRate = ""
	st.Rules = cleanRules(st.Rules)

	if i := s.indexOfStrategy(st.ID); i >= 0 {
		st.IsActive = s.strategies[i].IsActive
		s.strategies[i] = st
		logging.LogStrategy(s.log(ctx), "updated", st.ID, st.Title)
	} else {
		if st.ID == "" {
			st.ID = s.opts.NewID()
		}
		st.IsActive = false
		s.strategies = append(s.strategies, st)
		logging.LogStrategy(s.log(ctx), "created", st.ID, st.Title)
	}
	if st.IsActive {
		s.checklist = s.checklistFor(&st)
	}
	s.persist(ctx)
	return st, nil
}

// DeleteStrategy removes a strategy after confirmation. Its trades stay in
// the journal with their setup text.
func (s *Session) DeleteStrategy(ctx context.Context, id string, c Confirmer) error {
	i := s.indexOfStrategy(id)
	if i < 0 {
		return errors.Wrapf(errors.ErrStrategyNotFound, "strategy %s", id)
	}
	st := s.strategies[i]
	if !confirmed(c, "Delete strategy "+st.Title+"?") {
		return errors.ErrNotConfirmed
	}
	s.strategies = append(s.strategies[:i:i], s.strategies[i+1:]...)
	if st.IsActive {
		s.checklist = s.checklistFor(nil)
	}
	logging.LogStrategy(s.log(ctx), "deleted", st.ID, st.Title)
	s.persist(ctx)
	return nil
}

// SetActiveStrategy makes id the only active strategy and regenerates the
// checklist from its rules.
func (s *Session) SetActiveStrategy(ctx context.Context, id string) error {
	if s.indexOfStrategy(id) < 0 {
		return errors.Wrapf(errors.ErrStrategyNotFound, "strategy %s", id)
	}
	for i := range s.strategies {
		s.strategies[i].IsActive = s.strategies[i].ID == id
	}
	active := s.activeStrategy()
	s.checklist = s.checklistFor(active)
	logging.LogStrategy(s.log(ctx), "activated", active.ID, active.Title)
	s.persist(ctx)
	return nil
}

// AddRule appends a rule to one category of a strategy.
func (s *Session) AddRule(ctx context.Context, id string, c models.RuleCategory, rule string) (models.Strategy, error) {
	st, err := s.Strategy(id)
	if err != nil {
		return models.Strategy{}, err
	}
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return models.Strategy{}, errors.NewValidationError("rule", rule, "must not be empty")
	}
	rules := append(append([]string(nil), st.Rules.List(c)...), rule)
	st.Rules = st.Rules.WithList(c, rules)
	return s.SaveStrategy(ctx, st)
}

// RemoveRule deletes the rule at index (0-based) from one category after
// confirmation.
func (s *Session) RemoveRule(ctx context.Context, id string, c models.RuleCategory, index int, conf Confirmer) (models.Strategy, error) {
	st, err := s.Strategy(id)
	if err != nil {
		return models.Strategy{}, err
	}
	list := st.Rules.List(c)
	if index < 0 || index >= len(list) {
		return models.Strategy{}, errors.NewValidationError("index", index, "out of range")
	}
	if !confirmed(conf, "Remove "+string(c)+" rule \""+list[index]+"\"?") {
		return models.Strategy{}, errors.ErrNotConfirmed
	}
	rules := append(append([]string(nil), list[:index]...), list[index+1:]...)
	st.Rules = st.Rules.WithList(c, rules)
	return s.SaveStrategy(ctx, st)
}

// ImportStrategies merges an imported playbook. Strategies whose id is
// already present replace the stored one; the rest are added inactive.
func (s *Session) ImportStrategies(ctx context.Context, strategies []models.Strategy) (int, error) {
	n := 0
	for _, st := range strategies {
		if _, err := s.SaveStrategy(ctx, st); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (s *Session) indexOfStrategy(id string) int {
	if id == "" {
		return -1
	}
	for i, st := range s.strategies {
		if st.ID == id {
			return i
		}
	}
	return -1
}

func cleanRules(r models.StrategyRules) models.StrategyRules {
	for _, c := range models.RuleCategories {
		out := []string{}
		for _, rule := range r.List(c) {
			if rule = strings.TrimSpace(rule); rule != "" {
				out = append(out, rule)
			}
		}
		r = r.WithList(c, out)
	}
	return r
}
