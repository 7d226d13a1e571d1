// Package journal owns the session state of the trading journal: the trade
// collection, the strategy catalog, the pre-trade checklist, the signed-in
// user and the form options. A Session is not safe for concurrent use;
// callers serving several clients must serialise access.
package journal

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"trade-journal/internal/derive"
	"trade-journal/internal/errors"
	"trade-journal/internal/logging"
	"trade-journal/internal/models"
	"trade-journal/internal/store"
	"trade-journal/pkg/utils"
)

// Options configures a Session.
type Options struct {
	// PersistSession snapshots trades, strategies and the checklist after
	// every mutation and restores them on Restore.
	PersistSession bool
	// SeedStrategies installs DefaultStrategies when no catalog is restored.
	SeedStrategies bool
	// Now overrides the clock. Nil means time.Now.
	Now func() time.Time
	// NewID overrides id generation. Nil means utils.NewID.
	NewID func() string
}

// Session is the single owner of all mutable journal state.
type Session struct {
	prefs  *store.Prefs
	logger zerolog.Logger
	opts   Options

	user       *models.User
	trades     []models.Trade
	strategies []models.Strategy
	checklist  []models.ChecklistItem
	options    models.FormOptions
}

// NewSession creates an empty session backed by prefs.
func NewSession(prefs *store.Prefs, logger zerolog.Logger, opts Options) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = utils.NewID
	}
	s := &Session{
		prefs:   prefs,
		logger:  logger,
		opts:    opts,
		trades:  []models.Trade{},
		options: models.DefaultFormOptions(),
	}
	if opts.SeedStrategies {
		s.strategies = DefaultStrategies()
	}
	s.checklist = s.checklistFor(s.activeStrategy())
	return s
}

// Restore loads the remembered user, the form options and, when session
// persistence is enabled, the previous session. It never fails: unreadable
// records are logged and replaced by defaults.
func (s *Session) Restore(ctx context.Context) {
	s.user = s.prefs.LoadUser(ctx)
	s.options = s.prefs.LoadOptions(ctx)

	if !s.opts.PersistSession {
		return
	}
	if snap, ok := s.prefs.LoadSnapshot(ctx); ok {
		if snap.Trades != nil {
			s.trades = snap.Trades
		}
		if snap.Strategies != nil {
			s.strategies = snap.Strategies
		}
		s.checklist = s.checklistFor(s.activeStrategy())
	}
	if items, ok := s.prefs.LoadChecklist(ctx); ok && sameChecklist(items, s.checklist) {
		s.checklist = items
	}
	logger := s.log(ctx)
	logger.Debug().
		Int("trades", len(s.trades)).
		Int("strategies", len(s.strategies)).
		Msg("Session restored")
}

// persist snapshots the session when enabled. Persistence is best-effort.
func (s *Session) persist(ctx context.Context) {
	if !s.opts.PersistSession {
		return
	}
	snap := store.Snapshot{Trades: s.trades, Strategies: s.strategies}
	if err := s.prefs.SaveSnapshot(ctx, snap); err != nil {
		logging.LogPersistence(s.log(ctx), "set", store.KeyTrades, err)
	}
	if err := s.prefs.SaveChecklist(ctx, s.checklist); err != nil {
		logging.LogPersistence(s.log(ctx), "set", store.KeyChecklist, err)
	}
}

// log returns the request-scoped logger carried by ctx, if any.
func (s *Session) log(ctx context.Context) zerolog.Logger {
	return logging.FromContext(ctx, s.logger)
}

// Now returns the session clock's current time.
func (s *Session) Now() time.Time {
	return s.opts.Now()
}

// Trades returns a copy of the trade collection in insertion order.
func (s *Session) Trades() []models.Trade {
	return append([]models.Trade(nil), s.trades...)
}

// Trade returns the trade with the given id.
func (s *Session) Trade(id string) (models.Trade, error) {
	for _, t := range s.trades {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Trade{}, errors.Wrapf(errors.ErrTradeNotFound, "trade %s", id)
}

// NewTradeForm returns a blank form pre-filled with today's date, the
// active strategy and the current checklist score.
func (s *Session) NewTradeForm() *derive.TradeForm {
	return derive.NewTradeForm(s.Now(), s.activeStrategy(), s.ChecklistScore().Percent)
}

// EditTradeForm loads a stored trade for editing.
func (s *Session) EditTradeForm(id string) (*derive.TradeForm, error) {
	t, err := s.Trade(id)
	if err != nil {
		return nil, err
	}
	return derive.FormFromTrade(t), nil
}

// SaveTrade commits the form. A form whose id matches a stored trade replaces
// it in place; anything else is appended as a new trade, after which the
// checklist is reset for the next trade.
func (s *Session) SaveTrade(ctx context.Context, f *derive.TradeForm) models.Trade {
	idx := s.indexOfTrade(f.ID)
	opts := derive.CommitOptions{
		ActiveStrategy: s.activeStrategy(),
		Now:            s.Now(),
		NewID:          s.opts.NewID,
	}
	if idx >= 0 {
		existing := s.trades[idx]
		opts.Existing = &existing
	}

	t := derive.Commit(f, opts)
	if idx >= 0 {
		s.trades[idx] = t
		logging.LogTrade(s.log(ctx), "updated", t.ID, t.Symbol, string(t.Status), t.PnL)
	} else {
		s.trades = append(s.trades, t)
		s.resetChecklist()
		logging.LogTrade(s.log(ctx), "saved", t.ID, t.Symbol, string(t.Status), t.PnL)
	}
	s.persist(ctx)
	return t
}

// ImportTrades appends trades, replacing any with a matching id.
func (s *Session) ImportTrades(ctx context.Context, trades []models.Trade) int {
	for _, t := range trades {
		if t.ID == "" {
			t.ID = s.opts.NewID()
		}
		if idx := s.indexOfTrade(t.ID); idx >= 0 {
			s.trades[idx] = t
		} else {
			s.trades = append(s.trades, t)
		}
	}
	s.persist(ctx)
	return len(trades)
}

// DeleteTrade removes exactly the trade with the given id, keeping the order
// of the rest. It requires confirmation.
func (s *Session) DeleteTrade(ctx context.Context, id string, c Confirmer) error {
	idx := s.indexOfTrade(id)
	if idx < 0 {
		return errors.Wrapf(errors.ErrTradeNotFound, "trade %s", id)
	}
	if !confirmed(c, "Delete trade "+id+"?") {
		return errors.ErrNotConfirmed
	}
	t := s.trades[idx]
	s.trades = append(s.trades[:idx:idx], s.trades[idx+1:]...)
	logging.LogTrade(s.log(ctx), "deleted", t.ID, t.Symbol, string(t.Status), t.PnL)
	s.persist(ctx)
	return nil
}

func (s *Session) indexOfTrade(id string) int {
	if id == "" {
		return -1
	}
	for i, t := range s.trades {
		if t.ID == id {
			return i
		}
	}
	return -1
}
