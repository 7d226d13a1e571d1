package store

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"trade-journal/internal/errors"
	"trade-journal/internal/logging"
	"trade-journal/internal/models"
)

// Prefs reads and writes the typed journal records on top of a KV. Read
// failures never reach the caller: a corrupt blob is logged and replaced by
// the default value.
type Prefs struct {
	kv     KV
	logger zerolog.Logger
}

// NewPrefs wraps kv.
func NewPrefs(kv KV, logger zerolog.Logger) *Prefs {
	return &Prefs{kv: kv, logger: logger}
}

// KV returns the underlying store.
func (p *Prefs) KV() KV {
	return p.kv
}

// Snapshot is the persisted session: trades and the strategy catalog.
type Snapshot struct {
	Trades     []models.Trade    `json:"trades"`
	Strategies []models.Strategy `json:"strategies"`
}

// LoadUser returns the remembered user, or nil. A corrupt record is removed.
func (p *Prefs) LoadUser(ctx context.Context) *models.User {
	var u models.User
	if !p.load(ctx, KeyUser, &u, true) {
		return nil
	}
	return &u
}

// HasUser reports whether a remembered user record exists.
func (p *Prefs) HasUser(ctx context.Context) bool {
	_, ok, err := p.kv.Get(ctx, KeyUser)
	if err != nil {
		logging.LogPersistence(p.logger, "get", KeyUser, err)
		return false
	}
	return ok
}

// SaveUser remembers u.
func (p *Prefs) SaveUser(ctx context.Context, u models.User) error {
	return p.save(ctx, KeyUser, u)
}

// ForgetUser removes the remembered user.
func (p *Prefs) ForgetUser(ctx context.Context) error {
	return p.remove(ctx, KeyUser)
}

// LoadOptions returns the stored form options or the defaults. A corrupt
// record is left in place and the defaults are returned; a record missing
// some lists gets the default for each of them.
func (p *Prefs) LoadOptions(ctx context.Context) models.FormOptions {
	var o models.FormOptions
	if !p.load(ctx, KeyOptions, &o, false) {
		return models.DefaultFormOptions()
	}
	return o.WithDefaults()
}

// SaveOptions persists the form options.
func (p *Prefs) SaveOptions(ctx context.Context, o models.FormOptions) error {
	return p.save(ctx, KeyOptions, o)
}

// ForgetOptions removes the stored form options.
func (p *Prefs) ForgetOptions(ctx context.Context) error {
	return p.remove(ctx, KeyOptions)
}

// LoadSnapshot returns the persisted session, if any. Restored trades get
// the defaults for fields their record lacks.
func (p *Prefs) LoadSnapshot(ctx context.Context) (Snapshot, bool) {
	var s Snapshot
	okTrades := p.load(ctx, KeyTrades, &s.Trades, false)
	okStrategies := p.load(ctx, KeyStrategies, &s.Strategies, false)
	for i := range s.Trades {
		s.Trades[i] = s.Trades[i].WithDefaults()
	}
	return s, okTrades || okStrategies
}

// SaveSnapshot persists the session.
func (p *Prefs) SaveSnapshot(ctx context.Context, s Snapshot) error {
	if err := p.save(ctx, KeyTrades, s.Trades); err != nil {
		return err
	}
	return p.save(ctx, KeyStrategies, s.Strategies)
}

// ClearSnapshot removes the persisted session.
func (p *Prefs) ClearSnapshot(ctx context.Context) error {
	if err := p.remove(ctx, KeyTrades); err != nil {
		return err
	}
	if err := p.remove(ctx, KeyChecklist); err != nil {
		return err
	}
	return p.remove(ctx, KeyStrategies)
}

// LoadChecklist returns the persisted checklist state, if any.
func (p *Prefs) LoadChecklist(ctx context.Context) ([]models.ChecklistItem, bool) {
	var items []models.ChecklistItem
	ok := p.load(ctx, KeyChecklist, &items, false)
	return items, ok
}

// SaveChecklist persists the checklist state.
func (p *Prefs) SaveChecklist(ctx context.Context, items []models.ChecklistItem) error {
	return p.save(ctx, KeyChecklist, items)
}

func (p *Prefs) load(ctx context.Context, key string, dst interface{}, removeCorrupt bool) bool {
	raw, ok, err := p.kv.Get(ctx, key)
	if err != nil {
		logging.LogPersistence(p.logger, "get", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		logging.LogPersistence(p.logger, "decode", key, errors.NewDecodeError(key, err))
		if removeCorrupt {
			if err := p.kv.Remove(ctx, key); err != nil {
				logging.LogPersistence(p.logger, "remove", key, err)
			}
		}
		return false
	}
	return true
}

func (p *Prefs) save(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.NewStoreError("encode", key, err)
	}
	if err := p.kv.Set(ctx, key, string(data)); err != nil {
		return errors.NewStoreError("set", key, err)
	}
	return nil
}

func (p *Prefs) remove(ctx context.Context, key string) error {
	if err := p.kv.Remove(ctx, key); err != nil {
		return errors.NewStoreError("remove", key, err)
	}
	return nil
}
