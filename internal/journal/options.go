package journal

import (
	"context"
	"strings"

	"trade-journal/internal/errors"
	"trade-journal/internal/logging"
	"trade-journal/internal/models"
	"trade-journal/internal/store"
)

// FormOptions returns a copy of the option lists.
func (s *Session) FormOptions() models.FormOptions {
	o := s.options
	for _, c := range models.OptionCategories {
		o = o.WithList(c, append([]string{}, o.List(c)...))
	}
	return o
}

// AddOption appends a trimmed value to a category. Empty values are
// rejected and duplicates are ignored.
func (s *Session) AddOption(ctx context.Context, c models.OptionCategory, value string) (models.FormOptions, error) {
	if c == "" {
		return s.FormOptions(), errors.Wrap(errors.ErrInvalidOption, "unknown category")
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return s.FormOptions(), errors.NewValidationError(string(c), value, "must not be empty")
	}
	list := s.options.List(c)
	for _, v := range list {
		if v == value {
			return s.FormOptions(), nil
		}
	}
	s.options = s.options.WithList(c, append(append([]string(nil), list...), value))
	s.saveOptions(ctx)
	return s.FormOptions(), nil
}

// RemoveOption deletes a value from a category after confirmation.
func (s *Session) RemoveOption(ctx context.Context, c models.OptionCategory, value string, conf Confirmer) (models.FormOptions, error) {
	if c == "" {
		return s.FormOptions(), errors.Wrap(errors.ErrInvalidOption, "unknown category")
	}
	list := s.options.List(c)
	idx := -1
	for i, v := range list {
		if v == value {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s.FormOptions(), errors.Wrapf(errors.ErrInvalidOption, "%s has no %q", c, value)
	}
	if !confirmed(conf, "Remove "+value+" from "+string(c)+"?") {
		return s.FormOptions(), errors.ErrNotConfirmed
	}
	s.options = s.options.WithList(c, append(append([]string{}, list[:idx]...), list[idx+1:]...))
	s.saveOptions(ctx)
	return s.FormOptions(), nil
}

func (s *Session) saveOptions(ctx context.Context) {
	if err := s.prefs.SaveOptions(ctx, s.options); err != nil {
		logging.LogPersistence(s.log(ctx), "set", store.KeyOptions, err)
	}
}
