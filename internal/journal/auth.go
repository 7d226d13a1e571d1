package journal

import (
	"context"
	"fmt"
	"strings"

	"trade-journal/internal/errors"
	"trade-journal/internal/logging"
	"trade-journal/internal/models"
	"trade-journal/internal/security"
	"trade-journal/internal/store"
)

const (
	loginWelcome  = "Here is your trading performance overview."
	signupWelcome = "Welcome to your new trading journal!"
)

// Credentials is a login or signup request. There is no account backend:
// any well-formed credentials sign in.
type Credentials struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name,omitempty"`
	Signup     bool   `json:"signup,omitempty"`
	RememberMe bool   `json:"rememberMe,omitempty"`
}

// Validate checks the form rules of the sign-in screen.
func (c Credentials) Validate() error {
	if c.Email == "" || !strings.Contains(c.Email, "@") {
		return errors.NewValidationError("email", c.Email, "please enter a valid email address")
	}
	if len(c.Password) < 6 {
		return errors.NewValidationError("password", "******", "password must be at least 6 characters long")
	}
	if c.Signup && strings.TrimSpace(c.Name) == "" {
		return errors.NewValidationError("name", c.Name, "please enter your name")
	}
	return nil
}

// Login signs a user in. The user is remembered in the store only when
// RememberMe is set.
func (s *Session) Login(ctx context.Context, c Credentials) (models.User, error) {
	c.Email = strings.TrimSpace(c.Email)
	if err := c.Validate(); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", errors.ErrInvalidCredentials, err)
	}

	u := models.User{Email: c.Email, Name: strings.TrimSpace(c.Name)}
	if c.Signup {
		u.WelcomeMessage = signupWelcome
	} else {
		if u.Name == "" {
			u.Name = strings.SplitN(c.Email, "@", 2)[0]
		}
		u.WelcomeMessage = loginWelcome
	}

	s.user = &u
	if c.RememberMe {
		if err := s.prefs.SaveUser(ctx, u); err != nil {
			logging.LogPersistence(s.log(ctx), "set", store.KeyUser, err)
		}
	}
	logger := s.log(ctx)
	logger.Info().Str("email", security.MaskEmail(u.Email)).Bool("remember", c.RememberMe).Msg("User signed in")
	return u, nil
}

// CurrentUser returns the signed-in user, if any.
func (s *Session) CurrentUser() (models.User, bool) {
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// RequireUser returns ErrNotAuthenticated when nobody is signed in.
func (s *Session) RequireUser() (models.User, error) {
	u, ok := s.CurrentUser()
	if !ok {
		return models.User{}, errors.ErrNotAuthenticated
	}
	return u, nil
}

// UpdateUser replaces the profile. It is written to the store only when the
// user was remembered at login.
func (s *Session) UpdateUser(ctx context.Context, u models.User) (models.User, error) {
	if s.user == nil {
		return models.User{}, errors.ErrNotAuthenticated
	}
	u.Email = strings.TrimSpace(u.Email)
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return models.User{}, errors.NewValidationError("email", u.Email, "please enter a valid email address")
	}
	if strings.TrimSpace(u.WelcomeMessage) == "" {
		u.WelcomeMessage = s.user.WelcomeMessage
	}
	s.user = &u
	if s.prefs.HasUser(ctx) {
		if err := s.prefs.SaveUser(ctx, u); err != nil {
			logging.LogPersistence(s.log(ctx), "set", store.KeyUser, err)
		}
	}
	return u, nil
}

// Logout signs out, discards the trade collection and forgets the user.
// Strategies and form options are kept.
func (s *Session) Logout(ctx context.Context) {
	s.user = nil
	s.trades = []models.Trade{}
	if err := s.prefs.ForgetUser(ctx); err != nil {
		logging.LogPersistence(s.log(ctx), "remove", store.KeyUser, err)
	}
	s.persist(ctx)
	logger := s.log(ctx)
	logger.Info().Msg("User signed out")
}

// DeleteAccount signs out, discards trades and resets the form options
// after confirmation.
func (s *Session) DeleteAccount(ctx context.Context, c Confirmer) error {
	if s.user == nil {
		return errors.ErrNotAuthenticated
	}
	if !confirmed(c, "Delete account "+s.user.Email+" and all of its trades?") {
		return errors.ErrNotConfirmed
	}
	s.user = nil
	s.trades = []models.Trade{}
	s.options = models.DefaultFormOptions()
	if err := s.prefs.ForgetUser(ctx); err != nil {
		logging.LogPersistence(s.log(ctx), "remove", store.KeyUser, err)
	}
	if err := s.prefs.ForgetOptions(ctx); err != nil {
		logging.LogPersistence(s.log(ctx), "remove", store.KeyOptions, err)
	}
	s.persist(ctx)
	logger := s.log(ctx)
	logger.Info().Msg("Account deleted")
	return nil
}
