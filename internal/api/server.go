// Package api serves the journal session over a local HTTP/JSON interface.
package api

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"trade-journal/internal/journal"
	"trade-journal/internal/security"
)

// Config holds the HTTP server settings.
type Config struct {
	Addr      string
	Mode      string
	RateLimit float64
	RateBurst int
	ReadOnly  bool
}

// State guards the session. Every handler holds the lock for the whole
// request, so the session sees one writer at a time.
type State struct {
	mu      sync.Mutex
	session *journal.Session
}

// NewState wraps a session.
func NewState(s *journal.Session) *State {
	return &State{session: s}
}

func (st *State) do(fn func(s *journal.Session)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	fn(st.session)
}

// Server is the HTTP front end of a session.
type Server struct {
	cfg    Config
	logger zerolog.Logger
	engine *gin.Engine
}

// NewServer builds the gin engine and registers every handler.
func NewServer(session *journal.Session, logger zerolog.Logger, cfg Config) *Server {
	switch strings.ToLower(cfg.Mode) {
	case gin.DebugMode:
		gin.SetMode(gin.DebugMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogMiddleware(logger))
	if cfg.RateLimit > 0 {
		engine.Use(rateLimitMiddleware(newClientLimiter(cfg.RateLimit, cfg.RateBurst), logger))
	}
	engine.Use(accessMiddleware(security.NewAccessController(cfg.ReadOnly, logger)))

	state := NewState(session)
	(&HealthHandler{}).Register(engine)
	(&AuthHandler{State: state}).Register(engine)
	(&TradeHandler{State: state}).Register(engine)
	(&AnalyticsHandler{State: state}).Register(engine)
	(&StrategyHandler{State: state}).Register(engine)
	(&ChecklistHandler{State: state}).Register(engine)
	(&OptionsHandler{State: state}).Register(engine)

	return &Server{cfg: cfg, logger: logger, engine: engine}
}

// Handler returns the engine as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.cfg.Addr).Msg("API server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info().Msg("API server shutting down")
	return srv.Shutdown(shutdownCtx)
}
