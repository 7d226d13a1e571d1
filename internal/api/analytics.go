package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"trade-journal/internal/analytics"
	"trade-journal/internal/journal"
	"trade-journal/internal/models"
	"trade-journal/pkg/utils"
)

// AnalyticsHandler serves the read-only review views computed from the trade log.
type AnalyticsHandler struct {
	State *State
}

// Register mounts the dashboard, equity and calendar routes under /api.
func (h *AnalyticsHandler) Register(r *gin.Engine) {
	g := r.Group("/api")
	g.GET("/dashboard", h.dashboard)
	g.GET("/equity", h.equity)
	g.GET("/calendar", h.calendar)
}

func (h *AnalyticsHandler) trades() []models.Trade {
	var trades []models.Trade
	h.State.do(func(s *journal.Session) {
		trades = s.Trades()
	})
	return trades
}

func (h *AnalyticsHandler) dashboard(c *gin.Context) {
	Ok(c, analytics.BuildDashboard(h.trades(), c.Query("platform")), nil)
}

func (h *AnalyticsHandler) equity(c *gin.Context) {
	trades := analytics.FilterByPlatform(h.trades(), c.Query("platform"))
	Ok(c, analytics.EquityCurve(trades), nil)
}

func (h *AnalyticsHandler) calendar(c *gin.Context) {
	var (
		trades []models.Trade
		now    time.Time
	)
	h.State.do(func(s *journal.Session) {
		trades = s.Trades()
		now = s.Now()
	})
	year, month := now.Year(), now.Month()
	if raw := c.Query("month"); raw != "" {
		var ok bool
		if year, month, ok = utils.ParseMonth(raw); !ok {
			Error(c, http.StatusBadRequest, "month must be YYYY-MM", nil)
			return
		}
	}
	cal := analytics.BuildCalendar(trades, year, month)
	Ok(c, cal, map[string]any{"days": cal.SortedDays()})
}
