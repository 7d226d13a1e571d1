package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"trade-journal/internal/analytics"
	"trade-journal/internal/derive"
	"trade-journal/internal/journal"
	"trade-journal/internal/models"
)

// TradeHandler serves the trade log. Writes go through the derivation engine.
type TradeHandler struct {
	State *State
}

// Register mounts the /api/trades routes. Deletes need ?confirm=true.
func (h *TradeHandler) Register(r *gin.Engine) {
	g := r.Group("/api/trades")
	g.GET("", h.list)
	g.POST("", h.create)
	g.POST("/preview", h.preview)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

func (h *TradeHandler) list(c *gin.Context) {
	filter := models.TradeFilter{
		Symbol:   strings.TrimSpace(c.Query("symbol")),
		Status:   models.ParseStatus(c.Query("status")),
		Strategy: strings.TrimSpace(c.Query("strategy")),
		Platform: strings.TrimSpace(c.Query("platform")),
	}
	var trades []models.Trade
	h.State.do(func(s *journal.Session) {
		trades = analytics.FilterTrades(s.Trades(), filter)
	})
	Ok(c, trades, map[string]any{"total": len(trades)})
}

func (h *TradeHandler) get(c *gin.Context) {
	var (
		t   models.Trade
		err error
	)
	h.State.do(func(s *journal.Session) {
		t, err = s.Trade(c.Param("id"))
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, t, nil)
}

func (h *TradeHandler) create(c *gin.Context) {
	var in derive.TradeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	var t models.Trade
	h.State.do(func(s *journal.Session) {
		f := s.NewTradeForm()
		in.Apply(f)
		t = s.SaveTrade(c.Request.Context(), f)
	})
	c.JSON(http.StatusCreated, apiResponse{Code: 0, Message: "created", Data: t})
}

func (h *TradeHandler) update(c *gin.Context) {
	var in derive.TradeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	var (
		t   models.Trade
		err error
	)
	h.State.do(func(s *journal.Session) {
		var f *derive.TradeForm
		if f, err = s.EditTradeForm(c.Param("id")); err != nil {
			return
		}
		in.Apply(f)
		t = s.SaveTrade(c.Request.Context(), f)
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, t, nil)
}

// preview runs the derivation without committing. With ?id= the stored
// trade is the starting point.
func (h *TradeHandler) preview(c *gin.Context) {
	var in derive.TradeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	var (
		f   *derive.TradeForm
		err error
	)
	h.State.do(func(s *journal.Session) {
		if id := c.Query("id"); id != "" {
			f, err = s.EditTradeForm(id)
		} else {
			f = s.NewTradeForm()
		}
	})
	if err != nil {
		Fail(c, err)
		return
	}
	in.Apply(f)
	Ok(c, f, map[string]any{"followedPlan": f.FollowedPlan()})
}

func (h *TradeHandler) remove(c *gin.Context) {
	var err error
	h.State.do(func(s *journal.Session) {
		err = s.DeleteTrade(c.Request.Context(), c.Param("id"), confirmQuery(c))
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, nil, nil)
}

func confirmQuery(c *gin.Context) journal.Confirmed {
	return journal.Confirmed(c.Query("confirm") == "true")
}
