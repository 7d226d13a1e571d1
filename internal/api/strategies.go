package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trade-journal/internal/analytics"
	"trade-journal/internal/journal"
	"trade-journal/internal/models"
)

// StrategyHandler manages the strategy catalog.
type StrategyHandler struct {
	State *State
}

// Register mounts the /api/strategies routes.
func (h *StrategyHandler) Register(r *gin.Engine) {
	g := r.Group("/api/strategies")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/performance", h.performance)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
	g.POST("/:id/activate", h.activate)
}

func (h *StrategyHandler) list(c *gin.Context) {
	var out []models.Strategy
	h.State.do(func(s *journal.Session) {
		out = s.Strategies()
	})
	Ok(c, out, nil)
}

func (h *StrategyHandler) create(c *gin.Context) {
	var req models.Strategy
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	req.ID = ""
	var (
		st  models.Strategy
		err error
	)
	h.State.do(func(s *journal.Session) {
		st, err = s.SaveStrategy(c.Request.Context(), req)
	})
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, apiResponse{Code: 0, Message: "created", Data: st})
}

func (h *StrategyHandler) update(c *gin.Context) {
	var req models.Strategy
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	req.ID = c.Param("id")
	var (
		st  models.Strategy
		err error
	)
	h.State.do(func(s *journal.Session) {
		if _, err = s.Strategy(req.ID); err != nil {
			return
		}
		st, err = s.SaveStrategy(c.Request.Context(), req)
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, st, nil)
}

func (h *StrategyHandler) remove(c *gin.Context) {
	var err error
	h.State.do(func(s *journal.Session) {
		err = s.DeleteStrategy(c.Request.Context(), c.Param("id"), confirmQuery(c))
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, nil, nil)
}

func (h *StrategyHandler) activate(c *gin.Context) {
	var (
		st  models.Strategy
		err error
	)
	h.State.do(func(s *journal.Session) {
		if err = s.SetActiveStrategy(c.Request.Context(), c.Param("id")); err != nil {
			return
		}
		st, _ = s.ActiveStrategy()
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, st, nil)
}

type performanceResponse struct {
	Stats []analytics.StrategyStats `json:"stats"`
	Curve []analytics.StrategyPoint `json:"curve"`
}

func (h *StrategyHandler) performance(c *gin.Context) {
	var resp performanceResponse
	h.State.do(func(s *journal.Session) {
		strategies, trades := s.RawStrategies(), s.Trades()
		resp.Stats = analytics.StrategyPerformance(strategies, trades)
		resp.Curve = analytics.StrategyCurve(strategies, trades)
	})
	Ok(c, resp, nil)
}
