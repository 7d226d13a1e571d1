package api

import (
	"github.com/gin-gonic/gin"

	"trade-journal/internal/journal"
	"trade-journal/internal/models"
)

// ChecklistHandler exposes the pre-trade checklist of the active strategy.
type ChecklistHandler struct {
	State *State
}

// Register mounts the /api/checklist routes.
func (h *ChecklistHandler) Register(r *gin.Engine) {
	g := r.Group("/api/checklist")
	g.GET("", h.get)
	g.POST("/reset", h.reset)
	g.POST("/:id/toggle", h.toggle)
}

type checklistResponse struct {
	Items []models.ChecklistItem `json:"items"`
	Score journal.Score          `json:"score"`
}

func (h *ChecklistHandler) snapshot(s *journal.Session) checklistResponse {
	return checklistResponse{Items: s.Checklist(), Score: s.ChecklistScore()}
}

func (h *ChecklistHandler) get(c *gin.Context) {
	var resp checklistResponse
	h.State.do(func(s *journal.Session) {
		resp = h.snapshot(s)
	})
	Ok(c, resp, nil)
}

func (h *ChecklistHandler) toggle(c *gin.Context) {
	var (
		resp checklistResponse
		err  error
	)
	h.State.do(func(s *journal.Session) {
		if _, err = s.ToggleChecklistItem(c.Request.Context(), c.Param("id")); err != nil {
			return
		}
		resp = h.snapshot(s)
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, resp, nil)
}

func (h *ChecklistHandler) reset(c *gin.Context) {
	var resp checklistResponse
	h.State.do(func(s *journal.Session) {
		s.ResetChecklist(c.Request.Context())
		resp = h.snapshot(s)
	})
	Ok(c, resp, nil)
}
