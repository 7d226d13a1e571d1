package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trade-journal/internal/journal"
	"trade-journal/internal/models"
)

// OptionsHandler edits the choice lists offered by the trade form.
type OptionsHandler struct {
	State *State
}

// Register mounts the /api/options routes. Removal requires confirmation.
func (h *OptionsHandler) Register(r *gin.Engine) {
	g := r.Group("/api/options")
	g.GET("", h.get)
	g.POST("/:category", h.add)
	g.DELETE("/:category", h.remove)
}

func (h *OptionsHandler) get(c *gin.Context) {
	var o models.FormOptions
	h.State.do(func(s *journal.Session) {
		o = s.FormOptions()
	})
	Ok(c, o, nil)
}

type addOptionRequest struct {
	Value string `json:"value"`
}

func (h *OptionsHandler) add(c *gin.Context) {
	var req addOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	cat := models.ParseOptionCategory(c.Param("category"))
	var (
		o   models.FormOptions
		err error
	)
	h.State.do(func(s *journal.Session) {
		o, err = s.AddOption(c.Request.Context(), cat, req.Value)
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, o, nil)
}

func (h *OptionsHandler) remove(c *gin.Context) {
	cat := models.ParseOptionCategory(c.Param("category"))
	var (
		o   models.FormOptions
		err error
	)
	h.State.do(func(s *journal.Session) {
		o, err = s.RemoveOption(c.Request.Context(), cat, c.Query("value"), confirmQuery(c))
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, o, nil)
}
