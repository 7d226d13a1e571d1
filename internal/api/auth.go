package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trade-journal/internal/journal"
	"trade-journal/internal/models"
)

// AuthHandler serves sign-in and the profile of the journal owner.
type AuthHandler struct {
	State *State
}

// Register mounts the /api/auth routes.
func (h *AuthHandler) Register(r *gin.Engine) {
	g := r.Group("/api/auth")
	g.POST("/login", h.login)
	g.POST("/logout", h.logout)
	g.GET("/me", h.me)
	g.PUT("/me", h.update)
}

func (h *AuthHandler) login(c *gin.Context) {
	var req journal.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	var (
		u   models.User
		err error
	)
	h.State.do(func(s *journal.Session) {
		u, err = s.Login(c.Request.Context(), req)
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, u, nil)
}

func (h *AuthHandler) logout(c *gin.Context) {
	h.State.do(func(s *journal.Session) {
		s.Logout(c.Request.Context())
	})
	Ok(c, nil, nil)
}

func (h *AuthHandler) me(c *gin.Context) {
	var (
		u   models.User
		err error
	)
	h.State.do(func(s *journal.Session) {
		u, err = s.RequireUser()
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, u, nil)
}

func (h *AuthHandler) update(c *gin.Context) {
	var req models.User
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	var (
		u   models.User
		err error
	)
	h.State.do(func(s *journal.Session) {
		u, err = s.UpdateUser(c.Request.Context(), req)
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, u, nil)
}
